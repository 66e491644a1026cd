package models

import (
	"context"
	"fmt"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type ProductRepo interface {
	EnsureProductIndexes(ctx context.Context) error
	InsertProduct(ctx context.Context, product *Product) error
	InsertProducts(ctx context.Context, products []*Product) error
	FindActiveProductByID(ctx context.Context, productID int64) (*Product, error)
	ListActiveProducts(ctx context.Context, query string, skip, limit int64) ([]*Product, int64, error)
	UpdateProductFields(ctx context.Context, productID int64, fields map[string]interface{}) (*Product, error)
	CountProducts(ctx context.Context) (int64, error)
}

func (mdb *MongodbRepo) EnsureProductIndexes(ctx context.Context) error {
	col, err := mdb.GetCollection(ctx, ProductsColName)
	if err != nil {
		return fmt.Errorf("error getting collection: %v", err)
	}

	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "product_id", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("product_id_unique"),
		},
		// Backs the default listing order (active products, newest first).
		{
			Keys: bson.D{
				{Key: "state", Value: 1},
				{Key: "creation_date", Value: -1},
			},
			Options: options.Index().SetName("state_creation_date_idx"),
		},
	}

	_, err = col.Indexes().CreateMany(ctx, indexes)
	if err != nil {
		return fmt.Errorf("error creating indexes: %v", err)
	}

	return nil
}

func (mdb *MongodbRepo) InsertProduct(ctx context.Context, product *Product) error {
	col, err := mdb.GetCollection(ctx, ProductsColName)
	if err != nil {
		return fmt.Errorf("error getting collection: %v", err)
	}

	_, err = col.InsertOne(ctx, product)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return &ConflictError{Message: "product with this id already exists"}
		}
		return fmt.Errorf("error inserting product: %v", err)
	}
	return nil
}

func (mdb *MongodbRepo) InsertProducts(ctx context.Context, products []*Product) error {
	col, err := mdb.GetCollection(ctx, ProductsColName)
	if err != nil {
		return fmt.Errorf("error getting collection: %v", err)
	}

	docs := make([]interface{}, 0, len(products))
	for _, p := range products {
		docs = append(docs, p)
	}
	_, err = col.InsertMany(ctx, docs)
	if err != nil {
		return fmt.Errorf("error inserting products: %v", err)
	}
	return nil
}

func (mdb *MongodbRepo) FindActiveProductByID(ctx context.Context, productID int64) (*Product, error) {
	col, err := mdb.GetCollection(ctx, ProductsColName)
	if err != nil {
		return nil, fmt.Errorf("error getting collection: %v", err)
	}

	var product Product
	err = col.FindOne(ctx, bson.M{"product_id": productID, "state": ProductActive}).Decode(&product)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("error finding product: %v", err)
	}
	return &product, nil
}

// ListActiveProducts returns one page of active products, newest first, plus
// the total match count for pagination. A non-empty query narrows the result
// to case-insensitive substring matches on name or description; the query is
// escaped so user input is never interpreted as a pattern.
func (mdb *MongodbRepo) ListActiveProducts(ctx context.Context, query string, skip, limit int64) ([]*Product, int64, error) {
	col, err := mdb.GetCollection(ctx, ProductsColName)
	if err != nil {
		return nil, 0, fmt.Errorf("error getting collection: %v", err)
	}

	filter := bson.M{"state": ProductActive}
	if query != "" {
		pattern := primitive.Regex{Pattern: regexp.QuoteMeta(query), Options: "i"}
		filter["$or"] = bson.A{
			bson.M{"product_name": pattern},
			bson.M{"product_description": pattern},
		}
	}

	total, err := col.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("error counting products: %v", err)
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "creation_date", Value: -1}}).
		SetSkip(skip).
		SetLimit(limit)

	cursor, err := col.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("error finding products: %v", err)
	}
	defer cursor.Close(ctx)

	products := []*Product{}
	if err := cursor.All(ctx, &products); err != nil {
		return nil, 0, fmt.Errorf("error decoding products: %v", err)
	}

	return products, total, nil
}

// UpdateProductFields matches on product_id alone, so a retired product can
// still be patched (state included) by administrative callers. Returns
// (nil, nil) when no product has that id.
func (mdb *MongodbRepo) UpdateProductFields(ctx context.Context, productID int64, fields map[string]interface{}) (*Product, error) {
	col, err := mdb.GetCollection(ctx, ProductsColName)
	if err != nil {
		return nil, fmt.Errorf("error getting collection: %v", err)
	}

	set := bson.M{"updated_at": time.Now()}
	for k, v := range fields {
		set[k] = v
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var updated Product
	err = col.FindOneAndUpdate(ctx, bson.M{"product_id": productID}, bson.M{"$set": set}, opts).Decode(&updated)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("error updating product: %v", err)
	}
	return &updated, nil
}

func (mdb *MongodbRepo) CountProducts(ctx context.Context) (int64, error) {
	col, err := mdb.GetCollection(ctx, ProductsColName)
	if err != nil {
		return 0, fmt.Errorf("error getting collection: %v", err)
	}
	return col.CountDocuments(ctx, bson.M{})
}
