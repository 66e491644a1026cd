package models

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// UserRepo is the credential store. Lookups return (nil, nil) when no user
// matches; callers decide whether that is a 401 or a 404.
type UserRepo interface {
	EnsureUserIndexes(ctx context.Context) error
	InsertUser(ctx context.Context, user *User) error
	FindUserByName(ctx context.Context, userName string) (*User, error)
	FindUserByEmail(ctx context.Context, email string) (*User, error)
	FindUserByID(ctx context.Context, userID int64) (*User, error)
	FindUserByNameOrEmail(ctx context.Context, userName, email string) (*User, error)
	ListUsers(ctx context.Context) ([]*User, error)
	UpdateUserFields(ctx context.Context, userID int64, fields map[string]interface{}) (*User, error)
	CountUsers(ctx context.Context) (int64, error)
}

// EnsureUserIndexes backs the uniqueness invariants with real constraints, so
// two concurrent registrations racing past the pre-check still cannot both
// land.
func (mdb *MongodbRepo) EnsureUserIndexes(ctx context.Context) error {
	col, err := mdb.GetCollection(ctx, UsersColName)
	if err != nil {
		return fmt.Errorf("error getting collection: %v", err)
	}

	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "user_id", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("user_id_unique"),
		},
		{
			Keys:    bson.D{{Key: "user_name", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("user_name_unique"),
		},
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("email_unique"),
		},
	}

	_, err = col.Indexes().CreateMany(ctx, indexes)
	if err != nil {
		return fmt.Errorf("error creating indexes: %v", err)
	}

	return nil
}

func (mdb *MongodbRepo) InsertUser(ctx context.Context, user *User) error {
	col, err := mdb.GetCollection(ctx, UsersColName)
	if err != nil {
		return fmt.Errorf("error getting collection: %v", err)
	}

	_, err = col.InsertOne(ctx, user)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return &ConflictError{Message: "user with this email or username already exists"}
		}
		return fmt.Errorf("error inserting user: %v", err)
	}
	return nil
}

func (mdb *MongodbRepo) findOneUser(ctx context.Context, filter bson.M) (*User, error) {
	col, err := mdb.GetCollection(ctx, UsersColName)
	if err != nil {
		return nil, fmt.Errorf("error getting collection: %v", err)
	}

	var user User
	err = col.FindOne(ctx, filter).Decode(&user)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("error finding user: %v", err)
	}
	return &user, nil
}

func (mdb *MongodbRepo) FindUserByName(ctx context.Context, userName string) (*User, error) {
	return mdb.findOneUser(ctx, bson.M{"user_name": userName})
}

func (mdb *MongodbRepo) FindUserByEmail(ctx context.Context, email string) (*User, error) {
	return mdb.findOneUser(ctx, bson.M{"email": email})
}

func (mdb *MongodbRepo) FindUserByID(ctx context.Context, userID int64) (*User, error) {
	return mdb.findOneUser(ctx, bson.M{"user_id": userID})
}

func (mdb *MongodbRepo) FindUserByNameOrEmail(ctx context.Context, userName, email string) (*User, error) {
	return mdb.findOneUser(ctx, bson.M{"$or": bson.A{
		bson.M{"user_name": userName},
		bson.M{"email": email},
	}})
}

func (mdb *MongodbRepo) ListUsers(ctx context.Context) ([]*User, error) {
	col, err := mdb.GetCollection(ctx, UsersColName)
	if err != nil {
		return nil, fmt.Errorf("error getting collection: %v", err)
	}

	opts := options.Find().SetSort(bson.D{{Key: "user_id", Value: 1}})
	cursor, err := col.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("error finding users: %v", err)
	}
	defer cursor.Close(ctx)

	var users []*User
	if err := cursor.All(ctx, &users); err != nil {
		return nil, fmt.Errorf("error decoding users: %v", err)
	}
	return users, nil
}

// UpdateUserFields applies the given field set to one user and returns the
// updated record, or (nil, nil) when no user has that id.
func (mdb *MongodbRepo) UpdateUserFields(ctx context.Context, userID int64, fields map[string]interface{}) (*User, error) {
	col, err := mdb.GetCollection(ctx, UsersColName)
	if err != nil {
		return nil, fmt.Errorf("error getting collection: %v", err)
	}

	set := bson.M{"updated_at": time.Now()}
	for k, v := range fields {
		set[k] = v
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var updated User
	err = col.FindOneAndUpdate(ctx, bson.M{"user_id": userID}, bson.M{"$set": set}, opts).Decode(&updated)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, &ConflictError{Message: "email already in use"}
		}
		return nil, fmt.Errorf("error updating user: %v", err)
	}
	return &updated, nil
}

func (mdb *MongodbRepo) CountUsers(ctx context.Context) (int64, error) {
	col, err := mdb.GetCollection(ctx, UsersColName)
	if err != nil {
		return 0, fmt.Errorf("error getting collection: %v", err)
	}
	return col.CountDocuments(ctx, bson.M{})
}
