package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const ProductsColName = "products"

// PlaceholderImage is used when a product is created without an image URL.
const PlaceholderImage = "https://via.placeholder.com/300?text=No+Image"

// ProductState is the explicit lifecycle of a catalog entry. Retired products
// stay in the store but are invisible to every read path exposed over HTTP.
type ProductState string

const (
	ProductActive  ProductState = "active"
	ProductRetired ProductState = "retired"
)

type Product struct {
	ID                 primitive.ObjectID `bson:"_id,omitempty" json:"-"`
	ProductID          int64              `bson:"product_id" json:"product_id"`
	ProductName        string             `bson:"product_name" json:"product_name"`
	ProductDescription string             `bson:"product_description" json:"product_description"`
	ProductImage       string             `bson:"product_image" json:"product_image"`
	CurrentStockLevel  int                `bson:"current_stock_level" json:"current_stock_level"`
	State              ProductState       `bson:"state" json:"state"`
	CreationDate       time.Time          `bson:"creation_date" json:"creation_date"`
	CreatedAt          time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt          time.Time          `bson:"updated_at" json:"updated_at"`
}

type ProductInput struct {
	ProductName        string `json:"product_name" validate:"required"`
	ProductDescription string `json:"product_description" validate:"required"`
	ProductImage       string `json:"product_image"`
	CurrentStockLevel  *int   `json:"current_stock_level" validate:"required"`
}

// ProductPatch carries one optional field per mutable attribute. A nil field
// was not sent; in particular a present current_stock_level of 0 is applied,
// it is not treated as "missing".
type ProductPatch struct {
	ProductName        *string `json:"product_name"`
	ProductDescription *string `json:"product_description"`
	ProductImage       *string `json:"product_image"`
	CurrentStockLevel  *int    `json:"current_stock_level"`
}

func (p *ProductPatch) Empty() bool {
	return p.ProductName == nil && p.ProductDescription == nil &&
		p.ProductImage == nil && p.CurrentStockLevel == nil
}

// ProductPage mirrors the pagination envelope the frontend consumes.
type ProductPage struct {
	Products      []*Product `json:"products"`
	CurrentPage   int        `json:"currentPage"`
	TotalPages    int        `json:"totalPages"`
	TotalProducts int64      `json:"totalProducts"`
}
