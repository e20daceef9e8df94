package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Book struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title         string             `bson:"title" json:"title" binding:"required"`
	Author        string             `bson:"author" json:"author" binding:"required"`
	Price         float64            `bson:"price" json:"price" binding:"required"`
	DiscountPrice float64            `bson:"discountPrice,omitempty" json:"discountPrice,omitempty"`
	Stock         int                `bson:"stock" json:"stock"`
	Category      string             `bson:"category" json:"category"`
	Description   string             `bson:"description" json:"description"`
	Features      []string           `bson:"features,omitempty" json:"features,omitempty"`
	Images        []string           `bson:"images,omitempty" json:"images,omitempty"`
	IsAvailable   bool               `bson:"isAvailable" json:"isAvailable"`
	CreatedAt     time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt     time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// UnitPrice is the price a customer actually pays: the discount price when
// one is set, the list price otherwise.
func (b *Book) UnitPrice() float64 {
	if b.DiscountPrice > 0 {
		return b.DiscountPrice
	}
	return b.Price
}
