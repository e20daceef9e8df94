package services

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"bookshop/models"
)

type BookService struct {
	books BookStore
}

func NewBookService(books BookStore) *BookService {
	return &BookService{books: books}
}

func (s *BookService) List(ctx context.Context) ([]models.Book, error) {
	return s.books.List(ctx)
}

func (s *BookService) Get(ctx context.Context, id primitive.ObjectID) (*models.Book, error) {
	return s.books.FindByID(ctx, id)
}

func (s *BookService) Create(ctx context.Context, book *models.Book) error {
	book.ID = primitive.NewObjectID()
	book.CreatedAt = time.Now()
	book.UpdatedAt = book.CreatedAt
	return s.books.Insert(ctx, book)
}

type UpdateBookInput struct {
	Title         *string   `json:"title"`
	Author        *string   `json:"author"`
	Price         *float64  `json:"price"`
	DiscountPrice *float64  `json:"discountPrice"`
	Stock         *int      `json:"stock"`
	Category      *string   `json:"category"`
	Description   *string   `json:"description"`
	Features      *[]string `json:"features"`
	Images        *[]string `json:"images"`
	IsAvailable   *bool     `json:"isAvailable"`
}

func (s *BookService) Update(ctx context.Context, id primitive.ObjectID, input UpdateBookInput) (*models.Book, error) {
	fields := map[string]interface{}{}
	if input.Title != nil {
		fields["title"] = *input.Title
	}
	if input.Author != nil {
		fields["author"] = *input.Author
	}
	if input.Price != nil {
		fields["price"] = *input.Price
	}
	if input.DiscountPrice != nil {
		fields["discountPrice"] = *input.DiscountPrice
	}
	if input.Stock != nil {
		fields["stock"] = *input.Stock
	}
	if input.Category != nil {
		fields["category"] = *input.Category
	}
	if input.Description != nil {
		fields["description"] = *input.Description
	}
	if input.Features != nil {
		fields["features"] = *input.Features
	}
	if input.Images != nil {
		fields["images"] = *input.Images
	}
	if input.IsAvailable != nil {
		fields["isAvailable"] = *input.IsAvailable
	}

	return s.books.Update(ctx, id, fields)
}

func (s *BookService) Delete(ctx context.Context, id primitive.ObjectID) error {
	return s.books.Delete(ctx, id)
}
