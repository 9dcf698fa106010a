package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Book struct {
	ID              int64           `json:"id"`
	Title           string          `json:"title"`
	Author          string          `json:"author"`
	Category        string          `json:"category"`
	Price           decimal.Decimal `json:"price"`
	QuantityInStock int             `json:"quantity_in_stock"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

type CreateBookRequest struct {
	Title           string          `json:"title" validate:"required,max=255"`
	Author          string          `json:"author" validate:"required,max=255"`
	Category        string          `json:"category" validate:"required,max=100"`
	Price           decimal.Decimal `json:"price" validate:"required"`
	QuantityInStock int             `json:"quantity_in_stock" validate:"gte=0"`
}

type UpdateBookRequest struct {
	Title           *string          `json:"title,omitempty" validate:"omitempty,max=255"`
	Author          *string          `json:"author,omitempty" validate:"omitempty,max=255"`
	Category        *string          `json:"category,omitempty" validate:"omitempty,max=100"`
	Price           *decimal.Decimal `json:"price,omitempty"`
	QuantityInStock *int             `json:"quantity_in_stock,omitempty" validate:"omitempty,gte=0"`
}

// BookFilter narrows catalog listings. Search matches title, author or
// category as a case-insensitive substring and composes with the other fields.
type BookFilter struct {
	Category string
	MinPrice *decimal.Decimal
	MaxPrice *decimal.Decimal
	Search   string
}
