package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Cart struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CartItem is one line of a cart. Book is populated on reads that join the
// catalog; Subtotal is computed from the current book price, never stored.
type CartItem struct {
	ID        uuid.UUID        `json:"id"`
	CartID    uuid.UUID        `json:"cart_id"`
	BookID    int64            `json:"book_id"`
	Quantity  int              `json:"quantity"`
	Book      *Book            `json:"book,omitempty"`
	Subtotal  *decimal.Decimal `json:"subtotal,omitempty"`
	CreatedAt time.Time        `json:"created_at"`
	UpdatedAt time.Time        `json:"updated_at"`
}

type CartView struct {
	Cart  *Cart           `json:"cart,omitempty"`
	Items []CartItem      `json:"items"`
	Total decimal.Decimal `json:"total"`
}

type AddItemRequest struct {
	BookID   int64 `json:"book_id" validate:"required"`
	Quantity int   `json:"quantity" validate:"omitempty,min=1"`
}

type UpdateQuantityRequest struct {
	BookID   int64 `json:"book_id" validate:"required"`
	Quantity int   `json:"quantity" validate:"min=0"`
}
