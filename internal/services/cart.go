package service

import (
	"context"
	"database/sql"
	stderrors "errors"

	"github.com/inkwell/bookstore/internal/errors"
	"github.com/inkwell/bookstore/internal/models"
	repository "github.com/inkwell/bookstore/internal/repositories"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type CartService interface {
	GetCart(ctx context.Context, userID uuid.UUID) (*models.CartView, error)
	AddItem(ctx context.Context, userID uuid.UUID, req *models.AddItemRequest) (*models.CartItem, error)
	UpdateQuantity(ctx context.Context, userID uuid.UUID, req *models.UpdateQuantityRequest) (*models.CartView, error)
}

type cartService struct {
	cartRepo repository.CartRepository
	bookRepo repository.BookRepository
}

func NewCartService(cartRepo repository.CartRepository, bookRepo repository.BookRepository) CartService {
	return &cartService{cartRepo: cartRepo, bookRepo: bookRepo}
}

// GetCart never fails for a user without a cart: browsing an empty cart is a
// normal state, it just renders zero lines.
func (s *cartService) GetCart(ctx context.Context, userID uuid.UUID) (*models.CartView, error) {

	cart, err := s.cartRepo.GetCartByUserID(ctx, userID)
	if err != nil {
		if stderrors.Is(err, sql.ErrNoRows) {
			return &models.CartView{Items: []models.CartItem{}, Total: decimal.Zero}, nil
		}
		return nil, errors.DatabaseError("Failed to load cart").WithError(err)
	}

	return s.buildView(ctx, cart)
}

// AddItem creates the cart lazily and accumulates quantity on the
// (cart, book) line. Stock is deliberately not checked here; availability is
// validated only at checkout.
func (s *cartService) AddItem(ctx context.Context, userID uuid.UUID, req *models.AddItemRequest) (*models.CartItem, error) {

	qty := req.Quantity
	if qty == 0 {
		qty = 1
	}

	if _, err := s.bookRepo.GetBookByID(ctx, req.BookID); err != nil {
		return nil, errors.NotFoundError("Book not found").WithError(err)
	}

	cart, err := s.cartRepo.GetOrCreateCart(ctx, userID)
	if err != nil {
		return nil, errors.DatabaseError("Failed to create cart").WithError(err)
	}

	item, err := s.cartRepo.UpsertItem(ctx, cart.ID, req.BookID, qty)
	if err != nil {
		return nil, errors.DatabaseError("Failed to add item to cart").WithError(err)
	}

	return item, nil
}

func (s *cartService) UpdateQuantity(ctx context.Context, userID uuid.UUID, req *models.UpdateQuantityRequest) (*models.CartView, error) {

	cart, err := s.cartRepo.GetCartByUserID(ctx, userID)
	if err != nil {
		return nil, errors.NotFoundError("Cart not found").WithError(err)
	}

	if req.Quantity == 0 {
		err = s.cartRepo.DeleteItem(ctx, cart.ID, req.BookID)
	} else {
		err = s.cartRepo.UpdateItemQuantity(ctx, cart.ID, req.BookID, req.Quantity)
	}

	if err != nil {
		if stderrors.Is(err, sql.ErrNoRows) {
			return nil, errors.NotFoundError("Item not found in the cart").WithError(err)
		}
		return nil, errors.DatabaseError("Failed to update cart").WithError(err)
	}

	return s.buildView(ctx, cart)
}

func (s *cartService) buildView(ctx context.Context, cart *models.Cart) (*models.CartView, error) {

	items, err := s.cartRepo.GetItems(ctx, cart.ID)
	if err != nil {
		return nil, errors.DatabaseError("Failed to load cart items").WithError(err)
	}

	if items == nil {
		items = []models.CartItem{}
	}

	total := decimal.Zero

	for _, item := range items {
		if item.Subtotal != nil {
			total = total.Add(*item.Subtotal)
		}
	}

	return &models.CartView{Cart: cart, Items: items, Total: total}, nil
}
