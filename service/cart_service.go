package service

import (
	"context"
	"errors"
	"strings"

	"savecart/core"
	"savecart/models"

	"gorm.io/gorm"
)

// CartRepository looks up saved carts by id. Implementations return core.ErrNotFound
// for a missing cart and an error wrapping core.ErrStore for any other failure.
type CartRepository interface {
	FindByID(ctx context.Context, id string) (*models.SavedCart, error)
}

// SQLCartRepository reads saved carts from the relational store
type SQLCartRepository struct {
	db *gorm.DB
}

// NewSQLCartRepository constructs a gorm-backed cart repository
func NewSQLCartRepository(db *gorm.DB) *SQLCartRepository {
	return &SQLCartRepository{db: db}
}

// FindByID loads the cart with the given primary key
func (r *SQLCartRepository) FindByID(ctx context.Context, id string) (*models.SavedCart, error) {
	var cart models.SavedCart
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&cart).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, core.ErrNotFound
	}
	if err != nil {
		return nil, core.NewStoreError("find saved cart", err)
	}
	return &cart, nil
}

// CartService handles saved cart lookups
type CartService struct {
	repo CartRepository
}

// NewCartService constructs a cart service over repo
func NewCartService(repo CartRepository) *CartService {
	return &CartService{repo: repo}
}

// FindByID returns the cart with the given id.
// An empty id is a validation error; a missing cart is core.ErrNotFound.
func (s *CartService) FindByID(ctx context.Context, id string) (*models.SavedCart, error) {
	ctx, span := tracer.Start(ctx, "cart.FindByID")
	defer span.End()

	id = strings.TrimSpace(id)
	if id == "" {
		return nil, core.NewValidationError("id", "Missing cart id")
	}

	cart, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if !errors.Is(err, core.ErrNotFound) {
			recordStoreFailure(ctx, span, "cart.FindByID", err)
		}
		return nil, err
	}
	return cart, nil
}
