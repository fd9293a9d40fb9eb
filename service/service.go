package service

import (
	"gorm.io/gorm"
)

// Services groups the store access used by the API handlers
type Services struct {
	Settings *SettingsService
	Carts    *CartService
	Sessions *SessionService
}

// New builds the services over db. carts selects the saved-cart backend;
// nil uses the relational store.
func New(db *gorm.DB, carts CartRepository) *Services {
	if carts == nil {
		carts = NewSQLCartRepository(db)
	}
	return &Services{
		Settings: NewSettingsService(db),
		Carts:    NewCartService(carts),
		Sessions: NewSessionService(db),
	}
}
