package models

import (
	"strings"
	"time"
)

// ShopSession is an authenticated storefront session issued by the shop platform.
// Rows are written by the external session storage; this service only reads them.
type ShopSession struct {
	ID         string     `gorm:"primaryKey;size:255" json:"id"`
	Shop       string     `gorm:"size:255;index" json:"shop"`
	CustomerID string     `gorm:"column:customer_id;size:255" json:"customer_id,omitempty"`
	IsOnline   bool       `json:"is_online"`
	Scope      string     `json:"scope,omitempty"`
	Expires    *time.Time `json:"expires,omitempty"`
}

// TableName keeps the table name stable across gorm naming strategies.
func (ShopSession) TableName() string {
	return "shop_sessions"
}

// Expired reports whether the session has an expiry in the past.
func (s *ShopSession) Expired(now time.Time) bool {
	return s.Expires != nil && !s.Expires.After(now)
}

// HasShop reports whether the session is bound to a shop.
func (s *ShopSession) HasShop() bool {
	return strings.TrimSpace(s.Shop) != ""
}

// HasCustomer reports whether a storefront customer is logged in on this session.
func (s *ShopSession) HasCustomer() bool {
	return strings.TrimSpace(s.CustomerID) != ""
}
