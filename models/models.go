package models

import (
	"encoding/json"
	"strings"
	"time"
)

// ThemeSettings holds the merchant-configured copy and colors of the retrieval prompt.
// One logical record exists; see service.SettingsService.
type ThemeSettings struct {
	ID              uint      `gorm:"primaryKey;autoIncrement:false" json:"id"`
	Text            string    `gorm:"type:text;not null" json:"text"`
	TextColor       string    `gorm:"size:7;not null" json:"textColor"`
	BackgroundColor string    `gorm:"size:7;not null" json:"backgroundColor"`
	CreatedAt       time.Time `json:"-"`
	UpdatedAt       time.Time `json:"-"`
}

// TableName keeps the table name stable across gorm naming strategies.
func (ThemeSettings) TableName() string {
	return "theme_settings"
}

// ThemeSettingsInput is the PATCH /theme-settings payload before validation
type ThemeSettingsInput struct {
	ID              *uint  `json:"id"`
	Text            string `json:"text" validate:"required"`
	TextColor       string `json:"textColor" validate:"required,rgbhex6"`
	BackgroundColor string `json:"backgroundColor" validate:"required,rgbhex6"`
}

// Normalize trims whitespace from input fields
func (t *ThemeSettingsInput) Normalize() {
	t.Text = strings.TrimSpace(t.Text)
	t.TextColor = strings.TrimSpace(t.TextColor)
	t.BackgroundColor = strings.TrimSpace(t.BackgroundColor)
}

// SavedCartItem is one line of a saved cart snapshot
type SavedCartItem struct {
	VariantID    string  `json:"variantId" firestore:"variantId"`
	ProductTitle string  `json:"productTitle,omitempty" firestore:"productTitle"`
	Quantity     int     `json:"quantity" firestore:"quantity"`
	UnitPrice    float64 `json:"unitPrice" firestore:"unitPrice"`
}

// SavedCart is a previously persisted cart snapshot. Carts are written by the
// save flow of the storefront; this service only reads them.
type SavedCart struct {
	ID          string    `gorm:"primaryKey;size:255" json:"id"`
	Shop        string    `gorm:"size:255;index" json:"shop"`
	CustomerID  string    `gorm:"column:customer_id;size:255;index" json:"customerId"`
	ItemsJSON   string    `gorm:"column:items_json;type:text;default:'[]'" json:"-"`
	Currency    string    `gorm:"size:3" json:"currency"`
	TotalAmount float64   `json:"totalAmount"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// TableName keeps the table name stable across gorm naming strategies.
func (SavedCart) TableName() string {
	return "saved_carts"
}

// GetItems returns the cart lines
func (c *SavedCart) GetItems() []SavedCartItem {
	items := []SavedCartItem{}
	if c.ItemsJSON != "" {
		_ = json.Unmarshal([]byte(c.ItemsJSON), &items)
	}
	return items
}

// SetItems stores the cart lines as JSON
func (c *SavedCart) SetItems(items []SavedCartItem) {
	if items == nil {
		items = []SavedCartItem{}
	}
	data, _ := json.Marshal(items)
	c.ItemsJSON = string(data)
}

// Read builds the response model for the cart
func (c *SavedCart) Read() SavedCartRead {
	return SavedCartRead{
		ID:          c.ID,
		Shop:        c.Shop,
		CustomerID:  c.CustomerID,
		Items:       c.GetItems(),
		Currency:    c.Currency,
		TotalAmount: c.TotalAmount,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}

// SavedCartRead response model for reading a saved cart
type SavedCartRead struct {
	ID          string          `json:"id"`
	Shop        string          `json:"shop"`
	CustomerID  string          `json:"customerId"`
	Items       []SavedCartItem `json:"items"`
	Currency    string          `json:"currency"`
	TotalAmount float64         `json:"totalAmount"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}

// SavedCartLookup is the POST /saved-cart payload.
// CustomerID is accepted for older widget builds that sent it instead of id.
type SavedCartLookup struct {
	ID         string `json:"id"`
	CustomerID string `json:"customerId"`
}

// Normalize trims whitespace from input fields
func (l *SavedCartLookup) Normalize() {
	l.ID = strings.TrimSpace(l.ID)
	l.CustomerID = strings.TrimSpace(l.CustomerID)
}

// CartID returns the requested identifier, preferring id over customerId
func (l *SavedCartLookup) CartID() string {
	if l.ID != "" {
		return l.ID
	}
	return l.CustomerID
}
