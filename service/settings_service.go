package service

import (
	"context"
	"errors"

	"savecart/core"
	"savecart/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Seed record created on first start when SEED_DEFAULTS is on.
const (
	DefaultThemeText            = "Welcome to your saved cart feature!"
	DefaultThemeTextColor       = "#333333"
	DefaultThemeBackgroundColor = "#f5f5f5"
)

// SettingsService reads and writes the theme settings record
type SettingsService struct {
	db *gorm.DB
}

// NewSettingsService constructs a settings service
func NewSettingsService(db *gorm.DB) *SettingsService {
	return &SettingsService{db: db}
}

// Upsert creates or replaces the record with the given id (DefaultThemeSettingsID when nil or 0)
// in a single statement and returns the stored record. Concurrent writes resolve last-write-wins.
func (s *SettingsService) Upsert(ctx context.Context, id *uint, ts models.ThemeSettings) (*models.ThemeSettings, error) {
	ctx, span := tracer.Start(ctx, "settings.Upsert")
	defer span.End()

	ts.ID = core.DefaultThemeSettingsID
	if id != nil && *id != 0 {
		ts.ID = *id
	}

	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"text", "text_color", "background_color", "updated_at"}),
	}).Create(&ts).Error
	if err != nil {
		recordStoreFailure(ctx, span, "settings.Upsert", err)
		return nil, core.NewStoreError("save theme settings", err)
	}

	var stored models.ThemeSettings
	if err := s.db.WithContext(ctx).First(&stored, ts.ID).Error; err != nil {
		recordStoreFailure(ctx, span, "settings.Upsert", err)
		return nil, core.NewStoreError("reload theme settings", err)
	}
	return &stored, nil
}

// Current returns the lowest-id settings record, or core.ErrNotFound when none exists.
func (s *SettingsService) Current(ctx context.Context) (*models.ThemeSettings, error) {
	ctx, span := tracer.Start(ctx, "settings.Current")
	defer span.End()

	var ts models.ThemeSettings
	err := s.db.WithContext(ctx).First(&ts).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, core.ErrNotFound
	}
	if err != nil {
		recordStoreFailure(ctx, span, "settings.Current", err)
		return nil, core.NewStoreError("load theme settings", err)
	}
	return &ts, nil
}

// SeedDefaults inserts the default record when the table is empty.
// It reports whether a record was created.
func (s *SettingsService) SeedDefaults(ctx context.Context) (bool, error) {
	var count int64
	if err := s.db.WithContext(ctx).Model(&models.ThemeSettings{}).Count(&count).Error; err != nil {
		return false, core.NewStoreError("count theme settings", err)
	}
	if count > 0 {
		return false, nil
	}

	seed := models.ThemeSettings{
		ID:              core.DefaultThemeSettingsID,
		Text:            DefaultThemeText,
		TextColor:       DefaultThemeTextColor,
		BackgroundColor: DefaultThemeBackgroundColor,
	}
	res := s.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(&seed)
	if res.Error != nil {
		return false, core.NewStoreError("seed theme settings", res.Error)
	}
	return res.RowsAffected > 0, nil
}
