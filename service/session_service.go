package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"savecart/core"
	"savecart/models"

	"gorm.io/gorm"
)

// SessionService resolves session tokens against the shop session store
type SessionService struct {
	db  *gorm.DB
	now func() time.Time
}

// NewSessionService constructs a session service
func NewSessionService(db *gorm.DB) *SessionService {
	return &SessionService{db: db, now: time.Now}
}

// Lookup returns the session for token. Missing, unknown and expired tokens and sessions
// without a shop fail with core.ErrUnauthorized; store failures wrap core.ErrStore.
func (s *SessionService) Lookup(ctx context.Context, token string) (*models.ShopSession, error) {
	ctx, span := tracer.Start(ctx, "session.Lookup")
	defer span.End()

	token = strings.TrimSpace(token)
	if token == "" {
		return nil, core.NewUnauthorizedError("missing session token")
	}

	var sess models.ShopSession
	err := s.db.WithContext(ctx).Where("id = ?", token).First(&sess).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, core.NewUnauthorizedError("unknown session")
	}
	if err != nil {
		recordStoreFailure(ctx, span, "session.Lookup", err)
		return nil, core.NewStoreError("load session", err)
	}

	if sess.Expired(s.now()) {
		return nil, core.NewUnauthorizedError("session expired")
	}
	if !sess.HasShop() {
		return nil, core.NewUnauthorizedError("session has no shop")
	}
	return &sess, nil
}
