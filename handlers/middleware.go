package handlers

import (
	"errors"
	"net/http"
	"strings"

	"savecart/core"
	"savecart/models"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const (
	requestIDHeader = "X-Request-ID"
	adminKeyHeader  = "X-Admin-Key"

	requestIDKey = "request_id"
	sessionKey   = "shop_session"
)

// RequestID assigns every request an id, reusing a sane incoming X-Request-ID
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := strings.TrimSpace(c.GetHeader(requestIDHeader))
		if id == "" || len(id) > 128 {
			id = uuid.NewString()
		}
		c.Set(requestIDKey, id)
		c.Header(requestIDHeader, id)
		c.Next()
	}
}

// RequestIDFrom returns the id set by RequestID, or "" outside that middleware
func RequestIDFrom(c *gin.Context) string {
	return c.GetString(requestIDKey)
}

// sessionToken reads the bearer token, falling back to the session cookie
func sessionToken(c *gin.Context, cookieName string) string {
	if auth := c.GetHeader("Authorization"); auth != "" {
		scheme, token, ok := strings.Cut(auth, " ")
		if ok && strings.EqualFold(scheme, "Bearer") && strings.TrimSpace(token) != "" {
			return strings.TrimSpace(token)
		}
	}
	if cookieName != "" {
		if v, err := c.Cookie(cookieName); err == nil {
			return strings.TrimSpace(v)
		}
	}
	return ""
}

// RequireSession rejects requests without a valid storefront session before any
// handler touches the store. The session is available through CurrentSession.
func (h *Handler) RequireSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		sess, err := h.svcs.Sessions.Lookup(c.Request.Context(), sessionToken(c, h.cfg.SessionCookieName))
		if err != nil {
			if errors.Is(err, core.ErrUnauthorized) {
				abortError(c, http.StatusUnauthorized, "Unauthorized")
				return
			}
			h.logFailure(c, "session", "session lookup failed", err)
			abortError(c, http.StatusInternalServerError, "Internal server error")
			return
		}
		c.Set(sessionKey, sess)
		c.Next()
	}
}

// CurrentSession returns the session stored by RequireSession
func CurrentSession(c *gin.Context) (*models.ShopSession, bool) {
	v, ok := c.Get(sessionKey)
	if !ok {
		return nil, false
	}
	sess, ok := v.(*models.ShopSession)
	return sess, ok && sess != nil
}

// RequireAdmin guards settings writes and diagnostics. Callers must pass the IP filter
// (nil allows all) and present X-Admin-Key matching the configured bcrypt hash.
// Without a configured hash every request is refused.
func (h *Handler) RequireAdmin(acl *core.IPAccessControl) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !acl.AllowsAddr(c.ClientIP()) {
			abortError(c, http.StatusForbidden, "Forbidden")
			return
		}
		if h.cfg.AdminAPIKeyHash == "" {
			abortError(c, http.StatusForbidden, "Admin access is disabled")
			return
		}
		key := c.GetHeader(adminKeyHeader)
		if key == "" || bcrypt.CompareHashAndPassword([]byte(h.cfg.AdminAPIKeyHash), []byte(key)) != nil {
			abortError(c, http.StatusForbidden, "Forbidden")
			return
		}
		c.Next()
	}
}
