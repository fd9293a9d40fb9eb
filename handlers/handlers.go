package handlers

import (
	"context"
	"errors"
	"io"
	"net/http"
	"time"

	"savecart/config"
	"savecart/core"
	"savecart/database"
	"savecart/models"
	"savecart/service"
	"savecart/version"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// LoginCheckFailedText marks a login check that could not consult the session store
const LoginCheckFailedText = "Failed to check login status."

// Handler serves the savecart API
type Handler struct {
	cfg    *config.Config
	db     *gorm.DB
	svcs   *service.Services
	errors *core.ErrorLogger
}

// New constructs a handler. db is only used for health checks.
func New(cfg *config.Config, db *gorm.DB, svcs *service.Services, errLog *core.ErrorLogger) *Handler {
	if errLog == nil {
		errLog = core.NewErrorLogger(0, nil)
	}
	return &Handler{cfg: cfg, db: db, svcs: svcs, errors: errLog}
}

// CheckLogin reports whether the caller has a storefront session with a logged-in
// customer. It always answers 200; a lookup failure is logged and marked with an
// error field so clients can tell it apart from a logged-out caller.
func (h *Handler) CheckLogin(c *gin.Context) {
	sess, err := h.svcs.Sessions.Lookup(c.Request.Context(), sessionToken(c, h.cfg.SessionCookieName))
	if err != nil {
		if errors.Is(err, core.ErrUnauthorized) {
			c.JSON(http.StatusOK, gin.H{"isLoggedIn": false})
			return
		}
		h.logFailure(c, "check-login", "login check failed", err)
		c.JSON(http.StatusOK, gin.H{"isLoggedIn": false, "error": LoginCheckFailedText})
		return
	}
	c.JSON(http.StatusOK, gin.H{"isLoggedIn": sess.HasCustomer()})
}

// GetCustomer returns the customer id bound to the session
func (h *Handler) GetCustomer(c *gin.Context) {
	sess, ok := CurrentSession(c)
	if !ok || !sess.HasCustomer() {
		respondError(c, http.StatusNotFound, "Customer not found")
		return
	}
	c.JSON(http.StatusOK, gin.H{"customerId": sess.CustomerID})
}

// GetThemeSettings returns the current theme settings record
func (h *Handler) GetThemeSettings(c *gin.Context) {
	ts, err := h.svcs.Settings.Current(c.Request.Context())
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			respondError(c, http.StatusNotFound, "Theme settings not found")
			return
		}
		h.logFailure(c, "theme-settings", "failed to load theme settings", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error", "details": err.Error()})
		return
	}
	c.JSON(http.StatusOK, ts)
}

// PatchThemeSettings validates and upserts the theme settings record
func (h *Handler) PatchThemeSettings(c *gin.Context) {
	var req models.ThemeSettingsInput
	if err := c.ShouldBindJSON(&req); err != nil {
		writeFailed(c, http.StatusBadRequest, "Validation failed", map[string]string{"body": "Invalid JSON body"})
		return
	}

	ts, err := core.ValidateThemeSettings(req)
	if err != nil {
		var verr *core.ValidationError
		if errors.As(err, &verr) {
			writeFailed(c, http.StatusBadRequest, "Validation failed", verr.Fields)
			return
		}
		h.logFailure(c, "theme-settings", "validation error", err)
		writeFailed(c, http.StatusInternalServerError, "Internal server error", nil)
		return
	}

	stored, err := h.svcs.Settings.Upsert(c.Request.Context(), req.ID, ts)
	if err != nil {
		h.logFailure(c, "theme-settings", "failed to save theme settings", err)
		writeFailed(c, http.StatusInternalServerError, "Internal server error", nil)
		return
	}
	writeOK(c, stored)
}

// PostSavedCart returns the saved cart named in the body, or the session customer's cart
// when the body names none. Carts owned by another customer or shop read as missing.
func (h *Handler) PostSavedCart(c *gin.Context) {
	sess, _ := CurrentSession(c)

	var req models.SavedCartLookup
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		respondError(c, http.StatusBadRequest, "Invalid request body")
		return
	}
	req.Normalize()

	id := req.CartID()
	if id == "" && sess != nil {
		id = sess.CustomerID
	}
	if id == "" {
		respondError(c, http.StatusBadRequest, "Missing cart id")
		return
	}

	cart, err := h.svcs.Carts.FindByID(c.Request.Context(), id)
	switch {
	case err == nil:
	case errors.Is(err, core.ErrNotFound):
		respondError(c, http.StatusNotFound, "No saved cart found.")
		return
	case errors.Is(err, core.ErrInvalidInput):
		respondError(c, http.StatusBadRequest, "Missing cart id")
		return
	default:
		h.logFailure(c, "saved-cart", "failed to retrieve saved cart", err)
		respondError(c, http.StatusInternalServerError, "Failed to retrieve saved cart.")
		return
	}

	if !ownsCart(sess, cart) {
		respondError(c, http.StatusNotFound, "No saved cart found.")
		return
	}
	c.JSON(http.StatusOK, cart.Read())
}

func ownsCart(sess *models.ShopSession, cart *models.SavedCart) bool {
	if sess == nil {
		return false
	}
	if cart.Shop != "" && cart.Shop != sess.Shop {
		return false
	}
	if cart.CustomerID != "" && cart.CustomerID != sess.CustomerID {
		return false
	}
	return true
}

// Health reports store connectivity and classified store error counts
func (h *Handler) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), time.Second)
	defer cancel()

	up := database.Up(ctx, h.db)
	health := gin.H{
		"status":       "healthy",
		"timestamp":    time.Now().Unix(),
		"database":     up,
		"version":      version.GetVersion(),
		"store_errors": database.StoreErrors(),
	}
	if !up {
		health["status"] = "degraded"
		c.JSON(http.StatusServiceUnavailable, health)
		return
	}
	c.JSON(http.StatusOK, health)
}

// GetErrorLogs returns recent server-side errors, latest first
func (h *Handler) GetErrorLogs(c *gin.Context) {
	c.JSON(http.StatusOK, h.errors.GetErrorLogs())
}

// ClearErrorLogs wipes the in-memory error log
func (h *Handler) ClearErrorLogs(c *gin.Context) {
	h.errors.ClearErrorLogs()
	c.JSON(http.StatusOK, gin.H{"ok": true, "message": "Error logs cleared"})
}
