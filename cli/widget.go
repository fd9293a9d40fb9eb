package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"sync"

	"savecart/models"

	"golang.org/x/sync/errgroup"
)

// Copy shown by the widget
const (
	DefaultPromptText  = "Retrieve your saved cart:"
	LoggedOutText      = "To save or load your cart, please log in."
	LoadButtonText     = "Load Saved Cart"
	LoadingButtonText  = "Loading..."
	ErrLoginCheckText  = "Failed to check login status."
	ErrFetchCartText   = "Failed to fetch saved cart."
	NoSavedCartMessage = "No saved cart found."
)

var (
	ErrAlreadyMounted = errors.New("widget already mounted")
	ErrNoSavedCart    = errors.New("no saved cart")
)

// State is the visual state of the widget
type State int

const (
	StateLoggedOut State = iota
	StateLoggedIn
	StateError
)

func (s State) String() string {
	switch s {
	case StateLoggedIn:
		return "logged-in"
	case StateError:
		return "error"
	default:
		return "logged-out"
	}
}

// Backend is the API the widget calls
type Backend interface {
	ThemeSettings(ctx context.Context) (*models.ThemeSettings, error)
	CheckLogin(ctx context.Context) (bool, error)
	SavedCart(ctx context.Context, id string) (*models.SavedCartRead, error)
}

// Widget is a terminal rendition of the checkout cart-retrieval block.
// A widget mounts once; build a new one to start over.
type Widget struct {
	api    Backend
	logger *slog.Logger

	// Color enables ANSI colors from the theme settings when rendering.
	Color bool

	mu       sync.Mutex
	mounted  bool
	theme    *models.ThemeSettings
	loggedIn bool
	loading  bool
	cart     *models.SavedCartRead
	errMsg   string
}

// NewWidget creates an unmounted widget. A nil logger falls back to slog.Default.
func NewWidget(api Backend, logger *slog.Logger) *Widget {
	if logger == nil {
		logger = slog.Default()
	}
	return &Widget{api: api, logger: logger}
}

// Mount fetches theme settings and login status concurrently. Either failure leaves the
// other fetch running. When logged in, the customer's saved cart is fetched as soon as
// the login check returns, without waiting for the theme.
// Failures surface as a static error message; nothing is retried.
func (w *Widget) Mount(ctx context.Context) error {
	w.mu.Lock()
	if w.mounted {
		w.mu.Unlock()
		return ErrAlreadyMounted
	}
	w.mounted = true
	w.mu.Unlock()

	var g errgroup.Group
	g.Go(func() error {
		theme, err := w.api.ThemeSettings(ctx)
		w.mu.Lock()
		defer w.mu.Unlock()
		if err != nil {
			w.logger.Warn("error fetching theme settings", "error", err)
			return nil
		}
		w.theme = theme
		return nil
	})
	g.Go(func() error {
		w.checkLogin(ctx)
		return nil
	})
	return g.Wait()
}

func (w *Widget) checkLogin(ctx context.Context) {
	loggedIn, err := w.api.CheckLogin(ctx)

	w.mu.Lock()
	if err != nil {
		w.logger.Error("error checking login status", "error", err)
		w.errMsg = ErrLoginCheckText
		w.mu.Unlock()
		return
	}
	w.loggedIn = loggedIn
	if !loggedIn {
		w.mu.Unlock()
		return
	}
	w.loading = true
	w.mu.Unlock()

	w.fetchCart(ctx)
}

func (w *Widget) fetchCart(ctx context.Context) {
	cart, err := w.api.SavedCart(ctx, "")

	w.mu.Lock()
	defer w.mu.Unlock()
	w.loading = false
	switch {
	case err == nil:
		w.cart = cart
	case IsNotFound(err):
		w.logger.Debug("no saved cart for customer")
	default:
		w.logger.Error("error fetching saved cart", "error", err)
		w.errMsg = ErrFetchCartText
	}
}

// State returns the current visual state
func (w *Widget) State() State {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.stateLocked()
}

func (w *Widget) stateLocked() State {
	switch {
	case w.errMsg != "":
		return StateError
	case w.loggedIn:
		return StateLoggedIn
	default:
		return StateLoggedOut
	}
}

// Error returns the error banner text, empty when no call failed
func (w *Widget) Error() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.errMsg
}

// Loading reports whether the cart fetch is in flight
func (w *Widget) Loading() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.loading
}

// PromptText returns the theme text, or the default prompt when settings are unavailable
func (w *Widget) PromptText() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.promptLocked()
}

func (w *Widget) promptLocked() string {
	if w.theme != nil && w.theme.Text != "" {
		return w.theme.Text
	}
	return DefaultPromptText
}

// RetrieveCart returns the loaded cart. Applying it to the checkout is not implemented.
func (w *Widget) RetrieveCart() (*models.SavedCartRead, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.loading {
		return nil, errors.New("saved cart is still loading")
	}
	if w.cart == nil {
		return nil, ErrNoSavedCart
	}
	return w.cart, nil
}

// Render draws the widget in its current state
func (w *Widget) Render(out io.Writer) {
	w.mu.Lock()
	defer w.mu.Unlock()

	FprintBanner(out, "Saved Cart", 44)

	switch w.stateLocked() {
	case StateError:
		fmt.Fprintf(out, "  %s\n", w.paint("! "+w.errMsg, "#ff5555", ""))
	case StateLoggedIn:
		text := w.promptLocked()
		if w.theme != nil {
			text = w.paint(text, w.theme.TextColor, w.theme.BackgroundColor)
		}
		label := LoadButtonText
		if w.loading {
			label = LoadingButtonText
		}
		fmt.Fprintf(out, "  %s  [ %s ]\n", text, label)
		if !w.loading {
			if w.cart != nil {
				fmt.Fprintf(out, "  %s\n", cartSummary(w.cart))
			} else {
				fmt.Fprintf(out, "  %s\n", NoSavedCartMessage)
			}
		}
	default:
		fmt.Fprintf(out, "  %s\n", LoggedOutText)
	}
}

func cartSummary(cart *models.SavedCartRead) string {
	qty := 0
	for _, item := range cart.Items {
		qty += item.Quantity
	}
	summary := fmt.Sprintf("%d item(s)", qty)
	if cart.Currency != "" || cart.TotalAmount != 0 {
		summary += fmt.Sprintf(", total %.2f %s", cart.TotalAmount, cart.Currency)
	}
	return summary
}

// paint wraps s in 24-bit ANSI colors when enabled and the colors parse
func (w *Widget) paint(s, fg, bg string) string {
	if !w.Color {
		return s
	}
	prefix := ""
	if r, g, b, ok := parseHexColor(fg); ok {
		prefix += fmt.Sprintf("\033[38;2;%d;%d;%dm", r, g, b)
	}
	if r, g, b, ok := parseHexColor(bg); ok {
		prefix += fmt.Sprintf("\033[48;2;%d;%d;%dm", r, g, b)
	}
	if prefix == "" {
		return s
	}
	return prefix + s + "\033[0m"
}

func parseHexColor(s string) (r, g, b uint8, ok bool) {
	if len(s) != 7 || s[0] != '#' {
		return 0, 0, 0, false
	}
	v, err := strconv.ParseUint(s[1:], 16, 32)
	if err != nil {
		return 0, 0, 0, false
	}
	return uint8(v >> 16), uint8(v >> 8), uint8(v), true
}
