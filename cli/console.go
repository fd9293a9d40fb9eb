package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"savecart/models"

	"github.com/chzyer/readline"
)

// Console is the interactive widget shell
type Console struct {
	rl      *readline.Instance
	running bool
	client  *Client
	widget  *Widget
	out     io.Writer
	logger  *slog.Logger
}

// NewConsole checks the server is reachable and opens a readline prompt
func NewConsole(ctx context.Context, client *Client, logger *slog.Logger) (*Console, error) {
	if err := client.HealthCheck(ctx); err != nil {
		return nil, fmt.Errorf("cannot connect to server: %w", err)
	}

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "savecart> ",
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create readline: %w", err)
	}

	c := newConsole(client, rl.Stdout(), logger)
	c.rl = rl
	return c, nil
}

func newConsole(client *Client, out io.Writer, logger *slog.Logger) *Console {
	if logger == nil {
		logger = slog.Default()
	}
	return &Console{running: true, client: client, out: out, logger: logger}
}

// Start mounts the widget and runs the command loop until exit or EOF
func (c *Console) Start(ctx context.Context) {
	defer c.rl.Close()

	FprintBanner(c.out, "savecart - Checkout Widget", bannerDefaultWidth)
	fmt.Fprintf(c.out, "\nConnected to: %s\n", c.client.BaseURL())
	fmt.Fprintln(c.out, "Type 'help' for available commands")
	fmt.Fprintln(c.out)
	c.refresh(ctx)

	for c.running {
		line, err := c.rl.Readline()
		if err != nil {
			if errors.Is(err, readline.ErrInterrupt) {
				fmt.Fprintln(c.out, "Use 'exit' to quit.")
				continue
			}
			break
		}

		input := strings.TrimSpace(line)
		if input == "" {
			continue
		}
		c.handleCommand(ctx, input)
	}
}

func (c *Console) handleCommand(ctx context.Context, input string) {
	parts := strings.Fields(input)
	if len(parts) == 0 {
		return
	}

	cmd := strings.ToLower(parts[0])
	args := parts[1:]

	switch cmd {
	case "help", "h", "?":
		c.showHelp()
	case "load":
		c.load()
	case "refresh", "r":
		c.refresh(ctx)
	case "theme":
		c.handleThemeCommand(ctx, args)
	case "status", "st":
		c.status()
	case "clear":
		fmt.Fprint(c.out, "\033[H\033[2J")
	case "exit", "quit", "q":
		fmt.Fprintln(c.out, "Goodbye!")
		c.running = false
	default:
		fmt.Fprintf(c.out, "Unknown command: %s. Type 'help' for available commands.\n", cmd)
	}
}

func (c *Console) showHelp() {
	commands := [][]string{
		{"load", "Retrieve the saved cart shown by the widget"},
		{"refresh, r", "Mount a fresh widget (fetch settings, login and cart again)"},
		{"theme", "Show the theme settings"},
		{"theme set <text> <#fg> <#bg>", "Update theme settings (needs an admin key)"},
		{"status, st", "Show widget state"},
		{"clear", "Clear screen"},
		{"exit, quit, q", "Exit"},
	}
	fmt.Fprintln(c.out)
	for _, cmd := range commands {
		fmt.Fprintf(c.out, "  %-30s %s\n", cmd[0], cmd[1])
	}
	fmt.Fprintln(c.out)
}

// refresh replaces the widget with a newly mounted one
func (c *Console) refresh(ctx context.Context) {
	w := NewWidget(c.client, c.logger)
	w.Color = c.rl != nil
	if err := w.Mount(ctx); err != nil {
		fmt.Fprintf(c.out, "Error: %v\n", err)
		return
	}
	c.widget = w
	w.Render(c.out)
}

func (c *Console) load() {
	if c.widget == nil {
		fmt.Fprintln(c.out, "Widget is not mounted. Use 'refresh'.")
		return
	}
	if c.widget.State() != StateLoggedIn {
		c.widget.Render(c.out)
		return
	}

	cart, err := c.widget.RetrieveCart()
	if err != nil {
		if errors.Is(err, ErrNoSavedCart) {
			fmt.Fprintln(c.out, NoSavedCartMessage)
			return
		}
		fmt.Fprintf(c.out, "Error: %v\n", err)
		return
	}

	fmt.Fprintf(c.out, "Retrieved cart %s (%s)\n", cart.ID, cartSummary(cart))
	for _, item := range cart.Items {
		title := item.ProductTitle
		if title == "" {
			title = item.VariantID
		}
		fmt.Fprintf(c.out, "  %-30s x%-4d %10.2f\n", title, item.Quantity, item.UnitPrice)
	}
}

func (c *Console) status() {
	if c.widget == nil {
		fmt.Fprintln(c.out, "Widget is not mounted.")
		return
	}
	fmt.Fprintf(c.out, "State:   %s\n", c.widget.State())
	fmt.Fprintf(c.out, "Prompt:  %s\n", c.widget.PromptText())
	if msg := c.widget.Error(); msg != "" {
		fmt.Fprintf(c.out, "Error:   %s\n", msg)
	}
}

func (c *Console) handleThemeCommand(ctx context.Context, args []string) {
	if len(args) == 0 || args[0] == "show" {
		ts, err := c.client.ThemeSettings(ctx)
		if err != nil {
			fmt.Fprintf(c.out, "Error: %v\n", err)
			return
		}
		fmt.Fprintf(c.out, "Text:             %s\n", ts.Text)
		fmt.Fprintf(c.out, "Text color:       %s\n", ts.TextColor)
		fmt.Fprintf(c.out, "Background color: %s\n", ts.BackgroundColor)
		return
	}

	if args[0] != "set" || len(args) < 4 {
		fmt.Fprintln(c.out, "Usage: theme [show] | theme set <text> <#fg> <#bg>")
		return
	}

	n := len(args)
	in := models.ThemeSettingsInput{
		Text:            strings.Join(args[1:n-2], " "),
		TextColor:       args[n-2],
		BackgroundColor: args[n-1],
	}
	ts, err := c.client.UpdateThemeSettings(ctx, in)
	if err != nil {
		fmt.Fprintf(c.out, "Error: %v\n", err)
		return
	}
	fmt.Fprintf(c.out, "Theme settings %d updated. Use 'refresh' to redraw.\n", ts.ID)
}
