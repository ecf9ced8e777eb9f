// Package notifier renders reports and delivers them to the console or a chat.
package notifier

import (
	"context"
	"fmt"
	"io"
)

// Notifier delivers rendered text somewhere.
type Notifier interface {
	Name() string
	Send(ctx context.Context, text string) error
}

// ConsoleNotifier writes text to W.
type ConsoleNotifier struct {
	W io.Writer
}

// NewConsoleNotifier creates a notifier writing to w.
func NewConsoleNotifier(w io.Writer) *ConsoleNotifier {
	return &ConsoleNotifier{W: w}
}

func (c *ConsoleNotifier) Name() string { return "console" }

func (c *ConsoleNotifier) Send(_ context.Context, text string) error {
	if _, err := fmt.Fprintln(c.W, text); err != nil {
		return fmt.Errorf("write console: %w", err)
	}
	return nil
}
