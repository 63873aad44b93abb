package conversation

import (
	"context"
	"fmt"

	"github.com/gwyndows/bidcalc/internal/domain"
	"github.com/gwyndows/bidcalc/internal/logger"
)

// Compile-time interface check.
var _ domain.Notifier = (*CLINotifier)(nil)

// ANSI escape codes for terminal formatting.
const (
	reset = "\033[0m"
	bold  = "\033[1m"
	red   = "\033[31m"
	green = "\033[32m"
)

// PrintFunc is a function used to print formatted output.
// Matches the signature of both fmt.Printf and display.UI.Printf.
type PrintFunc func(format string, a ...interface{})

// CLINotifier writes notifications to stdout with ANSI formatting.
type CLINotifier struct {
	log     *logger.Logger
	printFn PrintFunc
}

// NewCLINotifier creates a stdout-based notifier.
// If printFn is nil, fmt.Printf is used.
func NewCLINotifier(log *logger.Logger, printFn PrintFunc) *CLINotifier {
	if printFn == nil {
		printFn = func(format string, a ...interface{}) {
			fmt.Printf(format+"\n", a...)
		}
	}
	return &CLINotifier{log: log, printFn: printFn}
}

// Notify prints a normal notification, e.g. "Success: Bid copied to clipboard".
func (n *CLINotifier) Notify(ctx context.Context, title, message string) error {
	n.log.Debug("notify: %s: %s", title, message)
	n.printFn("%s%s%s:%s %s", green, bold, title, reset, message)
	return nil
}

// NotifyUrgent prints a failure notification in bold red.
func (n *CLINotifier) NotifyUrgent(ctx context.Context, title, message string) error {
	n.log.Debug("notify-urgent: %s: %s", title, message)
	n.printFn("%s%s%s: %s%s", red, bold, title, message, reset)
	return nil
}

// MultiNotifier fans a notification out to several notifiers. The first
// error is returned after all have been tried.
type MultiNotifier []domain.Notifier

// Notify forwards to every notifier.
func (m MultiNotifier) Notify(ctx context.Context, title, message string) error {
	var first error
	for _, n := range m {
		if err := n.Notify(ctx, title, message); err != nil && first == nil {
			first = err
		}
	}
	return first
}

// NotifyUrgent forwards to every notifier.
func (m MultiNotifier) NotifyUrgent(ctx context.Context, title, message string) error {
	var first error
	for _, n := range m {
		if err := n.NotifyUrgent(ctx, title, message); err != nil && first == nil {
			first = err
		}
	}
	return first
}
