package main

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/gwyndows/bidcalc/internal/catalog"
	"github.com/gwyndows/bidcalc/internal/clipboard"
	"github.com/gwyndows/bidcalc/internal/conversation"
	"github.com/gwyndows/bidcalc/internal/engine"
)

var flagCopy bool

var quoteCmd = &cobra.Command{
	Use:   "quote ID=QTY...",
	Short: "Print the bid for the given quantities",
	Long: "Build a bid without the interactive UI. Each argument sets one item, " +
		"named by id, label or short name, e.g. 'bidcalc quote xlu=2 g1=30'.",
	Example: "  bidcalc quote XL_UPPER_WINDOW=2 solar=4 \"gutter 1=30\" --copy",
	RunE: func(cmd *cobra.Command, args []string) error {
		cat := catalog.NewMemory(log)
		text, err := buildQuote(engine.New(cat, log), cat, args)
		if err != nil {
			return err
		}

		fmt.Fprint(cmd.OutOrStdout(), text)

		if flagCopy {
			return copyOnce(cmd.Context(), text, cmd.OutOrStdout(), cmd.ErrOrStderr())
		}
		return nil
	},
}

func init() {
	quoteCmd.Flags().BoolVar(&flagCopy, "copy", false, "also copy the bid to the clipboard")
	rootCmd.AddCommand(quoteCmd)
}

// buildQuote applies each NAME=QTY assignment in order and returns the bid.
func buildQuote(eng *engine.Engine, names itemResolver, args []string) (string, error) {
	for _, arg := range args {
		name, value, ok := strings.Cut(arg, "=")
		if !ok {
			return "", fmt.Errorf("argument %q: want NAME=QTY", arg)
		}
		n, err := strconv.Atoi(strings.TrimSpace(value))
		if err != nil {
			return "", fmt.Errorf("argument %q: quantity is not a whole number", arg)
		}
		id, err := names.Resolve(name)
		if err != nil {
			return "", err
		}
		if _, err := eng.Set(id, n); err != nil {
			return "", err
		}
	}
	return eng.Quote(), nil
}

func copyOnce(ctx context.Context, text string, term, status io.Writer) error {
	if ctx == nil {
		ctx = context.Background()
	}
	cb := clipboard.New(cfg.clipboard, term, log)
	notifier := conversation.NewCLINotifier(log, func(format string, a ...interface{}) {
		fmt.Fprintf(status, format+"\n", a...)
	})

	if err := cb.Copy(ctx, text); err != nil {
		_ = notifier.NotifyUrgent(ctx, toastTitleFail, toastCopyFail)
		return err
	}
	return notifier.Notify(ctx, toastTitleOK, toastCopied)
}
