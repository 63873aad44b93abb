package main

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/gwyndows/bidcalc/internal/domain"
	"github.com/gwyndows/bidcalc/internal/engine"
	"github.com/gwyndows/bidcalc/internal/logger"
	"github.com/gwyndows/bidcalc/internal/quote"
)

// Toast texts.
const (
	toastTitleOK   = "Success"
	toastTitleFail = "Error"
	toastCopied    = "Bid copied to clipboard"
	toastCopyFail  = "Could not copy to clipboard"
)

// output is the part of display.UI the REPL writes to.
type output interface {
	Println(a ...interface{})
	PrintHeading(text string)
	PrintLine(text string)
	PrintHint(text string)
	PrintUrgent(text string)
	SetTotals(t domain.Totals)
}

// itemResolver maps a typed item name to an id.
type itemResolver interface {
	Resolve(name string) (domain.ItemID, error)
}

type cliApp struct {
	engine    *engine.Engine
	names     itemResolver
	parser    domain.CommandParser
	notifier  domain.Notifier
	clipboard domain.Clipboard
	log       *logger.Logger
	out       output
}

// run reads lines until the channel closes, the context ends or the user
// quits. It is the only goroutine that touches the engine.
func (a *cliApp) run(ctx context.Context, input <-chan string) {
	a.out.SetTotals(a.engine.Totals())

	for {
		var line string
		var ok bool

		select {
		case <-ctx.Done():
			return
		case line, ok = <-input:
			if !ok {
				return
			}
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		cmd, err := a.parser.Parse(ctx, line)
		if err != nil {
			a.log.Error("parsing input: %v", err)
			continue
		}

		a.log.Debug("command: %s (item=%q delta=%d)", cmd.Type, cmd.Item, cmd.Delta)
		if quit := a.handle(ctx, cmd); quit {
			return
		}
	}
}

// handle executes one command and reports whether the app should exit.
func (a *cliApp) handle(ctx context.Context, cmd *domain.Command) bool {
	switch cmd.Type {
	case domain.CommandAdjust, domain.CommandStepUp, domain.CommandStepDown,
		domain.CommandFastUp, domain.CommandFastDown, domain.CommandSet:
		a.change(cmd)
	case domain.CommandResetItem:
		a.resetItem(cmd.Item)
	case domain.CommandResetAll:
		a.engine.ResetAll()
		a.out.PrintHint("All quantities cleared.")
		a.pushTotals()
	case domain.CommandShowQuote:
		a.showQuote()
	case domain.CommandCopy:
		a.copyBid(ctx)
	case domain.CommandTotals:
		a.showTotals()
	case domain.CommandList:
		a.showItems()
	case domain.CommandHelp:
		a.showHelp()
	case domain.CommandQuit:
		a.out.PrintHint("Bye.")
		return true
	default:
		a.out.PrintHint(fmt.Sprintf("Didn't catch %q. Type 'help' for commands.", cmd.Raw))
	}
	return false
}

// change applies any of the quantity-changing commands.
func (a *cliApp) change(cmd *domain.Command) {
	id, err := a.names.Resolve(cmd.Item)
	if err != nil {
		a.reportError(err)
		return
	}

	var n int
	switch cmd.Type {
	case domain.CommandAdjust:
		n, err = a.engine.Adjust(id, cmd.Delta)
	case domain.CommandStepUp:
		n, err = a.engine.Increment(id)
	case domain.CommandStepDown:
		n, err = a.engine.Decrement(id)
	case domain.CommandFastUp:
		n, err = a.engine.FastAdjust(id, true)
	case domain.CommandFastDown:
		n, err = a.engine.FastAdjust(id, false)
	case domain.CommandSet:
		n, err = a.engine.Set(id, cmd.Delta)
	}
	if err != nil {
		a.reportError(err)
		return
	}

	a.printQuantity(id, n)
	a.pushTotals()
}

func (a *cliApp) resetItem(name string) {
	id, err := a.names.Resolve(name)
	if err != nil {
		a.reportError(err)
		return
	}
	if err := a.engine.ResetItem(id); err != nil {
		a.reportError(err)
		return
	}
	a.printQuantity(id, 0)
	a.pushTotals()
}

func (a *cliApp) printQuantity(id domain.ItemID, n int) {
	it, err := a.engine.Catalog().Item(id)
	if err != nil {
		a.reportError(err)
		return
	}
	l := quote.Line{ID: id, Label: it.Label, Quantity: n, Unit: it.Category.Unit()}
	a.out.PrintLine(l.String())
}

func (a *cliApp) pushTotals() {
	a.out.SetTotals(a.engine.Totals())
}

func (a *cliApp) reportError(err error) {
	switch {
	case errors.Is(err, domain.ErrUnknownItem):
		a.out.PrintUrgent(fmt.Sprintf("%v. Type 'list' to see item names.", err))
	case errors.Is(err, domain.ErrNoFastAdjust):
		a.out.PrintUrgent("Fast adjust (++/--) is only available for XS panes.")
	case errors.Is(err, domain.ErrNegativeQuantity):
		a.out.PrintUrgent("Quantities cannot be negative.")
	default:
		a.log.Error("%v", err)
		a.out.PrintUrgent(fmt.Sprintf("Error: %v", err))
	}
}

func (a *cliApp) showQuote() {
	text := a.engine.Quote()
	if text == "" {
		a.out.PrintHint("Nothing on the bid yet.")
		return
	}
	for _, line := range strings.Split(strings.TrimSuffix(text, "\n"), "\n") {
		a.out.PrintLine(line)
	}
}

// copyBid copies the current bid text, empty or not, and toasts the result.
func (a *cliApp) copyBid(ctx context.Context) {
	text := a.engine.Quote()
	if err := a.clipboard.Copy(ctx, text); err != nil {
		a.log.Warn("copy failed: %v", err)
		_ = a.notifier.NotifyUrgent(ctx, toastTitleFail, toastCopyFail)
		return
	}
	a.log.Info("bid copied (%d bytes)", len(text))
	_ = a.notifier.Notify(ctx, toastTitleOK, toastCopied)
}

func (a *cliApp) showTotals() {
	t := a.engine.Totals()
	a.out.PrintLine(quote.Summary{Label: "In/Out", Amount: t.InOut}.String())
	a.out.PrintLine(quote.Summary{Label: "Out Only", Amount: t.OutOnly}.String())
	a.out.PrintLine(quote.Summary{Label: "Gutter Cleaning", Amount: t.Gutters}.String())
}

func (a *cliApp) showItems() {
	cat := a.engine.Catalog()
	qty := a.engine.Quantities()

	items := cat.Items()
	for _, sec := range cat.Sections() {
		a.out.Println("")
		a.out.PrintHeading(sec.String())
		for _, it := range items {
			if it.Section != sec {
				continue
			}
			price := quote.FormatUSD(it.UnitPrice)
			if unit := it.Category.Unit(); unit != "" {
				price += "/" + unit
			}
			a.out.PrintLine(fmt.Sprintf("%-38s %3d  %s", it.Label, qty[it.ID], price))

			hint := it.Title
			if it.Description != "" {
				hint += ", " + it.Description
			}
			if len(it.Aliases) > 0 {
				hint += " [" + strings.Join(it.Aliases, ", ") + "]"
			}
			a.out.PrintHint("  " + hint)
		}
	}
}

func (a *cliApp) showHelp() {
	a.out.PrintHeading("Commands")
	a.out.PrintLine("+ ITEM / ITEM +       add one (gutters: 10 ft)")
	a.out.PrintLine("- ITEM / ITEM -       remove one (never below zero)")
	a.out.PrintLine("++ ITEM / -- ITEM     add or remove 10 (XS panes only)")
	a.out.PrintLine("ITEM +N / ITEM -N     adjust by N")
	a.out.PrintLine("set ITEM N / ITEM = N set a quantity")
	a.out.PrintLine("reset ITEM            clear one item")
	a.out.PrintLine("reset / clear         clear everything")
	a.out.PrintLine("quote                 show the bid text")
	a.out.PrintLine("copy                  copy the bid to the clipboard")
	a.out.PrintLine("totals                show In/Out, Out Only and Gutters")
	a.out.PrintLine("list                  show every item and its names")
	a.out.PrintLine("quit                  exit")
	a.out.PrintHint("Items match by label, id or short name, e.g. 'xl upper', 'xlu', 'g1'.")
}
