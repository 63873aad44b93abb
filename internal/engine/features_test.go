package engine_test

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/cucumber/godog"
	"github.com/shopspring/decimal"

	"github.com/gwyndows/bidcalc/internal/catalog"
	"github.com/gwyndows/bidcalc/internal/domain"
	"github.com/gwyndows/bidcalc/internal/engine"
	"github.com/gwyndows/bidcalc/internal/logger"
)

type quoteTestContext struct {
	eng *engine.Engine
	err error
}

func (c *quoteTestContext) reset() {
	c.eng = nil
	c.err = nil
}

func (c *quoteTestContext) aNewQuotingSession() error {
	log := logger.New(logger.LevelOff, nil)
	c.eng = engine.New(catalog.NewMemory(log), log)
	return nil
}

func (c *quoteTestContext) iAdjustBy(id string, delta int) error {
	_, c.err = c.eng.Adjust(domain.ItemID(id), delta)
	return nil
}

func (c *quoteTestContext) iReset(id string) error {
	c.err = c.eng.ResetItem(domain.ItemID(id))
	return nil
}

func (c *quoteTestContext) iResetEverything() error {
	c.eng.ResetAll()
	return nil
}

func (c *quoteTestContext) theQuantityOfIs(id string, want int) error {
	got, err := c.eng.Quantity(domain.ItemID(id))
	if err != nil {
		return err
	}
	if got != want {
		return fmt.Errorf("expected quantity %d, got %d", want, got)
	}
	return nil
}

func expectAmount(name string, got decimal.Decimal, want string) error {
	w, err := decimal.NewFromString(want)
	if err != nil {
		return err
	}
	if !got.Equal(w) {
		return fmt.Errorf("expected %s %s, got %s", name, w, got)
	}
	return nil
}

func (c *quoteTestContext) theWindowsSubtotalIs(want string) error {
	return expectAmount("windows subtotal", c.eng.Totals().Windows, want)
}

func (c *quoteTestContext) theInOutTotalIs(want string) error {
	return expectAmount("in/out", c.eng.Totals().InOut, want)
}

func (c *quoteTestContext) theOutOnlyTotalIs(want string) error {
	return expectAmount("out only", c.eng.Totals().OutOnly, want)
}

func (c *quoteTestContext) theGuttersTotalIs(want string) error {
	return expectAmount("gutters", c.eng.Totals().Gutters, want)
}

func (c *quoteTestContext) theBidContainsTheLine(line string) error {
	bid := c.eng.Quote()
	for _, l := range strings.Split(bid, "\n") {
		if l == line {
			return nil
		}
	}
	return fmt.Errorf("line %q not found in bid:\n%s", line, bid)
}

func (c *quoteTestContext) theBidIsEmpty() error {
	if bid := c.eng.Quote(); bid != "" {
		return fmt.Errorf("expected empty bid, got %q", bid)
	}
	return nil
}

func (c *quoteTestContext) theBidHasLines(want int) error {
	bid := c.eng.Quote()
	got := len(strings.Split(strings.TrimSuffix(bid, "\n"), "\n"))
	if got != want {
		return fmt.Errorf("expected %d lines, got %d:\n%s", want, got, bid)
	}
	return nil
}

func (c *quoteTestContext) theOperationFailsWithAnUnknownItemError() error {
	if !errors.Is(c.err, domain.ErrUnknownItem) {
		return fmt.Errorf("expected ErrUnknownItem, got %v", c.err)
	}
	return nil
}

func InitializeScenario(ctx *godog.ScenarioContext) {
	tc := &quoteTestContext{}

	ctx.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		tc.reset()
		return ctx, nil
	})

	// Given steps
	ctx.Step(`^a new quoting session$`, tc.aNewQuotingSession)

	// When steps
	ctx.Step(`^I adjust "([^"]*)" by (-?\d+)$`, tc.iAdjustBy)
	ctx.Step(`^I reset "([^"]*)"$`, tc.iReset)
	ctx.Step(`^I reset everything$`, tc.iResetEverything)

	// Then steps
	ctx.Step(`^the quantity of "([^"]*)" is (\d+)$`, tc.theQuantityOfIs)
	ctx.Step(`^the windows subtotal is ([\d.]+)$`, tc.theWindowsSubtotalIs)
	ctx.Step(`^the in/out total is ([\d.]+)$`, tc.theInOutTotalIs)
	ctx.Step(`^the out only total is ([\d.]+)$`, tc.theOutOnlyTotalIs)
	ctx.Step(`^the gutters total is ([\d.]+)$`, tc.theGuttersTotalIs)
	ctx.Step(`^the bid contains the line "([^"]*)"$`, tc.theBidContainsTheLine)
	ctx.Step(`^the bid is empty$`, tc.theBidIsEmpty)
	ctx.Step(`^the bid has (\d+) lines$`, tc.theBidHasLines)
	ctx.Step(`^the operation fails with an unknown item error$`, tc.theOperationFailsWithAnUnknownItemError)
}

func TestFeatures(t *testing.T) {
	suite := godog.TestSuite{
		ScenarioInitializer: InitializeScenario,
		Options: &godog.Options{
			Format:   "pretty",
			Paths:    []string{"features/quote.feature"},
			TestingT: t,
			Strict:   true,
		},
	}

	if suite.Run() != 0 {
		t.Fatal("non-zero status returned, failed to run feature tests")
	}
}
