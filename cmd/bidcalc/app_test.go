package main

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"testing"

	"github.com/gwyndows/bidcalc/internal/catalog"
	"github.com/gwyndows/bidcalc/internal/conversation"
	"github.com/gwyndows/bidcalc/internal/domain"
	"github.com/gwyndows/bidcalc/internal/engine"
	"github.com/gwyndows/bidcalc/internal/logger"
)

type recordingOutput struct {
	lines  []string
	urgent []string
	totals []domain.Totals
}

func (r *recordingOutput) Println(a ...interface{}) { r.lines = append(r.lines, fmt.Sprint(a...)) }
func (r *recordingOutput) PrintHeading(s string)    { r.lines = append(r.lines, s) }
func (r *recordingOutput) PrintLine(s string)       { r.lines = append(r.lines, s) }
func (r *recordingOutput) PrintHint(s string)       { r.lines = append(r.lines, s) }
func (r *recordingOutput) PrintUrgent(s string)     { r.urgent = append(r.urgent, s) }
func (r *recordingOutput) SetTotals(t domain.Totals) {
	r.totals = append(r.totals, t)
}

func (r *recordingOutput) has(sub string) bool {
	for _, l := range r.lines {
		if strings.Contains(l, sub) {
			return true
		}
	}
	return false
}

type fakeClipboard struct {
	text string
	err  error
}

func (f *fakeClipboard) Copy(ctx context.Context, text string) error {
	f.text = text
	return f.err
}

type recordingNotifier struct {
	ok, urgent []string
}

func (r *recordingNotifier) Notify(ctx context.Context, title, message string) error {
	r.ok = append(r.ok, message)
	return nil
}

func (r *recordingNotifier) NotifyUrgent(ctx context.Context, title, message string) error {
	r.urgent = append(r.urgent, message)
	return nil
}

func newTestApp() (*cliApp, *recordingOutput, *fakeClipboard, *recordingNotifier) {
	log := logger.New(logger.LevelOff, nil)
	cat := catalog.NewMemory(log)
	out := &recordingOutput{}
	cb := &fakeClipboard{}
	n := &recordingNotifier{}
	return &cliApp{
		engine:    engine.New(cat, log),
		names:     cat,
		parser:    conversation.NewKeywordParser(log),
		notifier:  n,
		clipboard: cb,
		log:       log,
		out:       out,
	}, out, cb, n
}

// feed runs the app over the given lines and waits for it to finish.
func feed(t *testing.T, a *cliApp, lines ...string) {
	t.Helper()
	ch := make(chan string, len(lines))
	for _, l := range lines {
		ch <- l
	}
	close(ch)
	a.run(context.Background(), ch)
}

func TestAppAdjustUpdatesTotals(t *testing.T) {
	a, out, _, _ := newTestApp()
	feed(t, a, "+ xl upper", "xlu +", "g1 +30")

	if got := a.engine.Quantities()["XL_UPPER_WINDOW"]; got != 2 {
		t.Fatalf("expected 2 XL upper, got %d", got)
	}
	if got := a.engine.Quantities()["FIRST_STORY_GUTTER"]; got != 30 {
		t.Fatalf("expected 30 ft of gutter, got %d", got)
	}

	// One push on start plus one per change.
	if len(out.totals) != 4 {
		t.Fatalf("expected 4 totals pushes, got %d", len(out.totals))
	}
	last := out.totals[len(out.totals)-1]
	if last.InOut.StringFixed(2) != "47.28" {
		t.Fatalf("expected In/Out 47.28, got %s", last.InOut.StringFixed(2))
	}
	if !out.has("Gutters (1st Story): 30 ft") {
		t.Fatalf("expected gutter echo, got %v", out.lines)
	}
}

func TestAppFloorsAtZero(t *testing.T) {
	a, out, _, _ := newTestApp()
	feed(t, a, "- solar", "solar -5")

	if got := a.engine.Quantities()["SOLAR_SCREEN"]; got != 0 {
		t.Fatalf("expected 0, got %d", got)
	}
	if len(out.urgent) != 0 {
		t.Fatalf("floor must not be an error, got %v", out.urgent)
	}
}

func TestAppHugeAdjustSaturates(t *testing.T) {
	a, out, _, _ := newTestApp()
	feed(t, a, "xlu +9223372036854775807", "+ xlu")

	if got := a.engine.Quantities()["XL_UPPER_WINDOW"]; got != math.MaxInt {
		t.Fatalf("expected %d, got %d", math.MaxInt, got)
	}
	if last := out.totals[len(out.totals)-1]; !last.InOut.IsPositive() {
		t.Fatalf("expected positive In/Out, got %s", last.InOut)
	}
}

func TestAppErrors(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"+ skylight", "Type 'list'"},
		{"++ xl upper", "only available for XS panes"},
		{"reset skylight", "Type 'list'"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			a, out, _, _ := newTestApp()
			feed(t, a, tt.input)
			if len(out.urgent) != 1 || !strings.Contains(out.urgent[0], tt.want) {
				t.Fatalf("expected urgent line containing %q, got %v", tt.want, out.urgent)
			}
		})
	}
}

func TestAppFastAndSet(t *testing.T) {
	a, _, _, _ := newTestApp()
	feed(t, a, "++ xsu", "++ xsu", "-- xsu", "set ml 7", "half = 3")

	q := a.engine.Quantities()
	if q["XS_UPPER_WINDOW"] != 10 {
		t.Fatalf("expected 10 XS upper, got %d", q["XS_UPPER_WINDOW"])
	}
	if q["M_LOWER_WINDOW"] != 7 {
		t.Fatalf("expected 7 M lower, got %d", q["M_LOWER_WINDOW"])
	}
	if q["EXTERIOR_HALF_SCREEN"] != 3 {
		t.Fatalf("expected 3 half screens, got %d", q["EXTERIOR_HALF_SCREEN"])
	}
}

func TestAppReset(t *testing.T) {
	a, out, _, _ := newTestApp()
	feed(t, a, "+ xlu", "+ lu", "reset xlu")

	q := a.engine.Quantities()
	if q["XL_UPPER_WINDOW"] != 0 || q["L_UPPER_WINDOW"] != 1 {
		t.Fatalf("unexpected quantities after reset item: %v", q)
	}

	feed(t, a, "reset all")
	if !a.engine.Totals().IsZero() {
		t.Fatal("expected zero totals after reset all")
	}
	if !out.totals[len(out.totals)-1].IsZero() {
		t.Fatal("expected zero totals pushed to the UI")
	}
}

func TestAppCopy(t *testing.T) {
	a, _, cb, n := newTestApp()
	feed(t, a, "+ xlu", "+ xlu", "copy")

	if !strings.Contains(cb.text, "XL Upper: 2") || !strings.Contains(cb.text, "Out Only: $31.68") {
		t.Fatalf("unexpected clipboard text %q", cb.text)
	}
	if len(n.ok) != 1 || n.ok[0] != toastCopied {
		t.Fatalf("expected success toast, got %v", n.ok)
	}
}

func TestAppCopyFailure(t *testing.T) {
	a, _, cb, n := newTestApp()
	cb.err = fmt.Errorf("%w: no display", domain.ErrClipboardUnavailable)
	feed(t, a, "copy")

	if len(n.urgent) != 1 || n.urgent[0] != toastCopyFail {
		t.Fatalf("expected failure toast, got %v", n.urgent)
	}
	if len(n.ok) != 0 {
		t.Fatalf("unexpected success toast %v", n.ok)
	}
}

func TestAppQuoteAndTotals(t *testing.T) {
	a, out, _, _ := newTestApp()
	feed(t, a, "quote")
	if !out.has("Nothing on the bid yet") {
		t.Fatalf("expected empty-bid hint, got %v", out.lines)
	}

	feed(t, a, "+ g2", "totals", "quote")
	for _, want := range []string{"In/Out: $0.00", "Gutter Cleaning: $20.00", "Gutters (2nd Story): 10 ft"} {
		if !out.has(want) {
			t.Fatalf("expected %q in %v", want, out.lines)
		}
	}
}

func TestAppListAndHelp(t *testing.T) {
	a, out, _, _ := newTestApp()
	feed(t, a, "list", "help")

	for _, want := range []string{"Upper Windows", "Screens", "Gutters", "$23.64", "$1.00/ft", "Commands"} {
		if !out.has(want) {
			t.Fatalf("expected %q in output", want)
		}
	}
}

func TestAppQuitStopsEarly(t *testing.T) {
	a, _, _, _ := newTestApp()
	feed(t, a, "quit", "+ xlu")

	if a.engine.Quantities()["XL_UPPER_WINDOW"] != 0 {
		t.Fatal("input after quit must be ignored")
	}
}

func TestAppUnknownInput(t *testing.T) {
	a, out, _, _ := newTestApp()
	feed(t, a, "make it shine")

	if !out.has("Didn't catch") {
		t.Fatalf("expected hint, got %v", out.lines)
	}
}

func TestAppStopsOnCancel(t *testing.T) {
	a, _, _, _ := newTestApp()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	done := make(chan struct{})
	go func() {
		a.run(ctx, make(chan string))
		close(done)
	}()
	<-done
}

func TestReportErrorFallsBack(t *testing.T) {
	a, out, _, _ := newTestApp()
	a.reportError(errors.New("disk on fire"))
	if len(out.urgent) != 1 || !strings.Contains(out.urgent[0], "disk on fire") {
		t.Fatalf("unexpected urgent output %v", out.urgent)
	}
}
