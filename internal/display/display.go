// Package display provides the terminal UI using Bubble Tea.
//
// The [UI] type manages a persistent totals bar, a transient toast line and
// an input prompt at the bottom of the terminal. All application output is
// printed above the rendered area via Program.Println / Printf, ensuring
// concurrent writes never garble the display.
package display

import (
	"context"
	"fmt"
	"strings"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"

	"github.com/gwyndows/bidcalc/internal/domain"
	"github.com/gwyndows/bidcalc/internal/quote"
)

// ToastDuration is how long a toast stays visible.
const ToastDuration = 3 * time.Second

// ── Styles ───────────────────────────────────────────────────────

var (
	barBg = lipgloss.NewStyle().
		Background(lipgloss.Color("#27272a")).
		Foreground(lipgloss.Color("#a1a1aa"))

	amountStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#fde68a")).
			Bold(true)

	zeroAmountStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#71717a"))

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#a1a1aa"))

	sepStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#52525b"))

	promptStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#94a3b8"))

	toastOKStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#14532d")).
			Background(lipgloss.Color("#bbf7d0")).
			Padding(0, 1)

	toastFailStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#7f1d1d")).
			Background(lipgloss.Color("#fecaca")).
			Padding(0, 1)

	// ── Output styles (soft palette) ──

	// BannerStyle is muted slate for the startup banner.
	BannerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#94a3b8"))

	// Section headings, soft mint.
	headingStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#bbf7d0"))

	// Primary text, light zinc.
	primaryStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#d4d4d8"))

	// Secondary text for hints and metadata.
	secondaryStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#71717a"))

	// Errors, soft coral.
	urgentOutputStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#fca5a5"))

	userInputEchoStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#a1a1aa"))
)

// ── UI ───────────────────────────────────────────────────────────

// Compile-time interface check.
var _ domain.Notifier = (*UI)(nil)

// UI manages the terminal through Bubble Tea.
//
// Call [NewUI] then [UI.Run] (blocking). Other goroutines may safely call
// [UI.Println], [UI.SetTotals], [UI.Toast] and read from [UI.InputChan]
// at any time after [UI.WaitReady] returns.
type UI struct {
	program *tea.Program
	inputCh chan string
	readyCh chan struct{}
	quitCh  chan struct{}
	done    atomic.Bool
}

// NewUI creates the display. Call Run() to start.
func NewUI() *UI {
	return &UI{
		inputCh: make(chan string, 16),
		readyCh: make(chan struct{}),
		quitCh:  make(chan struct{}),
	}
}

// Println prints a line above the prompt. Thread-safe.
// If the program hasn't started yet, falls back to fmt.Println.
func (u *UI) Println(a ...interface{}) {
	if u.program != nil && !u.done.Load() {
		u.program.Println(a...)
	} else {
		fmt.Println(a...)
	}
}

// Printf prints formatted text above the prompt. Thread-safe.
func (u *UI) Printf(format string, a ...interface{}) {
	if u.program != nil && !u.done.Load() {
		u.program.Printf(format, a...)
	} else {
		fmt.Printf(format+"\n", a...)
	}
}

// InputChan returns completed user-input lines.
func (u *UI) InputChan() <-chan string { return u.inputCh }

// SetTotals replaces the totals shown in the bar.
func (u *UI) SetTotals(t domain.Totals) {
	u.send(totalsMsg(t))
}

// Toast shows a short-lived message under the totals bar.
func (u *UI) Toast(title, message string, failed bool) {
	u.send(toastMsg{text: title + ": " + message, failed: failed, at: time.Now()})
}

// Notify shows a success toast.
func (u *UI) Notify(ctx context.Context, title, message string) error {
	u.Toast(title, message, false)
	return nil
}

// NotifyUrgent shows a failure toast.
func (u *UI) NotifyUrgent(ctx context.Context, title, message string) error {
	u.Toast(title, message, true)
	return nil
}

func (u *UI) send(msg tea.Msg) {
	if u.program != nil && !u.done.Load() {
		u.program.Send(msg)
	}
}

// ── Styled print helpers ─────────────────────────────────────────

// PrintHeading prints a section heading like "Upper Windows".
func (u *UI) PrintHeading(text string) {
	u.Println(headingStyle.Render("  " + text))
}

// PrintLine prints a primary output line.
func (u *UI) PrintLine(text string) {
	u.Println(primaryStyle.Render("  " + text))
}

// PrintHint prints a secondary/dimmed line.
func (u *UI) PrintHint(text string) {
	u.Println(secondaryStyle.Render("  " + text))
}

// PrintUrgent prints an error line.
func (u *UI) PrintUrgent(text string) {
	u.Println(urgentOutputStyle.Render("  " + text))
}

// PrintUserInput echoes the user's typed command into the scrollback.
func (u *UI) PrintUserInput(text string) {
	u.Println(promptStyle.Render("bid") + secondaryStyle.Render("> ") + userInputEchoStyle.Render(text))
}

// WaitReady blocks until the Bubble Tea event loop is running.
func (u *UI) WaitReady() { <-u.readyCh }

// Quit tells Bubble Tea to exit.
func (u *UI) Quit() {
	if u.program != nil {
		u.program.Quit()
	}
}

// QuitChan is closed when Run returns, including after Ctrl+C.
func (u *UI) QuitChan() <-chan struct{} { return u.quitCh }

// Run starts the Bubble Tea event loop. Blocks until quit.
func (u *UI) Run(opts ...tea.ProgramOption) error {
	ti := textinput.New()
	// Plain-text prompt: styled prompts add ANSI bytes that break the
	// textinput width math.
	ti.Prompt = "bid> "
	ti.PromptStyle = promptStyle
	ti.TextStyle = userInputEchoStyle
	ti.Cursor.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("#94a3b8"))
	ti.Placeholder = "+ xl upper, g1 +20, copy, help"
	ti.Focus()
	ti.CharLimit = 200
	ti.Width = 60 // updated on first WindowSizeMsg

	m := newModel(ti, u.inputCh, u.readyCh, func(v string) {
		u.PrintUserInput(v)
	})

	u.program = tea.NewProgram(m, opts...)
	_, err := u.program.Run()
	u.done.Store(true)
	close(u.quitCh)
	return err
}

// ── Bubble Tea model ─────────────────────────────────────────────

type model struct {
	input   textinput.Model
	inputCh chan<- string
	readyCh chan struct{}
	echoFn  func(string) // prints user input into scrollback
	totals  domain.Totals
	toast   *toastMsg
	width   int
	now     func() time.Time
}

func newModel(ti textinput.Model, inputCh chan<- string, readyCh chan struct{}, echoFn func(string)) model {
	return model{
		input:   ti,
		inputCh: inputCh,
		readyCh: readyCh,
		echoFn:  echoFn,
		now:     time.Now,
	}
}

// Messages.
type (
	tickMsg   time.Time
	totalsMsg domain.Totals
	toastMsg  struct {
		text   string
		failed bool
		at     time.Time
	}
)

func (m model) Init() tea.Cmd {
	return tea.Batch(
		textinput.Blink,
		tickCmd(),
		signalReady(m.readyCh),
		tea.SetWindowTitle("Bid Calculator"),
	)
}

func signalReady(ch chan struct{}) tea.Cmd {
	return func() tea.Msg {
		close(ch)
		return nil
	}
}

func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC:
			return m, tea.Quit
		case tea.KeyEnter:
			v := m.input.Value()
			m.input.Reset()
			if strings.TrimSpace(v) != "" {
				m.inputCh <- v
				// Print the echo from a Cmd so Update never blocks on
				// program messages.
				echoFn := m.echoFn
				return m, func() tea.Msg {
					echoFn(v)
					return nil
				}
			}
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		const promptLen = len("bid> ")
		if msg.Width > promptLen {
			m.input.Width = msg.Width - promptLen
		}
		return m, nil

	case totalsMsg:
		m.totals = domain.Totals(msg)
		return m, tea.SetWindowTitle(m.titleStr())

	case toastMsg:
		t := msg
		m.toast = &t
		return m, nil

	case tickMsg:
		if m.toast != nil && m.now().Sub(m.toast.at) >= ToastDuration {
			m.toast = nil
		}
		return m, tickCmd()
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m model) titleStr() string {
	return fmt.Sprintf("Bid Calculator | In/Out %s | Out Only %s | Gutters %s",
		quote.FormatUSD(m.totals.InOut),
		quote.FormatUSD(m.totals.OutOnly),
		quote.FormatUSD(m.totals.Gutters))
}

func (m model) View() string {
	var b strings.Builder

	b.WriteString(m.renderBar())
	b.WriteByte('\n')

	if m.toast != nil {
		style := toastOKStyle
		if m.toast.failed {
			style = toastFailStyle
		}
		b.WriteString(style.Render(m.toast.text))
	}
	b.WriteByte('\n')

	b.WriteString(m.input.View())
	return b.String()
}

func (m model) renderBar() string {
	parts := []string{
		renderAmount("In/Out", m.totals.InOut),
		renderAmount("Out Only", m.totals.OutOnly),
		renderAmount("Gutters", m.totals.Gutters),
	}
	content := " " + strings.Join(parts, sepStyle.Render("  │  ")) + " "

	w := m.width
	if w <= 0 {
		w = 80
	}
	return barBg.Width(w).Render(content)
}

func renderAmount(label string, amount decimal.Decimal) string {
	style := amountStyle
	if amount.IsZero() {
		style = zeroAmountStyle
	}
	return labelStyle.Render(label+": ") + style.Render(quote.FormatUSD(amount))
}
