// Package clipboard provides implementations of domain.Clipboard: the
// system clipboard, the OSC 52 terminal escape, and a no-op.
package clipboard

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/atotto/clipboard"
	osc52 "github.com/aymanbagabas/go-osc52/v2"

	"github.com/gwyndows/bidcalc/internal/domain"
	"github.com/gwyndows/bidcalc/internal/logger"
)

// Mode selects the clipboard backend.
type Mode string

const (
	// ModeAuto uses the system clipboard when available and OSC 52 otherwise.
	ModeAuto   Mode = "auto"
	ModeSystem Mode = "system"
	ModeOSC52  Mode = "osc52"
	ModeOff    Mode = "off"
)

// ParseMode validates a mode string.
func ParseMode(s string) (Mode, error) {
	switch m := Mode(strings.ToLower(strings.TrimSpace(s))); m {
	case ModeAuto, ModeSystem, ModeOSC52, ModeOff:
		return m, nil
	case "":
		return ModeAuto, nil
	default:
		return "", fmt.Errorf("unknown clipboard mode %q (want auto, system, osc52 or off)", s)
	}
}

// New builds the clipboard for mode. term receives OSC 52 sequences and is
// usually the terminal's stdout.
func New(mode Mode, term io.Writer, log *logger.Logger) domain.Clipboard {
	switch mode {
	case ModeSystem:
		return NewSystem(log)
	case ModeOSC52:
		return NewOSC52(term, log)
	case ModeOff:
		return NewNoOp(log)
	default:
		if clipboard.Unsupported {
			log.Info("system clipboard unsupported, using OSC 52")
			return NewOSC52(term, log)
		}
		return NewSystem(log)
	}
}

// Compile-time interface checks.
var (
	_ domain.Clipboard = (*System)(nil)
	_ domain.Clipboard = (*OSC52)(nil)
	_ domain.Clipboard = (*NoOp)(nil)
)

// System writes to the OS clipboard (pbcopy, xclip/xsel/wl-copy, or the
// Windows API).
type System struct {
	log   *logger.Logger
	write func(string) error
}

// NewSystem creates a system clipboard writer.
func NewSystem(log *logger.Logger) *System {
	return &System{log: log, write: clipboard.WriteAll}
}

// Copy places text on the system clipboard.
func (s *System) Copy(ctx context.Context, text string) error {
	if clipboard.Unsupported {
		return fmt.Errorf("%w: no clipboard utility found", domain.ErrClipboardUnavailable)
	}
	if err := s.write(text); err != nil {
		s.log.Error("clipboard write failed: %v", err)
		return fmt.Errorf("%w: %v", domain.ErrClipboardUnavailable, err)
	}
	s.log.Debug("copied %d bytes to system clipboard", len(text))
	return nil
}

// OSC52 asks the terminal emulator to set the clipboard. Works over SSH and
// inside tmux when the terminal supports it.
type OSC52 struct {
	out io.Writer
	log *logger.Logger
}

// NewOSC52 creates an OSC 52 clipboard writing escape sequences to out.
func NewOSC52(out io.Writer, log *logger.Logger) *OSC52 {
	return &OSC52{out: out, log: log}
}

// Copy emits the OSC 52 sequence for text.
func (o *OSC52) Copy(ctx context.Context, text string) error {
	seq := osc52.New(text)
	if insideTmux() {
		seq = seq.Tmux()
	}
	if _, err := seq.WriteTo(o.out); err != nil {
		o.log.Error("osc52 write failed: %v", err)
		return fmt.Errorf("%w: %v", domain.ErrClipboardUnavailable, err)
	}
	o.log.Debug("sent %d bytes via osc52", len(text))
	return nil
}

// NoOp is a clipboard that refuses every copy. Used when copying is disabled.
type NoOp struct {
	log *logger.Logger
}

// NewNoOp creates a disabled clipboard.
func NewNoOp(log *logger.Logger) *NoOp {
	return &NoOp{log: log}
}

// Copy returns ErrClipboardUnavailable.
func (n *NoOp) Copy(ctx context.Context, text string) error {
	n.log.Debug("clipboard disabled: dropped %d bytes", len(text))
	return fmt.Errorf("%w: disabled", domain.ErrClipboardUnavailable)
}
