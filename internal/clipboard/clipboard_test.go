package clipboard

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"strings"
	"testing"

	"github.com/gwyndows/bidcalc/internal/domain"
	"github.com/gwyndows/bidcalc/internal/logger"
)

func TestParseMode(t *testing.T) {
	tests := []struct {
		in      string
		want    Mode
		wantErr bool
	}{
		{"", ModeAuto, false},
		{"auto", ModeAuto, false},
		{"SYSTEM", ModeSystem, false},
		{" osc52 ", ModeOSC52, false},
		{"off", ModeOff, false},
		{"carrier-pigeon", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseMode(tt.in)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Fatalf("expected %s, got %s", tt.want, got)
			}
		})
	}
}

func TestOSC52Copy(t *testing.T) {
	t.Setenv("TMUX", "")
	log := logger.New(logger.LevelOff, nil)

	var buf bytes.Buffer
	cb := NewOSC52(&buf, log)

	bid := "XL Upper: 2\n\nIn/Out: $47.28\n"
	if err := cb.Copy(context.Background(), bid); err != nil {
		t.Fatalf("copy: %v", err)
	}

	out := buf.String()
	if !strings.HasPrefix(out, "\x1b]52;") {
		t.Fatalf("expected OSC 52 prefix, got %q", out)
	}
	if !strings.Contains(out, base64.StdEncoding.EncodeToString([]byte(bid))) {
		t.Fatalf("payload missing from %q", out)
	}
}

func TestSystemCopyError(t *testing.T) {
	log := logger.New(logger.LevelOff, nil)
	cb := NewSystem(log)

	var got string
	cb.write = func(s string) error {
		got = s
		return errors.New("xclip exploded")
	}

	err := cb.Copy(context.Background(), "bid")
	if !errors.Is(err, domain.ErrClipboardUnavailable) {
		t.Fatalf("expected ErrClipboardUnavailable, got %v", err)
	}
	// On hosts without a clipboard utility the writer is never reached.
	if got != "" && got != "bid" {
		t.Fatalf("unexpected payload %q", got)
	}
}

func TestNoOpCopy(t *testing.T) {
	log := logger.New(logger.LevelOff, nil)
	if err := NewNoOp(log).Copy(context.Background(), "bid"); !errors.Is(err, domain.ErrClipboardUnavailable) {
		t.Fatalf("expected ErrClipboardUnavailable, got %v", err)
	}
}

func TestNewSelectsBackend(t *testing.T) {
	log := logger.New(logger.LevelOff, nil)
	var buf bytes.Buffer

	if _, ok := New(ModeOSC52, &buf, log).(*OSC52); !ok {
		t.Fatal("expected *OSC52 for osc52 mode")
	}
	if _, ok := New(ModeOff, &buf, log).(*NoOp); !ok {
		t.Fatal("expected *NoOp for off mode")
	}
	if _, ok := New(ModeSystem, &buf, log).(*System); !ok {
		t.Fatal("expected *System for system mode")
	}
}
