package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/gwyndows/bidcalc/internal/catalog"
	"github.com/gwyndows/bidcalc/internal/clipboard"
	"github.com/gwyndows/bidcalc/internal/config"
	"github.com/gwyndows/bidcalc/internal/conversation"
	"github.com/gwyndows/bidcalc/internal/display"
	"github.com/gwyndows/bidcalc/internal/engine"
	"github.com/gwyndows/bidcalc/internal/logger"
)

// settings are the resolved runtime options: config file and environment
// first, then any flags the user passed.
type settings struct {
	logFile   string
	logLevel  logger.Level
	clipboard clipboard.Mode
}

var (
	flagVerbose   bool
	flagQuiet     bool
	flagLogFile   string
	flagClipboard string

	cfg      settings
	log      *logger.Logger
	logClose func() error
)

var rootCmd = &cobra.Command{
	Use:          "bidcalc",
	Short:        "Window cleaning bid calculator",
	Long:         "Count panes, screens and gutter feet, watch the In/Out and Out Only totals update, and copy the bid text.",
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		s, err := resolveSettings(cmd)
		if err != nil {
			return err
		}
		cfg = s
		log, logClose = openLog(s)
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if log != nil {
			_ = log.Sync()
		}
		if logClose != nil {
			_ = logClose()
		}
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runInteractive(cmd.Context())
	},
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.BoolVar(&flagVerbose, "verbose", false, "enable verbose/debug logging")
	pf.BoolVar(&flagQuiet, "quiet", false, "disable all logging")
	pf.StringVar(&flagLogFile, "log-file", config.DefaultLogFile, "file to write logs to (use \"stderr\" to log to console)")
	pf.StringVar(&flagClipboard, "clipboard", config.DefaultClipboard, "clipboard backend: auto, system, osc52 or off")
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func resolveSettings(cmd *cobra.Command) (settings, error) {
	c, err := config.Load()
	if err != nil {
		return settings{}, fmt.Errorf("loading config: %w", err)
	}

	flags := cmd.Flags()
	if flags.Changed("log-file") {
		c.LogFile = flagLogFile
	}
	if flags.Changed("clipboard") {
		c.Clipboard = flagClipboard
	}

	mode, err := clipboard.ParseMode(c.Clipboard)
	if err != nil {
		return settings{}, err
	}

	level := logger.ParseLevel(c.LogLevel)
	if flagVerbose {
		level = logger.LevelVerbose
	}
	if flagQuiet {
		level = logger.LevelOff
	}

	return settings{logFile: c.LogFile, logLevel: level, clipboard: mode}, nil
}

// openLog directs logs to a file by default so the terminal UI stays clean.
func openLog(s settings) (*logger.Logger, func() error) {
	var out io.Writer = os.Stderr
	closeFn := func() error { return nil }

	if s.logFile != "" && s.logFile != "stderr" {
		if dir := filepath.Dir(s.logFile); dir != "" && dir != "." {
			_ = os.MkdirAll(dir, 0o755)
		}
		f, err := os.OpenFile(s.logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "warning: could not open log file %s: %v (falling back to stderr)\n", s.logFile, err)
		} else {
			out = f
			closeFn = f.Close
		}
	}

	return logger.New(s.logLevel, out), closeFn
}

func runInteractive(parent context.Context) error {
	if parent == nil {
		parent = context.Background()
	}
	ctx, cancel := context.WithCancel(parent)
	defer cancel()

	cat := catalog.NewMemory(log)
	eng := engine.New(cat, log)
	ui := display.NewUI()
	textNotifier := conversation.NewCLINotifier(log, ui.Printf)

	app := &cliApp{
		engine:    eng,
		names:     cat,
		parser:    conversation.NewKeywordParser(log),
		notifier:  conversation.MultiNotifier{ui, textNotifier},
		clipboard: clipboard.New(cfg.clipboard, os.Stdout, log),
		log:       log.With("session", eng.ID()),
		out:       ui,
	}

	log.Info("session %s started (clipboard=%s)", eng.ID(), cfg.clipboard)

	fmt.Println(display.Banner())
	fmt.Println(display.BannerStyle.Render("  Type 'help' for commands, 'quit' to exit."))
	fmt.Println()

	// App logic runs beside the UI; the UI goroutine never touches the engine.
	go func() {
		ui.WaitReady()
		app.run(ctx, ui.InputChan())
		ui.Quit()
	}()

	// Ctrl+C ends the UI directly; stop the REPL with it.
	go func() {
		<-ui.QuitChan()
		cancel()
	}()

	// Bubble Tea owns the terminal until quit.
	if err := ui.Run(); err != nil {
		log.Error("display: %v", err)
		return err
	}
	log.Info("session %s ended", eng.ID())
	return nil
}
