package clipboard

import "os"

// insideTmux reports whether OSC 52 needs the tmux passthrough wrapper.
func insideTmux() bool {
	return os.Getenv("TMUX") != ""
}
