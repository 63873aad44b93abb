package domain

// CommandType classifies what the user wants to do.
type CommandType int

const (
	CommandUnknown CommandType = iota
	CommandAdjust              // add Delta to Item
	CommandStepUp              // +StepIncrement
	CommandStepDown            // -StepIncrement
	CommandFastUp              // +10
	CommandFastDown            // -10
	CommandSet                 // set Item to Delta
	CommandResetItem
	CommandResetAll
	CommandShowQuote
	CommandCopy
	CommandTotals
	CommandList
	CommandHelp
	CommandQuit
)

// String returns a human-readable command type.
func (c CommandType) String() string {
	switch c {
	case CommandAdjust:
		return "adjust"
	case CommandStepUp:
		return "step_up"
	case CommandStepDown:
		return "step_down"
	case CommandFastUp:
		return "fast_up"
	case CommandFastDown:
		return "fast_down"
	case CommandSet:
		return "set"
	case CommandResetItem:
		return "reset_item"
	case CommandResetAll:
		return "reset_all"
	case CommandShowQuote:
		return "show_quote"
	case CommandCopy:
		return "copy"
	case CommandTotals:
		return "totals"
	case CommandList:
		return "list"
	case CommandHelp:
		return "help"
	case CommandQuit:
		return "quit"
	default:
		return "unknown"
	}
}

// Command is a parsed user action.
type Command struct {
	Type CommandType
	// Item is the raw item phrase as typed; resolve it against the catalog.
	Item string
	// Delta is the signed change for CommandAdjust and the target quantity
	// for CommandSet.
	Delta int
	// Raw is the trimmed input line.
	Raw string
}
