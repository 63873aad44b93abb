// Package conversation provides command parsing and user notification implementations.
package conversation

import (
	"context"
	"regexp"
	"strconv"
	"strings"

	"github.com/gwyndows/bidcalc/internal/domain"
	"github.com/gwyndows/bidcalc/internal/logger"
)

// Compile-time interface check.
var _ domain.CommandParser = (*KeywordParser)(nil)

// KeywordParser matches user input to commands using keywords and simple
// patterns. It does not know the catalog; item phrases are passed through
// for the caller to resolve.
type KeywordParser struct {
	log      *logger.Logger
	patterns []patternRule
}

type patternRule struct {
	regex   *regexp.Regexp
	command domain.CommandType
}

var (
	// "++ xl upper", "- g1"
	prefixStep = regexp.MustCompile(`^(\+\+|--|\+|-)\s*([^\d+\-=].*)$`)
	// "xl upper ++", "g1 -"
	suffixStep = regexp.MustCompile(`^(.*[^\s+\-=])\s*(\+\+|--|\+|-)$`)
	// "xl upper +3", "g1 -20"
	adjustBy = regexp.MustCompile(`^(.*[^\s+\-=])\s+([+-]\d+)$`)
	// "set xl upper 4", "xl upper = 4"
	setTo    = regexp.MustCompile(`(?i)^set\s+(.+?)\s+(?:to\s+)?(\d+)$`)
	setEqual = regexp.MustCompile(`^(.+?)\s*=\s*(\d+)$`)
	// "reset xl upper"
	resetItem = regexp.MustCompile(`(?i)^(?:reset|zero)\s+(.+)$`)
)

// NewKeywordParser creates a keyword-based command parser.
func NewKeywordParser(log *logger.Logger) *KeywordParser {
	p := &KeywordParser{log: log}
	p.patterns = []patternRule{
		{regexp.MustCompile(`(?i)^(reset|reset all|clear|clear all|start over)$`), domain.CommandResetAll},
		{regexp.MustCompile(`(?i)^(quote|bid|show|show bid|preview)$`), domain.CommandShowQuote},
		{regexp.MustCompile(`(?i)^(copy|copy bid|cp|c)$`), domain.CommandCopy},
		{regexp.MustCompile(`(?i)^(totals?|t|sum)$`), domain.CommandTotals},
		{regexp.MustCompile(`(?i)^(list|ls|items|catalog|l)$`), domain.CommandList},
		{regexp.MustCompile(`(?i)^(help|h|\?)$`), domain.CommandHelp},
		{regexp.MustCompile(`(?i)^(quit|exit|q|bye)$`), domain.CommandQuit},
	}
	return p
}

// Parse converts user input into a command.
func (p *KeywordParser) Parse(ctx context.Context, input string) (*domain.Command, error) {
	trimmed := strings.Join(strings.Fields(input), " ")
	if trimmed == "" {
		return &domain.Command{Type: domain.CommandUnknown}, nil
	}

	p.log.Debug("parsing input: %q", trimmed)

	for _, rule := range p.patterns {
		if rule.regex.MatchString(trimmed) {
			p.log.Debug("matched command: %s", rule.command)
			return &domain.Command{Type: rule.command, Raw: trimmed}, nil
		}
	}

	if m := resetItem.FindStringSubmatch(trimmed); m != nil {
		return &domain.Command{Type: domain.CommandResetItem, Item: m[1], Raw: trimmed}, nil
	}

	if m := setTo.FindStringSubmatch(trimmed); m != nil {
		return p.number(domain.CommandSet, m[1], m[2], trimmed), nil
	}
	if m := setEqual.FindStringSubmatch(trimmed); m != nil {
		return p.number(domain.CommandSet, m[1], m[2], trimmed), nil
	}

	if m := adjustBy.FindStringSubmatch(trimmed); m != nil {
		return p.number(domain.CommandAdjust, m[1], m[2], trimmed), nil
	}

	if m := prefixStep.FindStringSubmatch(trimmed); m != nil {
		return &domain.Command{Type: stepCommand(m[1]), Item: strings.TrimSpace(m[2]), Raw: trimmed}, nil
	}
	if m := suffixStep.FindStringSubmatch(trimmed); m != nil {
		return &domain.Command{Type: stepCommand(m[2]), Item: strings.TrimSpace(m[1]), Raw: trimmed}, nil
	}

	p.log.Debug("no match, returning unknown command")
	return &domain.Command{Type: domain.CommandUnknown, Raw: trimmed}, nil
}

func (p *KeywordParser) number(t domain.CommandType, item, num, raw string) *domain.Command {
	n, err := strconv.Atoi(num)
	if err != nil {
		// Only reachable on overflow.
		p.log.Debug("bad number %q: %v", num, err)
		return &domain.Command{Type: domain.CommandUnknown, Raw: raw}
	}
	return &domain.Command{Type: t, Item: strings.TrimSpace(item), Delta: n, Raw: raw}
}

func stepCommand(op string) domain.CommandType {
	switch op {
	case "++":
		return domain.CommandFastUp
	case "--":
		return domain.CommandFastDown
	case "+":
		return domain.CommandStepUp
	default:
		return domain.CommandStepDown
	}
}
