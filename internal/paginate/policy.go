package paginate

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for policy validation.
var (
	ErrInvalidMode       = errors.New("invalid pagination mode")
	ErrInvalidBudget     = errors.New("invalid page budget")
	ErrInvalidBreakLevel = errors.New("invalid break level")
)

// Mode selects how pages are split.
type Mode string

const (
	// ModeHeight charges each node's estimated height against the budget.
	ModeHeight Mode = "height"
	// ModeHeading splits only at break-level headings.
	ModeHeading Mode = "heading"
)

// DefaultBudget is the budget for ten inches of body height, in CSS pixels.
// It stays under 96px per inch so estimates keep some slack.
const DefaultBudget = 900

// Policy configures Paginate.
type Policy struct {
	Mode        Mode
	Budget      float64
	Costs       CostTable
	BreakLevels []int // heading levels that start a new page
}

// DefaultPolicy returns height-mode pagination breaking before h2.
func DefaultPolicy() Policy {
	return Policy{
		Mode:        ModeHeight,
		Budget:      DefaultBudget,
		Costs:       DefaultCosts(),
		BreakLevels: []int{2},
	}
}

// ParseMode converts a user-supplied mode name.
func ParseMode(s string) (Mode, error) {
	switch Mode(strings.ToLower(strings.TrimSpace(s))) {
	case "", ModeHeight:
		return ModeHeight, nil
	case ModeHeading:
		return ModeHeading, nil
	}
	return "", fmt.Errorf("%w: %q (must be %q or %q)", ErrInvalidMode, s, ModeHeight, ModeHeading)
}

// ParseBreakLevels converts names like "h1,h2" or "2" into heading levels.
func ParseBreakLevels(s string) ([]int, error) {
	var levels []int
	for _, part := range strings.Split(s, ",") {
		part = strings.ToLower(strings.TrimSpace(part))
		if part == "" {
			continue
		}
		part = strings.TrimPrefix(part, "h")
		if len(part) != 1 || part[0] < '1' || part[0] > '6' {
			return nil, fmt.Errorf("%w: %q", ErrInvalidBreakLevel, s)
		}
		levels = append(levels, int(part[0]-'0'))
	}
	return levels, nil
}

// Validate checks p. Zero values are accepted and mean defaults.
func (p Policy) Validate() error {
	switch p.Mode {
	case "", ModeHeight, ModeHeading:
	default:
		return fmt.Errorf("%w: %q", ErrInvalidMode, p.Mode)
	}
	if p.Budget < 0 {
		return fmt.Errorf("%w: %.0f", ErrInvalidBudget, p.Budget)
	}
	for _, l := range p.BreakLevels {
		if l < 1 || l > 6 {
			return fmt.Errorf("%w: %d", ErrInvalidBreakLevel, l)
		}
	}
	return nil
}

func (p Policy) withDefaults() Policy {
	if p.Mode == "" {
		p.Mode = ModeHeight
	}
	if p.Budget == 0 {
		p.Budget = DefaultBudget
	}
	p.Costs = p.Costs.Merge(DefaultCosts())
	if p.BreakLevels == nil {
		p.BreakLevels = []int{2}
	}
	return p
}

func (p Policy) breaksAt(n Node) bool {
	for _, l := range p.BreakLevels {
		if n.Level == l {
			return true
		}
	}
	return false
}

func (p Policy) estimate(n Node) float64 {
	if p.Mode == ModeHeading {
		return 0
	}
	return p.Costs.Estimate(n)
}
