package envvars

import (
	"os"

	"github.com/mozilla-ai/mcp-get/internal/packages"
)

// Action is what the resolver does for a single declared variable.
type Action int

const (
	// Skip leaves the variable out of the result without asking.
	Skip Action = iota

	// AutoReuse takes the live value without asking.
	AutoReuse

	// PromptReuse asks whether the live value should be reused, falling back to entry.
	PromptReuse

	// PromptEntry asks the user to type a value.
	PromptEntry
)

// String implements fmt.Stringer.
func (a Action) String() string {
	switch a {
	case AutoReuse:
		return "auto-reuse"
	case PromptReuse:
		return "prompt-reuse"
	case PromptEntry:
		return "prompt-entry"
	default:
		return "skip"
	}
}

// LookupFunc reads a variable from the environment.
type LookupFunc func(name string) (string, bool)

// Decide maps a variable's live presence to an action.
// manual selects the interactive walk; otherwise detected values are taken as-is and
// everything else (including absent required variables) is skipped.
func Decide(present bool, manual bool) Action {
	switch {
	case !manual && present:
		return AutoReuse
	case !manual:
		return Skip
	case present:
		return PromptReuse
	default:
		return PromptEntry
	}
}

// Step is one declared variable together with its live environment value.
type Step struct {
	Var     packages.EnvVar
	Live    string
	Present bool
}

// Plan is a snapshot of a package's declared variables against the environment.
type Plan struct {
	Steps []Step

	// MissingRequired is true when at least one required variable is absent from the environment.
	MissingRequired bool

	// Detected counts the declared variables present in the environment.
	Detected int
}

// NewPlan snapshots vars against lookup, keeping declaration order.
// A nil lookup reads the process environment.
func NewPlan(vars packages.EnvVars, lookup LookupFunc) Plan {
	if lookup == nil {
		lookup = os.LookupEnv
	}

	p := Plan{Steps: make([]Step, 0, len(vars))}
	for _, v := range vars {
		live, ok := lookup(v.Name)
		p.Steps = append(p.Steps, Step{Var: v, Live: live, Present: ok})

		switch {
		case ok:
			p.Detected++
		case v.Required:
			p.MissingRequired = true
		}
	}

	return p
}

// OfferAutoSetup reports whether detected values can be offered for use without further prompting.
func (p Plan) OfferAutoSetup() bool {
	return !p.MissingRequired && p.Detected > 0
}

// DetectedValues returns the live values of every declared variable present in the environment.
func (p Plan) DetectedValues() map[string]string {
	values := make(map[string]string, p.Detected)
	for _, s := range p.Steps {
		if Decide(s.Present, false) == AutoReuse {
			values[s.Var.Name] = s.Live
		}
	}

	return values
}
