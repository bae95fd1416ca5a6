// Package envvars decides which environment variable values a package is installed with,
// combining what is already set in the environment with interactive input.
package envvars

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/hashicorp/go-hclog"

	"github.com/mozilla-ai/mcp-get/internal/packages"
	"github.com/mozilla-ai/mcp-get/internal/prompt"
)

// Resolver resolves the environment a package is registered with.
type Resolver struct {
	prompter   prompt.Prompter
	lookup     LookupFunc
	out        io.Writer
	configPath string
	logger     hclog.Logger
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithLookup replaces the process environment lookup.
func WithLookup(fn LookupFunc) Option {
	return func(r *Resolver) {
		if fn != nil {
			r.lookup = fn
		}
	}
}

// WithConfigPath sets the host config path named in guidance messages.
func WithConfigPath(path string) Option {
	return func(r *Resolver) {
		r.configPath = path
	}
}

// NewResolver returns a Resolver asking questions through p and printing guidance to out.
func NewResolver(logger hclog.Logger, p prompt.Prompter, out io.Writer, opts ...Option) *Resolver {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	if out == nil {
		out = io.Discard
	}

	r := &Resolver{
		prompter: p,
		lookup:   os.LookupEnv,
		out:      out,
		logger:   logger.Named("envvars"),
	}
	for _, o := range opts {
		o(r)
	}

	return r
}

// Resolve returns the variables pkg should be installed with, or nil when none should be stored.
// Declining to configure is not an error; errors only come from the prompter itself.
func (r *Resolver) Resolve(ctx context.Context, pkg packages.Package) (map[string]string, error) {
	if !pkg.HasEnvVars() {
		return nil, nil
	}

	plan := NewPlan(pkg.EnvironmentVariables, r.lookup)
	r.logger.Debug(
		"Environment plan",
		"package", pkg.Name,
		"declared", len(plan.Steps),
		"detected", plan.Detected,
		"missingRequired", plan.MissingRequired,
	)

	if plan.OfferAutoSetup() {
		auto, err := r.prompter.Confirm(
			ctx,
			"Found all required environment variables. Would you like to use them automatically?",
			true,
		)
		if err != nil {
			return nil, err
		}
		if auto {
			return plan.DetectedValues(), nil
		}
	}

	configure, err := r.prompter.Confirm(
		ctx,
		fmt.Sprintf("Would you like to configure environment variables for %s?", pkg.Name),
		plan.MissingRequired,
	)
	if err != nil {
		return nil, err
	}
	if !configure {
		if plan.MissingRequired {
			r.printGuidance("Some required environment variables are not configured.")
		}
		return nil, nil
	}

	values := map[string]string{}
	for _, step := range plan.Steps {
		value, ok, err := r.resolveStep(ctx, step)
		if err != nil {
			return nil, err
		}
		if ok {
			values[step.Var.Name] = value
		}
	}

	if len(values) == 0 {
		r.printGuidance("No environment variables were configured.")
		return nil, nil
	}

	return values, nil
}

// resolveStep runs the interactive walk for a single variable.
// ok is false when an optional variable was deliberately left without a value.
func (r *Resolver) resolveStep(ctx context.Context, step Step) (string, bool, error) {
	v := step.Var

	if Decide(step.Present, true) == PromptReuse {
		reuse, err := r.prompter.Confirm(
			ctx,
			fmt.Sprintf("Found %s in your environment variables. Would you like to use it?", v.Name),
			true,
		)
		if err != nil {
			return "", false, err
		}
		if reuse {
			return step.Live, true, nil
		}
	}

	question := fmt.Sprintf("%s (%s)", v.Description, v.Name)
	if v.Description == "" {
		question = v.Name
	}
	if !v.Required {
		question += " (optional)"
	}
	question += ":"

	value, err := r.prompter.Input(ctx, question, func(s string) error {
		if s == "" && v.Required {
			return fmt.Errorf("%s is required", v.Name)
		}
		return nil
	})
	if err != nil {
		return "", false, err
	}

	// An optional variable left blank means "no value", which is not stored.
	if value == "" {
		return "", false, nil
	}

	return value, true, nil
}

func (r *Resolver) printGuidance(reason string) {
	_, _ = fmt.Fprintf(r.out, "Note: %s\n", reason)
	if r.configPath != "" {
		_, _ = fmt.Fprintf(r.out, "You can configure them later by editing the config file at: %s\n", r.configPath)
		return
	}
	_, _ = fmt.Fprintln(r.out, "You can configure them later by editing the host application's config file.")
}
