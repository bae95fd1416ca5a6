// Package testutil holds test doubles shared by package tests.
package testutil

import (
	"context"
	"fmt"

	"github.com/mozilla-ai/mcp-get/internal/prompt"
)

var _ prompt.Prompter = (*ScriptedPrompter)(nil)

// ScriptedPrompter answers prompts from pre-recorded queues and records every question asked.
// Running out of answers is reported as an error so tests notice unexpected prompts.
type ScriptedPrompter struct {
	Confirms []bool
	Inputs   []string

	Questions        []string
	ValidationErrors []string
}

// NewScriptedPrompter returns a prompter with no scripted answers.
func NewScriptedPrompter() *ScriptedPrompter {
	return &ScriptedPrompter{}
}

// WithConfirms appends yes/no answers.
func (p *ScriptedPrompter) WithConfirms(answers ...bool) *ScriptedPrompter {
	p.Confirms = append(p.Confirms, answers...)
	return p
}

// WithInputs appends free-text answers.
func (p *ScriptedPrompter) WithInputs(answers ...string) *ScriptedPrompter {
	p.Inputs = append(p.Inputs, answers...)
	return p
}

// Asked returns the number of prompts issued.
func (p *ScriptedPrompter) Asked() int {
	return len(p.Questions)
}

// Confirm implements prompt.Prompter.
func (p *ScriptedPrompter) Confirm(_ context.Context, question string, _ bool) (bool, error) {
	p.Questions = append(p.Questions, question)
	if len(p.Confirms) == 0 {
		return false, fmt.Errorf("unexpected confirm prompt: %q", question)
	}

	answer := p.Confirms[0]
	p.Confirms = p.Confirms[1:]

	return answer, nil
}

// Input implements prompt.Prompter.
// Answers rejected by validate are recorded and the next scripted answer is tried.
func (p *ScriptedPrompter) Input(_ context.Context, question string, validate func(string) error) (string, error) {
	p.Questions = append(p.Questions, question)

	for len(p.Inputs) > 0 {
		answer := p.Inputs[0]
		p.Inputs = p.Inputs[1:]

		if validate == nil {
			return answer, nil
		}
		if err := validate(answer); err != nil {
			p.ValidationErrors = append(p.ValidationErrors, err.Error())
			continue
		}

		return answer, nil
	}

	return "", fmt.Errorf("unexpected input prompt: %q", question)
}
