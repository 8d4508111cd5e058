// Package flow implements the guided multi-step input collectors: linear
// sequences of validated steps that run independently of screen navigation.
package flow

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrInvalidStepInput reports a value outside the current step's
	// accepted domain. The flow stays on the same step; the caller
	// re-prompts the user.
	ErrInvalidStepInput = errors.New("value not accepted for current step")

	// ErrFlowIncomplete reports a finalize attempt before the summary step.
	ErrFlowIncomplete = errors.New("guided flow has not reached its summary step")
)

// Fields holds the values accumulated across forward steps, keyed by step
// tag. Values are strings, except multi-select steps which store []string.
type Fields map[string]any

// Step is one position in a guided flow.
type Step struct {
	Tag    string
	Prompt string

	// Options is the fixed enumeration of accepted values. Empty means
	// free text, optionally constrained by Validate.
	Options []string

	// Multi marks a multi-select step: the input is a comma separated
	// subset of Options, stored as []string.
	Multi bool

	Validate func(value string) error
}

func (st Step) accepts(value string) bool {
	for _, opt := range st.Options {
		if opt == value {
			return true
		}
	}
	return false
}

// Definition is an ordered, immutable sequence of steps shared by every
// instance of a flow.
type Definition struct {
	Name  string
	Steps []Step
}

// State is one user's progress through a definition. A session carries at
// most one active State; it never touches the navigation stack.
type State struct {
	def    *Definition
	idx    int
	fields Fields
}

// Start begins a flow at its first step with no accumulated input.
func Start(def *Definition) *State {
	return &State{def: def, fields: make(Fields, len(def.Steps))}
}

// Name reports which definition this state runs.
func (s *State) Name() string { return s.def.Name }

// AtSummary reports whether every step has been answered and the flow is
// sitting on its terminal summary pseudo-step.
func (s *State) AtSummary() bool { return s.idx == len(s.def.Steps) }

// Step returns the step currently awaiting input. Calling it on the summary
// pseudo-step returns the last real step for display purposes.
func (s *State) Step() Step {
	if s.AtSummary() {
		return s.def.Steps[len(s.def.Steps)-1]
	}
	return s.def.Steps[s.idx]
}

// Steps exposes the definition's step list, for display code that walks the
// collected fields in order.
func (s *State) Steps() []Step { return s.def.Steps }

// StepNumber reports the 1-based position for "step N of M" prompts.
func (s *State) StepNumber() (n, total int) {
	return s.idx + 1, len(s.def.Steps)
}

// Fields returns a copy of the values accumulated so far.
func (s *State) Fields() Fields {
	out := make(Fields, len(s.fields))
	for k, v := range s.fields {
		out[k] = v
	}
	return out
}

// Advance validates value against the current step, stores it, and moves
// forward. On ErrInvalidStepInput the step and accumulated fields are left
// exactly as they were.
func (s *State) Advance(value string) error {
	if s.AtSummary() {
		return fmt.Errorf("%w: already at summary", ErrInvalidStepInput)
	}

	step := s.def.Steps[s.idx]
	stored, err := step.parse(value)
	if err != nil {
		return err
	}

	s.fields[step.Tag] = stored
	s.idx++
	return nil
}

func (st Step) parse(value string) (any, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil, fmt.Errorf("%w: empty value for %s", ErrInvalidStepInput, st.Tag)
	}

	if st.Multi {
		picks, err := st.parseMulti(value)
		if err != nil {
			return nil, err
		}
		return picks, nil
	}

	if len(st.Options) > 0 && !st.accepts(value) {
		return nil, fmt.Errorf("%w: %q is not one of %s", ErrInvalidStepInput, value, strings.Join(st.Options, ", "))
	}
	if st.Validate != nil {
		if err := st.Validate(value); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidStepInput, err)
		}
	}
	return value, nil
}

func (st Step) parseMulti(value string) ([]string, error) {
	seen := make(map[string]bool)
	var picks []string
	for _, part := range strings.Split(value, ",") {
		part = strings.TrimSpace(part)
		if part == "" || seen[part] {
			continue
		}
		if !st.accepts(part) {
			return nil, fmt.Errorf("%w: %q is not one of %s", ErrInvalidStepInput, part, strings.Join(st.Options, ", "))
		}
		seen[part] = true
		picks = append(picks, part)
	}
	if len(picks) == 0 {
		return nil, fmt.Errorf("%w: no selection for %s", ErrInvalidStepInput, st.Tag)
	}
	return picks, nil
}

// StepBack returns to the previous step. The value previously stored for the
// step being re-entered is discarded: re-entering a step always starts from
// an unset field, not the user's earlier choice. No-op at the first step.
func (s *State) StepBack() {
	if s.idx == 0 {
		return
	}
	s.idx--
	delete(s.fields, s.def.Steps[s.idx].Tag)
}

// Finalize returns the complete accumulated fields. Only valid from the
// summary step; the caller clears the flow from the session on success.
func (s *State) Finalize() (Fields, error) {
	if !s.AtSummary() {
		return nil, ErrFlowIncomplete
	}
	return s.Fields(), nil
}
