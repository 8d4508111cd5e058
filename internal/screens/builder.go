package screens

import (
	"fmt"
	"strings"

	"github.com/floralab/bloombot/internal/flow"
	"github.com/floralab/bloombot/internal/ui"
)

// BuilderPrompt renders the current guided-flow step as a payload. Guided
// flows are not registry screens: their display follows the flow state, not
// the navigation stack.
func BuilderPrompt(st *flow.State) ui.Payload {
	step := st.Step()
	n, total := st.StepNumber()

	var actions []ui.Action
	for _, opt := range step.Options {
		actions = append(actions, ui.Action{
			Label:  opt,
			Action: ui.ActionGuidedAdvance,
			Value:  opt,
		})
	}
	actions = append(actions, ui.Action{Label: "Step back", Action: ui.ActionGuidedBack})

	text := step.Prompt
	if step.Multi {
		text += " (comma separated)"
	}

	return ui.Payload{
		Title:   fmt.Sprintf("Step %d of %d", n, total),
		Text:    text,
		Actions: actions,
	}
}

// BuilderReview renders the terminal summary pseudo-step: everything is
// collected and the flow is waiting to be finalized.
func BuilderReview(st *flow.State) ui.Payload {
	var b strings.Builder
	fields := st.Fields()
	for _, step := range st.Steps() {
		switch v := fields[step.Tag].(type) {
		case []string:
			fmt.Fprintf(&b, "%s: %s\n", step.Tag, strings.Join(v, ", "))
		case string:
			fmt.Fprintf(&b, "%s: %s\n", step.Tag, v)
		}
	}

	return ui.Payload{
		Title: "Review",
		Text:  b.String(),
		Actions: []ui.Action{
			{Label: "Confirm", Action: ui.ActionGuidedFinalize},
			{Label: "Step back", Action: ui.ActionGuidedBack},
		},
	}
}

// BuilderSummary renders the terminal summary step of the bouquet flow.
func BuilderSummary(b flow.Bouquet) ui.Payload {
	return ui.Payload{
		Title: "Your bouquet",
		Text: fmt.Sprintf("Color: %s\nStems: %s\nAddons: %s\nPrice: %d",
			b.Color, b.Quantity, strings.Join(b.Addons, ", "), b.Price),
		Actions: []ui.Action{
			{Label: "Add to cart", Action: ui.ActionCartAdd},
			{Label: "Start over", Action: ui.ActionGuidedStart, Target: "bouquet"},
		},
	}
}
