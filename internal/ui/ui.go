// Package ui defines the display contract between the engine and whatever
// transport presents it: a payload of text plus the forward actions the user
// can take from it. It is deliberately transport-agnostic.
package ui

// Action tags understood by the dispatcher. Renderers attach these to
// payload buttons; the transport echoes them back as inbound events.
const (
	ActionStart          = "start"
	ActionEnterScreen    = "enter_screen"
	ActionNavBack        = "nav_back"
	ActionNavReset       = "nav_reset"
	ActionAdmin          = "admin"
	ActionGuidedStart    = "guided_start"
	ActionGuidedAdvance  = "guided_advance"
	ActionGuidedBack     = "guided_back"
	ActionGuidedFinalize = "guided_finalize"
	ActionCartAdd        = "cart_add"
	ActionCartClear      = "cart_clear"
	ActionSetAddress     = "set_address"
	ActionCheckout       = "order_checkout"
	ActionConfirmOrder   = "order_confirm"
)

// Action is one forward affordance offered on a screen.
type Action struct {
	Label  string `json:"label"`
	Action string `json:"action"`
	Target string `json:"target,omitempty"`
	Value  string `json:"value,omitempty"`
}

// Payload is the rendered content of a screen.
type Payload struct {
	Title   string   `json:"title,omitempty"`
	Text    string   `json:"text"`
	Actions []Action `json:"actions,omitempty"`

	// Error carries a user-facing degradation notice when an external
	// collaborator failed; navigation state is never left inconsistent
	// alongside it.
	Error string `json:"error,omitempty"`
}

// Enter builds the forward action for following a link to a screen.
func Enter(label, target string) Action {
	return Action{Label: label, Action: ActionEnterScreen, Target: target}
}

// Back is the uniform back affordance attached to every screen but home.
func Back() Action {
	return Action{Label: "Back", Action: ActionNavBack}
}
