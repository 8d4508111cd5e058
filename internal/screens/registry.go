// Package screens holds the screen registry and the renderers behind it.
// Renderers are pure functions of the session snapshot and the external
// context; they never mutate navigation state.
package screens

import (
	"context"
	"errors"
	"fmt"

	"github.com/floralab/bloombot/internal/nav"
	"github.com/floralab/bloombot/internal/session"
	"github.com/floralab/bloombot/internal/ui"
)

// ErrUnknownScreen reports a screen id that was never registered. Callers
// treat it as non-fatal and fall back to the home screen; in a correctly
// wired deployment it indicates a configuration defect.
var ErrUnknownScreen = errors.New("unknown screen")

// Renderer produces the display payload for a screen.
type Renderer func(ctx context.Context, sess *session.Session, env *Env) (ui.Payload, error)

// Registry maps screen ids to renderers. Registration happens once at
// startup before the first dispatch; re-registering an id replaces the
// renderer, so late-binding modules may attach in any order.
type Registry struct {
	renderers map[nav.Screen]Renderer
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{renderers: make(map[nav.Screen]Renderer)}
}

// Register binds a renderer to a screen id. Last write wins.
func (r *Registry) Register(id nav.Screen, fn Renderer) {
	r.renderers[id] = fn
}

// Resolve returns the renderer for a screen id.
func (r *Registry) Resolve(id nav.Screen) (Renderer, error) {
	fn, ok := r.renderers[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownScreen, id)
	}
	return fn, nil
}
