// Package dispatch is the conversational front: it receives inbound user
// actions, drives the navigation engine and guided flows against the user's
// session, and returns render instructions for the transport to present.
package dispatch

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/floralab/bloombot/internal/config"
	"github.com/floralab/bloombot/internal/flow"
	"github.com/floralab/bloombot/internal/model/account"
	"github.com/floralab/bloombot/internal/model/catalog"
	"github.com/floralab/bloombot/internal/model/order"
	"github.com/floralab/bloombot/internal/nav"
	"github.com/floralab/bloombot/internal/screens"
	"github.com/floralab/bloombot/internal/service/payment"
	"github.com/floralab/bloombot/internal/session"
	"github.com/floralab/bloombot/internal/ui"
)

var (
	// ErrUnknownAction reports an action tag the dispatcher does not speak.
	ErrUnknownAction = errors.New("unknown action")

	// ErrMissingUser reports an event without a user id.
	ErrMissingUser = errors.New("event is missing a user id")
)

// Event is one inbound user action.
type Event struct {
	UserID    int64  `json:"userId"`
	Username  string `json:"username,omitempty"`
	FirstName string `json:"firstName,omitempty"`
	Action    string `json:"action"`
	Target    string `json:"target,omitempty"`
	Value     string `json:"value,omitempty"`
}

// Render is the outbound instruction: which screen is showing and what it
// displays.
type Render struct {
	Screen  nav.Screen `json:"screen"`
	Payload ui.Payload `json:"payload"`
}

// Shop is the persistent side the dispatcher writes to.
type Shop interface {
	AddFlower(ctx context.Context, f catalog.Flower) (int64, error)
	EnsureUser(ctx context.Context, u account.User) error
	CreateOrder(ctx context.Context, o order.Order) error
	MarkPaid(ctx context.Context, id string) error
}

// Geo resolves delivery coordinates to an address.
type Geo interface {
	Resolve(ctx context.Context, lat, lon float64) string
}

// Media rehosts photo URLs supplied by the admin flow.
type Media interface {
	StorePhoto(ctx context.Context, name, srcURL string) string
}

// Dispatcher routes events to the engine and renders the outcome. Events
// for one user are serialized on the session lock; different users proceed
// concurrently.
type Dispatcher struct {
	sessions *session.Store
	registry *screens.Registry
	env      *screens.Env
	shop     Shop
	geo      Geo
	media    Media
	bot      config.BotConfig
	flows    map[string]*flow.Definition
}

// New wires a dispatcher.
func New(sessions *session.Store, registry *screens.Registry, env *screens.Env, shop Shop, geo Geo, media Media, bot config.BotConfig) *Dispatcher {
	return &Dispatcher{
		sessions: sessions,
		registry: registry,
		env:      env,
		shop:     shop,
		geo:      geo,
		media:    media,
		bot:      bot,
		flows: map[string]*flow.Definition{
			"bouquet":    flow.NewBouquetDefinition(),
			"add_flower": flow.NewAddFlowerDefinition(),
		},
	}
}

// Dispatch handles one event to completion and returns what to display.
// Every recoverable condition (unknown screen, invalid step input, no
// active flow) resolves to a render; an error return means the event
// itself was malformed.
func (d *Dispatcher) Dispatch(ctx context.Context, ev Event) (Render, error) {
	if ev.UserID == 0 {
		return Render{}, ErrMissingUser
	}

	sess := d.sessions.GetOrCreate(ev.UserID)
	sess.Lock()
	defer sess.Unlock()

	switch ev.Action {
	case ui.ActionStart, ui.ActionNavReset:
		sess.Reset()
		d.recordUser(ctx, ev)
		return d.renderCurrent(ctx, sess), nil

	case ui.ActionAdmin:
		if !d.bot.IsAdmin(ev.UserID) {
			return d.deny(sess), nil
		}
		sess.Jump(nav.ScreenAdminMain)
		return d.renderCurrent(ctx, sess), nil

	case ui.ActionEnterScreen:
		return d.enterScreen(ctx, sess, ev), nil

	case ui.ActionNavBack:
		if sess.Flow != nil {
			// Leaving the flow from outside its own back transitions
			// discards it; the screen underneath is still current.
			log.Printf("[dispatch] user=%d abandoning %s flow via nav_back", ev.UserID, sess.Flow.Name())
			sess.AbandonFlow()
			return d.renderCurrent(ctx, sess), nil
		}
		sess.Nav.Back()
		return d.renderCurrent(ctx, sess), nil

	case ui.ActionGuidedStart:
		return d.guidedStart(ctx, sess, ev), nil

	case ui.ActionGuidedAdvance:
		return d.guidedAdvance(ctx, sess, ev), nil

	case ui.ActionGuidedBack:
		if sess.Flow == nil {
			return d.noFlow(ctx, sess, ev), nil
		}
		sess.Flow.StepBack()
		return renderFlow(sess.Flow), nil

	case ui.ActionGuidedFinalize:
		return d.guidedFinalize(ctx, sess, ev), nil

	case ui.ActionCartAdd:
		return d.cartAdd(ctx, sess), nil

	case ui.ActionCartClear:
		sess.Cart = nil
		sess.Nav.Enter(nav.ScreenCart)
		return d.renderCurrent(ctx, sess), nil

	case ui.ActionSetAddress:
		return d.setAddress(ctx, sess, ev), nil

	case ui.ActionCheckout:
		return d.checkout(ctx, sess, ev), nil

	case ui.ActionConfirmOrder:
		return d.confirmOrder(ctx, sess, ev), nil
	}

	return Render{}, fmt.Errorf("%w: %q", ErrUnknownAction, ev.Action)
}

func (d *Dispatcher) enterScreen(ctx context.Context, sess *session.Session, ev Event) Render {
	target := nav.Screen(ev.Target)

	if strings.HasPrefix(ev.Target, "admin") && !d.bot.IsAdmin(ev.UserID) {
		return d.deny(sess)
	}

	if _, err := d.registry.Resolve(target); err != nil {
		// Configuration defect: the forward link points at a screen
		// nobody registered. Fall back to home rather than show nothing.
		log.Printf("[dispatch] user=%d: %v, falling back to home", ev.UserID, err)
		sess.Nav.Reset()
		return d.renderCurrent(ctx, sess)
	}

	if target == nav.ScreenPresetResult {
		sess.Preset = ev.Value
	}
	sess.Nav.Enter(target)
	return d.renderCurrent(ctx, sess)
}

func (d *Dispatcher) guidedStart(ctx context.Context, sess *session.Session, ev Event) Render {
	// At most one active guided flow per session: starting again while one
	// runs is a silent no-op that just re-renders the current step. The
	// summary screen's "start over" affordance works because finalize has
	// already cleared the flow by then.
	name := ev.Target
	if name == "" {
		name = "bouquet"
	}

	def, ok := d.flows[name]
	if !ok {
		log.Printf("[dispatch] user=%d requested unknown flow %q", ev.UserID, name)
		return d.renderCurrent(ctx, sess)
	}
	if name == "add_flower" && !d.bot.IsAdmin(ev.UserID) {
		return d.deny(sess)
	}

	if sess.Flow != nil {
		return renderFlow(sess.Flow)
	}

	sess.Flow = flow.Start(def)
	return renderFlow(sess.Flow)
}

func (d *Dispatcher) guidedAdvance(ctx context.Context, sess *session.Session, ev Event) Render {
	if sess.Flow == nil {
		return d.noFlow(ctx, sess, ev)
	}

	if err := sess.Flow.Advance(ev.Value); err != nil {
		// Invalid input re-prompts the same step; accumulated fields are
		// untouched.
		r := renderFlow(sess.Flow)
		r.Payload.Error = err.Error()
		return r
	}
	return renderFlow(sess.Flow)
}

func (d *Dispatcher) guidedFinalize(ctx context.Context, sess *session.Session, ev Event) Render {
	if sess.Flow == nil {
		return d.noFlow(ctx, sess, ev)
	}

	fields, err := sess.Flow.Finalize()
	if err != nil {
		r := renderFlow(sess.Flow)
		r.Payload.Error = err.Error()
		return r
	}

	switch sess.Flow.Name() {
	case "bouquet":
		bouquet, err := flow.BouquetFromFields(fields)
		if err != nil {
			log.Printf("[dispatch] user=%d bouquet finalize: %v", ev.UserID, err)
			sess.Flow = nil
			return d.renderCurrent(ctx, sess)
		}
		sess.Flow = nil
		sess.Pending = &bouquet
		return Render{Screen: nav.ScreenBuilder, Payload: screens.BuilderSummary(bouquet)}

	case "add_flower":
		return d.finalizeAddFlower(ctx, sess, ev, fields)
	}

	sess.Flow = nil
	return d.renderCurrent(ctx, sess)
}

func (d *Dispatcher) finalizeAddFlower(ctx context.Context, sess *session.Session, ev Event, fields flow.Fields) Render {
	name, _ := fields["name"].(string)
	description, _ := fields["description"].(string)
	priceRaw, _ := fields["price"].(string)
	category, _ := fields["category"].(string)
	photo, _ := fields["photo"].(string)

	price, _ := strconv.Atoi(priceRaw) // validated by the step

	photoURL := ""
	if photo != "" && photo != "skip" {
		photoURL = d.media.StorePhoto(ctx, name, photo)
	}

	id, err := d.shop.AddFlower(ctx, catalog.Flower{
		Name:        name,
		Description: description,
		Price:       price,
		PhotoURL:    photoURL,
		Category:    category,
		Available:   true,
	})
	if err != nil {
		// Keep the flow at its summary so the admin can retry.
		log.Printf("[dispatch] user=%d add flower: %v", ev.UserID, err)
		r := renderFlow(sess.Flow)
		r.Payload.Error = "could not save the flower, please try again"
		return r
	}

	sess.Flow = nil
	return Render{
		Screen: sess.Nav.Current,
		Payload: ui.Payload{
			Title: "Flower added",
			Text:  fmt.Sprintf("Saved %q with id %d, price %d.", name, id, price),
			Actions: []ui.Action{
				ui.Enter("Flowers", string(nav.ScreenAdminFlowers)),
				ui.Enter("Admin panel", string(nav.ScreenAdminMain)),
				ui.Back(),
			},
		},
	}
}

func (d *Dispatcher) cartAdd(ctx context.Context, sess *session.Session) Render {
	if sess.Pending == nil {
		r := d.renderCurrent(ctx, sess)
		r.Payload.Error = "nothing to add: build a bouquet first"
		return r
	}

	sess.Cart = append(sess.Cart, *sess.Pending)
	sess.Pending = nil
	sess.Nav.Enter(nav.ScreenCart)
	return d.renderCurrent(ctx, sess)
}

func (d *Dispatcher) setAddress(ctx context.Context, sess *session.Session, ev Event) Render {
	value := strings.TrimSpace(ev.Value)
	if value == "" {
		r := d.renderCurrent(ctx, sess)
		r.Payload.Error = "send coordinates as \"lat,lon\" or a street address"
		return r
	}

	if lat, lon, ok := parseCoordinates(value); ok {
		address := d.geo.Resolve(ctx, lat, lon)
		sess.Delivery = &session.Delivery{Address: address, Latitude: &lat, Longitude: &lon}
	} else {
		sess.Delivery = &session.Delivery{Address: value}
	}

	sess.Nav.Enter(nav.ScreenCart)
	return d.renderCurrent(ctx, sess)
}

func (d *Dispatcher) checkout(ctx context.Context, sess *session.Session, ev Event) Render {
	if len(sess.Cart) == 0 {
		r := d.renderCurrent(ctx, sess)
		r.Payload.Error = "your cart is empty"
		return r
	}
	if sess.Delivery == nil {
		r := d.renderCurrent(ctx, sess)
		r.Payload.Error = "set a delivery address first"
		return r
	}

	items, err := json.Marshal(sess.Cart)
	if err != nil {
		log.Printf("[dispatch] user=%d marshal cart: %v", ev.UserID, err)
		r := d.renderCurrent(ctx, sess)
		r.Payload.Error = "could not prepare your order, please try again"
		return r
	}

	total := 0
	for _, item := range sess.Cart {
		total += item.Price
	}

	o := order.Order{
		ID:            uuid.NewString(),
		UserID:        ev.UserID,
		ItemsJSON:     string(items),
		Total:         total,
		Address:       sess.Delivery.Address,
		Latitude:      sess.Delivery.Latitude,
		Longitude:     sess.Delivery.Longitude,
		Status:        order.StatusPending,
		PaymentStatus: order.PaymentUnpaid,
	}

	d.recordUser(ctx, ev)
	if err := d.shop.CreateOrder(ctx, o); err != nil {
		// Cart and session stay exactly as they were; the user can retry.
		log.Printf("[dispatch] user=%d create order: %v", ev.UserID, err)
		r := d.renderCurrent(ctx, sess)
		r.Payload.Error = "could not create your order, please try again"
		return r
	}

	invoice := payment.NewInvoice(o.ID, total)
	return Render{
		Screen: sess.Nav.Current,
		Payload: ui.Payload{
			Title: "Invoice created",
			Text: fmt.Sprintf("%s\n%s\nDelivery to: %s\nFollow the payment instructions to finish.",
				invoice.Title, invoice.Description, o.Address),
			Actions: []ui.Action{
				{Label: "Confirm order", Action: ui.ActionConfirmOrder, Target: o.ID},
				// Cancelling just returns to the cart; an abandoned
				// payment never loses the cart contents.
				ui.Enter("Cancel", string(nav.ScreenCart)),
				ui.Back(),
			},
		},
	}
}

func (d *Dispatcher) confirmOrder(ctx context.Context, sess *session.Session, ev Event) Render {
	if ev.Target == "" {
		r := d.renderCurrent(ctx, sess)
		r.Payload.Error = "missing order reference"
		return r
	}

	if err := d.shop.MarkPaid(ctx, ev.Target); err != nil {
		log.Printf("[dispatch] user=%d confirm order %s: %v", ev.UserID, ev.Target, err)
		r := d.renderCurrent(ctx, sess)
		r.Payload.Error = "could not confirm the order, please try again"
		return r
	}

	sess.Cart = nil
	sess.Delivery = nil
	return Render{
		Screen: sess.Nav.Current,
		Payload: ui.Payload{
			Title: "Order confirmed",
			Text:  fmt.Sprintf("Order %s is paid. We are assembling your bouquet; delivery within 2-3 hours. Thank you!", ev.Target),
			Actions: []ui.Action{
				ui.Enter("My orders", string(nav.ScreenHistory)),
				ui.Back(),
			},
		},
	}
}

// noFlow handles guided-flow events arriving with no active flow: a no-op
// with a diagnostic, recovered by pointing the user back at the builder.
func (d *Dispatcher) noFlow(ctx context.Context, sess *session.Session, ev Event) Render {
	log.Printf("[dispatch] user=%d sent %s with no active flow", ev.UserID, ev.Action)
	r := d.renderCurrent(ctx, sess)
	r.Payload.Error = "no builder in progress: start one first"
	return r
}

func (d *Dispatcher) deny(sess *session.Session) Render {
	return Render{
		Screen:  sess.Nav.Current,
		Payload: ui.Payload{Text: "You do not have administrator access.", Actions: []ui.Action{ui.Back()}},
	}
}

// renderCurrent resolves and runs the renderer for the session's current
// screen, degrading to home on an unregistered id and to an error payload
// on a collaborator failure. Navigation state is final before any external
// call is made, so a failure never leaves it inconsistent.
func (d *Dispatcher) renderCurrent(ctx context.Context, sess *session.Session) Render {
	current := sess.Nav.Current

	renderer, err := d.registry.Resolve(current)
	if err != nil {
		log.Printf("[dispatch] user=%d: %v, falling back to home", sess.UserID, err)
		sess.Nav.Reset()
		current = sess.Nav.Current
		renderer, err = d.registry.Resolve(current)
		if err != nil {
			// Home itself unregistered means startup wiring is broken.
			return Render{Screen: current, Payload: ui.Payload{Error: "service is misconfigured"}}
		}
	}

	payload, err := renderer(ctx, sess, d.env)
	if err != nil {
		log.Printf("[dispatch] user=%d render %s: %v", sess.UserID, current, err)
		payload = ui.Payload{
			Text:  "Something went wrong loading this screen. Please try again.",
			Error: err.Error(),
		}
	}

	if current != nav.ScreenHome {
		payload.Actions = append(payload.Actions, ui.Back())
	}
	return Render{Screen: current, Payload: payload}
}

// renderFlow shows the active guided flow: the next prompt, or the review
// payload once every step is answered.
func renderFlow(st *flow.State) Render {
	if st.AtSummary() {
		return Render{Screen: nav.ScreenBuilder, Payload: screens.BuilderReview(st)}
	}
	return Render{Screen: nav.ScreenBuilder, Payload: screens.BuilderPrompt(st)}
}

func (d *Dispatcher) recordUser(ctx context.Context, ev Event) {
	err := d.shop.EnsureUser(ctx, account.User{
		ID:        ev.UserID,
		Username:  ev.Username,
		FirstName: ev.FirstName,
	})
	if err != nil {
		log.Printf("[dispatch] user=%d ensure user: %v", ev.UserID, err)
	}
}

func parseCoordinates(value string) (lat, lon float64, ok bool) {
	first, second, found := strings.Cut(value, ",")
	if !found {
		return 0, 0, false
	}
	lat, err1 := strconv.ParseFloat(strings.TrimSpace(first), 64)
	lon, err2 := strconv.ParseFloat(strings.TrimSpace(second), 64)
	if err1 != nil || err2 != nil {
		return 0, 0, false
	}
	return lat, lon, true
}
