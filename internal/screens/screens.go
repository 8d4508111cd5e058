package screens

import (
	"context"
	"fmt"
	"strings"

	"github.com/floralab/bloombot/internal/nav"
	"github.com/floralab/bloombot/internal/session"
	"github.com/floralab/bloombot/internal/ui"
)

// RegisterAll binds every built-in renderer to its screen id. Called once
// at startup; anything registered later for the same id wins.
func RegisterAll(reg *Registry) {
	reg.Register(nav.ScreenHome, Home)
	reg.Register(nav.ScreenAIMenu, AIMenu)
	reg.Register(nav.ScreenPresetResult, PresetResult)
	reg.Register(nav.ScreenCatalog, CatalogList)
	reg.Register(nav.ScreenCart, Cart)
	reg.Register(nav.ScreenHistory, History)
	reg.Register(nav.ScreenAdminMain, AdminMain)
	reg.Register(nav.ScreenAdminFlowers, AdminFlowers)
	reg.Register(nav.ScreenAdminOrders, AdminOrders)
	reg.Register(nav.ScreenAdminUsers, AdminUsers)
}

// Home greets the user and offers the top-level sections.
func Home(_ context.Context, _ *session.Session, env *Env) (ui.Payload, error) {
	return ui.Payload{
		Title: "Welcome to the flower shop",
		Text:  "Fresh bouquets, custom builds and AI suggestions. Where to?",
		Actions: []ui.Action{
			ui.Enter("Catalog", string(nav.ScreenCatalog)),
			ui.Enter("AI suggestion", string(nav.ScreenAIMenu)),
			{Label: "Build a bouquet", Action: ui.ActionGuidedStart, Target: "bouquet"},
			ui.Enter("Cart", string(nav.ScreenCart)),
			ui.Enter("My orders", string(nav.ScreenHistory)),
		},
	}, nil
}

// AIMenu offers preset occasions for a recommendation.
func AIMenu(_ context.Context, _ *session.Session, _ *Env) (ui.Payload, error) {
	preset := func(label, occasion string) ui.Action {
		return ui.Action{
			Label:  label,
			Action: ui.ActionEnterScreen,
			Target: string(nav.ScreenPresetResult),
			Value:  occasion,
		}
	}
	return ui.Payload{
		Title: "AI bouquet suggestion",
		Text:  "Pick an occasion, or send your own as \"occasion:budget\".",
		Actions: []ui.Action{
			preset("Birthday", "birthday"),
			preset("Wedding", "wedding"),
			preset("Romance", "romance"),
		},
	}, nil
}

// PresetResult renders the recommendation for the occasion stored on the
// session by the dispatcher.
func PresetResult(ctx context.Context, sess *session.Session, env *Env) (ui.Payload, error) {
	occasion, budget := splitPreset(sess.Preset)

	text, err := env.Recommender.Recommend(ctx, occasion, budget)
	if err != nil {
		return ui.Payload{}, fmt.Errorf("recommend: %w", err)
	}

	return ui.Payload{
		Title: "Our suggestion",
		Text:  text,
		Actions: []ui.Action{
			{Label: "Build it yourself", Action: ui.ActionGuidedStart, Target: "bouquet"},
			ui.Enter("Catalog", string(nav.ScreenCatalog)),
		},
	}, nil
}

func splitPreset(preset string) (occasion, budget string) {
	occasion, budget, found := strings.Cut(preset, ":")
	if !found {
		return preset, ""
	}
	return occasion, budget
}

// CatalogList lists the available flowers.
func CatalogList(ctx context.Context, _ *session.Session, env *Env) (ui.Payload, error) {
	flowers, err := env.Catalog.Flowers(ctx, "")
	if err != nil {
		return ui.Payload{}, fmt.Errorf("list flowers: %w", err)
	}

	if len(flowers) == 0 {
		return ui.Payload{Title: "Catalog", Text: "The catalog is empty right now."}, nil
	}

	var b strings.Builder
	for _, f := range flowers {
		fmt.Fprintf(&b, "%d. %s — %d\n   %s\n", f.ID, f.Name, f.Price, f.Description)
	}
	return ui.Payload{
		Title: "Catalog",
		Text:  b.String(),
		Actions: []ui.Action{
			{Label: "Build a bouquet", Action: ui.ActionGuidedStart, Target: "bouquet"},
			ui.Enter("Cart", string(nav.ScreenCart)),
		},
	}, nil
}

// Cart shows the current cart contents and checkout affordances.
func Cart(_ context.Context, sess *session.Session, _ *Env) (ui.Payload, error) {
	if len(sess.Cart) == 0 {
		return ui.Payload{
			Title:   "Cart",
			Text:    "Your cart is empty.",
			Actions: []ui.Action{ui.Enter("To the catalog", string(nav.ScreenCatalog))},
		}, nil
	}

	var b strings.Builder
	total := 0
	for i, item := range sess.Cart {
		fmt.Fprintf(&b, "%d. %s\n", i+1, item.Summary())
		total += item.Price
	}
	fmt.Fprintf(&b, "\nTotal: %d", total)
	if sess.Delivery != nil {
		fmt.Fprintf(&b, "\nDelivery to: %s", sess.Delivery.Address)
	}

	return ui.Payload{
		Title: "Cart",
		Text:  b.String(),
		Actions: []ui.Action{
			{Label: "Set delivery address", Action: ui.ActionSetAddress},
			{Label: "Pay with Stars", Action: ui.ActionCheckout},
			{Label: "Clear cart", Action: ui.ActionCartClear},
			ui.Enter("Keep shopping", string(nav.ScreenCatalog)),
		},
	}, nil
}

// History lists the user's past orders.
func History(ctx context.Context, sess *session.Session, env *Env) (ui.Payload, error) {
	orders, err := env.Orders.OrdersFor(ctx, sess.UserID, 10)
	if err != nil {
		return ui.Payload{}, fmt.Errorf("list orders: %w", err)
	}

	if len(orders) == 0 {
		return ui.Payload{Title: "Your orders", Text: "No orders yet."}, nil
	}

	var b strings.Builder
	for _, o := range orders {
		fmt.Fprintf(&b, "%s — %d, %s/%s\n", o.ID, o.Total, o.Status, o.PaymentStatus)
	}
	return ui.Payload{Title: "Your orders", Text: b.String()}, nil
}

// AdminMain is the root of the admin area.
func AdminMain(_ context.Context, _ *session.Session, _ *Env) (ui.Payload, error) {
	return ui.Payload{
		Title: "Admin panel",
		Text:  "Pick an action:",
		Actions: []ui.Action{
			{Label: "Add flower", Action: ui.ActionGuidedStart, Target: "add_flower"},
			ui.Enter("Flowers", string(nav.ScreenAdminFlowers)),
			ui.Enter("Orders", string(nav.ScreenAdminOrders)),
			ui.Enter("Users", string(nav.ScreenAdminUsers)),
		},
	}, nil
}

// AdminFlowers lists the whole catalog with availability flags.
func AdminFlowers(ctx context.Context, _ *session.Session, env *Env) (ui.Payload, error) {
	flowers, err := env.Catalog.AllFlowers(ctx)
	if err != nil {
		return ui.Payload{}, fmt.Errorf("list flowers: %w", err)
	}

	if len(flowers) == 0 {
		return ui.Payload{Title: "Flowers", Text: "No flowers in the database."}, nil
	}

	var b strings.Builder
	for _, f := range flowers {
		mark := "+"
		if !f.Available {
			mark = "-"
		}
		fmt.Fprintf(&b, "[%s] %d: %s, %d, %s\n", mark, f.ID, f.Name, f.Price, orDefault(f.Category, "uncategorized"))
	}
	return ui.Payload{Title: "Flowers", Text: b.String()}, nil
}

// AdminOrders lists the latest orders across all users.
func AdminOrders(ctx context.Context, _ *session.Session, env *Env) (ui.Payload, error) {
	orders, err := env.Orders.RecentOrders(ctx, 20)
	if err != nil {
		return ui.Payload{}, fmt.Errorf("list orders: %w", err)
	}

	if len(orders) == 0 {
		return ui.Payload{Title: "Orders", Text: "No orders."}, nil
	}

	var b strings.Builder
	for _, o := range orders {
		fmt.Fprintf(&b, "%s user=%d total=%d %s/%s\n   %s\n",
			o.ID, o.UserID, o.Total, o.Status, o.PaymentStatus, orDefault(o.Address, "no address"))
	}
	return ui.Payload{Title: "Orders", Text: b.String()}, nil
}

// AdminUsers lists recently seen customers.
func AdminUsers(ctx context.Context, _ *session.Session, env *Env) (ui.Payload, error) {
	users, err := env.Users.RecentUsers(ctx, 20)
	if err != nil {
		return ui.Payload{}, fmt.Errorf("list users: %w", err)
	}

	if len(users) == 0 {
		return ui.Payload{Title: "Users", Text: "No users."}, nil
	}

	var b strings.Builder
	for _, u := range users {
		fmt.Fprintf(&b, "%d %s %s\n", u.ID, u.FirstName, orDefault(u.Username, "(no username)"))
	}
	return ui.Payload{Title: "Users", Text: b.String()}, nil
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
