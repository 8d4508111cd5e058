package nav

// Screen identifies a renderable unit of displayed content.
//
// The well-known screens below cover the fixed menu tree. Result screens
// produced at runtime (for example AI preset results) use ad hoc ids, which
// is why Screen stays an open string rather than a closed enum.
type Screen string

const (
	ScreenHome         Screen = "home"
	ScreenAIMenu       Screen = "ai_menu"
	ScreenPresetResult Screen = "preset_result"
	ScreenCatalog      Screen = "catalog"
	ScreenCart         Screen = "cart"
	ScreenHistory      Screen = "history"
	ScreenAdminMain    Screen = "admin_main"
	ScreenAdminFlowers Screen = "admin_flowers"
	ScreenAdminOrders  Screen = "admin_orders"
	ScreenAdminUsers   Screen = "admin_users"

	// ScreenBuilder is the pseudo screen reported while a guided flow is
	// collecting input. It never appears on the navigation stack.
	ScreenBuilder Screen = "builder"
)
