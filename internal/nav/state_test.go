package nav

import "testing"

func TestNewStateStartsAtHome(t *testing.T) {
	st := NewState()
	if st.Current != ScreenHome {
		t.Fatalf("expected home, got %s", st.Current)
	}
	if st.Depth() != 0 {
		t.Fatalf("expected empty stack, got depth %d", st.Depth())
	}
}

func TestEnterPushesCurrent(t *testing.T) {
	st := NewState()
	st.Enter(ScreenCatalog)
	st.Enter(ScreenCart)

	if st.Current != ScreenCart {
		t.Fatalf("expected cart, got %s", st.Current)
	}
	if st.Depth() != 2 {
		t.Fatalf("expected depth 2, got %d", st.Depth())
	}
}

func TestEnterSameScreenDoesNotPush(t *testing.T) {
	st := NewState()
	st.Enter(ScreenCatalog)
	st.Enter(ScreenCatalog)

	if st.Depth() != 1 {
		t.Fatalf("re-entering the current screen must not grow the stack, got depth %d", st.Depth())
	}
	if got := st.Back(); got != ScreenHome {
		t.Fatalf("expected back to home, got %s", got)
	}
}

func TestBackUnwindsInReverseOrder(t *testing.T) {
	st := NewState()
	st.Enter(ScreenAIMenu)
	st.Enter(ScreenPresetResult)

	if got := st.Back(); got != ScreenAIMenu {
		t.Fatalf("expected ai_menu, got %s", got)
	}
	if got := st.Back(); got != ScreenHome {
		t.Fatalf("expected home, got %s", got)
	}
}

func TestBackOnEmptyStackSettlesAtHome(t *testing.T) {
	st := NewState()
	for i := 0; i < 3; i++ {
		if got := st.Back(); got != ScreenHome {
			t.Fatalf("back on empty stack must yield home, got %s", got)
		}
	}
	if st.Depth() != 0 {
		t.Fatalf("expected empty stack, got depth %d", st.Depth())
	}
}

func TestResetClearsHistory(t *testing.T) {
	st := NewState()
	st.Enter(ScreenCatalog)
	st.Enter(ScreenCart)
	st.Reset()

	if st.Current != ScreenHome {
		t.Fatalf("expected home, got %s", st.Current)
	}
	if st.Depth() != 0 {
		t.Fatalf("expected empty stack after reset, got depth %d", st.Depth())
	}
}

func TestJumpStartsFreshStackNamespace(t *testing.T) {
	st := NewState()
	st.Enter(ScreenCatalog)
	st.Enter(ScreenCart)
	st.Jump(ScreenAdminMain)

	if st.Current != ScreenAdminMain {
		t.Fatalf("expected admin_main, got %s", st.Current)
	}
	if st.Depth() != 0 {
		t.Fatalf("jump must clear the stack, got depth %d", st.Depth())
	}

	st.Enter(ScreenAdminOrders)
	if got := st.Back(); got != ScreenAdminMain {
		t.Fatalf("expected admin_main, got %s", got)
	}
	if got := st.Back(); got != ScreenHome {
		t.Fatalf("back past the admin root must settle at home, got %s", got)
	}
}
