package session

import (
	"sync"
	"testing"

	"github.com/floralab/bloombot/internal/flow"
	"github.com/floralab/bloombot/internal/nav"
)

func cartFixture() flow.Bouquet {
	return flow.Bouquet{Color: "red", Quantity: "7", Addons: []string{"none"}, Price: flow.BouquetBasePrice}
}

func TestGetOrCreateReturnsSameSession(t *testing.T) {
	st := NewStore()

	a := st.GetOrCreate(42)
	b := st.GetOrCreate(42)
	if a != b {
		t.Fatal("expected the same session instance for one user")
	}
	if a.UserID != 42 {
		t.Fatalf("expected user 42, got %d", a.UserID)
	}
	if a.Nav.Current != nav.ScreenHome {
		t.Fatalf("new session must start at home, got %s", a.Nav.Current)
	}
}

func TestGetMissing(t *testing.T) {
	st := NewStore()
	if _, ok := st.Get(7); ok {
		t.Fatal("expected no session before first contact")
	}
	st.GetOrCreate(7)
	if _, ok := st.Get(7); !ok {
		t.Fatal("expected session after GetOrCreate")
	}
}

func TestConcurrentGetOrCreateIsAtomic(t *testing.T) {
	st := NewStore()

	const goroutines = 64
	results := make([]*Session, goroutines)

	var wg sync.WaitGroup
	wg.Add(goroutines)
	for i := 0; i < goroutines; i++ {
		go func(i int) {
			defer wg.Done()
			results[i] = st.GetOrCreate(1001)
		}(i)
	}
	wg.Wait()

	for i := 1; i < goroutines; i++ {
		if results[i] != results[0] {
			t.Fatal("concurrent GetOrCreate must converge on one session")
		}
	}
	if st.Len() != 1 {
		t.Fatalf("expected 1 session, got %d", st.Len())
	}
}

func TestConcurrentDistinctUsers(t *testing.T) {
	st := NewStore()

	const users = 200
	var wg sync.WaitGroup
	wg.Add(users)
	for i := 0; i < users; i++ {
		go func(id int64) {
			defer wg.Done()
			sess := st.GetOrCreate(id)
			sess.Lock()
			sess.Nav.Enter(nav.ScreenCatalog)
			sess.Unlock()
		}(int64(i + 1))
	}
	wg.Wait()

	if st.Len() != users {
		t.Fatalf("expected %d sessions, got %d", users, st.Len())
	}
}

func TestResetKeepsCart(t *testing.T) {
	sess := New(5)
	sess.Nav.Enter(nav.ScreenCatalog)
	sess.Cart = append(sess.Cart, cartFixture())
	sess.Preset = "birthday"

	sess.Reset()

	if sess.Nav.Current != nav.ScreenHome || sess.Nav.Depth() != 0 {
		t.Fatalf("reset must return to home with empty stack, got %s depth=%d", sess.Nav.Current, sess.Nav.Depth())
	}
	if sess.Preset != "" {
		t.Fatal("reset must clear the preset")
	}
	if len(sess.Cart) != 1 {
		t.Fatal("reset must not touch the cart")
	}
}
