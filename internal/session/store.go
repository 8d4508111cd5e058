package session

import "sync"

const shardCount = 16

// Store maps user ids to live sessions. Lookup and creation are safe under
// concurrent access from the dispatch loop; the map is sharded by user id so
// unrelated users never contend on one lock. Sessions live until process
// teardown, there is no expiry.
type Store struct {
	shards [shardCount]shard
}

type shard struct {
	mu       sync.RWMutex
	sessions map[int64]*Session
}

// NewStore returns an empty session store.
func NewStore() *Store {
	st := &Store{}
	for i := range st.shards {
		st.shards[i].sessions = make(map[int64]*Session)
	}
	return st
}

func (st *Store) shardFor(userID int64) *shard {
	return &st.shards[uint64(userID)%shardCount]
}

// GetOrCreate returns the session for userID, creating it atomically on
// first contact. Two concurrent first contacts for the same user observe
// the same session record.
func (st *Store) GetOrCreate(userID int64) *Session {
	sh := st.shardFor(userID)

	sh.mu.RLock()
	s, ok := sh.sessions[userID]
	sh.mu.RUnlock()
	if ok {
		return s
	}

	sh.mu.Lock()
	defer sh.mu.Unlock()
	if s, ok := sh.sessions[userID]; ok {
		return s
	}
	s = New(userID)
	sh.sessions[userID] = s
	return s
}

// Get returns the session for userID if one exists.
func (st *Store) Get(userID int64) (*Session, bool) {
	sh := st.shardFor(userID)
	sh.mu.RLock()
	defer sh.mu.RUnlock()
	s, ok := sh.sessions[userID]
	return s, ok
}

// Len reports how many sessions are live, across all shards.
func (st *Store) Len() int {
	total := 0
	for i := range st.shards {
		sh := &st.shards[i]
		sh.mu.RLock()
		total += len(sh.sessions)
		sh.mu.RUnlock()
	}
	return total
}
