package session

import (
	"sync"
	"testing"
)

func TestMemoryStoreRoundTrip(t *testing.T) {
	store := NewMemoryStore("")

	if got := store.Get(); got != "" {
		t.Errorf("new store Get() = %q, want empty", got)
	}

	store.Set("token-123")
	if got := store.Get(); got != "token-123" {
		t.Errorf("Get() after Set = %q, want %q", got, "token-123")
	}

	store.Clear()
	if got := store.Get(); got != "" {
		t.Errorf("Get() after Clear = %q, want empty", got)
	}
}

func TestMemoryStoreSeededToken(t *testing.T) {
	store := NewMemoryStore("seeded")
	if got := store.Get(); got != "seeded" {
		t.Errorf("Get() = %q, want %q", got, "seeded")
	}
}

func TestMemoryStoreConcurrentAccess(t *testing.T) {
	store := NewMemoryStore("initial")

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			store.Set("token")
		}()
		go func() {
			defer wg.Done()
			_ = store.Get()
		}()
	}
	wg.Wait()

	store.Clear()
	if got := store.Get(); got != "" {
		t.Errorf("Get() after Clear = %q, want empty", got)
	}
}
