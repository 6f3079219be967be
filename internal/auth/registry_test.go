package auth

import (
	"fmt"
	"sync"
	"testing"
)

func TestRegistryBasics(t *testing.T) {
	reg := NewRegistry()
	if reg.Contains("a") {
		t.Fatalf("empty registry should not contain anything")
	}
	reg.Add("a")
	if !reg.Contains("a") {
		t.Fatalf("token missing after Add")
	}
	reg.Remove("a")
	if reg.Contains("a") {
		t.Fatalf("token present after Remove")
	}
	// Removing again must be a no-op.
	reg.Remove("a")
	if got := reg.Len(); got != 0 {
		t.Fatalf("Len = %d, want 0", got)
	}
	reg.Add("")
	if got := reg.Len(); got != 0 {
		t.Fatalf("empty token was registered")
	}
}

func TestRegistryConcurrentAccess(t *testing.T) {
	reg := NewRegistry()
	const workers = 32
	const perWorker = 200

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := 0; i < perWorker; i++ {
				token := fmt.Sprintf("token-%d-%d", w, i)
				reg.Add(token)
				if !reg.Contains(token) {
					t.Errorf("lost update for %s", token)
					return
				}
				if i%2 == 0 {
					reg.Remove(token)
				}
			}
		}(w)
	}
	wg.Wait()

	if got, want := reg.Len(), workers*perWorker/2; got != want {
		t.Fatalf("Len = %d, want %d", got, want)
	}
}
