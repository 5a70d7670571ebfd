package orders

import "sync"

// Store holds the pending restock order: sku -> quantity. It lives in process
// memory only (a restart clears the draft order, which is accepted behavior)
// and is passed explicitly to the handlers that need it.
type Store struct {
	mu  sync.Mutex
	qty map[string]int
}

func NewStore() *Store {
	return &Store{qty: make(map[string]int)}
}

// Add accumulates qty onto the sku's pending quantity.
func (s *Store) Add(sku string, qty int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.qty[sku] += qty
}

// Remove drops the sku from the pending order entirely.
func (s *Store) Remove(sku string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.qty, sku)
}

// Quantities returns a copy of the pending order.
func (s *Store) Quantities() map[string]int {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make(map[string]int, len(s.qty))
	for sku, qty := range s.qty {
		out[sku] = qty
	}
	return out
}
