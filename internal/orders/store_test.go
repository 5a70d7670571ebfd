package orders

import "testing"

func TestStoreAddAccumulates(t *testing.T) {
	s := NewStore()
	s.Add("RC-001", 2)
	s.Add("RC-001", 3)
	s.Add("RC-002", 1)

	got := s.Quantities()
	if got["RC-001"] != 5 {
		t.Fatalf("RC-001 qty = %d, want 5", got["RC-001"])
	}
	if got["RC-002"] != 1 {
		t.Fatalf("RC-002 qty = %d, want 1", got["RC-002"])
	}
}

func TestStoreRemove(t *testing.T) {
	s := NewStore()
	s.Add("RC-001", 2)
	s.Remove("RC-001")
	s.Remove("RC-404") // removing an absent sku is a no-op

	if got := s.Quantities(); len(got) != 0 {
		t.Fatalf("store should be empty, got %v", got)
	}
}

func TestStoreQuantitiesReturnsCopy(t *testing.T) {
	s := NewStore()
	s.Add("RC-001", 2)

	got := s.Quantities()
	got["RC-001"] = 99

	if fresh := s.Quantities(); fresh["RC-001"] != 2 {
		t.Fatalf("mutating the returned map leaked into the store: %v", fresh)
	}
}
