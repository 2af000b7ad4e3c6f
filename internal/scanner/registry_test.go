package scanner

import "testing"

func TestRegistry(t *testing.T) {
	r := NewRegistry()

	if r.IsActive("g1") {
		t.Fatal("group active before activation")
	}

	r.SetActive("g1", true)
	r.SetActive("g1", true) // idempotent
	r.SetActive("g2", true)
	r.SetActive("g3", false)

	if !r.IsActive("g1") || !r.IsActive("g2") {
		t.Fatal("activated groups not reported active")
	}
	if r.IsActive("g3") {
		t.Fatal("deactivated group reported active")
	}

	if got := len(r.ActiveIDs()); got != 2 {
		t.Fatalf("ActiveIDs() len = %d, want 2", got)
	}

	r.SetActive("g1", false)
	if r.IsActive("g1") {
		t.Fatal("group still active after deactivation")
	}
	if got := len(r.ActiveIDs()); got != 1 {
		t.Fatalf("ActiveIDs() len = %d, want 1", got)
	}
}
