package ratelimit

import "testing"

func TestAllowConsumesCapacity(t *testing.T) {
	l := New()
	for i := 0; i < 3; i++ {
		if !l.Allow("k", 3, 0) {
			t.Fatalf("expected token %d to be granted", i)
		}
	}
	if l.Allow("k", 3, 0) {
		t.Fatal("expected empty bucket to deny")
	}
}

func TestAllowIndependentKeys(t *testing.T) {
	l := New()
	if !l.Allow("a", 1, 0) {
		t.Fatal("expected first token for a")
	}
	if l.Allow("a", 1, 0) {
		t.Fatal("expected a to be exhausted")
	}
	if !l.Allow("b", 1, 0) {
		t.Fatal("expected b to have its own bucket")
	}
}
