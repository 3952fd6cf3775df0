// stack_test.go - test-cases for the register pool.

package stack

import "testing"

// TestNotEmptyAtStart: a fresh pool has registers available.
func TestNotEmptyAtStart(t *testing.T) {
	s := New()

	if s.Empty() {
		t.Errorf("a freshly created pool should not be empty")
	}
}

// TestAcquireRelease: acquiring then releasing returns to the same state.
func TestAcquireRelease(t *testing.T) {
	s := New()
	before := s.Available()

	reg, err := s.Acquire()
	if err != nil {
		t.Fatalf("unexpected error acquiring a register: %v", err)
	}
	if reg == "" {
		t.Errorf("expected a non-empty register name")
	}
	if s.Available() != before-1 {
		t.Errorf("expected available count to drop by one")
	}

	s.Release(reg)
	if s.Available() != before {
		t.Errorf("expected available count to return to %d, got %d", before, s.Available())
	}
}

// TestExhaustionReturnsError: acquiring past the pool's capacity fails
// instead of handing out a register already on loan.
func TestExhaustionReturnsError(t *testing.T) {
	s := New()

	acquired := []string{}
	for {
		reg, err := s.Acquire()
		if err != nil {
			break
		}
		acquired = append(acquired, reg)
	}

	if len(acquired) == 0 {
		t.Fatalf("expected to acquire at least one register before exhaustion")
	}

	if !s.Empty() {
		t.Errorf("pool should report empty once exhausted")
	}

	_, err := s.Acquire()
	if err == nil {
		t.Errorf("expected an error acquiring from an exhausted pool")
	}
}

// TestRaxNeverHandedOut: rax is reserved for the accumulator and must
// never appear in the free pool.
func TestRaxNeverHandedOut(t *testing.T) {
	s := New()

	for !s.Empty() {
		reg, err := s.Acquire()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if reg == "rax" {
			t.Errorf("rax must never be handed out by the register pool")
		}
	}
}
