package session

import (
	"testing"
	"time"
)

func TestGetAbsentIsIdle(t *testing.T) {
	m := NewManager(DefaultTTL)

	s := m.Get(1)
	if s.Step != StepIdle {
		t.Errorf("Step = %v, want StepIdle", s.Step)
	}
}

func TestSetGetReset(t *testing.T) {
	m := NewManager(DefaultTTL)

	m.Set(1, Session{Step: StepAwaitName})
	if s := m.Get(1); s.Step != StepAwaitName {
		t.Errorf("Step = %v, want StepAwaitName", s.Step)
	}

	m.Reset(1)
	if s := m.Get(1); s.Step != StepIdle {
		t.Errorf("Step after reset = %v, want StepIdle", s.Step)
	}
}

func TestExpiredSessionDropsOnGet(t *testing.T) {
	m := NewManager(50 * time.Millisecond)

	m.Set(1, Session{Step: StepAwaitAddress})
	time.Sleep(80 * time.Millisecond)

	if s := m.Get(1); s.Step != StepIdle {
		t.Errorf("stale session survived: Step = %v", s.Step)
	}
}

func TestTakeIfConsumesMatchingStep(t *testing.T) {
	m := NewManager(DefaultTTL)

	m.Set(1, Session{Step: StepConfirmName, Pending: "John"})

	s, ok := m.TakeIf(1, StepConfirmName, StepConfirmAddress)
	if !ok || s.Pending != "John" {
		t.Fatalf("TakeIf = %+v, %v", s, ok)
	}
	// taken means gone: a second take finds nothing
	if _, ok := m.TakeIf(1, StepConfirmName); ok {
		t.Error("second TakeIf succeeded on a consumed session")
	}
	if s := m.Get(1); s.Step != StepIdle {
		t.Errorf("session survived the take: %v", s.Step)
	}
}

func TestTakeIfLeavesOtherStepsIntact(t *testing.T) {
	m := NewManager(DefaultTTL)

	m.Set(1, Session{Step: StepAwaitName})
	if _, ok := m.TakeIf(1, StepConfirmName); ok {
		t.Fatal("TakeIf matched a step it was not asked about")
	}
	if s := m.Get(1); s.Step != StepAwaitName {
		t.Errorf("non-matching TakeIf mutated the session: %v", s.Step)
	}
}

func TestTakeIfExpired(t *testing.T) {
	m := NewManager(50 * time.Millisecond)

	m.Set(1, Session{Step: StepConfirmPayment})
	time.Sleep(80 * time.Millisecond)

	if _, ok := m.TakeIf(1, StepConfirmPayment); ok {
		t.Error("TakeIf returned a stale session")
	}
}

func TestSweep(t *testing.T) {
	m := NewManager(time.Minute)

	m.Set(1, Session{Step: StepAwaitName})
	m.Set(2, Session{Step: StepAwaitAmount})
	m.Set(3, Session{Step: StepAwaitReceipt})

	if n := m.Sweep(time.Now()); n != 0 {
		t.Errorf("fresh sessions swept: %d", n)
	}
	if n := m.Sweep(time.Now().Add(2 * time.Minute)); n != 3 {
		t.Errorf("Sweep = %d, want 3", n)
	}
	if s := m.Get(2); s.Step != StepIdle {
		t.Errorf("session survived the sweep: %v", s.Step)
	}
}
