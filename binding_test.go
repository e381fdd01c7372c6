package prop

import (
	"sync"
	"testing"
)

func TestOneWayBindPropagates(t *testing.T) {
	a := New(WithInitial(0))
	b := New(WithInitial(0))

	a.AddOneWayBind(b)

	a.Set(5)
	if b.Get() != 5 {
		t.Errorf("expected b to receive 5, got %d", b.Get())
	}

	// The reverse direction does not exist.
	b.Set(9)
	if a.Get() != 5 {
		t.Errorf("one-way bind must not propagate backwards, got %d", a.Get())
	}
}

func TestBindDoesNotSyncAtBindTime(t *testing.T) {
	a := New(WithInitial(7))
	b := New(WithInitial(0))

	a.AddOneWayBind(b)
	if b.Get() != 0 {
		t.Errorf("binding must not copy the current value, got %d", b.Get())
	}

	a.Set(8)
	if b.Get() != 8 {
		t.Errorf("first change after binding propagates, got %d", b.Get())
	}
}

func TestPropagationIsExactlyOneHop(t *testing.T) {
	a := New(WithInitial(0))
	b := New(WithInitial(0))
	c := New(WithInitial(0))

	a.AddOneWayBind(b)
	b.AddOneWayBind(c)

	cCalls := 0
	c.AddChangeCallback(func(oldValue, newValue *int) {
		cCalls++
	})

	a.Set(3)
	if b.Get() != 3 {
		t.Errorf("b should receive 3, got %d", b.Get())
	}
	if c.Get() != 0 {
		t.Errorf("propagation must stop after one hop, c got %d", c.Get())
	}
	if cCalls != 0 {
		t.Errorf("c's callbacks must not run, got %d calls", cCalls)
	}
}

func TestPropagationSkipsTargetCallbacks(t *testing.T) {
	a := New(WithInitial(0))
	b := New(WithInitial(0))
	a.AddOneWayBind(b)

	bCalls := 0
	b.AddChangeCallback(func(oldValue, newValue *int) {
		bCalls++
	})

	a.Set(4)
	if b.Get() != 4 {
		t.Errorf("expected 4, got %d", b.Get())
	}
	if bCalls != 0 {
		t.Errorf("propagation must not invoke the target's callbacks, got %d", bCalls)
	}
}

func TestPropagationRespectsTargetPipeline(t *testing.T) {
	a := New(WithInitial(0))
	b := New(
		WithInitial(0),
		WithCoerce(func(v *int) {
			if *v > 10 {
				*v = 10
			}
		}),
		WithValidator(func(v int) bool { return v >= 0 }),
	)

	a.AddOneWayBind(b)

	a.Set(25)
	if a.Get() != 25 {
		t.Errorf("source keeps its own value, got %d", a.Get())
	}
	if b.Get() != 10 {
		t.Errorf("target applies its own coercer, got %d", b.Get())
	}

	a.Set(-5)
	if b.Get() != 10 {
		t.Errorf("target's validator rejects, value must stand, got %d", b.Get())
	}
}

func TestTwoWayBindSymmetry(t *testing.T) {
	a := New(WithInitial(0))
	b := New(WithInitial(0))

	a.AddBind(b)

	aCalls := 0
	a.AddChangeCallback(func(oldValue, newValue *int) {
		aCalls++
	})
	bCalls := 0
	b.AddChangeCallback(func(oldValue, newValue *int) {
		bCalls++
	})

	a.Set(1)
	if b.Get() != 1 {
		t.Errorf("write to a should reach b, got %d", b.Get())
	}

	b.Set(2)
	if a.Get() != 2 {
		t.Errorf("write to b should reach a, got %d", a.Get())
	}

	// Each side's callbacks fire exactly once per direct write to that
	// side, never as a side effect of the other side's write.
	if aCalls != 1 {
		t.Errorf("a expected 1 callback call, got %d", aCalls)
	}
	if bCalls != 1 {
		t.Errorf("b expected 1 callback call, got %d", bCalls)
	}
}

func TestRemoveBind(t *testing.T) {
	a := New(WithInitial(0))
	b := New(WithInitial(0))

	a.AddBind(b)
	a.RemoveBind(b)

	a.Set(1)
	if b.Get() != 0 {
		t.Errorf("removed bind must not propagate, got %d", b.Get())
	}
	b.Set(2)
	if a.Get() != 1 {
		t.Errorf("removed bind must not propagate, got %d", a.Get())
	}
}

func TestOneWayToSourceBind(t *testing.T) {
	a := New(WithInitial(0))
	b := New(WithInitial(0))

	// other -> this: changes to b flow into a.
	a.AddOneWayToSourceBind(b)

	b.Set(3)
	if a.Get() != 3 {
		t.Errorf("expected 3, got %d", a.Get())
	}

	a.Set(4)
	if b.Get() != 3 {
		t.Errorf("source direction must not exist, got %d", b.Get())
	}

	a.RemoveOneWayToSourceBind(b)
	b.Set(5)
	if a.Get() != 4 {
		t.Errorf("removed bind must not propagate, got %d", a.Get())
	}
}

func TestBindIdempotent(t *testing.T) {
	a := New(WithInitial(0))
	b := New(WithInitial(0))

	a.AddOneWayBind(b)
	a.AddOneWayBind(b)

	bCalls := 0
	b.AddChangeCallback(func(oldValue, newValue *int) {
		bCalls++
	})

	a.Set(1)
	if b.Get() != 1 {
		t.Errorf("expected 1, got %d", b.Get())
	}

	a.RemoveOneWayBind(b)
	a.Set(2)
	if b.Get() != 1 {
		t.Errorf("single removal undoes a double add, got %d", b.Get())
	}
}

func TestSelfBindIsNoOp(t *testing.T) {
	a := New(WithInitial(0))

	a.AddOneWayBind(a)
	a.AddBind(a)

	// Must neither deadlock nor loop.
	a.Set(1)
	if a.Get() != 1 {
		t.Errorf("expected 1, got %d", a.Get())
	}
}

func TestManualBindingCycleIsSafe(t *testing.T) {
	// A manual three-container cycle: propagation never recurses past one
	// hop, so a write terminates after updating the direct target.
	a := New(WithInitial(0))
	b := New(WithInitial(0))
	c := New(WithInitial(0))

	a.AddOneWayBind(b)
	b.AddOneWayBind(c)
	c.AddOneWayBind(a)

	a.Set(1)
	if b.Get() != 1 {
		t.Errorf("b should receive 1, got %d", b.Get())
	}
	if c.Get() != 0 {
		t.Errorf("c must stay untouched, got %d", c.Get())
	}
}

func TestConcurrentBindMutationAndWrites(t *testing.T) {
	a := New(WithInitial(0))
	targets := make([]*Property[int], 8)
	for i := range targets {
		targets[i] = New(WithInitial(0))
	}

	var wg sync.WaitGroup
	wg.Add(len(targets) + 1)
	for _, target := range targets {
		go func(target *Property[int]) {
			defer wg.Done()
			for i := 0; i < 50; i++ {
				a.AddOneWayBind(target)
				a.RemoveOneWayBind(target)
			}
		}(target)
	}
	go func() {
		defer wg.Done()
		for i := 0; i < 200; i++ {
			a.Set(i)
		}
	}()
	wg.Wait()
}
