package mix

import "testing"

func TestRegistry_AddAndGet(t *testing.T) {
	t.Parallel()

	var r registry
	h := r.add(voice{loopCount: 3})

	v := r.get(h)
	if v == nil {
		t.Fatal("get() returned nil for a live handle")
	}
	if v.loopCount != 3 {
		t.Errorf("voice loopCount = %d, want 3", v.loopCount)
	}
	if r.live != 1 {
		t.Errorf("live = %d, want 1", r.live)
	}
}

func TestRegistry_ZeroHandleNeverResolves(t *testing.T) {
	t.Parallel()

	var r registry
	r.add(voice{})

	var zero Handle
	if !zero.None() {
		t.Error("zero Handle is not None")
	}
	if r.get(zero) != nil {
		t.Error("get(zero handle) resolved to a voice")
	}
}

func TestRegistry_RetireInvalidatesHandle(t *testing.T) {
	t.Parallel()

	var r registry
	h := r.add(voice{})
	r.retire(h.idx)

	if r.get(h) != nil {
		t.Error("get() resolved a retired handle")
	}
	if r.live != 0 {
		t.Errorf("live = %d, want 0", r.live)
	}

	// The slot is reused but the old handle must stay dead.
	h2 := r.add(voice{loopCount: 7})
	if h2.idx != h.idx {
		t.Fatalf("slot not reused: idx %d, want %d", h2.idx, h.idx)
	}
	if h2.gen == h.gen {
		t.Fatal("generation not bumped on reuse")
	}
	if r.get(h) != nil {
		t.Error("stale handle resolved after slot reuse")
	}
	if v := r.get(h2); v == nil || v.loopCount != 7 {
		t.Error("fresh handle did not resolve to the new voice")
	}
}

func TestRegistry_OutOfRangeHandle(t *testing.T) {
	t.Parallel()

	var r registry
	r.add(voice{})

	if r.get(Handle{idx: 99, gen: 1}) != nil {
		t.Error("get() resolved an out-of-range index")
	}
	if r.get(Handle{idx: -5, gen: 1}) != nil {
		t.Error("get() resolved a negative index")
	}
}

func TestRegistry_Clear(t *testing.T) {
	t.Parallel()

	var r registry
	h1 := r.add(voice{})
	h2 := r.add(voice{})
	r.clear()

	if r.live != 0 {
		t.Errorf("live after clear = %d, want 0", r.live)
	}
	if r.get(h1) != nil || r.get(h2) != nil {
		t.Error("handles resolved after clear")
	}
}
