package mix

// Handle identifies one voice in the mixer. Handles stay safe after
// the voice finishes: the slot's generation is bumped on retirement,
// so a stale handle simply stops resolving. The zero Handle never
// resolves and is the "no voice" sentinel.
type Handle struct {
	idx int32
	gen uint32
}

// None reports whether h is the zero "no voice" sentinel.
func (h Handle) None() bool { return h.gen == 0 }
