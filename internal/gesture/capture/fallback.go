package capture

import "time"

// FallbackCooldown is how long FallbackSource waits before retrying a
// source that previously failed to open, per spec.md §7's 2s cooldown.
const FallbackCooldown = 2 * time.Second

// FallbackSource tries each candidate Source in order, falling back to the
// next on open failure or on the first read that returns an error or no
// frame, and retrying a failed source only after FallbackCooldown has
// elapsed.
type FallbackSource struct {
	candidates []func() (Source, error)
	addrs      []string
	kinds      []Kind

	active     Source
	activeIdx  int
	lastFailAt []time.Time
}

// NewFallbackSource builds a FallbackSource that tries kinds (against the
// matching addrs) in order.
func NewFallbackSource(kinds []Kind, addrs []string) *FallbackSource {
	return &FallbackSource{
		kinds:      kinds,
		addrs:      addrs,
		activeIdx:  -1,
		lastFailAt: make([]time.Time, len(kinds)),
	}
}

func (f *FallbackSource) openNext(now time.Time) bool {
	for i := 0; i < len(f.kinds); i++ {
		idx := (f.activeIdx + 1 + i) % len(f.kinds)
		if !f.lastFailAt[idx].IsZero() && now.Sub(f.lastFailAt[idx]) < FallbackCooldown {
			continue
		}
		src, err := New(f.kinds[idx], f.addrs[idx])
		if err != nil || !src.Opened() {
			f.lastFailAt[idx] = now
			continue
		}
		f.active = src
		f.activeIdx = idx
		return true
	}
	return false
}

// Read returns the next frame from whichever source is currently active,
// switching to the next candidate on failure.
func (f *FallbackSource) Read() (RawFrame, bool, error) {
	now := time.Now()
	if f.active == nil {
		if !f.openNext(now) {
			return RawFrame{}, false, nil
		}
	}

	frame, ok, err := f.active.Read()
	if err != nil || !ok {
		f.lastFailAt[f.activeIdx] = now
		f.active.Release()
		f.active = nil
		if f.openNext(now) {
			return f.active.Read()
		}
		return RawFrame{}, false, err
	}
	return frame, true, nil
}

// Opened reports whether a source is currently active.
func (f *FallbackSource) Opened() bool {
	return f.active != nil && f.active.Opened()
}

// Release releases the currently active source, if any.
func (f *FallbackSource) Release() {
	if f.active != nil {
		f.active.Release()
		f.active = nil
	}
}
