package reim

// This file implements the controlled/uncontrolled synchronization protocol
// for host-primitive state the toolkit also owns (window position and size).
//
// Controlled: the declarative layer supplies the value every render. The
// cache of the last synced value disambiguates "declarative layer changed it
// since last frame" (cache differs from prop: force-write with an always
// directive) from "it did not" (skip the write and instead read the
// toolkit's live value back; a delta against the cache is user interaction
// to report upward). Only force-writing on demonstrated declarative change
// is what keeps the bridge from fighting a live drag gesture.
//
// Uncontrolled: the declarative layer supplies an initial value only; the
// directive is issued once with the toolkit's "first use" condition and the
// toolkit owns the value from then on.

// syncState tracks one controlled property pair through its tiny state
// machine: Uninitialized (first frame always force-writes) and Synced.
type syncState uint8

const (
	syncUninitialized syncState = iota
	syncSynced
)

// pairSync caches the last-synced value of a two-component property.
type pairSync struct {
	state syncState
	x, y  float32
}

// shouldWrite reports whether the declarative value must be forced into the
// toolkit this frame: always on the first frame, then only when the prop
// demonstrably changed against the cache.
func (s *pairSync) shouldWrite(x, y float32) bool {
	return s.state == syncUninitialized || s.x != x || s.y != y
}

// observe folds the toolkit's live value back into the cache and reports
// whether an upward change notification should fire. It runs after the
// widget was submitted, whether or not a write happened: a write echoes the
// new declarative value upward once, a drag surfaces user interaction.
func (s *pairSync) observe(x, y float32) bool {
	if s.state == syncUninitialized || s.x != x || s.y != y {
		s.state = syncSynced
		s.x, s.y = x, y
		return true
	}
	return false
}

// seed records an uncontrolled initial value. Subsequent prop changes never
// re-issue the directive; the cache keeps the seeded value for the node's
// lifetime.
func (s *pairSync) seed(x, y float32) {
	s.state = syncSynced
	s.x, s.y = x, y
}

// initialized reports whether the property has been synced at least once.
func (s *pairSync) initialized() bool {
	return s.state != syncUninitialized
}

// last returns the cached value.
func (s *pairSync) last() (float32, float32) {
	return s.x, s.y
}

// nodeState is the per-node transient cache render handlers persist across
// frames. It never outlives the node and is dropped when the node leaves
// the tree.
type nodeState struct {
	pos  pairSync
	size pairSync

	// One-shot warning latches so per-frame logs don't flood.
	conflictWarned bool
	unknownWarned  bool

	// Uncontrolled widget values (seeded from default* props on first
	// encounter, then owned here on the toolkit's behalf).
	checked     bool
	checkedInit bool
	slider      float32
	sliderInit  bool
	text        string
	textInit    bool
}
