package reim

import "log"

func init() {
	registerHandler("window", renderWindow)
}

// renderWindow maps a window node onto a Begin/End pair, synchronizing
// position and size between the declarative layer and the toolkit.
//
// Position and size each follow the controlled/uncontrolled protocol:
// "x"/"y"/"width"/"height" are controlled (enforced every frame, user drags
// reported upward through onMove/onResize), "defaultX"/... seed the toolkit
// once and then leave it alone. A node supplying both variants of the same
// property gets the controlled one, with a warning.
func renderWindow(r *Renderer, n *ElementNode) {
	p := n.Props()
	st := n.ensureState()
	title := p.String("title", "Window")
	flags := WindowFlags(int32(finiteNumber(n, "flags", 0)))

	fullscreen := p.Bool("fullscreen", false)
	if fullscreen {
		// A fullscreen root tracks the viewport every frame and drops the
		// chrome that would let the user fight that.
		r.tk.SetNextWindowPos(Vec2{}, CondAlways)
		r.tk.SetNextWindowSize(r.tk.ViewportSize(), CondAlways)
		flags |= WindowFlagsNoTitleBar | WindowFlagsNoResize | WindowFlagsNoMove | WindowFlagsNoCollapse
	} else {
		syncWindowPair(r, n, &st.pos, "x", "y", "defaultX", "defaultY", false)
		syncWindowPair(r, n, &st.size, "width", "height", "defaultWidth", "defaultHeight", true)
	}

	if bg, ok := colorProp(n, "background"); ok {
		r.tk.PushStyleColor(StyleColorWindowBg, bg.Vec4())
		defer r.tk.PopStyleColor(1)
	}

	var openPtr *bool
	open := true
	if p.Has("open") {
		open = p.Bool("open", true)
		openPtr = &open
	}
	wasOpen := open

	visible := r.tk.BeginWindow(title, openPtr, flags)
	// End must be issued whether or not the window is visible; the toolkit
	// requires the pair balanced regardless of collapse state.
	defer r.tk.EndWindow()

	if !fullscreen {
		// Same-frame read-back: a delta against the cache is either the echo
		// of a value we just forced, or a live user drag/resize. Both are
		// reported upward so the declarative layer can keep its state closed
		// over the loop.
		if windowPairControlled(p, "x", "y") {
			pos := r.tk.WindowPos()
			if st.pos.observe(pos.X, pos.Y) {
				r.invoke(n, "onMove", pairPayload("x", pos.X, "y", pos.Y))
			}
		}
		if windowPairControlled(p, "width", "height") {
			size := r.tk.WindowSize()
			if st.size.observe(size.X, size.Y) {
				r.invoke(n, "onResize", pairPayload("width", size.X, "height", size.Y))
			}
		}
	}

	// Notify only on the open-to-closed transition; a window the declarative
	// layer keeps submitting as closed already knows it is closed.
	if openPtr != nil && wasOpen && !open {
		r.invoke(n, "onClose", Nil())
	}

	if visible {
		r.renderChildren(n)
	}
}

// windowPairControlled reports whether either component of a logical window
// pair is supplied as a controlled prop.
func windowPairControlled(p *Props, keyX, keyY string) bool {
	return p.Has(keyX) || p.Has(keyY)
}

// syncWindowPair issues the set-next-window directive for one logical pair
// (position or size) according to the sync state machine.
func syncWindowPair(r *Renderer, n *ElementNode, s *pairSync, keyX, keyY, defKeyX, defKeyY string, isSize bool) {
	p := n.Props()
	st := n.ensureState()
	controlled := windowPairControlled(p, keyX, keyY)
	hasDefault := p.Has(defKeyX) || p.Has(defKeyY)

	if controlled && hasDefault && !st.conflictWarned {
		st.conflictWarned = true
		log.Printf("reim: node %d (window) supplies both controlled and default %s/%s, preferring controlled", n.ID(), keyX, keyY)
	}

	read := func(kx, ky string) (float32, float32) {
		if isSize {
			return float32(positiveSize(n, kx, 100)), float32(positiveSize(n, ky, 100))
		}
		return float32(finiteNumber(n, kx, 0)), float32(finiteNumber(n, ky, 0))
	}

	switch {
	case controlled:
		x, y := read(keyX, keyY)
		if s.shouldWrite(x, y) {
			r.setWindowPair(Vec2{X: x, Y: y}, CondAlways, isSize)
		}
	case hasDefault:
		// Set-once: issued on first encounter only; later prop changes
		// never re-issue the directive.
		if !s.initialized() {
			x, y := read(defKeyX, defKeyY)
			r.setWindowPair(Vec2{X: x, Y: y}, CondOnce, isSize)
			s.seed(x, y)
		}
	}
}

func (r *Renderer) setWindowPair(v Vec2, cond Cond, isSize bool) {
	if isSize {
		r.tk.SetNextWindowSize(v, cond)
	} else {
		r.tk.SetNextWindowPos(v, cond)
	}
}

// pairPayload builds a two-field map payload for upward notifications.
func pairPayload(k1 string, v1 float32, k2 string, v2 float32) Value {
	m := NewProps()
	m.Set(k1, Number(float64(v1)))
	m.Set(k2, Number(float64(v2)))
	return Map(m)
}
