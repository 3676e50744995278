package reim

import (
	"log"
	"math"
)

// Shared prop validation for render handlers. Numeric garbage never crosses
// the FFI boundary: non-finite values fall back to the handler's documented
// default with an error log, and malformed colors fall back to opaque white.

// finiteNumber reads a numeric prop, substituting def when the key is absent
// or the value is NaN/Inf.
func finiteNumber(n *ElementNode, key string, def float64) float64 {
	v := n.Props().Number(key, def)
	if math.IsNaN(v) || math.IsInf(v, 0) {
		log.Printf("reim: node %d (%s): prop %q is not finite, using %v", n.ID(), n.Kind(), key, def)
		return def
	}
	return v
}

// positiveSize reads a size prop, additionally rejecting non-positive
// values.
func positiveSize(n *ElementNode, key string, def float64) float64 {
	v := finiteNumber(n, key, def)
	if v <= 0 {
		if n.Props().Has(key) {
			log.Printf("reim: node %d (%s): prop %q must be positive, using %v", n.ID(), n.Kind(), key, def)
		}
		return def
	}
	return v
}

// colorProp reads and parses a color prop, logging on malformed input.
// The second return is false when the key is absent entirely.
func colorProp(n *ElementNode, key string) (Color, bool) {
	v, ok := n.Props().Get(key)
	if !ok {
		return White, false
	}
	c, err := ParseColor(v)
	if err != nil {
		log.Printf("reim: node %d (%s): prop %q: %v, using opaque white", n.ID(), n.Kind(), key, err)
	}
	return c, true
}

// sizeVec assembles an optional width/height pair, with zero meaning
// "let the toolkit decide" as usual for immediate-mode widgets.
func sizeVec(n *ElementNode) Vec2 {
	return Vec2{
		X: float32(finiteNumber(n, "width", 0)),
		Y: float32(finiteNumber(n, "height", 0)),
	}
}
