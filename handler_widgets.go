package reim

import (
	"log"
	"unicode/utf8"
)

func init() {
	registerHandler("text", renderText)
	registerHandler("bullet-text", renderBulletText)
	registerHandler("button", renderButton)
	registerHandler("small-button", renderSmallButton)
	registerHandler("checkbox", renderCheckbox)
	registerHandler("slider", renderSlider)
	registerHandler("input-text", renderInputText)
}

func renderText(r *Renderer, n *ElementNode) {
	if c, ok := colorProp(n, "color"); ok {
		r.tk.PushStyleColor(StyleColorText, c.Vec4())
		defer r.tk.PopStyleColor(1)
	}
	r.tk.TextUnformatted(n.Props().String("text", ""))
}

func renderBulletText(r *Renderer, n *ElementNode) {
	r.tk.BulletText(n.Props().String("text", ""))
}

func renderButton(r *Renderer, n *ElementNode) {
	label := n.Props().String("label", "")
	if r.tk.Button(label, sizeVec(n)) {
		r.invoke(n, "onClick", Nil())
	}
}

func renderSmallButton(r *Renderer, n *ElementNode) {
	if r.tk.SmallButton(n.Props().String("label", "")) {
		r.invoke(n, "onClick", Nil())
	}
}

// renderCheckbox submits a checkbox. Controlled ("checked") enforces the
// prop every frame and only reports toggles upward; uncontrolled seeds the
// node cache from "defaultChecked" once and lets the toolkit toggle it.
func renderCheckbox(r *Renderer, n *ElementNode) {
	p := n.Props()
	st := n.ensureState()
	label := p.String("label", "")

	if p.Has("checked") {
		warnControlledConflict(n, st, "checked", "defaultChecked")
		v := p.Bool("checked", false)
		if r.tk.Checkbox(label, &v) {
			r.invoke(n, "onChange", Bool(v))
		}
		return
	}

	if !st.checkedInit {
		st.checkedInit = true
		st.checked = p.Bool("defaultChecked", false)
	}
	if r.tk.Checkbox(label, &st.checked) {
		r.invoke(n, "onChange", Bool(st.checked))
	}
}

// renderSlider submits a float slider over [min, max] (default [0, 1]).
// A reversed or non-finite range falls back to the default with a log.
func renderSlider(r *Renderer, n *ElementNode) {
	p := n.Props()
	st := n.ensureState()
	label := p.String("label", "")
	format := p.String("format", "")

	min := float32(finiteNumber(n, "min", 0))
	max := float32(finiteNumber(n, "max", 1))
	if min >= max {
		log.Printf("reim: node %d (slider): empty range [%v, %v], using [0, 1]", n.ID(), min, max)
		min, max = 0, 1
	}

	if p.Has("value") {
		warnControlledConflict(n, st, "value", "defaultValue")
		v := clampRange(float32(finiteNumber(n, "value", float64(min))), min, max)
		if r.tk.SliderFloat(label, &v, min, max, format) {
			r.invoke(n, "onChange", Number(float64(v)))
		}
		return
	}

	if !st.sliderInit {
		st.sliderInit = true
		st.slider = clampRange(float32(finiteNumber(n, "defaultValue", float64(min))), min, max)
	}
	if r.tk.SliderFloat(label, &st.slider, min, max, format) {
		r.invoke(n, "onChange", Number(float64(st.slider)))
	}
}

// renderInputText submits a single-line text field. The edit buffer lives in
// the frame arena; its contents are copied out before the bulk free.
func renderInputText(r *Renderer, n *ElementNode) {
	p := n.Props()
	st := n.ensureState()
	label := p.String("label", "")

	maxLen := int(finiteNumber(n, "maxLength", 256))
	if maxLen < 1 || maxLen > 1<<16 {
		log.Printf("reim: node %d (input-text): maxLength %d out of range, using 256", n.ID(), maxLen)
		maxLen = 256
	}

	controlled := p.Has("value")
	current := st.text
	if controlled {
		warnControlledConflict(n, st, "value", "defaultValue")
		current = p.String("value", "")
	} else if !st.textInit {
		st.textInit = true
		st.text = p.String("defaultValue", "")
		current = st.text
	}
	if len(current) > maxLen {
		// Back up to a rune boundary so the buffer never holds a split
		// multi-byte sequence.
		cut := maxLen
		for cut > 0 && !utf8.RuneStart(current[cut]) {
			cut--
		}
		current = current[:cut]
	}

	buf := r.scratch.Alloc(maxLen + 1)
	copy(buf, current)

	if r.tk.InputText(label, buf) {
		edited := cstring(buf)
		if !controlled {
			st.text = edited
		}
		r.invoke(n, "onChange", String(edited))
	}
}

// warnControlledConflict logs once per node when both the controlled and
// default variant of a logical prop are supplied.
func warnControlledConflict(n *ElementNode, st *nodeState, key, defKey string) {
	if n.Props().Has(defKey) && !st.conflictWarned {
		st.conflictWarned = true
		log.Printf("reim: node %d (%s) supplies both %q and %q, preferring controlled %q", n.ID(), n.Kind(), key, defKey, key)
	}
}

func clampRange(v, min, max float32) float32 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}

// cstring returns the NUL-terminated prefix of buf as a Go string.
func cstring(buf []byte) string {
	for i, b := range buf {
		if b == 0 {
			return string(buf[:i])
		}
	}
	return string(buf)
}
