package reim

// Draw-list primitives. A canvas node reserves layout space and establishes
// an origin; rect/circle/line children position themselves relative to the
// innermost canvas and emit through the current window's draw list using
// packed colors.

func init() {
	registerHandler("canvas", renderCanvas)
	registerHandler("rect", renderRect)
	registerHandler("circle", renderCircle)
	registerHandler("line", renderLine)
}

func renderCanvas(r *Renderer, n *ElementNode) {
	size := Vec2{
		X: float32(positiveSize(n, "width", 100)),
		Y: float32(positiveSize(n, "height", 100)),
	}
	origin := r.tk.CursorScreenPos()
	r.tk.Dummy(size)

	r.pushCanvas(origin)
	defer r.popCanvas()
	r.renderChildren(n)
}

func shapeColor(n *ElementNode) uint32 {
	c, _ := colorProp(n, "color")
	return c.Packed()
}

func renderRect(r *Renderer, n *ElementNode) {
	origin := r.canvasOrigin()
	min := Vec2{
		X: origin.X + float32(finiteNumber(n, "x", 0)),
		Y: origin.Y + float32(finiteNumber(n, "y", 0)),
	}
	max := Vec2{
		X: min.X + float32(positiveSize(n, "width", 10)),
		Y: min.Y + float32(positiveSize(n, "height", 10)),
	}
	rounding := float32(finiteNumber(n, "rounding", 0))
	if n.Props().Bool("filled", true) {
		r.tk.AddRectFilled(min, max, shapeColor(n), rounding)
	} else {
		thickness := float32(positiveSize(n, "thickness", 1))
		r.tk.AddRect(min, max, shapeColor(n), rounding, thickness)
	}
}

func renderCircle(r *Renderer, n *ElementNode) {
	origin := r.canvasOrigin()
	center := Vec2{
		X: origin.X + float32(finiteNumber(n, "cx", 0)),
		Y: origin.Y + float32(finiteNumber(n, "cy", 0)),
	}
	radius := float32(positiveSize(n, "radius", 5))
	if n.Props().Bool("filled", true) {
		r.tk.AddCircleFilled(center, radius, shapeColor(n))
	} else {
		thickness := float32(positiveSize(n, "thickness", 1))
		r.tk.AddCircle(center, radius, shapeColor(n), thickness)
	}
}

func renderLine(r *Renderer, n *ElementNode) {
	origin := r.canvasOrigin()
	p1 := Vec2{
		X: origin.X + float32(finiteNumber(n, "x1", 0)),
		Y: origin.Y + float32(finiteNumber(n, "y1", 0)),
	}
	p2 := Vec2{
		X: origin.X + float32(finiteNumber(n, "x2", 0)),
		Y: origin.Y + float32(finiteNumber(n, "y2", 0)),
	}
	thickness := float32(positiveSize(n, "thickness", 1))
	r.tk.AddLine(p1, p2, shapeColor(n), thickness)
}
