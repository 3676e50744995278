package reim

import (
	"log"
	"time"

	"github.com/agiangrant/reim/internal/arena"
)

// handlerFunc renders one element node. Handlers read props, marshal through
// the frame arena, issue toolkit calls and recurse into children for
// container primitives.
type handlerFunc func(r *Renderer, n *ElementNode)

// handlers dispatches on the node's kind tag. Registered across the
// handler files in this package.
var handlers = map[string]handlerFunc{}

func registerHandler(kind string, h handlerFunc) {
	handlers[kind] = h
}

// FrameStats summarizes render-pass work, in the spirit of the runtime's
// perf metrics overlay.
type FrameStats struct {
	Frames       uint64
	Nodes        int           // nodes visited last frame
	LastDuration time.Duration // wall time of the last frame
	AvgDuration  time.Duration // exponential moving average
}

// Renderer walks the committed shadow-tree snapshot once per frame and maps
// every node onto immediate-mode toolkit calls. It owns the frame arena and
// the image registry; neither is safe to touch off the render thread.
type Renderer struct {
	tk        Toolkit
	container *RootContainer
	scratch   *arena.Arena
	images    *imageRegistry
	stats     FrameStats

	// Canvas origin stack for draw-list shapes nested under canvas nodes.
	canvasStack []Vec2
}

// NewRenderer creates a renderer over the given toolkit and container.
// scratch may be nil, in which case a default-sized arena is created.
func NewRenderer(tk Toolkit, container *RootContainer, scratch *arena.Arena) *Renderer {
	if scratch == nil {
		scratch = arena.New(0)
	}
	return &Renderer{
		tk:        tk,
		container: container,
		scratch:   scratch,
		images:    newImageRegistry(tk),
	}
}

// Stats returns the renderer's frame statistics.
func (r *Renderer) Stats() FrameStats { return r.stats }

// RenderFrame is the single per-frame entry point. It renders the last
// committed snapshot in full and returns only after every widget for this
// frame has been emitted. Recoverable failures (bad props, a panicking
// handler or callback) are absorbed and logged; nothing unwinds past this
// call short of frame-scratch exhaustion.
func (r *Renderer) RenderFrame() {
	start := time.Now()
	r.stats.Nodes = 0

	snapshot := r.container.Snapshot()
	r.checkFullscreenSingleton(snapshot)
	for _, n := range snapshot {
		r.renderNode(n)
	}

	// Bulk-free everything handlers marshalled this frame.
	r.scratch.Reset()
	r.canvasStack = r.canvasStack[:0]

	r.stats.Frames++
	r.stats.LastDuration = time.Since(start)
	if r.stats.AvgDuration == 0 {
		r.stats.AvgDuration = r.stats.LastDuration
	} else {
		r.stats.AvgDuration = (r.stats.AvgDuration*7 + r.stats.LastDuration) / 8
	}
}

// renderNode pushes the node's identity, dispatches to its handler and
// recurses. The ID-stack pop is deferred before the handler runs, so the
// stack stays balanced on every exit path, including a panicking handler;
// the recover boundary above the pop keeps one broken node from taking the
// remaining siblings down with it.
func (r *Renderer) renderNode(n Node) {
	r.stats.Nodes++

	defer func() {
		if rec := recover(); rec != nil {
			log.Printf("reim: render handler for node %d panicked: %v", n.ID(), rec)
		}
	}()
	r.tk.PushID(uint64(n.ID()))
	defer r.tk.PopID()

	switch node := n.(type) {
	case *TextNode:
		r.tk.TextUnformatted(node.Text())
	case *ElementNode:
		h, ok := handlers[node.Kind()]
		if !ok {
			// Unknown kinds pass children through so the tree stays
			// visually complete when a handler is missing.
			st := node.ensureState()
			if !st.unknownWarned {
				st.unknownWarned = true
				log.Printf("reim: no render handler for kind %q (node %d), rendering children", node.Kind(), node.ID())
			}
			r.renderChildren(node)
			return
		}
		h(r, node)
	}
}

func (r *Renderer) renderChildren(n *ElementNode) {
	for _, child := range n.Children() {
		r.renderNode(child)
	}
}

// invoke calls a declarative-layer callback stored under name, if present.
// A panic inside user code is caught here, at the invocation boundary, so a
// broken click handler cannot break rendering for the rest of the tree.
func (r *Renderer) invoke(n *ElementNode, name string, payload Value) {
	cb := n.Props().Callback(name)
	if cb == nil {
		return
	}
	defer func() {
		if rec := recover(); rec != nil {
			log.Printf("reim: %s callback on node %d panicked: %v", name, n.ID(), rec)
		}
	}()
	cb(payload)
}

// checkFullscreenSingleton enforces the at-most-one-fullscreen-root
// invariant. Violations log and keep rendering; the later windows will
// fight over the viewport but the frame stays complete.
func (r *Renderer) checkFullscreenSingleton(snapshot []Node) {
	count := 0
	for _, n := range snapshot {
		el, ok := n.(*ElementNode)
		if ok && el.Kind() == "window" && el.Props().Bool("fullscreen", false) {
			count++
		}
	}
	if count > 1 {
		log.Printf("reim: %d fullscreen windows in one frame, expected at most one", count)
	}
}

// pushCanvas/popCanvas bracket a canvas node's children so shape nodes can
// resolve coordinates relative to their canvas origin.
func (r *Renderer) pushCanvas(origin Vec2) {
	r.canvasStack = append(r.canvasStack, origin)
}

func (r *Renderer) popCanvas() {
	if len(r.canvasStack) > 0 {
		r.canvasStack = r.canvasStack[:len(r.canvasStack)-1]
	}
}

// canvasOrigin returns the innermost canvas origin. Shape nodes outside any
// canvas draw at the current cursor position instead.
func (r *Renderer) canvasOrigin() Vec2 {
	if len(r.canvasStack) == 0 {
		return r.tk.CursorScreenPos()
	}
	return r.canvasStack[len(r.canvasStack)-1]
}
