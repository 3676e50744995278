package reim

import "github.com/agiangrant/reim/internal/ffi"

// Re-exported toolkit value types, for consumer convenience and so the
// purego-backed implementation in internal/ffi satisfies Toolkit directly.
type (
	Vec2        = ffi.Vec2
	Cond        = ffi.Cond
	WindowFlags = ffi.WindowFlags
	StyleColor  = ffi.StyleColor
	TextureID   = ffi.TextureID
)

const (
	CondAlways = ffi.CondAlways
	CondOnce   = ffi.CondOnce

	WindowFlagsNone             = ffi.WindowFlagsNone
	WindowFlagsNoTitleBar       = ffi.WindowFlagsNoTitleBar
	WindowFlagsNoResize         = ffi.WindowFlagsNoResize
	WindowFlagsNoMove           = ffi.WindowFlagsNoMove
	WindowFlagsNoScrollbar      = ffi.WindowFlagsNoScrollbar
	WindowFlagsNoCollapse       = ffi.WindowFlagsNoCollapse
	WindowFlagsAlwaysAutoResize = ffi.WindowFlagsAlwaysAutoResize

	StyleColorText     = ffi.StyleColorText
	StyleColorWindowBg = ffi.StyleColorWindowBg
	StyleColorButton   = ffi.StyleColorButton
)

// Toolkit is the immediate-mode surface the renderer draws against. The
// production implementation is the purego binding in internal/ffi; tests use
// an in-package recording fake. All methods are synchronous and must be
// called from the single render thread.
//
// Begin/End pairs follow the toolkit's balancing contract: EndWindow,
// EndChild and EndGroup must be called whether or not the matching begin
// reported the region visible; TreePop is called only when TreeNode returned
// open.
type Toolkit interface {
	// Identity stack. Every shadow node's id is pushed around its handler so
	// structurally identical widgets cannot alias internal widget state.
	PushID(id uint64)
	PopID()

	// Windows.
	SetNextWindowPos(pos Vec2, cond Cond)
	SetNextWindowSize(size Vec2, cond Cond)
	BeginWindow(title string, open *bool, flags WindowFlags) bool
	EndWindow()
	WindowPos() Vec2
	WindowSize() Vec2

	// Containers.
	BeginChild(id string, size Vec2, border bool) bool
	EndChild()
	BeginGroup()
	EndGroup()
	CollapsingHeader(label string) bool
	TreeNode(label string) bool
	TreePop()

	// Leaves. Single-shot calls return the interaction result for this frame.
	TextUnformatted(text string)
	BulletText(text string)
	Button(label string, size Vec2) bool
	SmallButton(label string) bool
	Checkbox(label string, value *bool) bool
	SliderFloat(label string, value *float32, min, max float32, format string) bool
	InputText(label string, buf []byte) bool
	Image(tex TextureID, size Vec2)

	// Layout.
	Separator()
	Spacing()
	SameLine(offsetX, spacing float32)
	Indent(width float32)
	Unindent(width float32)
	Dummy(size Vec2)

	// Style stack.
	PushStyleColor(idx StyleColor, rgba [4]float32)
	PopStyleColor(count int32)

	// Queries.
	CursorScreenPos() Vec2
	ViewportSize() Vec2

	// Draw-list primitives, addressed to the current window's draw list.
	// Colors use the packed integer encoding (Color.Packed).
	AddRectFilled(min, max Vec2, col uint32, rounding float32)
	AddRect(min, max Vec2, col uint32, rounding, thickness float32)
	AddCircle(center Vec2, radius float32, col uint32, thickness float32)
	AddCircleFilled(center Vec2, radius float32, col uint32)
	AddLine(p1, p2 Vec2, col uint32, thickness float32)

	// Image loading through the runtime's image table.
	LoadTexture(path string) (TextureID, Vec2, error)
}
