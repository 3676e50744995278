package ffi

// Vec2 is a 2D point or extent in toolkit coordinates.
type Vec2 struct {
	X, Y float32
}

// Cond controls when a Set-next-window directive applies, mirroring the
// toolkit's condition flags.
type Cond int32

const (
	// CondAlways applies the directive every frame (controlled props).
	CondAlways Cond = 1
	// CondOnce applies it only the first time the window is submitted
	// (uncontrolled "default" props).
	CondOnce Cond = 2
)

// WindowFlags is a bitmask of window behavior flags, matching the toolkit's
// encoding.
type WindowFlags int32

const (
	WindowFlagsNone             WindowFlags = 0
	WindowFlagsNoTitleBar       WindowFlags = 1 << 0
	WindowFlagsNoResize         WindowFlags = 1 << 1
	WindowFlagsNoMove           WindowFlags = 1 << 2
	WindowFlagsNoScrollbar      WindowFlags = 1 << 3
	WindowFlagsNoCollapse       WindowFlags = 1 << 5
	WindowFlagsAlwaysAutoResize WindowFlags = 1 << 6
)

// StyleColor selects a style-stack color slot.
type StyleColor int32

const (
	StyleColorText     StyleColor = 0
	StyleColorWindowBg StyleColor = 2
	StyleColorButton   StyleColor = 21
)

// TextureID references a toolkit-side texture produced by image loading.
type TextureID uintptr
