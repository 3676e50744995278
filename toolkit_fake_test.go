package reim

import (
	"errors"
	"fmt"
	"strings"
)

var errFakeLoad = errors.New("no such image")

// fakeToolkit is an in-memory Toolkit that records every call and simulates
// just enough toolkit-side state (window geometry, widget interactions) to
// exercise the renderer and the controlled/uncontrolled sync protocol.
type fakeToolkit struct {
	ops []string

	idDepth    int
	maxIDDepth int

	// Simulated per-window geometry, keyed by title. Pending set-next
	// directives apply at the next BeginWindow.
	windows       map[string]*fakeWindow
	pendingPos    *pendingSet
	pendingSize   *pendingSet
	currentWindow string

	// Scripted interactions for the next matching call.
	windowVisible   bool
	childVisible    bool
	closeWindow     bool
	buttonPressed   bool
	checkboxToggle  bool
	sliderDragTo    *float32
	inputTypes      string
	treeOpen        bool
	headerOpen      bool
	dragWindowTo    *Vec2 // applied to the current window at BeginWindow
	viewport        Vec2
	loadTextureErr  error
	loadTextureSize Vec2
}

type fakeWindow struct {
	pos, size Vec2
	seen      bool
}

type pendingSet struct {
	v    Vec2
	cond Cond
}

func newFakeToolkit() *fakeToolkit {
	return &fakeToolkit{
		windows:         make(map[string]*fakeWindow),
		windowVisible:   true,
		childVisible:    true,
		treeOpen:        true,
		headerOpen:      true,
		viewport:        Vec2{X: 1280, Y: 720},
		loadTextureSize: Vec2{X: 64, Y: 64},
	}
}

func (f *fakeToolkit) record(format string, args ...any) {
	f.ops = append(f.ops, fmt.Sprintf(format, args...))
}

// count returns how many recorded ops start with prefix.
func (f *fakeToolkit) count(prefix string) int {
	n := 0
	for _, op := range f.ops {
		if strings.HasPrefix(op, prefix) {
			n++
		}
	}
	return n
}

func (f *fakeToolkit) PushID(id uint64) {
	f.idDepth++
	if f.idDepth > f.maxIDDepth {
		f.maxIDDepth = f.idDepth
	}
	f.record("PushID %d", id)
}

func (f *fakeToolkit) PopID() {
	f.idDepth--
	f.record("PopID")
}

func (f *fakeToolkit) SetNextWindowPos(pos Vec2, cond Cond) {
	f.pendingPos = &pendingSet{pos, cond}
	f.record("SetNextWindowPos %v %v cond=%d", pos.X, pos.Y, cond)
}

func (f *fakeToolkit) SetNextWindowSize(size Vec2, cond Cond) {
	f.pendingSize = &pendingSet{size, cond}
	f.record("SetNextWindowSize %v %v cond=%d", size.X, size.Y, cond)
}

func (f *fakeToolkit) BeginWindow(title string, open *bool, flags WindowFlags) bool {
	w, ok := f.windows[title]
	if !ok {
		w = &fakeWindow{}
		f.windows[title] = w
	}
	if f.pendingPos != nil {
		if f.pendingPos.cond == CondAlways || !w.seen {
			w.pos = f.pendingPos.v
		}
		f.pendingPos = nil
	}
	if f.pendingSize != nil {
		if f.pendingSize.cond == CondAlways || !w.seen {
			w.size = f.pendingSize.v
		}
		f.pendingSize = nil
	}
	if f.dragWindowTo != nil {
		w.pos = *f.dragWindowTo
		f.dragWindowTo = nil
	}
	if f.closeWindow && open != nil {
		*open = false
		f.closeWindow = false
	}
	w.seen = true
	f.currentWindow = title
	f.record("BeginWindow %s", title)
	return f.windowVisible
}

func (f *fakeToolkit) EndWindow() { f.record("EndWindow") }

func (f *fakeToolkit) WindowPos() Vec2 {
	if w, ok := f.windows[f.currentWindow]; ok {
		return w.pos
	}
	return Vec2{}
}

func (f *fakeToolkit) WindowSize() Vec2 {
	if w, ok := f.windows[f.currentWindow]; ok {
		return w.size
	}
	return Vec2{}
}

func (f *fakeToolkit) BeginChild(id string, size Vec2, border bool) bool {
	f.record("BeginChild %s", id)
	return f.childVisible
}

func (f *fakeToolkit) EndChild()   { f.record("EndChild") }
func (f *fakeToolkit) BeginGroup() { f.record("BeginGroup") }
func (f *fakeToolkit) EndGroup()   { f.record("EndGroup") }

func (f *fakeToolkit) CollapsingHeader(label string) bool {
	f.record("CollapsingHeader %s", label)
	return f.headerOpen
}

func (f *fakeToolkit) TreeNode(label string) bool {
	f.record("TreeNode %s", label)
	return f.treeOpen
}

func (f *fakeToolkit) TreePop() { f.record("TreePop") }

func (f *fakeToolkit) TextUnformatted(text string) { f.record("Text %s", text) }
func (f *fakeToolkit) BulletText(text string)      { f.record("BulletText %s", text) }

func (f *fakeToolkit) Button(label string, size Vec2) bool {
	f.record("Button %s", label)
	pressed := f.buttonPressed
	f.buttonPressed = false
	return pressed
}

func (f *fakeToolkit) SmallButton(label string) bool {
	f.record("SmallButton %s", label)
	pressed := f.buttonPressed
	f.buttonPressed = false
	return pressed
}

func (f *fakeToolkit) Checkbox(label string, value *bool) bool {
	f.record("Checkbox %s %v", label, *value)
	if f.checkboxToggle {
		f.checkboxToggle = false
		*value = !*value
		return true
	}
	return false
}

func (f *fakeToolkit) SliderFloat(label string, value *float32, min, max float32, format string) bool {
	f.record("SliderFloat %s %v", label, *value)
	if f.sliderDragTo != nil {
		*value = *f.sliderDragTo
		f.sliderDragTo = nil
		return true
	}
	return false
}

func (f *fakeToolkit) InputText(label string, buf []byte) bool {
	f.record("InputText %s %s", label, cstring(buf))
	if f.inputTypes != "" {
		n := copy(buf[:len(buf)-1], f.inputTypes)
		buf[n] = 0
		f.inputTypes = ""
		return true
	}
	return false
}

func (f *fakeToolkit) Image(tex TextureID, size Vec2) {
	f.record("Image %d %vx%v", tex, size.X, size.Y)
}

func (f *fakeToolkit) Separator()                        { f.record("Separator") }
func (f *fakeToolkit) Spacing()                          { f.record("Spacing") }
func (f *fakeToolkit) SameLine(offsetX, spacing float32) { f.record("SameLine") }
func (f *fakeToolkit) Indent(width float32)              { f.record("Indent") }
func (f *fakeToolkit) Unindent(width float32)            { f.record("Unindent") }
func (f *fakeToolkit) Dummy(size Vec2)                   { f.record("Dummy %vx%v", size.X, size.Y) }

func (f *fakeToolkit) PushStyleColor(idx StyleColor, rgba [4]float32) {
	f.record("PushStyleColor %d", idx)
}

func (f *fakeToolkit) PopStyleColor(count int32) { f.record("PopStyleColor %d", count) }

func (f *fakeToolkit) CursorScreenPos() Vec2 { return Vec2{X: 10, Y: 20} }
func (f *fakeToolkit) ViewportSize() Vec2    { return f.viewport }

func (f *fakeToolkit) AddRectFilled(min, max Vec2, col uint32, rounding float32) {
	f.record("AddRectFilled %v,%v %v,%v col=%08x", min.X, min.Y, max.X, max.Y, col)
}

func (f *fakeToolkit) AddRect(min, max Vec2, col uint32, rounding, thickness float32) {
	f.record("AddRect %v,%v %v,%v col=%08x", min.X, min.Y, max.X, max.Y, col)
}

func (f *fakeToolkit) AddCircle(center Vec2, radius float32, col uint32, thickness float32) {
	f.record("AddCircle %v,%v r=%v", center.X, center.Y, radius)
}

func (f *fakeToolkit) AddCircleFilled(center Vec2, radius float32, col uint32) {
	f.record("AddCircleFilled %v,%v r=%v", center.X, center.Y, radius)
}

func (f *fakeToolkit) AddLine(p1, p2 Vec2, col uint32, thickness float32) {
	f.record("AddLine %v,%v %v,%v", p1.X, p1.Y, p2.X, p2.Y)
}

func (f *fakeToolkit) LoadTexture(path string) (TextureID, Vec2, error) {
	f.record("LoadTexture %s", path)
	if f.loadTextureErr != nil {
		return 0, Vec2{}, f.loadTextureErr
	}
	return TextureID(7), f.loadTextureSize, nil
}
