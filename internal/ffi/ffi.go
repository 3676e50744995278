// Package ffi binds the immediate-mode toolkit's C API via purego, avoiding
// CGo so the module cross-compiles cleanly. The shared library is the
// imgui runtime (cimgui symbols plus the runtime's image helpers); every
// call is synchronous and must run on the render thread.
package ffi

import (
	"fmt"
	"log"
	"sync"
	"unsafe"

	"github.com/ebitengine/purego"

	"github.com/agiangrant/reim/internal/arena"
)

var (
	libHandle uintptr
	libOnce   sync.Once
	libErr    error
)

// imVec2 and imVec4 mirror the toolkit's by-value vector structs.
type imVec2 struct{ x, y float32 }
type imVec4 struct{ x, y, z, w float32 }

// Library function pointers (populated by Load).
var (
	fnBegin            func(name uintptr, pOpen uintptr, flags int32) bool
	fnEnd              func()
	fnBeginChild       func(id uintptr, size imVec2, childFlags int32, windowFlags int32) bool
	fnEndChild         func()
	fnBeginGroup       func()
	fnEndGroup         func()
	fnCollapsingHeader func(label uintptr, flags int32) bool
	fnTreeNode         func(label uintptr) bool
	fnTreePop          func()

	fnTextUnformatted func(text uintptr, textEnd uintptr)
	fnBullet          func()
	fnButton          func(label uintptr, size imVec2) bool
	fnSmallButton     func(label uintptr) bool
	fnCheckbox        func(label uintptr, value uintptr) bool
	fnSliderFloat     func(label uintptr, value uintptr, min, max float32, format uintptr, flags int32) bool
	fnInputText       func(label uintptr, buf uintptr, bufSize uint64, flags int32, callback uintptr, userData uintptr) bool
	fnImage           func(tex uint64, size imVec2, uv0 imVec2, uv1 imVec2, tint imVec4, border imVec4)

	fnSeparator func()
	fnSpacing   func()
	fnSameLine  func(offsetX float32, spacing float32)
	fnIndent    func(width float32)
	fnUnindent  func(width float32)
	fnDummy     func(size imVec2)

	fnPushStyleColor func(idx int32, col imVec4)
	fnPopStyleColor  func(count int32)
	fnPushID         func(id uintptr)
	fnPopID          func()

	fnSetNextWindowPos  func(pos imVec2, cond int32, pivot imVec2)
	fnSetNextWindowSize func(size imVec2, cond int32)
	fnGetWindowPos      func(out uintptr)
	fnGetWindowSize     func(out uintptr)
	fnGetCursorScreenPos func(out uintptr)
	fnGetMainViewport   func() uintptr

	fnGetWindowDrawList func() uintptr
	fnAddRectFilled     func(dl uintptr, pMin, pMax imVec2, col uint32, rounding float32, flags int32)
	fnAddRect           func(dl uintptr, pMin, pMax imVec2, col uint32, rounding float32, flags int32, thickness float32)
	fnAddCircle         func(dl uintptr, center imVec2, radius float32, col uint32, segments int32, thickness float32)
	fnAddCircleFilled   func(dl uintptr, center imVec2, radius float32, col uint32, segments int32)
	fnAddLine           func(dl uintptr, p1, p2 imVec2, col uint32, thickness float32)

	// Image helpers exported by the runtime itself, not by the widget API.
	fnLoadImage   func(path uintptr) int32
	fnImageWidth  func(index int32) int32
	fnImageHeight func(index int32) int32

	// Optional: maps a runtime image index to the texture reference the
	// widget API draws with. Older runtimes draw by index directly.
	fnImageTexRef func(index int32) uintptr
)

// Load opens the toolkit shared library and registers all symbols. It is
// safe to call more than once; only the first call does work.
func Load(path string) error {
	libOnce.Do(func() {
		handle, err := openLibrary(path)
		if err != nil {
			libErr = fmt.Errorf("ffi: failed to load toolkit library %q: %w", path, err)
			return
		}
		libHandle = handle
		registerAll()
	})
	return libErr
}

func registerAll() {
	register(&fnBegin, "igBegin")
	register(&fnEnd, "igEnd")
	register(&fnBeginChild, "igBeginChild_Str")
	register(&fnEndChild, "igEndChild")
	register(&fnBeginGroup, "igBeginGroup")
	register(&fnEndGroup, "igEndGroup")
	register(&fnCollapsingHeader, "igCollapsingHeader_TreeNodeFlags")
	register(&fnTreeNode, "igTreeNode_Str")
	register(&fnTreePop, "igTreePop")

	register(&fnTextUnformatted, "igTextUnformatted")
	register(&fnBullet, "igBullet")
	register(&fnButton, "igButton")
	register(&fnSmallButton, "igSmallButton")
	register(&fnCheckbox, "igCheckbox")
	register(&fnSliderFloat, "igSliderFloat")
	register(&fnInputText, "igInputText")
	register(&fnImage, "igImage")

	register(&fnSeparator, "igSeparator")
	register(&fnSpacing, "igSpacing")
	register(&fnSameLine, "igSameLine")
	register(&fnIndent, "igIndent")
	register(&fnUnindent, "igUnindent")
	register(&fnDummy, "igDummy")

	register(&fnPushStyleColor, "igPushStyleColor_Vec4")
	register(&fnPopStyleColor, "igPopStyleColor")
	register(&fnPushID, "igPushID_Ptr")
	register(&fnPopID, "igPopID")

	register(&fnSetNextWindowPos, "igSetNextWindowPos")
	register(&fnSetNextWindowSize, "igSetNextWindowSize")
	register(&fnGetWindowPos, "igGetWindowPos")
	register(&fnGetWindowSize, "igGetWindowSize")
	register(&fnGetCursorScreenPos, "igGetCursorScreenPos")
	register(&fnGetMainViewport, "igGetMainViewport")

	register(&fnGetWindowDrawList, "igGetWindowDrawList")
	register(&fnAddRectFilled, "ImDrawList_AddRectFilled")
	register(&fnAddRect, "ImDrawList_AddRect")
	register(&fnAddCircle, "ImDrawList_AddCircle")
	register(&fnAddCircleFilled, "ImDrawList_AddCircleFilled")
	register(&fnAddLine, "ImDrawList_AddLine")

	registerOptional(&fnLoadImage, "load_image")
	registerOptional(&fnImageWidth, "image_width")
	registerOptional(&fnImageHeight, "image_height")
	registerOptional(&fnImageTexRef, "image_simgui_image")
}

// register binds a required symbol, aborting startup if it is missing.
func register[T any](fn *T, name string) {
	defer func() {
		if r := recover(); r != nil {
			log.Fatalf("[FFI] ERROR: required symbol %q not found: %v", name, r)
		}
	}()
	purego.RegisterLibFunc(fn, libHandle, name)
}

// registerOptional binds a symbol, tolerating its absence.
func registerOptional[T any](fn *T, name string) {
	defer func() {
		recover()
	}()
	purego.RegisterLibFunc(fn, libHandle, name)
}

// ImGui issues immediate-mode calls against the loaded library. String and
// out-parameter marshalling goes through the render pass's frame arena, so
// nothing allocated here outlives the frame.
type ImGui struct {
	scratch *arena.Arena
}

// New creates a toolkit bound to the given frame arena. Load must have
// succeeded first.
func New(scratch *arena.Arena) (*ImGui, error) {
	if libHandle == 0 {
		return nil, fmt.Errorf("ffi: toolkit library not loaded")
	}
	return &ImGui{scratch: scratch}, nil
}

// vecOut allocates an arena-backed ImVec2 out-parameter and returns both the
// slice to read from and the address to pass.
func (g *ImGui) vecOut() ([]float32, uintptr) {
	out := g.scratch.Floats(2)
	return out, uintptr(unsafe.Pointer(&out[0]))
}

// PushID feeds the node id through the pointer-flavored entry point so all
// 64 bits reach the ID hash; the integer variant would truncate to 32 bits.
func (g *ImGui) PushID(id uint64) { fnPushID(uintptr(id)) }
func (g *ImGui) PopID()           { fnPopID() }

func (g *ImGui) SetNextWindowPos(pos Vec2, cond Cond) {
	fnSetNextWindowPos(imVec2{pos.X, pos.Y}, int32(cond), imVec2{})
}

func (g *ImGui) SetNextWindowSize(size Vec2, cond Cond) {
	fnSetNextWindowSize(imVec2{size.X, size.Y}, int32(cond))
}

func (g *ImGui) BeginWindow(title string, open *bool, flags WindowFlags) bool {
	var openPtr uintptr
	if open != nil {
		buf := g.scratch.Alloc(1)
		if *open {
			buf[0] = 1
		}
		openPtr = uintptr(unsafe.Pointer(&buf[0]))
		visible := fnBegin(g.scratch.CString(title), openPtr, int32(flags))
		*open = buf[0] != 0
		return visible
	}
	return fnBegin(g.scratch.CString(title), 0, int32(flags))
}

func (g *ImGui) EndWindow() { fnEnd() }

func (g *ImGui) WindowPos() Vec2 {
	out, ptr := g.vecOut()
	fnGetWindowPos(ptr)
	return Vec2{out[0], out[1]}
}

func (g *ImGui) WindowSize() Vec2 {
	out, ptr := g.vecOut()
	fnGetWindowSize(ptr)
	return Vec2{out[0], out[1]}
}

func (g *ImGui) BeginChild(id string, size Vec2, border bool) bool {
	// Child flag bit 0 is "draw border" in the toolkit's encoding.
	var childFlags int32
	if border {
		childFlags = 1
	}
	return fnBeginChild(g.scratch.CString(id), imVec2{size.X, size.Y}, childFlags, 0)
}

func (g *ImGui) EndChild() { fnEndChild() }

func (g *ImGui) BeginGroup() { fnBeginGroup() }
func (g *ImGui) EndGroup()   { fnEndGroup() }

func (g *ImGui) CollapsingHeader(label string) bool {
	return fnCollapsingHeader(g.scratch.CString(label), 0)
}

func (g *ImGui) TreeNode(label string) bool {
	return fnTreeNode(g.scratch.CString(label))
}

func (g *ImGui) TreePop() { fnTreePop() }

func (g *ImGui) TextUnformatted(text string) {
	ptr := g.scratch.CString(text)
	fnTextUnformatted(ptr, ptr+uintptr(len(text)))
}

func (g *ImGui) BulletText(text string) {
	fnBullet()
	g.TextUnformatted(text)
}

func (g *ImGui) Button(label string, size Vec2) bool {
	return fnButton(g.scratch.CString(label), imVec2{size.X, size.Y})
}

func (g *ImGui) SmallButton(label string) bool {
	return fnSmallButton(g.scratch.CString(label))
}

func (g *ImGui) Checkbox(label string, value *bool) bool {
	buf := g.scratch.Alloc(1)
	if *value {
		buf[0] = 1
	}
	changed := fnCheckbox(g.scratch.CString(label), uintptr(unsafe.Pointer(&buf[0])))
	*value = buf[0] != 0
	return changed
}

func (g *ImGui) SliderFloat(label string, value *float32, min, max float32, format string) bool {
	out := g.scratch.Floats(1)
	out[0] = *value
	if format == "" {
		format = "%.3f"
	}
	changed := fnSliderFloat(g.scratch.CString(label), uintptr(unsafe.Pointer(&out[0])), min, max, g.scratch.CString(format), 0)
	*value = out[0]
	return changed
}

// InputText edits the NUL-terminated text in buf in place and reports
// whether it changed this frame. buf must come from the frame arena.
func (g *ImGui) InputText(label string, buf []byte) bool {
	return fnInputText(g.scratch.CString(label), uintptr(unsafe.Pointer(&buf[0])), uint64(len(buf)), 0, 0, 0)
}

func (g *ImGui) Image(tex TextureID, size Vec2) {
	fnImage(uint64(tex), imVec2{size.X, size.Y},
		imVec2{0, 0}, imVec2{1, 1},
		imVec4{1, 1, 1, 1}, imVec4{})
}

func (g *ImGui) Separator()                        { fnSeparator() }
func (g *ImGui) Spacing()                          { fnSpacing() }
func (g *ImGui) SameLine(offsetX, spacing float32) { fnSameLine(offsetX, spacing) }
func (g *ImGui) Indent(width float32)              { fnIndent(width) }
func (g *ImGui) Unindent(width float32)            { fnUnindent(width) }
func (g *ImGui) Dummy(size Vec2)                   { fnDummy(imVec2{size.X, size.Y}) }

func (g *ImGui) PushStyleColor(idx StyleColor, rgba [4]float32) {
	fnPushStyleColor(int32(idx), imVec4{rgba[0], rgba[1], rgba[2], rgba[3]})
}

func (g *ImGui) PopStyleColor(count int32) { fnPopStyleColor(count) }

func (g *ImGui) CursorScreenPos() Vec2 {
	out, ptr := g.vecOut()
	fnGetCursorScreenPos(ptr)
	return Vec2{out[0], out[1]}
}

// ViewportSize reads the main viewport's size. The viewport struct layout is
// id(4) flags(4) pos(8) size(8), so Size lives at byte offset 16.
func (g *ImGui) ViewportSize() Vec2 {
	vp := fnGetMainViewport()
	if vp == 0 {
		return Vec2{}
	}
	size := (*[2]float32)(unsafe.Pointer(vp + 16))
	return Vec2{size[0], size[1]}
}

func (g *ImGui) AddRectFilled(min, max Vec2, col uint32, rounding float32) {
	fnAddRectFilled(fnGetWindowDrawList(), imVec2{min.X, min.Y}, imVec2{max.X, max.Y}, col, rounding, 0)
}

func (g *ImGui) AddRect(min, max Vec2, col uint32, rounding, thickness float32) {
	fnAddRect(fnGetWindowDrawList(), imVec2{min.X, min.Y}, imVec2{max.X, max.Y}, col, rounding, 0, thickness)
}

func (g *ImGui) AddCircle(center Vec2, radius float32, col uint32, thickness float32) {
	fnAddCircle(fnGetWindowDrawList(), imVec2{center.X, center.Y}, radius, col, 0, thickness)
}

func (g *ImGui) AddCircleFilled(center Vec2, radius float32, col uint32) {
	fnAddCircleFilled(fnGetWindowDrawList(), imVec2{center.X, center.Y}, radius, col, 0)
}

func (g *ImGui) AddLine(p1, p2 Vec2, col uint32, thickness float32) {
	fnAddLine(fnGetWindowDrawList(), imVec2{p1.X, p1.Y}, imVec2{p2.X, p2.Y}, col, thickness)
}

// LoadTexture loads an image file through the runtime's image table and
// returns the texture reference plus its natural size.
func (g *ImGui) LoadTexture(path string) (TextureID, Vec2, error) {
	if fnLoadImage == nil {
		return 0, Vec2{}, fmt.Errorf("ffi: runtime has no image loading support")
	}
	idx := fnLoadImage(g.scratch.CString(path))
	if idx < 0 {
		return 0, Vec2{}, fmt.Errorf("ffi: failed to load image %q", path)
	}
	size := Vec2{float32(fnImageWidth(idx)), float32(fnImageHeight(idx))}
	tex := TextureID(idx)
	if fnImageTexRef != nil {
		tex = TextureID(fnImageTexRef(idx))
	}
	return tex, size, nil
}
