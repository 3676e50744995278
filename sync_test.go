package reim

import "testing"

// newTestApp wires the bridge around the recording fake toolkit.
func newTestApp() (*App, *fakeToolkit) {
	tk := newFakeToolkit()
	return NewAppWithToolkit(DefaultAppConfig(), tk), tk
}

// commitWindow creates a single root window with the given props and
// publishes the commit.
func commitWindow(app *App, props *Props) *ElementNode {
	h := app.HostConfig()
	c := app.Container()
	n := h.CreateElementInstance("window", props)
	h.AppendChildToContainer(c, n)
	h.OnCommitComplete(c)
	return n
}

func TestControlledPositionConvergence(t *testing.T) {
	app, tk := newTestApp()
	h := app.HostConfig()

	var notifications []Vec2
	onMove := func(payload Value) {
		m := payload.Nested()
		notifications = append(notifications, Vec2{
			X: float32(m.Number("x", -1)),
			Y: float32(m.Number("y", -1)),
		})
	}

	frames := []float64{10, 10, 20, 20}
	n := commitWindow(app, NewProps().
		Set("title", String("T")).
		Set("x", Number(frames[0])).
		Set("y", Number(0)).
		Set("onMove", Func(onMove)))

	for i, x := range frames {
		h.CommitPropsUpdate(n, NewProps().
			Set("title", String("T")).
			Set("x", Number(x)).
			Set("y", Number(0)).
			Set("onMove", Func(onMove)))
		app.RenderCurrentFrame()

		// Read-back equals the pushed value every frame.
		if pos := tk.windows["T"].pos; pos.X != float32(x) {
			t.Errorf("frame %d: toolkit x = %v, want %v", i+1, pos.X, x)
		}
	}

	// A notification fires only when the value differs from the previous
	// cache: frames 1 and 3.
	if len(notifications) != 2 {
		t.Fatalf("got %d onMove notifications, want 2: %v", len(notifications), notifications)
	}
	if notifications[0].X != 10 || notifications[1].X != 20 {
		t.Errorf("notifications = %v, want x=10 then x=20", notifications)
	}
}

func TestControlledPositionReportsUserDrag(t *testing.T) {
	app, tk := newTestApp()

	var moves []Vec2
	props := func() *Props {
		return NewProps().
			Set("title", String("T")).
			Set("x", Number(10)).
			Set("y", Number(10)).
			Set("onMove", Func(func(payload Value) {
				m := payload.Nested()
				moves = append(moves, Vec2{
					X: float32(m.Number("x", -1)),
					Y: float32(m.Number("y", -1)),
				})
			}))
	}
	commitWindow(app, props())

	app.RenderCurrentFrame() // frame 1: initial sync echoes 10,10
	if len(moves) != 1 {
		t.Fatalf("expected initial sync notification, got %v", moves)
	}

	// Frame 2: prop unchanged, user drags the window. The delta must be
	// observed and reported, not overwritten.
	tk.dragWindowTo = &Vec2{X: 42, Y: 17}
	app.RenderCurrentFrame()
	if len(moves) != 2 {
		t.Fatalf("drag not reported: %v", moves)
	}
	if moves[1] != (Vec2{X: 42, Y: 17}) {
		t.Errorf("drag reported as %v, want {42 17}", moves[1])
	}
	if got := tk.count("SetNextWindowPos"); got != 1 {
		t.Errorf("position forced %d times, want 1 (drag must not be fought)", got)
	}
}

func TestUncontrolledPositionWritesOnce(t *testing.T) {
	app, tk := newTestApp()
	h := app.HostConfig()

	n := commitWindow(app, NewProps().
		Set("title", String("T")).
		Set("defaultX", Number(5)).
		Set("defaultY", Number(5)))

	app.RenderCurrentFrame()
	if got := tk.count("SetNextWindowPos"); got != 1 {
		t.Fatalf("first frame issued %d position directives, want 1", got)
	}
	if op := tk.ops[1]; op != "SetNextWindowPos 5 5 cond=2" {
		t.Errorf("directive = %q, want set-once at 5,5", op)
	}

	// Changing the default later must not re-issue the directive, and the
	// cached last-written value keeps the seed.
	h.CommitPropsUpdate(n, NewProps().
		Set("title", String("T")).
		Set("defaultX", Number(9)).
		Set("defaultY", Number(9)))
	app.RenderCurrentFrame()
	app.RenderCurrentFrame()

	if got := tk.count("SetNextWindowPos"); got != 1 {
		t.Errorf("position directive re-issued: %d total, want 1", got)
	}
	if x, y := n.state.pos.last(); x != 5 || y != 5 {
		t.Errorf("cache = %v,%v, want seed 5,5", x, y)
	}
}

func TestControlledSizeResizeNotification(t *testing.T) {
	app, tk := newTestApp()

	var resizes int
	commitWindow(app, NewProps().
		Set("title", String("T")).
		Set("width", Number(300)).
		Set("height", Number(200)).
		Set("onResize", Func(func(Value) { resizes++ })))

	app.RenderCurrentFrame() // initial sync
	app.RenderCurrentFrame() // steady state
	if resizes != 1 {
		t.Fatalf("resizes = %d after steady state, want 1", resizes)
	}

	// User resize with unchanged props is reported upward.
	tk.windows["T"].size = Vec2{X: 400, Y: 250}
	app.RenderCurrentFrame()
	if resizes != 2 {
		t.Errorf("resizes = %d after user resize, want 2", resizes)
	}
}

func TestConflictingControlledAndDefaultPrefersControlled(t *testing.T) {
	app, tk := newTestApp()

	commitWindow(app, NewProps().
		Set("title", String("T")).
		Set("x", Number(10)).
		Set("y", Number(10)).
		Set("defaultX", Number(99)).
		Set("defaultY", Number(99)))

	app.RenderCurrentFrame()
	if pos := tk.windows["T"].pos; pos.X != 10 {
		t.Errorf("toolkit x = %v, want controlled 10", pos.X)
	}
	// The controlled directive must be the always-enforced variant.
	if tk.count("SetNextWindowPos 10 10 cond=1") != 1 {
		t.Errorf("expected controlled always-write, ops: %v", tk.ops)
	}
}

func TestPairSyncStateMachine(t *testing.T) {
	var s pairSync

	if !s.shouldWrite(10, 0) {
		t.Error("uninitialized state must force-write")
	}
	if !s.observe(10, 0) {
		t.Error("first observe must report a change")
	}
	if s.shouldWrite(10, 0) {
		t.Error("unchanged prop must not write")
	}
	if s.observe(10, 0) {
		t.Error("unchanged read-back must not notify")
	}
	if !s.shouldWrite(20, 0) {
		t.Error("changed prop must write")
	}
	if !s.observe(20, 0) {
		t.Error("changed read-back must notify")
	}
}
