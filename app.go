package reim

import (
	"fmt"
	"log"

	"github.com/agiangrant/reim/internal/arena"
	"github.com/agiangrant/reim/internal/ffi"
)

// App wires the bridge together for an embedding application: one root
// container targeted by the declarative engine, the host configuration
// adapter it mutates the tree through, and the renderer the surrounding
// event loop drives once per frame.
//
// Everything runs on one logical thread. Commits and render passes
// interleave cooperatively; the published snapshot is the only handoff
// between them.
type App struct {
	config    AppConfig
	container *RootContainer
	host      *HostConfig
	renderer  *Renderer
	tk        Toolkit

	clearColor Color
}

// NewApp loads the toolkit shared library named by the config and assembles
// the bridge around it.
func NewApp(config AppConfig) (*App, error) {
	if config.LibraryPath == "" {
		return nil, fmt.Errorf("reim: config is missing library_path")
	}
	if err := ffi.Load(config.LibraryPath); err != nil {
		return nil, err
	}
	scratch := arena.New(config.ScratchBlockKB * 1024)
	tk, err := ffi.New(scratch)
	if err != nil {
		return nil, err
	}
	return newApp(config, tk, scratch), nil
}

// NewAppWithToolkit assembles the bridge around a caller-supplied toolkit.
// Embedders with their own binding, and tests, use this instead of NewApp.
func NewAppWithToolkit(config AppConfig, tk Toolkit) *App {
	return newApp(config, tk, nil)
}

func newApp(config AppConfig, tk Toolkit, scratch *arena.Arena) *App {
	container := NewRootContainer()
	app := &App{
		config:    config,
		container: container,
		host:      NewHostConfig(container),
		renderer:  NewRenderer(tk, container, scratch),
		tk:        tk,
	}
	app.clearColor = White
	if config.ClearColor != "" {
		c, err := parseHexColor(config.ClearColor)
		if err != nil {
			log.Printf("reim: config clear_color: %v, using opaque white", err)
		}
		app.clearColor = c
	}
	return app
}

// Config returns the app configuration.
func (a *App) Config() AppConfig { return a.config }

// Container returns the root container the declarative engine targets.
func (a *App) Container() *RootContainer { return a.container }

// HostConfig returns the adapter the declarative engine calls during
// commits.
func (a *App) HostConfig() *HostConfig { return a.host }

// Renderer returns the frame renderer.
func (a *App) Renderer() *Renderer { return a.renderer }

// RenderCurrentFrame renders the last committed tree in full. The embedding
// event loop calls this exactly once per displayed frame.
func (a *App) RenderCurrentFrame() {
	a.renderer.RenderFrame()
}

// Stats returns renderer frame statistics.
func (a *App) Stats() FrameStats { return a.renderer.Stats() }

// SetClearColor replaces the background clear color at runtime.
func (a *App) SetClearColor(c Color) { a.clearColor = c }

// ClearColor returns the background clear color as normalized floats, the
// form the rendering backend's clear pass expects.
func (a *App) ClearColor() [4]float32 { return a.clearColor.Vec4() }
