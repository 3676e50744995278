package reim

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadAppConfigAppliesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "reim.toml")
	data := []byte(`
title = "Demo"
width = 1024
clear_color = "#112233"
library_path = "/usr/lib/libimgui-runtime.so"
`)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}

	config, err := LoadAppConfig(path)
	if err != nil {
		t.Fatalf("LoadAppConfig: %v", err)
	}

	if config.Title != "Demo" || config.Width != 1024 {
		t.Errorf("explicit keys not applied: %+v", config)
	}
	// Absent keys keep runtime defaults.
	if config.Height != 600 {
		t.Errorf("Height = %d, want default 600", config.Height)
	}
	if config.ClipboardSize != 8192 {
		t.Errorf("ClipboardSize = %d, want default 8192", config.ClipboardSize)
	}
	if config.ClearColor != "#112233" {
		t.Errorf("ClearColor = %q", config.ClearColor)
	}
}

func TestLoadAppConfigMissingFile(t *testing.T) {
	config, err := LoadAppConfig(filepath.Join(t.TempDir(), "nope.toml"))
	if err == nil {
		t.Fatal("expected error for missing file")
	}
	// Defaults come back anyway so callers can proceed.
	if config.Width != 800 {
		t.Errorf("Width = %d, want default 800", config.Width)
	}
}

func TestClearColorFromConfig(t *testing.T) {
	config := DefaultAppConfig()
	config.ClearColor = "#336699"
	app := NewAppWithToolkit(config, newFakeToolkit())

	got := app.ClearColor()
	want := [4]float32{0x33, 0x66, 0x99, 255}
	for i := range want {
		want[i] /= 255
	}
	if got != want {
		t.Errorf("ClearColor = %v, want %v", got, want)
	}
}

func TestClearColorInvalidFallsBackToWhite(t *testing.T) {
	config := DefaultAppConfig()
	config.ClearColor = "#nope"
	app := NewAppWithToolkit(config, newFakeToolkit())

	if got := app.ClearColor(); got != White.Vec4() {
		t.Errorf("ClearColor = %v, want white", got)
	}
}
