package reim

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
)

// AppConfig configures the application window and runtime behavior. It
// mirrors the toolkit runtime's startup configuration and is typically
// loaded from a TOML file next to the binary.
type AppConfig struct {
	Title        string `toml:"title"`
	Width        uint32 `toml:"width"`
	Height       uint32 `toml:"height"`
	SampleCount  int    `toml:"sample_count"`
	SwapInterval int    `toml:"swap_interval"`
	Fullscreen   bool   `toml:"fullscreen"`
	HighDPI      bool   `toml:"high_dpi"`

	EnableClipboard bool `toml:"enable_clipboard"`
	ClipboardSize   int  `toml:"clipboard_size"`

	// ClearColor is the background clear color as "#RRGGBB" or "#RRGGBBAA".
	ClearColor string `toml:"clear_color"`

	// LibraryPath locates the toolkit shared library.
	LibraryPath string `toml:"library_path"`

	// ScratchBlockKB sizes the frame arena's blocks, in KiB. Zero means the
	// arena default.
	ScratchBlockKB int `toml:"scratch_block_kb"`
}

// DefaultAppConfig returns the runtime's startup defaults.
func DefaultAppConfig() AppConfig {
	return AppConfig{
		Title:           "reim",
		Width:           800,
		Height:          600,
		SampleCount:     1,
		SwapInterval:    1,
		EnableClipboard: true,
		ClipboardSize:   8192,
		ClearColor:      "#000000",
	}
}

// LoadAppConfig reads a TOML config file, applying defaults for absent keys.
func LoadAppConfig(path string) (AppConfig, error) {
	config := DefaultAppConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return config, fmt.Errorf("failed to read config file: %w", err)
	}
	if err := toml.Unmarshal(data, &config); err != nil {
		return config, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return config, nil
}
