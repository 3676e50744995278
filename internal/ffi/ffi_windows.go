//go:build windows

package ffi

import (
	"fmt"

	"golang.org/x/sys/windows"
)

// openLibrary loads a dynamic library on Windows.
func openLibrary(path string) (uintptr, error) {
	dll, err := windows.LoadDLL(path)
	if err != nil {
		return 0, fmt.Errorf("LoadDLL failed: %w", err)
	}
	// Return the HMODULE handle itself, not a pointer to the DLL struct.
	return uintptr(dll.Handle), nil
}
