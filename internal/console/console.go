// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package console prepares the process console for UTF-8 progress output.
package console

// EnableUTF8 switches the console to UTF-8 output for the lifetime of the
// process. Call it once at startup. It is a no-op where the console
// already speaks UTF-8.
func EnableUTF8() error {
	return enableUTF8()
}
