// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

//go:build windows

package console

import (
	"fmt"

	"golang.org/x/sys/windows"
)

const codePageUTF8 = 65001

func enableUTF8() error {
	if err := windows.SetConsoleOutputCP(codePageUTF8); err != nil {
		return fmt.Errorf("setting console output code page: %w", err)
	}
	return nil
}
