// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

//go:build !windows

package console

func enableUTF8() error { return nil }
