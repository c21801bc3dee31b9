//go:build windows

package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProcessClassification(t *testing.T) {
	assert.True(t, isShellProcess("PowerShell.exe"))
	assert.True(t, isShellProcess("WindowsTerminal.exe"))
	assert.False(t, isShellProcess("explorer.exe"))

	assert.True(t, isLauncherProcess("Explorer.EXE"))
	assert.True(t, isLauncherProcess("AutoHotkey64.exe"))
	assert.False(t, isLauncherProcess("cmd.exe"))
	assert.False(t, isLauncherProcess(""))
}
