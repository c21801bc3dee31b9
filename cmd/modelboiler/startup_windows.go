//go:build windows

package main

import (
	"log/slog"
	"os"

	"github.com/Alia5/modelboiler/internal/util"
)

func init() {
	if util.IsRunFromGUI() {
		// Started from a hotkey or Explorer: nobody reads the console.
		util.HideConsoleWindow()
		if _, ok := os.LookupEnv("MODELBOILER_NOTIFY"); !ok {
			slog.Debug("Detected GUI startup, reporting through the console is disabled")
			_ = os.Setenv("MODELBOILER_NOTIFY", "none")
		}
	}
}
