//go:build !windows

package clipboard

import (
	"os"
	"os/exec"
	"runtime"
)

var lookPath = exec.LookPath

// System returns the clipboard of the current desktop session: pbpaste and
// pbcopy on macOS, wl-clipboard under Wayland, otherwise xclip or xsel.
func System() (Clipboard, error) {
	for _, c := range candidates(runtime.GOOS) {
		if !available(c.Paste) || !available(c.Copy) {
			continue
		}
		return c, nil
	}
	return nil, ErrUnavailable
}

func available(c Command) bool {
	_, err := lookPath(c.Name)
	return err == nil
}

func candidates(goos string) []*Exec {
	if goos == "darwin" {
		return []*Exec{{
			Paste: Command{Name: "pbpaste"},
			Copy:  Command{Name: "pbcopy"},
		}}
	}

	var out []*Exec
	if os.Getenv("WAYLAND_DISPLAY") != "" {
		out = append(out, &Exec{
			Paste: Command{Name: "wl-paste", Args: []string{"--no-newline"}},
			Copy:  Command{Name: "wl-copy"},
		})
	}
	return append(out,
		&Exec{
			Paste: Command{Name: "xclip", Args: []string{"-selection", "clipboard", "-out"}},
			Copy:  Command{Name: "xclip", Args: []string{"-selection", "clipboard", "-in"}},
		},
		&Exec{
			Paste: Command{Name: "xsel", Args: []string{"--clipboard", "--output"}},
			Copy:  Command{Name: "xsel", Args: []string{"--clipboard", "--input"}},
		},
	)
}
