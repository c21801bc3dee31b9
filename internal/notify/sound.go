package notify

import (
	"context"
	"io"
	"runtime"
)

const soundDir = "/System/Library/Sounds/"

// Sound plays Pop on success and Basso on failure on macOS. Elsewhere, or
// when afplay fails, it rings the terminal bell on Bell.
type Sound struct {
	Muted bool
	Bell  io.Writer

	goos string
	run  runFunc
}

func NewSound(muted bool, bell io.Writer) *Sound {
	return &Sound{
		Muted: muted,
		Bell:  bell,
		goos:  runtime.GOOS,
		run:   execRun(DefaultTimeout),
	}
}

func (s *Sound) Notify(ctx context.Context, n Notification) error {
	if s.Muted {
		return nil
	}
	if s.goos == "darwin" {
		name := "Basso.aiff"
		if n.Success {
			name = "Pop.aiff"
		}
		if err := s.run(ctx, "afplay", soundDir+name); err == nil {
			return nil
		}
	}
	if s.Bell == nil {
		return nil
	}
	_, err := io.WriteString(s.Bell, "\a")
	return err
}
