package runner

import (
	"bufio"
	"fmt"
	"io"

	"github.com/retroenv/retrochip8/internal/engine"
)

// Characters used by the text renderer.
const (
	PixelSet   = '#'
	PixelUnset = '.'
)

// TextDisplay keeps the most recent frame for rendering as text after a
// headless run.
type TextDisplay struct {
	frame    engine.FrameBuffer
	refreshes int
}

// Refresh implements Display.
func (d *TextDisplay) Refresh(fb engine.FrameBuffer, _ bool) {
	d.frame = fb
	d.refreshes++
}

// Refreshes returns how often the display was refreshed.
func (d *TextDisplay) Refreshes() int {
	return d.refreshes
}

// Render writes the most recent frame to w.
func (d *TextDisplay) Render(w io.Writer) error {
	return RenderText(w, d.frame)
}

// RenderText writes the frame buffer as one text line per row.
func RenderText(w io.Writer, fb engine.FrameBuffer) error {
	bw := bufio.NewWriter(w)
	line := make([]byte, engine.DisplayWidth+1)
	line[engine.DisplayWidth] = '\n'

	for y := range engine.DisplayHeight {
		for x := range engine.DisplayWidth {
			if fb[y][x] {
				line[x] = PixelSet
			} else {
				line[x] = PixelUnset
			}
		}
		if _, err := bw.Write(line); err != nil {
			return fmt.Errorf("writing frame row %d: %w", y, err)
		}
	}

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("flushing frame: %w", err)
	}
	return nil
}
