// Package export drives the deterministic frame loop: the same
// time-to-visual-state mapping as live preview, stepped at a fixed frame
// rate over the whole timeline and handed to a sink. Encoding and muxing
// are the sink's concern.
package export

import (
	"fmt"
	"os"
	"path/filepath"

	"montage/internal/model"
	"montage/internal/render"
	"montage/internal/timeline"

	"github.com/charmbracelet/x/ansi"
)

// DefaultFPS is the export frame rate. Higher than the 30 Hz preview tick;
// determinism of the relative-time mapping is what keeps the two in
// agreement.
const DefaultFPS = 60

type Frame struct {
	Index   int
	Time    float64
	Content string
}

// Sink receives composited frames in order. WriteFrame is called once per
// frame; an error aborts the loop.
type Sink interface {
	WriteFrame(Frame) error
	Close() error
}

type Options struct {
	FPS   int
	Width int
	// OnProgress, when set, is called after each written frame with
	// (frameIndex, totalFrames). Export runs as a plain sequential loop;
	// there is no cancellation, only completion.
	OnProgress func(done, total int)
}

// Run renders every frame of the timeline into the sink. The synthetic
// clock is derived from the frame index, never accumulated, so frame N is
// identical no matter how many times the export runs.
func Run(reg *render.Registry, st *model.EditorState, sink Sink, opts Options) error {
	fps := opts.FPS
	if fps <= 0 {
		fps = DefaultFPS
	}
	width := opts.Width
	if width <= 0 {
		width = 80
	}

	// Export renders the session as-is but never in "playing" state; the
	// playhead is synthetic.
	frameState := st.Clone()
	frameState.Playing = false

	total := timeline.TotalDuration(frameState)
	frames := int(total*float64(fps)) + 1

	for i := 0; i < frames; i++ {
		t := float64(i) / float64(fps)
		if t > total {
			t = total
		}
		frameState.CurrentTime = t
		content := render.Composite(reg, frameState, t, width)
		if err := sink.WriteFrame(Frame{Index: i, Time: t, Content: content}); err != nil {
			return fmt.Errorf("export frame %d: %w", i, err)
		}
		if opts.OnProgress != nil {
			opts.OnProgress(i+1, frames)
		}
	}
	return sink.Close()
}

// DirSink writes each frame as a plain-text file in a directory, ANSI
// stripped. frame-000042.txt holds the composited frame at index 42.
type DirSink struct {
	Dir string
}

func NewDirSink(dir string) (*DirSink, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &DirSink{Dir: dir}, nil
}

func (s *DirSink) WriteFrame(f Frame) error {
	name := filepath.Join(s.Dir, fmt.Sprintf("frame-%06d.txt", f.Index))
	return os.WriteFile(name, []byte(ansi.Strip(f.Content)+"\n"), 0o644)
}

func (s *DirSink) Close() error { return nil }
