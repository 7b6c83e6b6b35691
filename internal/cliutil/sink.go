package cliutil

import (
	"fmt"
	"io"

	"github.com/fatih/color"

	"ell"
)

// ColorSink renders trace events as one colored line per event, grounded
// on the teacher's internal/version color-run-based rendering.
type ColorSink struct {
	Out     io.Writer
	Enable  bool
	spawn   *color.Color
	done    *color.Color
	taskCol *color.Color
}

// NewColorSink builds a sink writing to out; colorization is disabled when
// enable is false (non-terminal stdout or --color=off).
func NewColorSink(out io.Writer, enable bool) *ColorSink {
	s := &ColorSink{
		Out:     out,
		Enable:  enable,
		spawn:   color.New(color.FgGreen),
		done:    color.New(color.FgCyan),
		taskCol: color.New(color.FgYellow),
	}
	s.spawn.EnableColor()
	s.done.EnableColor()
	s.taskCol.EnableColor()
	if !enable {
		s.spawn.DisableColor()
		s.done.DisableColor()
		s.taskCol.DisableColor()
	}
	return s
}

func (s *ColorSink) Enabled() bool { return true }

func (s *ColorSink) Emit(ev ell.Event) {
	col := s.done
	if ev.Kind == "spawn" {
		col = s.spawn
	}
	fmt.Fprintf(s.Out, "%s task=%s\n", col.Sprint(ev.Kind), s.taskCol.Sprintf("%d", ev.TaskID))
}
