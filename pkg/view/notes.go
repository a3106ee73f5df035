package view

import (
	"github.com/drawforge/drawforge/pkg/config"
	"github.com/drawforge/drawforge/pkg/svgdoc"
)

// NotesStartY and NotesLinePitch fix the general-notes block's initial
// layout (§6's SVG output contract); the repair pass's rebuild_notes
// reuses these same constants when it rebuilds the group from scratch.
const (
	NotesStartY    = 236.0
	NotesLinePitch = 4.0
	NotesX         = 20.0
)

// RenderNotes emits one `<text>` per configured general note into the
// general-notes group, at the fixed start-y/pitch. Lines that would
// fall below the title block are still emitted — notes_overflow and
// the repair pass's rebuild_notes are what catch and fix that, not
// this initial render.
func RenderNotes(notes config.NotesCfg, doc *svgdoc.Node) int {
	group := svgdoc.Group(doc, "general-notes")
	for i, line := range notes.General {
		t := svgdoc.NewNode("text").SetF("x", NotesX).SetF("y", NotesStartY+float64(i)*NotesLinePitch)
		t.Set("font-size", "2.5")
		t.Text = line
		group.Append(t)
	}
	return len(notes.General)
}
