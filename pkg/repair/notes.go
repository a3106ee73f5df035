// Package repair implements the last-resort fixups the QA loop reaches
// for when the lighter post-process rules aren't enough: a full
// general-notes rebuild, priority-based text-overlap nudging, and
// uniform per-view overflow scaling (§4.K). Each rule emits structured,
// never-fatal risk records instead of errors.
package repair

import (
	"github.com/drawforge/drawforge/pkg/config"
	"github.com/drawforge/drawforge/pkg/svgdoc"
)

// RebuildBudget is the word-wrap character budget rebuild_notes uses,
// wider than pkg/postprocess's lighter 90-character rewrap since this
// is the full-rebuild fallback (§4.K).
const RebuildBudget = 163

// NotesStartY, NotesLinePitch and NotesEndY fix the rebuilt group's
// layout; NotesStartY/NotesLinePitch match pkg/view.RenderNotes so a
// rebuild that doesn't need truncation looks identical to a fresh
// render.
const (
	NotesStartY    = 236.0
	NotesLinePitch = 4.0
	NotesEndY      = 268.0
)

// RebuildNotes replaces the general-notes group's text content from
// scratch: every configured note line is word-wrapped to RebuildBudget
// and re-emitted at the fixed pitch; any line that would land past
// NotesEndY is dropped and counted as a truncation warning.
func RebuildNotes(notes config.NotesCfg, doc *svgdoc.Document) (emitted, truncated int) {
	for _, g := range doc.Root.ByClass("general-notes") {
		g.Remove()
	}
	group := svgdoc.Group(doc.Root, "general-notes")

	var lines []string
	for _, note := range notes.General {
		lines = append(lines, wrapLine(note, RebuildBudget)...)
	}

	y := NotesStartY
	for _, line := range lines {
		if y > NotesEndY {
			truncated++
			continue
		}
		t := svgdoc.NewNode("text").SetF("x", 20).SetF("y", y)
		t.Set("font-size", "2.5")
		t.Text = line
		group.Append(t)
		emitted++
		y += NotesLinePitch
	}
	return emitted, truncated
}

func wrapLine(s string, budget int) []string {
	words := splitWords(s)
	var lines []string
	cur := ""
	for _, w := range words {
		if cur == "" {
			cur = w
			continue
		}
		if len(cur)+1+len(w) > budget {
			lines = append(lines, cur)
			cur = w
			continue
		}
		cur += " " + w
	}
	if cur != "" {
		lines = append(lines, cur)
	}
	if len(lines) == 0 {
		lines = append(lines, "")
	}
	return lines
}

func splitWords(s string) []string {
	var words []string
	start := -1
	for i, r := range s {
		if r == ' ' || r == '\t' || r == '\n' {
			if start >= 0 {
				words = append(words, s[start:i])
				start = -1
			}
			continue
		}
		if start < 0 {
			start = i
		}
	}
	if start >= 0 {
		words = append(words, s[start:])
	}
	return words
}
