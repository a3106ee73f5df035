package repair

import (
	"math"
	"sort"
	"strings"

	"github.com/drawforge/drawforge/pkg/config"
	"github.com/drawforge/drawforge/pkg/geom"
	"github.com/drawforge/drawforge/pkg/svgdoc"
)

// priority enumerates how reluctant a text node is to move: lower
// values move last.
type priority int

const (
	priorityFixed       priority = 0 // inside or past the title block
	priorityPreferFixed priority = 1 // inside a known annotation parent
	priorityMovable     priority = 2 // everything else
)

// titleBlockY is the y coordinate at which the fixed title-block strip
// begins; texts at or past it are never nudged.
const titleBlockY = geom.PageH - geom.TitleH

var annotationParentPrefixes = []string{"dimensions-", "plan-dimensions-", "gdt", "surface-finish", "callouts"}

const (
	maxPasses            = 40
	overlapIoUThreshold  = 0.10
	nudgeStepY           = 2.5
	maxShiftYBeforeX     = 18.0
	cellInset            = 2.0
	dimensionAssocRiskMM = 12.0
	maxLogEntries        = 30
)

// TextNudge is one logged movement of a text element.
type TextNudge struct {
	Element string
	DX, DY  float64
}

// OverlapResult reports the repair_text_overlaps outcome.
type OverlapResult struct {
	PassesRun int
	Nudges    []TextNudge
	Risks     []config.RepairRiskFlag
}

type textEntry struct {
	node     *svgdoc.Node
	priority priority
	view     config.ViewName
	shiftX   float64
	shiftY   float64
	totalMM  float64
}

func classifyPriority(n *svgdoc.Node) priority {
	y, _ := n.GetF("y")
	if y >= titleBlockY {
		return priorityFixed
	}
	for p := n.Parent; p != nil; p = p.Parent {
		class := p.Class()
		if class == "" {
			continue
		}
		for _, prefix := range annotationParentPrefixes {
			if strings.HasPrefix(class, prefix) {
				return priorityPreferFixed
			}
		}
	}
	return priorityMovable
}

// RepairTextOverlaps nudges overlapping text pairs apart, movable
// elements first, up to maxPasses rounds, stopping early once no pair
// resolves in a round (§4.K).
func RepairTextOverlaps(doc *svgdoc.Document) OverlapResult {
	var result OverlapResult

	texts := doc.Root.FindAll(func(n *svgdoc.Node) bool { return n.Tag == "text" })
	entries := make([]*textEntry, 0, len(texts))
	for _, t := range texts {
		if strings.TrimSpace(t.Text) == "" {
			continue
		}
		cx, cy := t.BBox().Center()
		entries = append(entries, &textEntry{node: t, priority: classifyPriority(t), view: geom.ClassifyByPosition(cx, cy)})
	}

	for pass := 0; pass < maxPasses; pass++ {
		result.PassesRun = pass + 1
		resolved := false

		for i := 0; i < len(entries); i++ {
			for j := i + 1; j < len(entries); j++ {
				a, b := entries[i], entries[j]
				if a.view != b.view {
					continue
				}
				if geom.IoU(a.node.BBox(), b.node.BBox()) <= overlapIoUThreshold {
					continue
				}
				mover := lowerPriority(a, b)
				if mover == nil {
					continue
				}
				nudge(mover, a.view)
				resolved = true
				if len(result.Nudges) < maxLogEntries {
					result.Nudges = append(result.Nudges, TextNudge{Element: elementLabel(mover.node), DX: mover.shiftX, DY: mover.shiftY})
				}
			}
		}
		if !resolved {
			break
		}
	}

	for _, e := range entries {
		e.totalMM = math.Hypot(e.shiftX, e.shiftY)
		if e.totalMM > dimensionAssocRiskMM {
			result.Risks = append(result.Risks, config.RepairRiskFlag{
				Kind:    config.RiskDimensionAssocUncertain,
				Element: elementLabel(e.node),
				Detail:  "text moved more than 12mm during overlap repair; dimension association may be uncertain",
			})
		}
	}
	sort.Slice(result.Risks, func(i, j int) bool { return result.Risks[i].Element < result.Risks[j].Element })

	return result
}

// lowerPriority returns the entry with the larger priority value (more
// movable), or nil if both are fixed.
func lowerPriority(a, b *textEntry) *textEntry {
	if a.priority == priorityFixed && b.priority == priorityFixed {
		return nil
	}
	if a.priority > b.priority {
		return a
	}
	if b.priority > a.priority {
		return b
	}
	return a
}

func nudge(e *textEntry, vn config.ViewName) {
	cell, ok := geom.CellBounds(vn)
	if !ok {
		cell = geom.Box{XMin: 0, YMin: 0, XMax: geom.PageW, YMax: geom.PageH}
	}
	inset := cell.Inset(cellInset)

	x, _ := e.node.GetF("x")
	y, _ := e.node.GetF("y")

	if e.shiftY < maxShiftYBeforeX {
		newY := y + nudgeStepY
		if newY > inset.YMax {
			newY = inset.YMax
		}
		e.shiftY += newY - y
		e.node.SetF("y", newY)
		return
	}

	newX := x + nudgeStepY
	if newX > inset.XMax {
		newX = inset.XMax
	}
	e.shiftX += newX - x
	e.node.SetF("x", newX)
}

func elementLabel(n *svgdoc.Node) string {
	if n.Text != "" {
		if len(n.Text) > 20 {
			return n.Text[:20]
		}
		return n.Text
	}
	return n.Tag
}
