package view

import (
	"fmt"
	"time"

	//lint:ignore ST1001 Dot import for concise Tk widget DSL.
	. "modernc.org/tk9.0"
)

// DragStats shows how long the current and all drags took.
type DragStats interface {
	SetDrag(d time.Duration)
	SetTotal(d time.Duration)
}

type dragStats struct {
	dragLbl  *LabelWidget
	totalLbl *LabelWidget
}

// NewDragStats creates the drag and total labels at (row, startCol) and
// (row, startCol+1) inside parent.
func NewDragStats(parent *FrameWidget, row, startCol int) DragStats {
	s := &dragStats{dragLbl: Label(Width(14)), totalLbl: Label(Width(14))}
	Grid(s.dragLbl, In(parent), Row(row), Column(startCol), Sticky("w"), Padx("0.2m"))
	Grid(s.totalLbl, In(parent), Row(row), Column(startCol+1), Sticky("w"), Padx("0.2m"))
	s.SetDrag(0)
	s.SetTotal(0)
	return s
}

func (s *dragStats) SetDrag(d time.Duration) {
	if s == nil || s.dragLbl == nil {
		return
	}
	s.dragLbl.Configure(Txt("Drag: " + formatSeconds(d)))
}

func (s *dragStats) SetTotal(d time.Duration) {
	if s == nil || s.totalLbl == nil {
		return
	}
	s.totalLbl.Configure(Txt("Total: " + formatSeconds(d)))
}

// formatSeconds renders d as seconds with one decimal; drags are short.
func formatSeconds(d time.Duration) string {
	return fmt.Sprintf("%.1fs", d.Seconds())
}
