package model

import (
	"time"

	"github.com/google/uuid"

	"github.com/soocke/area-selector-go/domain/geometry"
)

// SelectionRecord is one finished selection.
type SelectionRecord struct {
	ID     uuid.UUID       `json:"id"`
	Mode   string          `json:"mode"`
	X1     float64         `json:"x1"`
	Y1     float64         `json:"y1"`
	X2     float64         `json:"x2"`
	Y2     float64         `json:"y2"`
	Region geometry.Region `json:"region"`
	At     time.Time       `json:"at"`
}

// SelectionModel keeps the most recent selection and simple counters.
// No synchronization needed: updates occur on the UI thread.
type SelectionModel struct {
	last     SelectionRecord
	has      bool
	begun    int
	finished int
	seq      uint64
}

func NewSelectionModel() *SelectionModel { return &SelectionModel{} }

// Begin counts a started selection.
func (m *SelectionModel) Begin() {
	if m == nil {
		return
	}
	m.begun++
}

// Finish stores a finished selection from its raw corners and returns the record.
func (m *SelectionModel) Finish(mode string, x1, y1, x2, y2 float64, now time.Time) SelectionRecord {
	if m == nil {
		return SelectionRecord{}
	}
	rec := SelectionRecord{
		ID:     uuid.New(),
		Mode:   mode,
		X1:     x1,
		Y1:     y1,
		X2:     x2,
		Y2:     y2,
		Region: geometry.RegionFromCorners(geometry.Pt(x1, y1), geometry.Pt(x2, y2)),
		At:     now,
	}
	m.last = rec
	m.has = true
	m.finished++
	m.seq++
	return rec
}

// Last returns the most recent selection, if any.
func (m *SelectionModel) Last() (SelectionRecord, bool) {
	if m == nil {
		return SelectionRecord{}, false
	}
	return m.last, m.has
}

// Seq increases with every finished selection; presenters compare it to
// detect news.
func (m *SelectionModel) Seq() uint64 {
	if m == nil {
		return 0
	}
	return m.seq
}

// Counts returns how many selections were started and finished.
func (m *SelectionModel) Counts() (begun, finished int) {
	if m == nil {
		return 0, 0
	}
	return m.begun, m.finished
}
