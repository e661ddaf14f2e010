package drawing

import (
	"time"

	"github.com/routeboard/engine/pkg/core"
)

// Session is the transient state of an arrow being drawn. The zero value is idle.
type Session struct {
	Drawing             bool              `json:"isDrawing"`
	CommittedPoints     []float64         `json:"committedPoints"`
	CommittedSegments   []core.Segment    `json:"committedSegments"`
	PreviewPoints       []float64         `json:"previewPoints"`
	CurrentSegmentStyle core.SegmentStyle `json:"currentSegmentStyle"`
	StyleAtSessionStart core.SegmentStyle `json:"styleAtSessionStart"`
	AnchoredPlayerID    string            `json:"anchoredPlayerId,omitempty"`
	Warning             string            `json:"segmentCountWarning,omitempty"`
	WarningExpiresAt    time.Time         `json:"-"`
}

// clone returns a deep copy so reducer output never shares slices with its input
func (s Session) clone() Session {
	out := s
	out.CommittedPoints = append([]float64(nil), s.CommittedPoints...)
	out.PreviewPoints = append([]float64(nil), s.PreviewPoints...)
	if s.CommittedSegments != nil {
		out.CommittedSegments = make([]core.Segment, len(s.CommittedSegments))
		for i, seg := range s.CommittedSegments {
			out.CommittedSegments[i] = seg.Clone()
		}
	}
	return out
}

// firstPoint is the session's seed point
func (s Session) firstPoint() (core.Point, bool) {
	if len(s.CommittedPoints) < 2 {
		return core.Point{}, false
	}
	return core.Point{X: s.CommittedPoints[0], Y: s.CommittedPoints[1]}, true
}

// lastPoint is the most recently committed point
func (s Session) lastPoint() (core.Point, bool) {
	n := len(s.CommittedPoints)
	if n < 2 {
		return core.Point{}, false
	}
	return core.Point{X: s.CommittedPoints[n-2], Y: s.CommittedPoints[n-1]}, true
}

// Segments returns the number of committed segments
func (s Session) Segments() int {
	return len(s.CommittedSegments)
}
