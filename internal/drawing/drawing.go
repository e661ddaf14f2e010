// Package drawing turns a sequence of pointer events into a finished multi-segment arrow.
//
// Reduce is a pure function over a Session value; the host owns the session between
// calls and decides which event a click maps to.
package drawing

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/routeboard/engine/internal/segment"
	"github.com/routeboard/engine/internal/zone"
	"github.com/routeboard/engine/pkg/core"
)

// Tool is the active editor tool
type Tool string

const (
	ToolSelect Tool = "select"
	ToolArrow  Tool = "arrow"
	ToolPlayer Tool = "player"
	ToolText   Tool = "text"
)

// Valid reports whether t is a known tool
func (t Tool) Valid() bool {
	switch t {
	case ToolSelect, ToolArrow, ToolPlayer, ToolText:
		return true
	}
	return false
}

const (
	DefaultMaxSegments = 10
	DefaultWarningTTL  = 3 * time.Second
)

// PlayerLookup resolves a player by id from the live diagram
type PlayerLookup func(id string) (core.Player, bool)

// Env is everything outside the session a transition may read.
// A zero Field disables the field clamp on clicked points.
type Env struct {
	Tool          Tool
	SelectedStyle core.SegmentStyle
	HeadStyle     core.HeadStyle
	Color         string
	StrokeWidth   float64
	MaxSegments   int
	WarningTTL    time.Duration
	Now           time.Time
	Field         core.Field
	Players       PlayerLookup
	NewID         func() string
	MarqueeActive bool
}

func (e Env) maxSegments() int {
	if e.MaxSegments <= 0 {
		return DefaultMaxSegments
	}
	return e.MaxSegments
}

func (e Env) warningTTL() time.Duration {
	if e.WarningTTL <= 0 {
		return DefaultWarningTTL
	}
	return e.WarningTTL
}

func (e Env) newID() string {
	if e.NewID == nil {
		return uuid.NewString()
	}
	return e.NewID()
}

func (e Env) player(id string) (core.Player, bool) {
	if id == "" || e.Players == nil {
		return core.Player{}, false
	}
	return e.Players(id)
}

func (e Env) clamp(p core.Point) core.Point {
	if e.Field.Width <= 0 || e.Field.Height <= 0 {
		return p
	}
	return zone.ClampToField(p, e.Field)
}

// Outcome reports what a transition produced
type Outcome struct {
	// Arrow is set when a completion emitted a finished arrow
	Arrow *core.Arrow
	// Changed is false when the event was ignored
	Changed bool
}

// SegmentLimitWarning is the message shown when the segment cap is hit
func SegmentLimitWarning(limit int) string {
	return fmt.Sprintf("Maximum of %d segments reached", limit)
}

// Reduce applies ev to s and returns the next session. The input session is never modified.
func Reduce(s Session, ev Event, env Env) (Session, Outcome) {
	switch ev.(type) {
	case Cancel:
		if !s.Drawing && s.Warning == "" {
			return s, Outcome{}
		}
		return Session{}, Outcome{Changed: true}
	case Tick:
		return tick(s, env)
	}

	if env.Tool != ToolArrow {
		return s, Outcome{}
	}

	switch ev := ev.(type) {
	case StartDraw:
		return start(s, ev, env)
	case AddPoint:
		return addPoint(s, ev, env)
	case Preview:
		return preview(s, ev, env)
	case Undo:
		return undo(s)
	case Complete:
		return complete(s, env)
	}
	return s, Outcome{}
}

func tick(s Session, env Env) (Session, Outcome) {
	if s.Warning == "" || env.Now.Before(s.WarningExpiresAt) {
		return s, Outcome{}
	}
	next := s.clone()
	next.Warning = ""
	next.WarningExpiresAt = time.Time{}
	return next, Outcome{Changed: true}
}

func start(s Session, ev StartDraw, env Env) (Session, Outcome) {
	if s.Drawing {
		return s, Outcome{}
	}

	next := Session{
		Drawing:             true,
		CurrentSegmentStyle: env.SelectedStyle,
		StyleAtSessionStart: env.SelectedStyle,
	}
	if p, ok := env.player(ev.TargetPlayerID); ok {
		next.AnchoredPlayerID = p.ID
		next.CommittedPoints = []float64{p.X, p.Y}
	} else {
		at := env.clamp(ev.At)
		next.CommittedPoints = []float64{at.X, at.Y}
	}
	return next, Outcome{Changed: true}
}

func addPoint(s Session, ev AddPoint, env Env) (Session, Outcome) {
	if !s.Drawing {
		return s, Outcome{}
	}

	next := s.clone()
	if limit := env.maxSegments(); len(s.CommittedSegments) >= limit {
		next.Warning = SegmentLimitWarning(limit)
		next.WarningExpiresAt = env.Now.Add(env.warningTTL())
		return next, Outcome{Changed: true}
	}

	at := env.clamp(ev.At)
	next.CommittedPoints = append(next.CommittedPoints, at.X, at.Y)
	if n := len(next.CommittedPoints); n >= 4 {
		next.CommittedSegments = append(next.CommittedSegments, core.Segment{
			Points: append([]float64(nil), next.CommittedPoints[n-4:]...),
			Type:   next.CurrentSegmentStyle,
		})
		next.CurrentSegmentStyle = env.SelectedStyle
	}
	return next, Outcome{Changed: true}
}

func preview(s Session, ev Preview, env Env) (Session, Outcome) {
	if !s.Drawing || env.MarqueeActive {
		return s, Outcome{}
	}

	var from core.Point
	var ok bool
	if n := len(s.CommittedSegments); n > 0 {
		from, ok = s.CommittedSegments[n-1].End(), true
	} else if from, ok = s.lastPoint(); !ok {
		from, ok = s.firstPoint()
	}
	if len(s.CommittedSegments) == 0 {
		// the preview follows an anchored player dragged mid-draw
		if p, found := env.player(s.AnchoredPlayerID); found {
			from, ok = p.Position(), true
		}
	}
	if !ok {
		return s, Outcome{}
	}

	at := env.clamp(ev.At)
	next := s.clone()
	next.PreviewPoints = []float64{from.X, from.Y, at.X, at.Y}
	return next, Outcome{Changed: true}
}

func undo(s Session) (Session, Outcome) {
	if !s.Drawing || len(s.CommittedSegments) == 0 {
		return s, Outcome{}
	}

	next := s.clone()
	next.CommittedSegments = next.CommittedSegments[:len(next.CommittedSegments)-1]
	if len(next.CommittedSegments) == 0 {
		next.CommittedPoints = next.CommittedPoints[:2]
	} else if n := len(next.CommittedPoints); n >= 4 {
		next.CommittedPoints = next.CommittedPoints[:n-2]
	}
	next.PreviewPoints = nil
	next.Warning = ""
	next.WarningExpiresAt = time.Time{}
	return next, Outcome{Changed: true}
}

func complete(s Session, env Env) (Session, Outcome) {
	if !s.Drawing {
		return s, Outcome{}
	}

	final := s.CommittedPoints
	if len(s.PreviewPoints) >= 4 {
		final = s.PreviewPoints
	}
	if len(final) < 4 {
		return s, Outcome{}
	}

	var segments []core.Segment
	if len(s.CommittedSegments) == 0 {
		segments = []core.Segment{{
			Points: append([]float64(nil), final...),
			Type:   s.StyleAtSessionStart,
		}}
	} else {
		segments = s.clone().CommittedSegments
		last := segments[len(segments)-1].Points
		last[len(last)-2] = final[len(final)-2]
		last[len(last)-1] = final[len(final)-1]
	}

	// an anchored arrow starts on the player's live position, even if it moved mid-draw
	if p, ok := env.player(s.AnchoredPlayerID); ok {
		segments[0].Points[0], segments[0].Points[1] = p.X, p.Y
	}

	optimized := segment.Optimize(segments)
	points := segment.BuildPoints(optimized)
	if len(points) < 4 {
		// nothing drawable survived; the session still ends
		return Session{}, Outcome{Changed: true}
	}

	return Session{}, Outcome{
		Changed: true,
		Arrow: &core.Arrow{
			ID:               env.newID(),
			Points:           points,
			PrimaryType:      s.StyleAtSessionStart,
			HeadStyle:        env.HeadStyle,
			Color:            env.Color,
			StrokeWidth:      env.StrokeWidth,
			AnchoredPlayerID: s.AnchoredPlayerID,
			Segments:         optimized,
		},
	}
}
