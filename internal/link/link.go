// Package link keeps arrows anchored to players in sync with player positions.
package link

import (
	"github.com/routeboard/engine/internal/geo"
	"github.com/routeboard/engine/pkg/core"
)

// Move is a committed player position change
type Move struct {
	PlayerID string     `json:"playerId"`
	From     core.Point `json:"from"`
	To       core.Point `json:"to"`
}

// Delta returns the translation applied by the move
func (m Move) Delta() core.Point {
	return m.To.Sub(m.From)
}

// Propagate returns a new arrow slice in which every arrow anchored to a moved player
// is translated by the move's delta and has its first pair pinned to the new position.
// Arrows that are not anchored to a moved player are copied unchanged.
func Propagate(arrows []core.Arrow, moves ...Move) []core.Arrow {
	byPlayer := make(map[string]Move, len(moves))
	for _, m := range moves {
		byPlayer[m.PlayerID] = m
	}

	out := make([]core.Arrow, len(arrows))
	for i, a := range arrows {
		m, ok := byPlayer[a.AnchoredPlayerID]
		if !a.Anchored() || !ok {
			out[i] = a
			continue
		}
		out[i] = translate(a, m)
	}
	return out
}

func translate(a core.Arrow, m Move) core.Arrow {
	d := m.Delta()
	moved := a.Clone()
	moved.Points = geo.Translate(a.Points, d)
	for i, s := range a.Segments {
		moved.Segments[i].Points = geo.Translate(s.Points, d)
	}

	// pin the start to the exact position so repeated moves never drift
	if len(moved.Points) >= 2 {
		moved.Points[0], moved.Points[1] = m.To.X, m.To.Y
	}
	if len(moved.Segments) > 0 && len(moved.Segments[0].Points) >= 2 {
		moved.Segments[0].Points[0], moved.Segments[0].Points[1] = m.To.X, m.To.Y
	}
	return moved
}

// PruneAnchored drops every arrow anchored to the given player
func PruneAnchored(arrows []core.Arrow, playerID string) []core.Arrow {
	out := make([]core.Arrow, 0, len(arrows))
	for _, a := range arrows {
		if a.Anchored() && a.AnchoredPlayerID == playerID {
			continue
		}
		out = append(out, a)
	}
	return out
}

// SyncAnchors pins the start of every anchored arrow to its player's current position.
// Arrows whose player no longer exists are left alone.
func SyncAnchors(arrows []core.Arrow, players []core.Player) []core.Arrow {
	pos := make(map[string]core.Point, len(players))
	for _, p := range players {
		pos[p.ID] = p.Position()
	}

	out := make([]core.Arrow, len(arrows))
	for i, a := range arrows {
		p, ok := pos[a.AnchoredPlayerID]
		if !a.Anchored() || !ok || len(a.Points) < 2 {
			out[i] = a
			continue
		}
		start := core.Point{X: a.Points[0], Y: a.Points[1]}
		if start == p {
			out[i] = a
			continue
		}
		out[i] = translate(a, Move{PlayerID: a.AnchoredPlayerID, From: start, To: p})
	}
	return out
}
