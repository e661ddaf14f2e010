package board

import (
	"fmt"

	"github.com/routeboard/engine/internal/drawing"
	"github.com/routeboard/engine/internal/link"
	"github.com/routeboard/engine/internal/snap"
	"github.com/routeboard/engine/internal/zone"
	"github.com/routeboard/engine/pkg/core"
)

// Target is the requested drop position of one player in a group drag
type Target struct {
	ID string
	To core.Point
}

func (s *Service) snapContext() snap.Context {
	return snap.Context{Center: s.diagram.Center, Field: s.diagram.Field}
}

// settle clamps p into the player's legal zone, then snaps it
func (s *Service) settle(p core.Point, player core.Player) snap.Result {
	clamped := zone.ClampPlayer(p, player, s.diagram.Center, s.diagram.Field)
	team := player.Team
	return s.snap.Snap(clamped, &team, s.snapContext())
}

// PlacePlayer adds a player at its requested position clamped into its team's zone.
// An empty ID is generated.
func (s *Service) PlacePlayer(p core.Player) (core.Player, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !p.Team.Valid() {
		return core.Player{}, fmt.Errorf("place player: invalid team %q", p.Team)
	}
	if p.ID == "" {
		p.ID = s.deps.NewID()
	}
	if _, exists := s.diagram.Player(p.ID); exists {
		return core.Player{}, fmt.Errorf("place player: duplicate id %q", p.ID)
	}

	at := zone.ClampPlayer(p.Position(), p, s.diagram.Center, s.diagram.Field)
	p.X, p.Y = at.X, at.Y

	players := make([]core.Player, 0, len(s.diagram.Players)+1)
	players = append(players, s.diagram.Players...)
	players = append(players, p)
	s.commit(core.Mutation{Players: &players})
	return p, nil
}

// DragPlayer moves a player transiently. Anchored arrows follow in LiveArrows,
// nothing is committed until EndDragPlayer.
func (s *Service) DragPlayer(id string, to core.Point) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.diagram.Player(id)
	if !ok {
		return false
	}
	if s.drag == nil || s.drag.id != id {
		s.drag = &playerDrag{id: id, from: p.Position()}
	}
	s.drag.to = to
	s.liveArrows = link.Propagate(s.diagram.Arrows, link.Move{PlayerID: id, From: s.drag.from, To: to})
	return true
}

// EndDragPlayer commits a single-player drag: clamp, then snap, then propagate to anchored arrows.
func (s *Service) EndDragPlayer(id string, to core.Point) (core.Point, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.drag = nil
	s.liveArrows = nil

	p, ok := s.diagram.Player(id)
	if !ok {
		return core.Point{}, false
	}

	res := s.settle(to, p)
	s.guides = res.Guides
	s.deps.Tracer.Trace("player.drop",
		"id", id,
		"requested", to,
		"final", res.Point,
		"guides", len(res.Guides),
	)

	s.movePlayers([]link.Move{{PlayerID: id, From: p.Position(), To: res.Point}})
	return res.Point, true
}

// EndGroupDrag commits a multi-player drag. Each player is settled on its own;
// unknown ids are skipped.
func (s *Service) EndGroupDrag(targets []Target) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.drag = nil
	s.liveArrows = nil
	s.guides = nil

	moves := make([]link.Move, 0, len(targets))
	for _, t := range targets {
		p, ok := s.diagram.Player(t.ID)
		if !ok {
			continue
		}
		res := s.settle(t.To, p)
		s.guides = append(s.guides, res.Guides...)
		moves = append(moves, link.Move{PlayerID: t.ID, From: p.Position(), To: res.Point})
	}
	if len(moves) == 0 {
		return 0
	}
	s.movePlayers(moves)
	return len(moves)
}

func (s *Service) movePlayers(moves []link.Move) {
	players := append([]core.Player(nil), s.diagram.Players...)
	for _, m := range moves {
		for i := range players {
			if players[i].ID == m.PlayerID {
				players[i].X, players[i].Y = m.To.X, m.To.Y
			}
		}
	}
	arrows := link.Propagate(s.diagram.Arrows, moves...)
	s.commit(core.Mutation{Players: &players, Arrows: &arrows})
}

// DeletePlayer removes a player and every arrow anchored to it.
// A drawing anchored to the player is cancelled.
func (s *Service) DeletePlayer(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.diagram.Player(id); !ok {
		return false
	}
	if s.session.Drawing && s.session.AnchoredPlayerID == id {
		s.reduce(drawing.Cancel{})
	}
	if s.drag != nil && s.drag.id == id {
		s.drag = nil
		s.liveArrows = nil
	}

	players := make([]core.Player, 0, len(s.diagram.Players))
	for _, p := range s.diagram.Players {
		if p.ID != id {
			players = append(players, p)
		}
	}
	arrows := link.PruneAnchored(s.diagram.Arrows, id)
	s.commit(core.Mutation{Players: &players, Arrows: &arrows})
	return true
}

// MoveCenter moves the center anchor inside the field. Orientation follows on the next read.
func (s *Service) MoveCenter(to core.Point) core.Center {
	s.mu.Lock()
	defer s.mu.Unlock()

	at := to
	if s.diagram.Field.Width > 0 && s.diagram.Field.Height > 0 {
		at = zone.ClampToField(to, s.diagram.Field)
	}
	center := s.diagram.Center
	if center.ID == "" {
		center.ID = "center"
	}
	center.X, center.Y = at.X, at.Y
	s.commit(core.Mutation{Center: &center})
	return center
}
