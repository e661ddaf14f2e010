package worker

import (
	"fmt"

	"github.com/routeboard/engine/internal/board"
	"github.com/routeboard/engine/internal/dispatcher"
	"github.com/routeboard/engine/pkg/core"
)

// RegisterHandlers registers all board commands with the dispatcher.
// Board commands are synchronous so their order matches the input order.
func (m *Manager) RegisterHandlers(d *dispatcher.Dispatcher) {
	// Pointer and keyboard input
	d.Register(":CLICK:", m.handleClick, dispatcher.Logged())
	d.Register(":DBLCLICK:", m.handleDoubleClick, dispatcher.Logged())
	d.Register(":MOVE:", m.handleMove)
	d.Register(":KEY:", m.handleKey, dispatcher.Logged())
	d.Register(":TICK:", m.handleTick)

	// Tool settings
	d.Register(":TOOL:", m.handleTool, dispatcher.Logged())
	d.Register(":STYLE:", m.handleStyle, dispatcher.Logged())
	d.Register(":HEAD:", m.handleHead, dispatcher.Logged())
	d.Register(":SNAP:", m.handleSnap, dispatcher.Logged())
	d.Register(":SEGMENTS:", m.handleMaxSegments, dispatcher.Logged())
	d.Register(":MARQUEE:", m.handleMarquee, dispatcher.Logged())

	// Players
	d.Register(":PLAYER:NEW:", m.handlePlayerNew, dispatcher.Logged())
	d.Register(":PLAYER:DRAG:", m.handlePlayerDrag)
	d.Register(":PLAYER:DROP:", m.handlePlayerDrop, dispatcher.Logged())
	d.Register(":GROUP:DROP:", m.handleGroupDrop, dispatcher.Logged())
	d.Register(":PLAYER:DELETE:", m.handlePlayerDelete, dispatcher.Logged())

	// Arrows
	d.Register(":HANDLE:DRAG:", m.handleHandleDrag)
	d.Register(":HANDLE:DROP:", m.handleHandleDrop, dispatcher.Logged())
	d.Register(":ARROW:NEW:", m.handleArrowNew, dispatcher.Logged())

	// Diagram
	d.Register(":CENTER:", m.handleCenter, dispatcher.Logged())
	d.Register(":UNDO:", m.handleUndo, dispatcher.Logged())
	d.Register(":REDO:", m.handleRedo, dispatcher.Logged())
	d.Register(":SAVE:", m.handleSave, dispatcher.Logged())
}

func (m *Manager) handleClick(e dispatcher.Event) (any, error) {
	click, err := m.deps.Parser.ParseClick(e.Args)
	if err != nil {
		return nil, fmt.Errorf("failed to handle click: %w", err)
	}
	return m.deps.Board.Click(click.At, click.PlayerID), nil
}

func (m *Manager) handleDoubleClick(e dispatcher.Event) (any, error) {
	return m.deps.Board.DoubleClick(), nil
}

func (m *Manager) handleMove(e dispatcher.Event) (any, error) {
	at, err := m.deps.Parser.ParseMove(e.Args)
	if err != nil {
		return nil, fmt.Errorf("failed to handle pointer move: %w", err)
	}
	return m.deps.Board.PointerMove(at), nil
}

func (m *Manager) handleKey(e dispatcher.Event) (any, error) {
	key, err := m.deps.Parser.ParseKey(e.Args)
	if err != nil {
		return nil, fmt.Errorf("failed to handle key: %w", err)
	}
	return m.deps.Board.KeyDown(key), nil
}

func (m *Manager) handleTick(e dispatcher.Event) (any, error) {
	return m.deps.Board.Tick(), nil
}

func (m *Manager) handleTool(e dispatcher.Event) (any, error) {
	tool, err := m.deps.Parser.ParseTool(e.Args)
	if err != nil {
		return nil, fmt.Errorf("failed to select tool: %w", err)
	}
	return m.deps.Board.SelectTool(tool), nil
}

func (m *Manager) handleStyle(e dispatcher.Event) (any, error) {
	style, err := m.deps.Parser.ParseStyle(e.Args)
	if err != nil {
		return nil, fmt.Errorf("failed to select style: %w", err)
	}
	return m.deps.Board.SelectStyle(style), nil
}

func (m *Manager) handleHead(e dispatcher.Event) (any, error) {
	head, err := m.deps.Parser.ParseHead(e.Args)
	if err != nil {
		return nil, fmt.Errorf("failed to select head style: %w", err)
	}
	return m.deps.Board.SelectHeadStyle(head), nil
}

func (m *Manager) handleSnap(e dispatcher.Event) (any, error) {
	snap, err := m.deps.Parser.ParseSnap(e.Args)
	if err != nil {
		return nil, fmt.Errorf("failed to set snap: %w", err)
	}
	m.deps.Board.SetSnap(snap.Enabled, snap.Tolerance)
	return snap.Enabled, nil
}

func (m *Manager) handleMaxSegments(e dispatcher.Event) (any, error) {
	n, err := m.deps.Parser.ParseMaxSegments(e.Args)
	if err != nil {
		return nil, fmt.Errorf("failed to set segment cap: %w", err)
	}
	m.deps.Board.SetMaxSegments(n)
	return n, nil
}

func (m *Manager) handleMarquee(e dispatcher.Event) (any, error) {
	on, err := m.deps.Parser.ParseToggle(":MARQUEE:", e.Args)
	if err != nil {
		return nil, fmt.Errorf("failed to set marquee: %w", err)
	}
	m.deps.Board.SetMarquee(on)
	return on, nil
}

func (m *Manager) handlePlayerNew(e dispatcher.Event) (any, error) {
	spec, err := m.deps.Parser.ParsePlayerNew(e.Args)
	if err != nil {
		return nil, fmt.Errorf("failed to log new player: %w", err)
	}
	p, err := m.deps.Board.PlacePlayer(core.Player{
		Team:  spec.Team,
		X:     spec.At.X,
		Y:     spec.At.Y,
		Size:  spec.Size,
		Shape: spec.Shape,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to log new player: %w", err)
	}
	return p.ID, nil
}

func (m *Manager) handlePlayerDrag(e dispatcher.Event) (any, error) {
	pos, err := m.deps.Parser.ParsePlayerPosition(e.Args)
	if err != nil {
		return nil, fmt.Errorf("failed to drag player: %w", err)
	}
	return m.deps.Board.DragPlayer(pos.ID, pos.Point()), nil
}

func (m *Manager) handlePlayerDrop(e dispatcher.Event) (any, error) {
	pos, err := m.deps.Parser.ParsePlayerPosition(e.Args)
	if err != nil {
		return nil, fmt.Errorf("failed to drop player: %w", err)
	}
	at, ok := m.deps.Board.EndDragPlayer(pos.ID, pos.Point())
	if !ok {
		// missing referent: no-op
		return nil, nil
	}
	return at, nil
}

func (m *Manager) handleGroupDrop(e dispatcher.Event) (any, error) {
	moves, err := m.deps.Parser.ParseGroupDrop(e.Args)
	if err != nil {
		return nil, fmt.Errorf("failed to drop group: %w", err)
	}
	targets := make([]board.Target, len(moves))
	for i, mv := range moves {
		targets[i] = board.Target{ID: mv.ID, To: mv.Point()}
	}
	return m.deps.Board.EndGroupDrag(targets), nil
}

func (m *Manager) handlePlayerDelete(e dispatcher.Event) (any, error) {
	id, err := m.deps.Parser.ParseID(e.Args)
	if err != nil {
		return nil, fmt.Errorf("failed to delete player: %w", err)
	}
	return m.deps.Board.DeletePlayer(id), nil
}

func (m *Manager) handleHandleDrag(e dispatcher.Event) (any, error) {
	h, err := m.deps.Parser.ParseHandle(e.Args)
	if err != nil {
		return nil, fmt.Errorf("failed to drag handle: %w", err)
	}
	return m.deps.Board.DragHandle(h.ArrowID, h.Index, h.At), nil
}

func (m *Manager) handleHandleDrop(e dispatcher.Event) (any, error) {
	h, err := m.deps.Parser.ParseHandle(e.Args)
	if err != nil {
		return nil, fmt.Errorf("failed to drop handle: %w", err)
	}
	return m.deps.Board.EndDragHandle(h.ArrowID, h.Index, h.At), nil
}

func (m *Manager) handleArrowNew(e dispatcher.Event) (any, error) {
	imp, err := m.deps.Parser.ParseArrowImport(e.Args)
	if err != nil {
		return nil, fmt.Errorf("failed to import arrow: %w", err)
	}
	a, err := m.deps.Board.ImportArrow(core.Arrow{
		Points:           imp.Points,
		PrimaryType:      imp.Style,
		HeadStyle:        imp.Head,
		AnchoredPlayerID: imp.PlayerID,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to import arrow: %w", err)
	}
	return a.ID, nil
}

func (m *Manager) handleCenter(e dispatcher.Event) (any, error) {
	at, err := m.deps.Parser.ParseCenter(e.Args)
	if err != nil {
		return nil, fmt.Errorf("failed to move center: %w", err)
	}
	return m.deps.Board.MoveCenter(at), nil
}

func (m *Manager) handleUndo(e dispatcher.Event) (any, error) {
	return m.deps.Board.Undo(), nil
}

func (m *Manager) handleRedo(e dispatcher.Event) (any, error) {
	return m.deps.Board.Redo(), nil
}

func (m *Manager) handleSave(e dispatcher.Event) (any, error) {
	if m.deps.Writer == nil {
		return nil, ErrNoWriter
	}
	d := m.deps.Board.Snapshot()
	if err := m.deps.Writer.Save(d); err != nil {
		return nil, fmt.Errorf("failed to save diagram: %w", err)
	}
	return d.ID, nil
}
