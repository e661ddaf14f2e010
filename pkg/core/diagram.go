// pkg/core/diagram.go
package core

import "time"

// Player is a placed entity on the field
type Player struct {
	ID                 string  `json:"id"`
	X                  float64 `json:"x"`
	Y                  float64 `json:"y"`
	Shape              string  `json:"shape"`
	Team               Team    `json:"team"`
	Size               float64 `json:"size"`
	OrientationFlipped bool    `json:"orientationFlipped"`
	Color              string  `json:"color"`
	Label              string  `json:"label"`
}

// Position returns the player's current point
func (p Player) Position() Point {
	return Point{X: p.X, Y: p.Y}
}

// HalfSize is the distance from the player's center to its edge
func (p Player) HalfSize() float64 {
	return p.Size / 2
}

// Text is a free label. The engine carries texts through untouched.
type Text struct {
	ID       string  `json:"id"`
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	Content  string  `json:"content"`
	FontSize float64 `json:"fontSize"`
	Color    string  `json:"color"`
}

// Field is the fixed drawing surface, split into 6 equal horizontal bands
type Field struct {
	Width     float64 `json:"width"`
	Height    float64 `json:"height"`
	Color     string  `json:"color"`
	LineColor string  `json:"lineColor"`
}

// Center is the anchor entity whose Y decides field orientation
type Center struct {
	ID string  `json:"id"`
	X  float64 `json:"x"`
	Y  float64 `json:"y"`
}

// Position returns the center's point
func (c Center) Position() Point {
	return Point{X: c.X, Y: c.Y}
}

// Diagram is a full snapshot of one route diagram
type Diagram struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Field     Field     `json:"field"`
	Center    Center    `json:"center"`
	Players   []Player  `json:"players"`
	Arrows    []Arrow   `json:"arrows"`
	Texts     []Text    `json:"texts"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Player looks up a player by id
func (d *Diagram) Player(id string) (Player, bool) {
	for _, p := range d.Players {
		if p.ID == id {
			return p, true
		}
	}
	return Player{}, false
}

// Arrow looks up an arrow by id
func (d *Diagram) Arrow(id string) (Arrow, bool) {
	for _, a := range d.Arrows {
		if a.ID == id {
			return a, true
		}
	}
	return Arrow{}, false
}

// Mutation is a partial replacement of a diagram's collections.
// A nil field means the collection is unchanged.
type Mutation struct {
	Players *[]Player
	Arrows  *[]Arrow
	Texts   *[]Text
	Center  *Center
}

// Empty reports whether the mutation replaces nothing
func (m Mutation) Empty() bool {
	return m.Players == nil && m.Arrows == nil && m.Texts == nil && m.Center == nil
}

// ApplyTo replaces the mutated collections on d
func (m Mutation) ApplyTo(d *Diagram) {
	if m.Players != nil {
		d.Players = *m.Players
	}
	if m.Arrows != nil {
		d.Arrows = *m.Arrows
	}
	if m.Texts != nil {
		d.Texts = *m.Texts
	}
	if m.Center != nil {
		d.Center = *m.Center
	}
}

// DiagramSummary is the listing view of a stored diagram
type DiagramSummary struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Players   int       `json:"players"`
	Arrows    int       `json:"arrows"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Clone returns a deep copy of the diagram
func (d Diagram) Clone() Diagram {
	out := d
	out.Players = append([]Player(nil), d.Players...)
	out.Texts = append([]Text(nil), d.Texts...)
	if d.Arrows != nil {
		out.Arrows = make([]Arrow, len(d.Arrows))
		for i, a := range d.Arrows {
			out.Arrows[i] = a.Clone()
		}
	}
	return out
}
