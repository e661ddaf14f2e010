package model

import (
	"time"

	geom "github.com/peterstace/simplefeatures/geom"
	"gorm.io/datatypes"
)

////////////////////////
// DATABASE STRUCTURES //
////////////////////////

// DatabaseModels is a list of all the structs exported here which represent tables in the database schema
var DatabaseModels = []interface{}{
	&Diagram{},
	&Player{},
	&Arrow{},
	&Text{},
}

// Diagram is one stored route diagram. Field and center are flattened into columns.
type Diagram struct {
	ID        string    `json:"id" gorm:"primaryKey;size:64"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt" gorm:"index:idx_diagram_updated_at"`
	Name      string    `json:"name" gorm:"size:255;index:idx_diagram_name"`

	FieldWidth     float64    `json:"fieldWidth"`
	FieldHeight    float64    `json:"fieldHeight"`
	FieldColor     string     `json:"fieldColor" gorm:"size:32"`
	FieldLineColor string     `json:"fieldLineColor" gorm:"size:32"`
	CenterID       string     `json:"centerId" gorm:"size:64"`
	CenterPosition geom.Point `json:"centerPosition"` // XY of the center entity

	Players []Player `json:"players" gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;foreignKey:DiagramID;"`
	Arrows  []Arrow  `json:"arrows" gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;foreignKey:DiagramID;"`
	Texts   []Text   `json:"texts" gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;foreignKey:DiagramID;"`
}

func (*Diagram) TableName() string {
	return "diagrams"
}

// Player is a placed player token
type Player struct {
	ID        uint   `json:"id" gorm:"primarykey;autoIncrement;"`
	DiagramID string `json:"diagramId" gorm:"size:64;index:idx_player_diagram_id"`
	Ordinal   int    `json:"ordinal"` // position in the diagram's player list

	PlayerID           string     `json:"playerId" gorm:"size:64;index:idx_player_player_id"`
	Position           geom.Point `json:"position"`
	Shape              string     `json:"shape" gorm:"size:32"`
	Team               string     `json:"team" gorm:"size:16"`
	Size               float64    `json:"size"`
	OrientationFlipped bool       `json:"orientationFlipped" gorm:"default:false"`
	Color              string     `json:"color" gorm:"size:32"`
	Label              string     `json:"label" gorm:"size:128"`
}

func (*Player) TableName() string {
	return "players"
}

// Arrow is a finished route annotation
type Arrow struct {
	ID        uint   `json:"id" gorm:"primarykey;autoIncrement;"`
	DiagramID string `json:"diagramId" gorm:"size:64;index:idx_arrow_diagram_id"`
	Ordinal   int    `json:"ordinal"`

	ArrowID          string          `json:"arrowId" gorm:"size:64;index:idx_arrow_arrow_id"`
	Polyline         geom.LineString `json:"polyline"` // flattened render points
	PrimaryType      string          `json:"primaryType" gorm:"size:16"`
	HeadStyle        string          `json:"headStyle" gorm:"size:16"`
	Color            string          `json:"color" gorm:"size:32"`
	StrokeWidth      float64         `json:"strokeWidth"`
	AnchoredPlayerID string          `json:"anchoredPlayerId" gorm:"size:64;index:idx_arrow_anchored_player_id"`
	Segments         datatypes.JSON  `json:"segments"` // [{"points":[...],"type":"..."}]
}

func (*Arrow) TableName() string {
	return "arrows"
}

// Text is a free label
type Text struct {
	ID        uint   `json:"id" gorm:"primarykey;autoIncrement;"`
	DiagramID string `json:"diagramId" gorm:"size:64;index:idx_text_diagram_id"`
	Ordinal   int    `json:"ordinal"`

	TextID   string     `json:"textId" gorm:"size:64"`
	Position geom.Point `json:"position"`
	Content  string     `json:"content" gorm:"size:1024"`
	FontSize float64    `json:"fontSize"`
	Color    string     `json:"color" gorm:"size:32"`
}

func (*Text) TableName() string {
	return "texts"
}
