package zone

import (
	"fmt"
	"testing"

	"github.com/routeboard/engine/pkg/core"
	"github.com/stretchr/testify/assert"
)

var field = core.Field{Width: 800, Height: 600}

func TestBandLine(t *testing.T) {
	assert.Equal(t, 0.0, BandLine(0, 600))
	assert.Equal(t, 200.0, BandLine(2, 600))
	assert.Equal(t, 400.0, BandLine(4, 600))
	assert.Equal(t, 600.0, BandLine(6, 600))
}

func TestIsFieldFlipped(t *testing.T) {
	tests := []struct {
		centerY float64
		want    bool
	}{
		{400, false},
		{200, true},
		{250, true},
		{350, false},
		{300, false}, // equidistant stays unflipped
		{0, true},
		{600, false},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("y=%v", tt.centerY), func(t *testing.T) {
			assert.Equal(t, tt.want, IsFieldFlipped(tt.centerY, 600))
		})
	}
}

func TestLegalYRange(t *testing.T) {
	tests := []struct {
		name    string
		team    core.Team
		flipped bool
		half    float64
		wantMin float64
		wantMax float64
	}{
		{"offense", core.TeamOffense, false, 10, 415, 590},
		{"defense", core.TeamDefense, false, 10, 200, 385},
		{"offense flipped", core.TeamOffense, true, 10, 10, 185},
		// flipped defense is capped at the band-4 line, the mirror of the unflipped band-2 cap
		{"defense flipped", core.TeamDefense, true, 10, 215, 400},
		{"oversized offense", core.TeamOffense, false, 200, 415, 415},
		{"oversized defense", core.TeamDefense, false, 390, 385, 385},
		{"oversized offense flipped", core.TeamOffense, true, 200, 185, 185},
		{"oversized defense flipped", core.TeamDefense, true, 400, 215, 215},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lo, hi := LegalYRange(tt.team, tt.flipped, 600, tt.half)
			assert.Equal(t, tt.wantMin, lo)
			assert.Equal(t, tt.wantMax, hi)
		})
	}
}

func TestClamp(t *testing.T) {
	got := Clamp(core.Point{X: -50, Y: 100}, core.TeamOffense, false, field, 10)
	assert.Equal(t, core.Point{X: 10, Y: 415}, got)

	got = Clamp(core.Point{X: 900, Y: 580}, core.TeamDefense, false, field, 10)
	assert.Equal(t, core.Point{X: 790, Y: 385}, got)

	got = Clamp(core.Point{X: 300, Y: 300}, core.TeamDefense, false, field, 10)
	assert.Equal(t, core.Point{X: 300, Y: 300}, got)
}

func TestClamp_InvariantAndIdempotent(t *testing.T) {
	points := []core.Point{
		{X: -100, Y: -100}, {X: 0, Y: 0}, {X: 400, Y: 300}, {X: 799, Y: 599},
		{X: 1000, Y: 1000}, {X: 50, Y: 199}, {X: 50, Y: 401}, {X: 400, Y: 215},
	}
	halves := []float64{0, 5, 10, 30, 250}

	for _, team := range []core.Team{core.TeamOffense, core.TeamDefense} {
		for _, flipped := range []bool{false, true} {
			for _, half := range halves {
				lo, hi := LegalYRange(team, flipped, field.Height, half)
				for _, p := range points {
					once := Clamp(p, team, flipped, field, half)
					assert.GreaterOrEqual(t, once.Y, lo)
					assert.LessOrEqual(t, once.Y, hi)
					assert.Equal(t, once, Clamp(once, team, flipped, field, half),
						"team=%s flipped=%v half=%v p=%v", team, flipped, half, p)
				}
			}
		}
	}
}

func TestClampPlayer_UsesLiveCenter(t *testing.T) {
	player := core.Player{Team: core.TeamOffense, Size: 20}

	notFlipped := ClampPlayer(core.Point{X: 100, Y: 100}, player, core.Center{Y: 400}, field)
	assert.Equal(t, 415.0, notFlipped.Y)

	flipped := ClampPlayer(core.Point{X: 100, Y: 500}, player, core.Center{Y: 200}, field)
	assert.Equal(t, 185.0, flipped.Y)
}

func TestClampToField(t *testing.T) {
	assert.Equal(t, core.Point{X: 0, Y: 600}, ClampToField(core.Point{X: -5, Y: 700}, field))
	assert.Equal(t, core.Point{X: 800, Y: 0}, ClampToField(core.Point{X: 805, Y: -1}, field))
	assert.Equal(t, core.Point{X: 12, Y: 34}, ClampToField(core.Point{X: 12, Y: 34}, field))
}
