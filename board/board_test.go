package board

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gobanterm/config"
	"gobanterm/types"
)

func newTestStore(size int) *Store {
	return NewStore(size, config.DefaultTheme)
}

// boardCell returns the cell for a board position. Row gutters occupy the
// first cell of a row; intersections and separators alternate after it.
func boardCell(rows []Row, size int, pos types.Coords) Cell {
	row := rows[1+(size-pos.Row)]
	return row[2*pos.Col-1]
}

func TestStarPointCounts(t *testing.T) {
	for size := 7; size <= 25; size++ {
		points := StarPoints(size)
		want := 5
		if size >= 19 {
			want = 9
		}
		assert.Len(t, points, want, "size %d", size)
		for _, p := range points {
			assert.GreaterOrEqual(t, p.Row, 1)
			assert.GreaterOrEqual(t, p.Col, 1)
			assert.LessOrEqual(t, p.Row, size)
			assert.LessOrEqual(t, p.Col, size)
		}
	}
}

func TestStarPointMargins(t *testing.T) {
	assert.Contains(t, StarPoints(9), types.Coords{Row: 3, Col: 3})
	assert.Contains(t, StarPoints(9), types.Coords{Row: 7, Col: 7})
	assert.Contains(t, StarPoints(13), types.Coords{Row: 4, Col: 4})
	assert.Contains(t, StarPoints(19), types.Coords{Row: 4, Col: 16})
	assert.Contains(t, StarPoints(19), types.Coords{Row: 10, Col: 10})
}

func TestLayoutRowCount(t *testing.T) {
	rows := newTestStore(9).Layout()
	// One row per board line plus header and footer.
	assert.Len(t, rows, 11)
}

func TestHeaderLettersSkipI(t *testing.T) {
	rows := newTestStore(19).Layout()
	var letters strings.Builder
	for _, cell := range rows[0] {
		if len(cell.Text) == 1 && cell.Text != " " {
			letters.WriteString(cell.Text)
		}
	}
	assert.Equal(t, "ABCDEFGHJKLMNOPQRST", letters.String())
}

func TestLayoutShowsStones(t *testing.T) {
	s := newTestStore(19)
	s.SetStones(
		[]types.Stone{{Color: types.Black, Row: 4, Col: 16}},
		[]types.Stone{{Color: types.White, Row: 16, Col: 4}},
	)
	rows := s.Layout()

	black := boardCell(rows, 19, types.Coords{Row: 4, Col: 16})
	assert.Equal(t, string(config.DefaultTheme.Symbols.BlackStone), black.Text)

	white := boardCell(rows, 19, types.Coords{Row: 16, Col: 4})
	assert.Equal(t, string(config.DefaultTheme.Symbols.WhiteStone), white.Text)

	empty := boardCell(rows, 19, types.Coords{Row: 1, Col: 1})
	assert.Equal(t, string(config.DefaultTheme.Symbols.Intersection), empty.Text)

	star := boardCell(rows, 19, types.Coords{Row: 10, Col: 10})
	assert.Equal(t, string(config.DefaultTheme.Symbols.StarPoint), star.Text)
}

func TestSetStonesReplacesWholesale(t *testing.T) {
	s := newTestStore(9)
	s.SetStones([]types.Stone{{Color: types.Black, Row: 5, Col: 5}}, nil)
	s.SetStones([]types.Stone{{Color: types.Black, Row: 3, Col: 3}}, nil)
	rows := s.Layout()

	replaced := boardCell(rows, 9, types.Coords{Row: 5, Col: 5})
	assert.Equal(t, string(config.DefaultTheme.Symbols.Intersection), replaced.Text)

	kept := boardCell(rows, 9, types.Coords{Row: 3, Col: 3})
	assert.Equal(t, string(config.DefaultTheme.Symbols.BlackStone), kept.Text)
}

func TestLayoutIsCachedUntilMutation(t *testing.T) {
	s := newTestStore(9)

	first := s.Layout()
	require.False(t, s.dirty)
	second := s.Layout()
	assert.True(t, &first[0] == &second[0], "unchanged store must return the cached layout")

	s.SetStones([]types.Stone{{Color: types.Black, Row: 2, Col: 2}}, nil)
	assert.True(t, s.dirty)
	third := s.Layout()
	assert.False(t, &first[0] == &third[0], "mutation must force a recompute")
	assert.Equal(t,
		string(config.DefaultTheme.Symbols.BlackStone),
		boardCell(third, 9, types.Coords{Row: 2, Col: 2}).Text)
}

func TestEveryMutationMarksDirty(t *testing.T) {
	s := newTestStore(9)
	s.Layout()

	s.SetHighlight(types.OptCoords{Col: 3, HasCol: true})
	assert.True(t, s.dirty)
	s.Layout()

	s.SetPendingInput("C")
	assert.True(t, s.dirty)
}

func TestHighlightStylesRowAndColumn(t *testing.T) {
	s := newTestStore(9)
	base := s.Layout()

	s.SetHighlight(types.OptCoords{Row: 4, Col: 3, HasRow: true, HasCol: true})
	highlighted := s.Layout()

	on := boardCell(highlighted, 9, types.Coords{Row: 4, Col: 3})
	off := boardCell(base, 9, types.Coords{Row: 4, Col: 3})
	assert.NotEqual(t, off.Style, on.Style)

	// A cell on neither the highlighted row nor column keeps its style.
	other := boardCell(highlighted, 9, types.Coords{Row: 7, Col: 7})
	otherBase := boardCell(base, 9, types.Coords{Row: 7, Col: 7})
	assert.Equal(t, otherBase.Style, other.Style)
}
