// Package board holds the authoritative board snapshot and turns it into
// a render-ready layout of styled cells.
package board

import (
	"fmt"
	"sort"
	"sync"

	"github.com/gdamore/tcell/v2"

	"gobanterm/config"
	"gobanterm/types"
)

// Cell is one renderable fragment of a board row. Text may be wider than
// one terminal column (the row-number gutters are three wide).
type Cell struct {
	Text  string
	Style tcell.Style
}

// Row is a left-to-right sequence of cells.
type Row []Cell

// Store owns the board state. Stones are engine-authoritative and always
// replaced wholesale; the layout is recomputed lazily, only when a
// mutation has happened since the last read.
type Store struct {
	mu sync.Mutex

	size       int
	theme      config.Theme
	starPoints []types.Coords

	black        []types.Stone
	white        []types.Stone
	highlight    types.OptCoords
	pendingInput string

	dirty bool
	rows  []Row
}

// NewStore creates a store for a fixed board size. Star points depend
// only on the size and are computed once.
func NewStore(size int, theme config.Theme) *Store {
	return &Store{
		size:       size,
		theme:      theme,
		starPoints: StarPoints(size),
		dirty:      true,
	}
}

// Size returns the board size for the session.
func (s *Store) Size() int { return s.size }

// SetStones replaces both stone collections. No diffing: the engine is
// the source of truth and always reports the complete list.
func (s *Store) SetStones(black, white []types.Stone) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.black = black
	s.white = white
	s.dirty = true
}

// Stones returns the current stone lists.
func (s *Store) Stones() (black, white []types.Stone) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.black, s.white
}

// SetHighlight updates the position implied by the user's partial input.
func (s *Store) SetHighlight(coords types.OptCoords) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.highlight = coords
	s.dirty = true
}

// Highlight returns the current highlight position.
func (s *Store) Highlight() types.OptCoords {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.highlight
}

// SetPendingInput stores the move text being typed.
func (s *Store) SetPendingInput(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pendingInput = text
	s.dirty = true
}

// PendingInput returns the move text being typed.
func (s *Store) PendingInput() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pendingInput
}

// Layout returns the render-ready rows, recomputing them only if a
// mutation happened since the last call.
func (s *Store) Layout() []Row {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.dirty {
		s.rows = s.computeRows()
		s.dirty = false
	}
	return s.rows
}

// StarPoints returns the handicap-marker intersections for a board size:
// four corners offset by the margin, the center, and for 19 and up the
// four edge midpoints.
func StarPoints(size int) []types.Coords {
	margin := 3
	if size >= 13 {
		margin = 4
	}
	middle := size / 2
	far := size - margin + 1

	points := []types.Coords{
		{Row: margin, Col: margin},
		{Row: margin, Col: far},
		{Row: far, Col: margin},
		{Row: far, Col: far},
		{Row: middle, Col: middle},
	}
	if size >= 19 {
		points = append(points,
			types.Coords{Row: margin, Col: middle},
			types.Coords{Row: far, Col: middle},
			types.Coords{Row: middle, Col: margin},
			types.Coords{Row: middle, Col: far},
		)
	}
	return points
}

func (s *Store) computeRows() []Row {
	rows := make([]Row, 0, s.size+2)
	rows = append(rows, s.headerRow())
	for line := s.size; line >= 1; line-- {
		rows = append(rows, s.lineRow(line))
	}
	rows = append(rows, s.headerRow())
	return rows
}

func (s *Store) baseStyle() tcell.Style {
	return tcell.StyleDefault.
		Background(tcell.PaletteColor(s.theme.Colors.BoardBg)).
		Foreground(tcell.PaletteColor(s.theme.Colors.Text))
}

func (s *Store) headerRow() Row {
	headerStyle := s.baseStyle().Bold(true)
	hlBg := tcell.PaletteColor(s.theme.Colors.BoardBgHighlight)

	row := Row{{Text: "    ", Style: s.baseStyle()}}
	for col := 1; col <= s.size; col++ {
		style := headerStyle
		if s.highlight.HasCol && s.highlight.Col == col {
			style = style.Background(hlBg)
		}
		row = append(row, Cell{Text: string(types.ColumnName(col)), Style: style})
		if col < s.size {
			row = append(row, Cell{Text: " ", Style: s.baseStyle()})
		}
	}
	row = append(row, Cell{Text: "    ", Style: s.baseStyle()})
	return row
}

func (s *Store) lineRow(line int) Row {
	headerStyle := s.baseStyle().Bold(true)
	lineStyle := s.baseStyle().Foreground(tcell.PaletteColor(s.theme.Colors.Line))
	hlBg := tcell.PaletteColor(s.theme.Colors.BoardBgHighlight)

	lineFocused := s.highlight.HasRow && s.highlight.Row == line

	// Stones and star points on this line, sorted by column descending and
	// consumed back to front as the scan moves left to right.
	lineStones := s.stonesOnLine(line)
	lineStars := s.starsOnLine(line)
	sort.Slice(lineStones, func(i, j int) bool { return lineStones[i].Col > lineStones[j].Col })
	sort.Slice(lineStars, func(i, j int) bool { return lineStars[i].Col > lineStars[j].Col })

	gutterStyle := headerStyle
	if lineFocused {
		gutterStyle = gutterStyle.Background(hlBg)
	}
	row := Row{{Text: fmt.Sprintf(" %2d ", line), Style: gutterStyle}}

	for col := 1; col <= s.size; col++ {
		var stone *types.Stone
		if n := len(lineStones); n > 0 && lineStones[n-1].Col == col {
			stone = &lineStones[n-1]
			lineStones = lineStones[:n-1]
		}
		isStar := false
		if n := len(lineStars); n > 0 && lineStars[n-1].Col == col {
			isStar = true
			lineStars = lineStars[:n-1]
		}

		colFocused := s.highlight.HasCol && s.highlight.Col == col
		style := lineStyle
		if lineFocused || colFocused {
			style = style.Background(hlBg)
		}

		var text string
		switch {
		case stone != nil && stone.Color == types.Black:
			text = string(s.theme.Symbols.BlackStone)
			style = style.Foreground(tcell.PaletteColor(s.theme.Colors.BlackStone))
		case stone != nil:
			text = string(s.theme.Symbols.WhiteStone)
			style = style.Foreground(tcell.PaletteColor(s.theme.Colors.WhiteStone))
		case isStar:
			text = string(s.theme.Symbols.StarPoint)
			style = style.Foreground(tcell.PaletteColor(s.theme.Colors.StarPoint))
		default:
			text = string(s.theme.Symbols.Intersection)
		}
		row = append(row, Cell{Text: text, Style: style})

		if col < s.size {
			sepStyle := lineStyle
			if lineFocused {
				sepStyle = sepStyle.Background(hlBg)
			}
			row = append(row, Cell{Text: string(s.theme.Symbols.HorizLine), Style: sepStyle})
		}
	}

	row = append(row, Cell{Text: fmt.Sprintf(" %-2d ", line), Style: gutterStyle})
	return row
}

func (s *Store) stonesOnLine(line int) []types.Stone {
	var stones []types.Stone
	for _, st := range s.white {
		if st.Row == line {
			stones = append(stones, st)
		}
	}
	for _, st := range s.black {
		if st.Row == line {
			stones = append(stones, st)
		}
	}
	return stones
}

func (s *Store) starsOnLine(line int) []types.Coords {
	var stars []types.Coords
	for _, p := range s.starPoints {
		if p.Row == line {
			stars = append(stars, p)
		}
	}
	return stars
}
