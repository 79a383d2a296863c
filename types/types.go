// Package types contains the shared board entities for gobanterm.
package types

import (
	"fmt"
	"strconv"
	"strings"
)

// StoneColor is the color of a placed stone or a move.
type StoneColor int

const (
	Black StoneColor = iota
	White
)

// String returns the long color name used in logs and UI text.
func (c StoneColor) String() string {
	if c == White {
		return "white"
	}
	return "black"
}

// Token returns the one-letter color argument used on the wire.
func (c StoneColor) Token() string {
	if c == White {
		return "w"
	}
	return "b"
}

// Inverse returns the opposite color.
func (c StoneColor) Inverse() StoneColor {
	if c == White {
		return Black
	}
	return White
}

// Coords is a fully specified board position, 1-based in both axes.
// Row 1 is the bottom line of the board, matching vertex notation.
type Coords struct {
	Row int
	Col int
}

// Vertex returns the wire notation for the position, e.g. Q4.
func (c Coords) Vertex() string {
	return fmt.Sprintf("%c%d", ColumnName(c.Col), c.Row)
}

// Stone is a placed piece as reported by the engine.
type Stone struct {
	Color StoneColor
	Row   int
	Col   int
}

// OptCoords is a partially specified position, produced while the user is
// still typing a move. Row and column are independently present.
type OptCoords struct {
	Row    int
	Col    int
	HasRow bool
	HasCol bool
}

// Coords converts to a full position. It fails unless both row and column
// are present.
func (o OptCoords) Coords() (Coords, bool) {
	if !o.HasRow || !o.HasCol {
		return Coords{}, false
	}
	return Coords{Row: o.Row, Col: o.Col}, true
}

// The column alphabet runs A-T and skips I, a convention shared by every
// GTP engine. Column 1 is A, column 9 is J, column 19 is T.

// ColumnName returns the letter for a 1-based column number.
func ColumnName(col int) rune {
	r := 'A' + rune(col-1)
	if col >= 9 {
		r++ // skip I
	}
	return r
}

// ColumnNumber returns the 1-based column number for a letter, upper or
// lower case. It rejects I and anything outside A-T.
func ColumnNumber(letter rune) (int, error) {
	if letter >= 'a' && letter <= 'z' {
		letter -= 'a' - 'A'
	}
	if letter == 'I' || letter < 'A' || letter > 'T' {
		return 0, fmt.Errorf("invalid column letter %q", letter)
	}
	col := int(letter-'A') + 1
	if letter > 'I' {
		col--
	}
	return col, nil
}

// ParseVertex parses wire notation (e.g. Q4) back into coordinates.
// It is the inverse of Coords.Vertex.
func ParseVertex(token string) (Coords, error) {
	token = strings.TrimSpace(token)
	if len(token) < 2 {
		return Coords{}, fmt.Errorf("invalid vertex %q", token)
	}
	col, err := ColumnNumber(rune(token[0]))
	if err != nil {
		return Coords{}, fmt.Errorf("invalid vertex %q: %v", token, err)
	}
	row, err := strconv.Atoi(token[1:])
	if err != nil || row < 1 {
		return Coords{}, fmt.Errorf("invalid vertex %q: bad row", token)
	}
	return Coords{Row: row, Col: col}, nil
}
