// Package sgf writes a session's move record as an SGF FF[4] game file.
package sgf

import (
	"fmt"
	"io"
	"strings"
	"time"

	"gobanterm/types"
)

// Move is one recorded move. A pass has no position.
type Move struct {
	Color types.StoneColor
	Pos   types.Coords
	Pass  bool
}

// Record describes a finished or in-progress game for export.
// PlayerColor is the human's side; the engine holds the other one.
type Record struct {
	BoardSize   int
	EngineName  string
	PlayerColor types.StoneColor
	Date        time.Time
	Moves       []Move
}

// Write emits the record as a single SGF game tree.
func (r Record) Write(w io.Writer) error {
	var b strings.Builder

	b.WriteString("(;GM[1]FF[4]CA[UTF-8]")
	b.WriteString("AP[gobanterm]")
	b.WriteString(fmt.Sprintf("SZ[%d]", r.BoardSize))
	black, white := "Player", r.engineName()
	if r.PlayerColor == types.White {
		black, white = white, black
	}
	b.WriteString(fmt.Sprintf("PB[%s]", black))
	b.WriteString(fmt.Sprintf("PW[%s]", white))
	b.WriteString(fmt.Sprintf("DT[%s]", r.Date.Format("2006-01-02")))
	b.WriteString("\n")

	for _, m := range r.Moves {
		colorChar := "B"
		if m.Color == types.White {
			colorChar = "W"
		}
		if m.Pass {
			b.WriteString(fmt.Sprintf(";%s[]", colorChar))
		} else {
			b.WriteString(fmt.Sprintf(";%s[%s]", colorChar, sgfCoord(m.Pos, r.BoardSize)))
		}
	}

	b.WriteString(")\n")

	_, err := io.WriteString(w, b.String())
	return err
}

func (r Record) engineName() string {
	if r.EngineName == "" {
		return "Engine"
	}
	return r.EngineName
}

// sgfCoord converts board coordinates to an SGF letter pair. SGF counts
// from the top-left, board rows from the bottom.
func sgfCoord(pos types.Coords, size int) string {
	x := pos.Col - 1
	y := size - pos.Row
	return string(rune('a'+x)) + string(rune('a'+y))
}
