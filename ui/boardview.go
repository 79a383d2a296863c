// Package ui renders the board store's layout with tview.
package ui

import (
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"gobanterm/board"
)

// BoardView draws the store's render layout. It holds no board state of
// its own; every draw reads the current (possibly cached) layout.
type BoardView struct {
	Box   *tview.Box
	store *board.Store
}

func NewBoardView(store *board.Store) *BoardView {
	v := &BoardView{
		Box:   tview.NewBox(),
		store: store,
	}
	v.Box.SetDrawFunc(func(screen tcell.Screen, x, y, width, height int) (int, int, int, int) {
		rows := store.Layout()
		for iy, row := range rows {
			if iy >= height {
				break
			}
			ix := x
			for _, cell := range row {
				for _, r := range cell.Text {
					screen.SetContent(ix, y+iy, r, nil, cell.Style)
					ix++
				}
			}
		}
		return x, y, width, height
	})
	return v
}

// Width returns the drawn width in terminal cells: two gutters of four
// plus intersections separated by single connector cells.
func (v *BoardView) Width() int {
	return 2*4 + 2*v.store.Size() - 1
}

// Height returns the drawn height: one line per board row plus the two
// coordinate header lines.
func (v *BoardView) Height() int {
	return v.store.Size() + 2
}
