package ui

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"gobanterm/board"
	"gobanterm/config"
	"gobanterm/game"
)

// StatusPanel shows the pending move input and the coordinator's state
// next to the board.
type StatusPanel struct {
	View       *tview.TextView
	store      *board.Store
	loadingTag string
	errorTag   string
}

func NewStatusPanel(store *board.Store, theme config.Theme) *StatusPanel {
	view := tview.NewTextView()
	view.SetDynamicColors(true)
	view.SetBorder(true)
	view.SetBorderPadding(0, 0, 1, 1)
	view.SetTitle(" Status ")
	view.SetTitleAlign(tview.AlignLeft)
	return &StatusPanel{
		View:       view,
		store:      store,
		loadingTag: colorTag(theme.Colors.LoadingFg, theme.Colors.LoadingBg),
		errorTag:   colorTag(theme.Colors.ErrorFg, theme.Colors.ErrorBg),
	}
}

// colorTag renders two palette indices as a tview dynamic color tag.
func colorTag(fg, bg int) string {
	return fmt.Sprintf("[#%06x:#%06x]", tcell.PaletteColor(fg).Hex(), tcell.PaletteColor(bg).Hex())
}

// Refresh rebuilds the panel text from the coordinator's state. Must run
// on the UI goroutine.
func (p *StatusPanel) Refresh(c *game.Coordinator) {
	var text string
	switch c.Status() {
	case game.StatusLoading:
		text = fmt.Sprintf("Next move: %sthinking…[-:-]", p.loadingTag)
	case game.StatusError:
		text = fmt.Sprintf("%s%s[-:-]\n\npress any key", p.errorTag, tview.Escape(c.ErrorMessage()))
	case game.StatusOver:
		text = fmt.Sprintf("%s\n\nq · quit", c.Notice())
	default:
		text = fmt.Sprintf("Next move: %s", p.store.PendingInput())
		if notice := c.Notice(); notice != "" {
			text += "\n\n" + notice
		}
		text += "\n\nA-T then 1-19 · ⏎ play · q quit"
	}
	p.View.SetText(text)
}

// NewGameLayout centers the board with the status panel beside it.
func NewGameLayout(boardView *BoardView, status *StatusPanel) *tview.Flex {
	inner := tview.NewFlex().
		AddItem(boardView.Box, boardView.Width(), 0, true).
		AddItem(status.View, 36, 0, false)

	return tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(tview.NewBox(), 0, 1, false).
		AddItem(inner, boardView.Height(), 0, true).
		AddItem(tview.NewBox(), 0, 1, false)
}
