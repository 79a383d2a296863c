// gobanterm is a terminal application to play Go against a local GTP
// engine such as GnuGo.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
	"github.com/sirupsen/logrus"

	"gobanterm/board"
	"gobanterm/config"
	"gobanterm/engine/gtp"
	"gobanterm/game"
	"gobanterm/sgf"
	"gobanterm/types"
	"gobanterm/ui"
)

// verbosity counts occurrences of -v: each repetition raises the level.
type verbosity int

func (v *verbosity) String() string     { return strconv.Itoa(int(*v)) }
func (v *verbosity) IsBoolFlag() bool   { return true }
func (v *verbosity) Set(s string) error { *v++; return nil }

var (
	flagConfig    = flag.String("config", "", "Path to a config file (overrides the xdg location)")
	flagEngine    = flag.String("engine", "", "Path to the GTP engine binary (overrides config)")
	flagColor     = flag.String("color", "black", "Player color (black or white)")
	flagSGF       = flag.String("sgf", "", "Write the game record to this SGF file on exit")
	flagDebugFile = flag.String("debug-file", "", "Write debug output to a file")
	flagVerbosity verbosity
)

func init() {
	flag.Var(&flagVerbosity, "v", "Verbosity; repeat for more (error, warn, info, debug)")
}

func main() {
	flag.Parse()
	initLogger()

	cfg, err := config.InitConfig(*flagConfig)
	if err != nil {
		fatal(err)
	}
	if *flagEngine != "" {
		cfg.Engine.Bin = *flagEngine
	}

	playerColor := types.Black
	if *flagColor == "white" || *flagColor == "w" {
		playerColor = types.White
	}

	client, err := gtp.NewClient(cfg.Engine.Bin, cfg.Engine.Args)
	if err != nil {
		fatal(err)
	}
	defer client.Close()

	engineName, err := client.Name()
	if err != nil {
		fatal(err)
	}
	size, err := client.QueryBoardSize()
	if err != nil {
		fatal(err)
	}
	logrus.WithFields(logrus.Fields{"engine": engineName, "size": size}).Info("session started")

	store := board.NewStore(size, cfg.Theme)

	app := tview.NewApplication()
	boardView := ui.NewBoardView(store)
	status := ui.NewStatusPanel(store, cfg.Theme)

	var coordinator *game.Coordinator
	coordinator = game.New(client, store, playerColor, func() {
		// Completions arrive from the chain goroutine; hand the redraw to
		// the UI goroutine without blocking the chain.
		go app.QueueUpdateDraw(func() {
			status.Refresh(coordinator)
		})
	})

	boardView.Box.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		in, ok := decodeKey(event)
		if !ok {
			return event
		}
		if coordinator.Handle(in) {
			saveRecord(coordinator, size, engineName, playerColor)
			app.Stop()
			return nil
		}
		status.Refresh(coordinator)
		return nil
	})

	status.Refresh(coordinator)
	if err := app.SetRoot(ui.NewGameLayout(boardView, status), true).Run(); err != nil {
		fatal(err)
	}
}

// decodeKey maps terminal key events onto the coordinator's abstract
// input symbols.
func decodeKey(event *tcell.EventKey) (game.Input, bool) {
	switch event.Key() {
	case tcell.KeyCtrlC:
		return game.Input{Kind: game.KeyQuit}, true
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		return game.Input{Kind: game.KeyBackspace}, true
	case tcell.KeyEnter:
		return game.Input{Kind: game.KeyCommit}, true
	case tcell.KeyRune:
		if event.Rune() == 'q' {
			return game.Input{Kind: game.KeyQuit}, true
		}
		return game.Input{Kind: game.KeyRune, Ch: event.Rune()}, true
	}
	return game.Input{}, false
}

// saveRecord exports the move record if an SGF path was requested.
func saveRecord(coordinator *game.Coordinator, size int, engineName string, playerColor types.StoneColor) {
	if *flagSGF == "" {
		return
	}
	moves := coordinator.Moves()
	if len(moves) == 0 {
		return
	}
	record := sgf.Record{
		BoardSize:   size,
		EngineName:  engineName,
		PlayerColor: playerColor,
		Date:        time.Now(),
	}
	for _, m := range moves {
		record.Moves = append(record.Moves, sgf.Move{Color: m.Color, Pos: m.Pos, Pass: m.Pass})
	}
	f, err := os.Create(*flagSGF)
	if err != nil {
		logrus.WithError(err).Error("cannot create sgf file")
		return
	}
	defer f.Close()
	if err := record.Write(f); err != nil {
		logrus.WithError(err).Error("cannot write sgf file")
	}
}

// initLogger routes logs away from the terminal, which tview owns.
func initLogger() {
	switch {
	case flagVerbosity <= 0:
		logrus.SetLevel(logrus.ErrorLevel)
	case flagVerbosity == 1:
		logrus.SetLevel(logrus.WarnLevel)
	case flagVerbosity == 2:
		logrus.SetLevel(logrus.InfoLevel)
	default:
		logrus.SetLevel(logrus.DebugLevel)
	}

	if *flagDebugFile == "" {
		logrus.SetOutput(io.Discard)
		return
	}
	f, err := os.Create(*flagDebugFile)
	if err != nil {
		fatal(fmt.Errorf("cannot open debug file: %w", err))
	}
	logrus.SetOutput(f)
}

func fatal(err error) {
	fmt.Fprintln(os.Stderr, err)
	os.Exit(1)
}
