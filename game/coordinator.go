// Package game mediates between keyboard input, the board store and the
// engine: it owns the move input buffer and runs the play/refresh chain.
package game

import (
	"strconv"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"

	"gobanterm/board"
	"gobanterm/engine"
	"gobanterm/types"
)

// Status is the coordinator's state machine position.
type Status int

const (
	// StatusIdle accepts input; no command is in flight.
	StatusIdle Status = iota
	// StatusLoading means a play/genmove round-trip is outstanding and
	// input is suppressed.
	StatusLoading
	// StatusError retains the last failure for display. Any key
	// acknowledges it and returns to StatusIdle.
	StatusError
	// StatusOver is terminal: the engine resigned.
	StatusOver
)

// InputKind tags an abstract input symbol.
type InputKind int

const (
	KeyRune InputKind = iota
	KeyBackspace
	KeyCommit
	KeyQuit
)

// Input is one abstract input symbol decoded by the UI layer.
type Input struct {
	Kind InputKind
	Ch   rune
}

// Move is one entry of the session's move record.
type Move struct {
	Color types.StoneColor
	Pos   types.Coords
	Pass  bool
}

// Coordinator turns input symbols into engine calls and re-synchronizes
// the store after every engine-confirmed change. The engine client and the
// store are mutated only from the input path and from the single chain
// goroutine it spawns per committed move.
type Coordinator struct {
	eng         engine.Engine
	store       *board.Store
	playerColor types.StoneColor

	// onUpdate is invoked after every state change so the UI can redraw.
	// Called without the coordinator lock held.
	onUpdate func()

	mu     sync.Mutex
	status Status
	errMsg string
	notice string
	input  string
	moves  []Move

	log *logrus.Entry
}

// New creates a coordinator. onUpdate may be nil.
func New(eng engine.Engine, store *board.Store, playerColor types.StoneColor, onUpdate func()) *Coordinator {
	if onUpdate == nil {
		onUpdate = func() {}
	}
	return &Coordinator{
		eng:         eng,
		store:       store,
		playerColor: playerColor,
		onUpdate:    onUpdate,
		status:      StatusIdle,
		log:         logrus.WithField("component", "game"),
	}
}

// Status returns the current state.
func (c *Coordinator) Status() Status {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.status
}

// ErrorMessage returns the retained failure text, if any.
func (c *Coordinator) ErrorMessage() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.errMsg
}

// Notice returns the last engine event worth showing (pass, resignation).
func (c *Coordinator) Notice() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.notice
}

// Moves returns a copy of the session's move record.
func (c *Coordinator) Moves() []Move {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]Move(nil), c.moves...)
}

// Handle processes one input symbol and reports whether the application
// should quit. While a round-trip is outstanding input is dropped; in the
// error state the first key only acknowledges the error.
func (c *Coordinator) Handle(in Input) (quit bool) {
	if in.Kind == KeyQuit {
		return true
	}

	c.mu.Lock()
	switch c.status {
	case StatusLoading, StatusOver:
		c.mu.Unlock()
		return false
	case StatusError:
		c.status = StatusIdle
		c.errMsg = ""
		c.mu.Unlock()
		c.onUpdate()
		return false
	}

	switch in.Kind {
	case KeyRune:
		c.typeRune(in.Ch)
		c.mu.Unlock()
		c.onUpdate()
	case KeyBackspace:
		if c.input != "" {
			c.input = c.input[:len(c.input)-1]
		}
		c.syncInputLocked()
		c.mu.Unlock()
		c.onUpdate()
	case KeyCommit:
		pos, ok := c.store.Highlight().Coords()
		if !ok {
			// Incomplete move input never reaches the engine.
			c.mu.Unlock()
			return false
		}
		c.status = StatusLoading
		c.input = ""
		c.syncInputLocked()
		c.mu.Unlock()
		c.onUpdate()
		go c.runMoveChain(pos)
	default:
		c.mu.Unlock()
	}
	return false
}

// typeRune applies the input rules: one column letter opens the buffer,
// up to two digits follow. Called with the lock held.
func (c *Coordinator) typeRune(ch rune) {
	switch {
	case isColumnLetter(ch):
		if c.input == "" {
			c.input += strings.ToUpper(string(ch))
		}
	case ch >= '0' && ch <= '9':
		if c.input != "" && len(c.input) < 3 {
			c.input += string(ch)
		}
	default:
		return
	}
	c.syncInputLocked()
}

func isColumnLetter(ch rune) bool {
	_, err := types.ColumnNumber(ch)
	return err == nil
}

// syncInputLocked mirrors the input buffer and its implied highlight into
// the store. Called with the lock held.
func (c *Coordinator) syncInputLocked() {
	c.store.SetPendingInput(c.input)
	c.store.SetHighlight(parseInputCoords(c.input))
}

// parseInputCoords derives the highlight from a partial move input: the
// leading letter is the column, the remaining digits the row.
func parseInputCoords(input string) types.OptCoords {
	var coords types.OptCoords
	if input == "" {
		return coords
	}
	if col, err := types.ColumnNumber(rune(input[0])); err == nil {
		coords.Col = col
		coords.HasCol = true
	}
	if row, err := strconv.Atoi(input[1:]); err == nil && row >= 1 {
		coords.Row = row
		coords.HasRow = true
	}
	return coords
}

// runMoveChain performs one full round: play the player's move, refresh
// both stone lists, ask for the engine's answer, refresh again. Runs on
// its own goroutine; exactly one chain is in flight per Loading state.
func (c *Coordinator) runMoveChain(pos types.Coords) {
	c.log.WithField("vertex", pos.Vertex()).Debug("playing move")

	if err := c.eng.Play(c.playerColor, pos); err != nil {
		c.fail(err)
		return
	}
	c.recordMove(Move{Color: c.playerColor, Pos: pos})

	if err := c.refreshStones(); err != nil {
		c.fail(err)
		return
	}

	reply, err := c.eng.GenMove(c.playerColor.Inverse())
	if err != nil {
		c.fail(err)
		return
	}

	// Record the engine's answer before the refresh: the move happened on
	// the engine's board even if fetching the stones afterwards fails.
	over := false
	notice := ""
	switch reply.Kind {
	case engine.GenMoveResign:
		over = true
		notice = "engine resigned, you win"
	case engine.GenMovePass:
		notice = "engine passed"
		c.recordMove(Move{Color: c.playerColor.Inverse(), Pass: true})
	default:
		c.recordMove(Move{Color: c.playerColor.Inverse(), Pos: reply.Pos})
	}

	if err := c.refreshStones(); err != nil {
		c.fail(err)
		return
	}

	c.mu.Lock()
	if over {
		c.status = StatusOver
	} else {
		c.status = StatusIdle
	}
	c.notice = notice
	c.mu.Unlock()

	c.traceBoard()
	c.onUpdate()
}

// refreshStones fetches both stone lists and writes them into the store
// wholesale. The two queries are independent but the final state must
// contain both colors, so this is a join, not a race.
func (c *Coordinator) refreshStones() error {
	var (
		wg           sync.WaitGroup
		black, white []types.Stone
		blackErr     error
		whiteErr     error
	)
	wg.Add(2)
	go func() {
		defer wg.Done()
		black, blackErr = c.eng.ListStones(types.Black)
	}()
	go func() {
		defer wg.Done()
		white, whiteErr = c.eng.ListStones(types.White)
	}()
	wg.Wait()

	if blackErr != nil {
		return blackErr
	}
	if whiteErr != nil {
		return whiteErr
	}
	c.store.SetStones(black, white)
	return nil
}

// fail moves to the error state, keeping whatever stones were last
// successfully fetched. Partial updates are not reverted.
func (c *Coordinator) fail(err error) {
	c.log.Warn(err.Error())
	c.mu.Lock()
	c.status = StatusError
	c.errMsg = err.Error()
	c.mu.Unlock()
	c.onUpdate()
}

func (c *Coordinator) recordMove(m Move) {
	c.mu.Lock()
	c.moves = append(c.moves, m)
	c.mu.Unlock()
}

// traceBoard logs the engine's own board rendering for debugging.
func (c *Coordinator) traceBoard() {
	if !c.log.Logger.IsLevelEnabled(logrus.DebugLevel) {
		return
	}
	if text, err := c.eng.ShowBoard(); err == nil {
		c.log.Debug("engine board:\n" + text)
	}
}
