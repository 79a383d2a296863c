// Package engine defines the interface to an external Go engine.
package engine

import "gobanterm/types"

// Engine is a client for an external Go-playing process. Implementations
// serialize commands: at most one is in flight at a time, and a second
// caller queues behind any awaited reply.
type Engine interface {
	// Name returns the engine's self-reported name.
	Name() (string, error)

	// QueryBoardSize returns the engine's configured board size. It is
	// queried once at startup; the size is fixed for the session.
	QueryBoardSize() (int, error)

	// Play places a stone for the given color. The engine validates
	// legality; the client only validates protocol shape.
	Play(color types.StoneColor, pos types.Coords) error

	// ListStones returns every stone of the given color currently on the
	// board, as reported by the engine.
	ListStones(color types.StoneColor) ([]types.Stone, error)

	// GenMove asks the engine to choose and play a move for the given
	// color. The engine may pass or resign instead of playing.
	GenMove(color types.StoneColor) (GenMove, error)

	// ShowBoard returns the engine's ASCII rendering of the board.
	// Diagnostic only.
	ShowBoard() (string, error)

	// Close shuts the engine down.
	Close() error
}

// GenMoveKind classifies a genmove outcome.
type GenMoveKind int

const (
	GenMovePosition GenMoveKind = iota
	GenMovePass
	GenMoveResign
)

// GenMove is the outcome of a generate-move request. Pos is only
// meaningful when Kind is GenMovePosition.
type GenMove struct {
	Kind GenMoveKind
	Pos  types.Coords
}
