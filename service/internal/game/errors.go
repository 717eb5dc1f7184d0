package game

import (
	"errors"
	"fmt"

	engine "github.com/jason-s-yu/pangkah/engine"
)

// Room-level rejections. All of them wrap engine.ErrInvalidState, so callers
// can tell a bad move (engine.ErrIllegalMove) from a bad room state.
var (
	ErrRoomNotFound     = fmt.Errorf("%w: room not found", engine.ErrInvalidState)
	ErrRoomFull         = fmt.Errorf("%w: room is full", engine.ErrInvalidState)
	ErrNotHost          = fmt.Errorf("%w: only the host can do that", engine.ErrInvalidState)
	ErrBadPassword      = fmt.Errorf("%w: wrong room password", engine.ErrInvalidState)
	ErrAlreadyStarted   = fmt.Errorf("%w: game already started", engine.ErrInvalidState)
	ErrNotStarted       = fmt.Errorf("%w: no game in progress", engine.ErrInvalidState)
	ErrNotSeated        = fmt.Errorf("%w: not seated in this room", engine.ErrInvalidState)
	ErrNoSwapPending    = fmt.Errorf("%w: no swap pending for you", engine.ErrInvalidState)
	ErrSwapPending      = fmt.Errorf("%w: a swap is already pending", engine.ErrInvalidState)
	ErrNotEnoughPlayers = fmt.Errorf("%w: not enough players", engine.ErrInvalidState)
	ErrPlayerCount      = fmt.Errorf("%w: player count not supported", engine.ErrInvalidState)
	ErrBadOptions       = fmt.Errorf("%w: invalid room options", engine.ErrInvalidState)
)

// ErrUnknownCommand is returned for command types the dispatcher does not know.
var ErrUnknownCommand = errors.New("unknown command")
