// Package games holds the mini-game plugin contract and every mini-game
// state machine. A game owns the room's GameData payload while it is
// active; the orchestrator calls into it with the room lock held, so
// implementations never need their own locking.
package games

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/yaegerbomb42/famgame/models"
)

var (
	ErrUnknownGame = errors.New("unknown game tag")
	ErrBadPayload  = errors.New("malformed payload")
)

// Context is what the orchestrator hands a game for the duration of one
// call. Schedule binds delayed callbacks to the current game generation;
// SendTo delivers a targeted event to a single client.
type Context struct {
	Room     *models.Room
	Schedule func(delay time.Duration, fn func())
	SendTo   func(playerID, event string, data any)
	Now      func() time.Time
}

// Game is the contract every mini-game implements.
//
// Start seeds Room.GameData and may schedule auto-transitions.
// HandleInput validates one player event for the current phase, mutates
// the payload and applies scoring; inputs that arrive after their phase
// has resolved are silent no-ops, never errors. Advance moves to the next
// round and reports false when nothing is left, which sends the room to
// RESULTS. End releases whatever the game still holds.
type Game interface {
	Tag() models.GameTag
	Start(ctx *Context)
	HandleInput(ctx *Context, playerID, event string, payload json.RawMessage) error
	Advance(ctx *Context) bool
	End(ctx *Context)
}

// PlayerLeaver is implemented by games whose phase completion depends on
// the set of remaining players. The orchestrator calls PlayerLeft after a
// player drops mid-game, so a phase waiting on the departed player does
// not stall until the host advances manually. Games resolved purely by
// timers skip it.
type PlayerLeaver interface {
	PlayerLeft(ctx *Context, playerID string)
}

// decode unmarshals a payload, folding JSON errors into ErrBadPayload so
// the orchestrator can turn them into one targeted error event.
func decode(payload json.RawMessage, v any) error {
	if err := json.Unmarshal(payload, v); err != nil {
		return fmt.Errorf("%w: %v", ErrBadPayload, err)
	}
	return nil
}

// participants returns the players in join order, excluding the host: the
// host screen drives the room but never plays.
func participants(room *models.Room) []*models.Player {
	out := make([]*models.Player, 0, len(room.Players))
	for _, p := range room.OrderedPlayers() {
		if !p.IsHost {
			out = append(out, p)
		}
	}
	return out
}

// participantCount is how many players a phase needs to hear from before
// it can complete.
func participantCount(room *models.Room) int {
	n := 0
	for _, p := range room.Players {
		if !p.IsHost {
			n++
		}
	}
	return n
}

// participant resolves a player ID to a non-host player. Host input and
// input from departed players both come back false.
func participant(room *models.Room, id string) (*models.Player, bool) {
	p, ok := room.Players[id]
	if !ok || p.IsHost {
		return nil, false
	}
	return p, true
}
