// Package room implements the session orchestrator: it owns the canonical
// room state, arbitrates which mini-game is live, routes player input to
// it, and pushes a full snapshot to every client after each mutation.
package room

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/yaegerbomb42/famgame/games"
	"github.com/yaegerbomb42/famgame/logger"
	"github.com/yaegerbomb42/famgame/models"
	"github.com/yaegerbomb42/famgame/network"
	"github.com/yaegerbomb42/famgame/scheduler"
)

var (
	ErrInvalidCode = errors.New("invalid room code")
	ErrRoomFull    = errors.New("room is full")
	ErrNotInRoom   = errors.New("not in a room")
	ErrNotHost     = errors.New("host only")
)

// Room wraps one models.Room with the single mutex that serializes every
// mutation-plus-broadcast, including fired timers. The state is only ever
// touched with mu held.
type Room struct {
	mu         sync.Mutex
	state      *models.Room
	game       games.Game
	generation int64

	notifier Notifier
	timers   *scheduler.Manager
	records  RecordSink
	nextGen  func() int64
}

// --- chat helpers ---

func (r *Room) systemChat(text string) {
	r.state.AppendChat(models.ChatMessage{
		ID:        uuid.New().String(),
		Name:      "System",
		Text:      text,
		Timestamp: time.Now(),
		IsSystem:  true,
	})
}

func (r *Room) aiChat(text string) {
	r.state.AppendChat(models.ChatMessage{
		ID:        uuid.New().String(),
		Name:      r.state.Persona.Name,
		Avatar:    r.state.Persona.Avatar,
		Text:      text,
		Timestamp: time.Now(),
		IsAI:      true,
	})
}

// broadcastLocked pushes the full snapshot to every member. Caller holds
// mu; the broadcast is always the last step of the same mutation.
func (r *Room) broadcastLocked() {
	ids := make([]string, len(r.state.Order))
	copy(ids, r.state.Order)
	r.notifier.Broadcast(ids, network.EventGameState, r.state.BuildSnapshot())
}

// gameCtx builds the per-call context handed to the active game. The
// scheduled-callback wrapper pins the generation and game tag captured
// here, so timers from a superseded game instance become no-ops instead
// of corrupting a newer game's state.
func (r *Room) gameCtx() *games.Context {
	gen := r.generation
	tag := r.state.CurrentGame
	return &games.Context{
		Room: r.state,
		Now:  time.Now,
		Schedule: func(delay time.Duration, fn func()) {
			r.timers.Schedule(gen, delay, func() {
				r.mu.Lock()
				defer r.mu.Unlock()
				if r.generation != gen || r.state.CurrentGame != tag {
					return
				}
				fn()
				r.broadcastLocked()
			})
		},
		SendTo: func(playerID, event string, data any) {
			r.notifier.SendTo(playerID, event, data)
		},
	}
}

func (r *Room) hostCheck(playerID string) error {
	if r.state.HostID != playerID {
		return ErrNotHost
	}
	return nil
}

// --- orchestrator operations, all called with mu NOT held ---

func (r *Room) join(p *models.Player) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.state.AddPlayer(p)
	if p.IsHost {
		r.state.HostID = p.ID
		r.aiChat("Welcome to the party, " + p.Name + "! Your room code is " + r.state.Code + ".")
	} else {
		r.systemChat(p.Name + " joined the party")
	}
	r.broadcastLocked()
	return nil
}

// leave removes a non-host player. Host departure goes through the
// manager's teardown path instead.
func (r *Room) leave(playerID string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.state.RemovePlayer(playerID)
	if !ok {
		return
	}
	r.systemChat(p.Name + " left the party")
	if r.state.Status == models.StatusPlaying && r.game != nil {
		if l, ok := r.game.(games.PlayerLeaver); ok {
			l.PlayerLeft(r.gameCtx(), playerID)
		}
	}
	r.broadcastLocked()
}

// teardown resets the room after host loss: every remaining connection is
// told the room closed, all timers die, and the room comes back empty in
// the lobby under a fresh code. No host migration.
func (r *Room) teardown(newCode string, persona models.Persona) []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.game != nil {
		r.game.End(r.gameCtx())
		r.game = nil
	}
	r.timers.CancelGeneration(r.generation)
	r.generation = r.nextGen()

	orphans := make([]string, 0, len(r.state.Order))
	for _, id := range r.state.Order {
		if id != r.state.HostID {
			orphans = append(orphans, id)
		}
	}

	r.state = models.NewRoom(newCode, persona)

	snap := r.state.BuildSnapshot()
	for _, id := range orphans {
		r.notifier.SendTo(id, network.EventRoomClosed, nil)
		r.notifier.SendTo(id, network.EventGameState, snap)
	}
	return orphans
}

// StartGameSelect moves the room into game selection and clears all votes.
func (r *Room) StartGameSelect(playerID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.hostCheck(playerID); err != nil {
		return err
	}
	r.state.Status = models.StatusGameSelect
	r.state.ClearVotes()
	r.aiChat("What should we play next? Cast your votes!")
	r.broadcastLocked()
	return nil
}

// VoteGame records or overwrites the caller's game-selection vote.
func (r *Room) VoteGame(playerID string, tag models.GameTag) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.state.Status != models.StatusGameSelect {
		return nil
	}
	p, ok := r.state.Players[playerID]
	if !ok {
		return nil
	}
	if !games.Known(tag) {
		return games.ErrUnknownGame
	}
	p.GameVote = tag
	r.broadcastLocked()
	return nil
}

// SelectGame swaps in a fresh mini-game instance: the previous instance's
// timers are cancelled, every transient ban is cleared, and the new game's
// start hook runs before the snapshot goes out.
func (r *Room) SelectGame(playerID string, tag models.GameTag) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.hostCheck(playerID); err != nil {
		return err
	}
	game, err := games.New(tag)
	if err != nil {
		return err
	}

	if r.game != nil {
		r.game.End(r.gameCtx())
	}
	r.timers.CancelGeneration(r.generation)
	r.generation = r.nextGen()

	r.state.ClearBans()
	r.state.Status = models.StatusPlaying
	r.state.CurrentGame = tag
	r.state.GameData = nil
	r.game = game

	game.Start(r.gameCtx())
	r.aiChat("Starting " + string(tag) + "!")
	r.broadcastLocked()

	logger.Log.Infow("game selected", "room", r.state.Code, "game", tag)
	return nil
}

// HandleInput routes one player event to the active game. Outside of
// PLAYING this is a silent no-op.
func (r *Room) HandleInput(playerID, event string, payload []byte) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.state.Status != models.StatusPlaying || r.game == nil {
		return nil
	}
	if err := r.game.HandleInput(r.gameCtx(), playerID, event, payload); err != nil {
		return err
	}
	r.broadcastLocked()
	return nil
}

// NextRound asks the active game to advance. A game with nothing left
// sends the room to RESULTS and archives the finished game.
func (r *Room) NextRound(playerID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.hostCheck(playerID); err != nil {
		return err
	}
	if r.state.Status != models.StatusPlaying || r.game == nil {
		return nil
	}

	if !r.game.Advance(r.gameCtx()) {
		r.finishGameLocked()
	}
	r.broadcastLocked()
	return nil
}

// BackToLobby abandons whatever is running and returns to game selection.
func (r *Room) BackToLobby(playerID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.hostCheck(playerID); err != nil {
		return err
	}
	if r.game != nil {
		r.game.End(r.gameCtx())
		r.game = nil
		r.timers.CancelGeneration(r.generation)
		r.generation = r.nextGen()
	}
	r.state.Status = models.StatusGameSelect
	r.state.CurrentGame = ""
	r.state.GameData = nil
	r.broadcastLocked()
	return nil
}

// Chat appends a sanitized player chat line.
func (r *Room) Chat(playerID, text string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.state.Players[playerID]
	if !ok {
		return nil
	}
	clean := models.SanitizeChat(text)
	if clean == "" {
		return nil
	}
	r.state.AppendChat(models.ChatMessage{
		ID:        uuid.New().String(),
		PlayerID:  p.ID,
		Name:      p.Name,
		Avatar:    p.Avatar,
		Text:      clean,
		Timestamp: time.Now(),
	})
	r.broadcastLocked()
	return nil
}

// finishGameLocked ends the active game, archives its summary and moves
// the room to RESULTS. CurrentGame is only ever set while PLAYING.
func (r *Room) finishGameLocked() {
	record := &models.GameRecord{
		RoomCode:  r.state.Code,
		GameType:  r.state.CurrentGame,
		CreatedAt: time.Now(),
	}
	for _, p := range r.state.OrderedPlayers() {
		record.Players = append(record.Players, models.PlayerResult{
			ID: p.ID, Name: p.Name, Score: p.Score,
		})
	}

	r.game.End(r.gameCtx())
	r.game = nil
	r.timers.CancelGeneration(r.generation)
	r.generation = r.nextGen()

	r.state.Status = models.StatusResults
	r.state.CurrentGame = ""
	r.state.GameData = nil

	if r.records != nil {
		r.records.SaveGameRecord(record)
	}
}

// Snapshot returns the current full snapshot. Used by tests and the admin
// surface; clients get theirs through the broadcast path.
func (r *Room) Snapshot() *models.Snapshot {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state.BuildSnapshot()
}

// Code returns the current join code.
func (r *Room) Code() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state.Code
}
