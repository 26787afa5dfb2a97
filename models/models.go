package models

import (
	"sort"
	"strings"
	"time"
)

// RoomStatus is the coarse lifecycle of a party room.
type RoomStatus string

const (
	StatusLobby      RoomStatus = "LOBBY"
	StatusGameSelect RoomStatus = "GAME_SELECT"
	StatusPlaying    RoomStatus = "PLAYING"
	StatusResults    RoomStatus = "RESULTS"
)

// GameTag identifies one mini-game implementation.
type GameTag string

const (
	GameTrivia     GameTag = "TRIVIA"
	GameBuzz       GameTag = "BUZZ"
	GameReaction   GameTag = "REACTION"
	GameTwoTruths  GameTag = "TWO_TRUTHS"
	GameHotTakes   GameTag = "HOT_TAKES"
	GamePoll       GameTag = "POLL"
	GameBluff      GameTag = "BLUFF"
	GameWordRace   GameTag = "WORD_RACE"
	GameCompete    GameTag = "COMPETE"
	GameMindMeld   GameTag = "MIND_MELD"
	GameChain      GameTag = "CHAIN"
	GameDrawing    GameTag = "DRAWING"
	GameThisOrThat GameTag = "THIS_OR_THAT"
)

const (
	// MaxChatMessages bounds the chat ring buffer.
	MaxChatMessages = 80
	// MaxChatLength caps a single chat line after sanitization.
	MaxChatLength = 280
)

// GameData is the per-game payload stored on the room while a mini-game is
// active. Exactly one concrete struct exists per GameTag and only the
// owning game implementation ever touches it.
type GameData interface {
	GameTag() GameTag
}

// Player is one connected participant. The ID doubles as the session ID of
// the underlying connection.
type Player struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Avatar      string    `json:"avatar,omitempty"`
	Score       int       `json:"score"`
	IsHost      bool      `json:"isHost"`
	GameVote    GameTag   `json:"gameVote,omitempty"`
	BannedUntil time.Time `json:"-"`
	JoinedAt    time.Time `json:"-"`
}

// Banned reports whether a transient mini-game penalty is still in effect.
func (p *Player) Banned(now time.Time) bool {
	return !p.BannedUntil.IsZero() && now.Before(p.BannedUntil)
}

// ChatMessage is one entry in the room's bounded chat log. An empty
// PlayerID marks a system or AI line.
type ChatMessage struct {
	ID        string    `json:"id"`
	PlayerID  string    `json:"playerId,omitempty"`
	Name      string    `json:"name"`
	Avatar    string    `json:"avatar,omitempty"`
	Text      string    `json:"text"`
	Timestamp time.Time `json:"timestamp"`
	IsSystem  bool      `json:"isSystem"`
	IsAI      bool      `json:"isAi"`
}

// Persona is the room's AI identity, used only to stamp chat entries.
type Persona struct {
	Name   string `json:"name"`
	Avatar string `json:"avatar"`
}

// Room is the canonical state of one party session. It carries no locking
// of its own; the orchestrator owns it and serializes all access.
type Room struct {
	Code        string
	HostID      string
	Status      RoomStatus
	Players     map[string]*Player
	Order       []string // player IDs in join order
	CurrentGame GameTag
	GameData    GameData
	Chat        []ChatMessage
	Persona     Persona
	CreatedAt   time.Time
}

func NewRoom(code string, persona Persona) *Room {
	return &Room{
		Code:      code,
		Status:    StatusLobby,
		Players:   make(map[string]*Player),
		Persona:   persona,
		CreatedAt: time.Now(),
	}
}

func (r *Room) AddPlayer(p *Player) {
	if _, ok := r.Players[p.ID]; !ok {
		r.Order = append(r.Order, p.ID)
	}
	r.Players[p.ID] = p
}

func (r *Room) RemovePlayer(id string) (*Player, bool) {
	p, ok := r.Players[id]
	if !ok {
		return nil, false
	}
	delete(r.Players, id)
	for i, oid := range r.Order {
		if oid == id {
			r.Order = append(r.Order[:i], r.Order[i+1:]...)
			break
		}
	}
	return p, true
}

// OrderedPlayers returns the players in join order.
func (r *Room) OrderedPlayers() []*Player {
	out := make([]*Player, 0, len(r.Order))
	for _, id := range r.Order {
		if p, ok := r.Players[id]; ok {
			out = append(out, p)
		}
	}
	return out
}

// AppendChat pushes a message into the ring buffer, dropping the oldest
// entries past MaxChatMessages.
func (r *Room) AppendChat(msg ChatMessage) {
	r.Chat = append(r.Chat, msg)
	if over := len(r.Chat) - MaxChatMessages; over > 0 {
		r.Chat = r.Chat[over:]
	}
}

// VoteTally derives the game-selection tally from the players' votes. The
// players are the source of truth; the tally is never stored.
func (r *Room) VoteTally() map[GameTag]int {
	tally := make(map[GameTag]int)
	for _, p := range r.Players {
		if p.GameVote != "" {
			tally[p.GameVote]++
		}
	}
	return tally
}

func (r *Room) ClearVotes() {
	for _, p := range r.Players {
		p.GameVote = ""
	}
}

// ClearBans drops every transient penalty. Called whenever a new mini-game
// starts, since bans are mini-game-local.
func (r *Room) ClearBans() {
	for _, p := range r.Players {
		p.BannedUntil = time.Time{}
	}
}

// Snapshot is the full room state broadcast to every client after each
// mutation. Always the whole thing, never a diff.
type Snapshot struct {
	Code        string          `json:"code"`
	Status      RoomStatus      `json:"status"`
	HostID      string          `json:"hostId,omitempty"`
	Players     []*Player       `json:"players"`
	CurrentGame GameTag         `json:"currentGame,omitempty"`
	GameData    GameData        `json:"gameData,omitempty"`
	Votes       map[GameTag]int `json:"votes"`
	Leaderboard []*Player       `json:"leaderboard"`
	Chat        []ChatMessage   `json:"chat"`
	Persona     Persona         `json:"persona"`
}

// BuildSnapshot assembles the outbound view of the room, recomputing the
// vote tally and the leaderboard.
func (r *Room) BuildSnapshot() *Snapshot {
	players := r.OrderedPlayers()
	leaderboard := make([]*Player, len(players))
	copy(leaderboard, players)
	sort.SliceStable(leaderboard, func(i, j int) bool {
		return leaderboard[i].Score > leaderboard[j].Score
	})

	return &Snapshot{
		Code:        r.Code,
		Status:      r.Status,
		HostID:      r.HostID,
		Players:     players,
		CurrentGame: r.CurrentGame,
		GameData:    r.GameData,
		Votes:       r.VoteTally(),
		Leaderboard: leaderboard,
		Chat:        r.Chat,
		Persona:     r.Persona,
	}
}

// SanitizeChat collapses runs of whitespace, trims, and caps the length of
// a raw chat line.
func SanitizeChat(text string) string {
	clean := strings.Join(strings.Fields(text), " ")
	if runes := []rune(clean); len(runes) > MaxChatLength {
		clean = string(runes[:MaxChatLength])
	}
	return clean
}

// GameRecord is the archived summary of one finished mini-game. Only
// finished games are archived; live room state never leaves memory.
type GameRecord struct {
	RoomCode  string         `json:"room_code"`
	GameType  GameTag        `json:"game_type"`
	Players   []PlayerResult `json:"players"`
	CreatedAt time.Time      `json:"created_at"`
}

// PlayerResult is one player's line in a GameRecord.
type PlayerResult struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Score int    `json:"score"`
}
