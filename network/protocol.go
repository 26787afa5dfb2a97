package network

import "encoding/json"

// Inbound control events. Any other event name is treated as mini-game
// input and routed to the active game.
const (
	EventCreateRoom  = "createRoom"
	EventJoinRoom    = "joinRoom"
	EventLeaveRoom   = "leaveRoom"
	EventStartGame   = "startGame"
	EventVoteGame    = "voteGame"
	EventSelectGame  = "selectGame"
	EventBackToLobby = "backToLobby"
	EventNextRound   = "nextRound"
	EventSendChat    = "sendChat"
)

// Outbound events.
const (
	EventGameState  = "gameState"
	EventError      = "error"
	EventFalseStart = "falseStart"
	EventRoomClosed = "roomClosed"
)

// Message is the JSON envelope every frame carries in both directions.
type Message struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data,omitempty"`
}
