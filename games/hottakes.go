package games

import (
	"encoding/json"
	"strings"

	"github.com/yaegerbomb42/famgame/models"
)

const (
	EventSubmitTake = "submitTake"
	EventVoteTake   = "voteTake"
)

// Shared phase names for the submit-then-vote games.
const (
	PhaseInput   = "input"
	PhaseVoting  = "voting"
	PhaseResults = "results"
)

var hotTakePrompts = []string{
	"Share your hottest food opinion.",
	"What's an overrated movie everyone loves?",
	"Name a trend that needs to die.",
}

// HotTakesData is the HOT_TAKES payload: everyone submits a take, then
// votes for a favorite. Every vote is worth 100 to its target.
type HotTakesData struct {
	Phase  string            `json:"phase"`
	Prompt string            `json:"prompt"`
	Takes  map[string]string `json:"takes"`
	Votes  map[string]string `json:"votes"`
	Tally  map[string]int    `json:"tally,omitempty"`
}

func (HotTakesData) GameTag() models.GameTag { return models.GameHotTakes }

type HotTakes struct{}

func NewHotTakes() *HotTakes {
	return &HotTakes{}
}

func (g *HotTakes) Tag() models.GameTag { return models.GameHotTakes }

func (g *HotTakes) Start(ctx *Context) {
	ctx.Room.GameData = &HotTakesData{
		Phase:  PhaseInput,
		Prompt: hotTakePrompts[0],
		Takes:  make(map[string]string),
		Votes:  make(map[string]string),
	}
}

func (g *HotTakes) HandleInput(ctx *Context, playerID, event string, payload json.RawMessage) error {
	data, ok := ctx.Room.GameData.(*HotTakesData)
	if !ok {
		return nil
	}
	if _, ok := participant(ctx.Room, playerID); !ok {
		return nil
	}

	switch event {
	case EventSubmitTake:
		if data.Phase != PhaseInput {
			return nil
		}
		var in struct {
			Text string `json:"text"`
		}
		if err := decode(payload, &in); err != nil {
			return err
		}
		text := models.SanitizeChat(in.Text)
		if strings.TrimSpace(text) == "" {
			return ErrBadPayload
		}
		data.Takes[playerID] = text
		if len(data.Takes) >= participantCount(ctx.Room) {
			data.Phase = PhaseVoting
			g.maybeResolve(ctx, data)
		}

	case EventVoteTake:
		if data.Phase != PhaseVoting {
			return nil
		}
		var in struct {
			TargetID string `json:"targetId"`
		}
		if err := decode(payload, &in); err != nil {
			return err
		}
		if _, ok := data.Takes[in.TargetID]; !ok {
			return ErrBadPayload
		}
		data.Votes[playerID] = in.TargetID
		g.maybeResolve(ctx, data)
	}
	return nil
}

// maybeResolve scores the round once every player has voted. A lone
// player's room has no meaningful vote and resolves immediately.
func (g *HotTakes) maybeResolve(ctx *Context, data *HotTakesData) {
	if participantCount(ctx.Room) >= 2 && len(data.Votes) < participantCount(ctx.Room) {
		return
	}
	data.Phase = PhaseResults
	data.Tally = make(map[string]int)
	for _, targetID := range data.Votes {
		data.Tally[targetID]++
		if p, ok := participant(ctx.Room, targetID); ok {
			p.Score += 100
		}
	}
}

func (g *HotTakes) PlayerLeft(ctx *Context, playerID string) {
	data, ok := ctx.Room.GameData.(*HotTakesData)
	if !ok {
		return
	}
	switch data.Phase {
	case PhaseInput:
		delete(data.Takes, playerID)
		if n := participantCount(ctx.Room); n > 0 && len(data.Takes) >= n {
			data.Phase = PhaseVoting
			g.maybeResolve(ctx, data)
		}
	case PhaseVoting:
		delete(data.Votes, playerID)
		g.maybeResolve(ctx, data)
	}
}

func (g *HotTakes) Advance(ctx *Context) bool {
	return false
}

func (g *HotTakes) End(ctx *Context) {}
