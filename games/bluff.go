package games

import (
	"encoding/json"
	"strings"

	"github.com/yaegerbomb42/famgame/models"
)

const (
	EventSubmitClaim = "submitClaim"
	EventVoteBluff   = "voteBluff"
)

// Bluff phases.
const (
	BluffClaim   = "claim"
	BluffVoting  = "voting"
	BluffResults = "results"
)

// BluffData is the BLUFF payload. One player claims something and flags
// privately whether it is a lie; everyone else votes truth or lie.
type BluffData struct {
	Phase     string          `json:"phase"`
	ClaimerID string          `json:"claimerId"`
	Claim     string          `json:"claim,omitempty"`
	IsLying   bool            `json:"-"`
	Votes     map[string]bool `json:"votes"` // voter -> believes it is true
	WasLying  *bool           `json:"wasLying,omitempty"`
}

func (BluffData) GameTag() models.GameTag { return models.GameBluff }

type Bluff struct {
	order []string
	idx   int
}

func NewBluff() *Bluff {
	return &Bluff{}
}

func (g *Bluff) Tag() models.GameTag { return models.GameBluff }

func (g *Bluff) Start(ctx *Context) {
	for _, p := range participants(ctx.Room) {
		g.order = append(g.order, p.ID)
	}
	g.startRound(ctx)
}

// startRound picks the next claimer still in the room, or reports false
// when everyone has had a turn.
func (g *Bluff) startRound(ctx *Context) bool {
	for ; g.idx < len(g.order); g.idx++ {
		claimerID := g.order[g.idx]
		if _, ok := participant(ctx.Room, claimerID); !ok {
			continue
		}
		ctx.Room.GameData = &BluffData{
			Phase:     BluffClaim,
			ClaimerID: claimerID,
			Votes:     make(map[string]bool),
		}
		return true
	}
	return false
}

func (g *Bluff) HandleInput(ctx *Context, playerID, event string, payload json.RawMessage) error {
	data, ok := ctx.Room.GameData.(*BluffData)
	if !ok {
		return nil
	}
	if _, ok := participant(ctx.Room, playerID); !ok {
		return nil
	}

	switch event {
	case EventSubmitClaim:
		if data.Phase != BluffClaim || playerID != data.ClaimerID {
			return nil
		}
		var in struct {
			Claim   string `json:"claim"`
			IsLying bool   `json:"isLying"`
		}
		if err := decode(payload, &in); err != nil {
			return err
		}
		claim := models.SanitizeChat(in.Claim)
		if strings.TrimSpace(claim) == "" {
			return ErrBadPayload
		}
		data.Claim = claim
		data.IsLying = in.IsLying
		data.Phase = BluffVoting
		g.maybeResolve(ctx, data)

	case EventVoteBluff:
		if data.Phase != BluffVoting || playerID == data.ClaimerID {
			return nil
		}
		var in struct {
			Truth bool `json:"truth"`
		}
		if err := decode(payload, &in); err != nil {
			return err
		}
		data.Votes[playerID] = in.Truth
		g.maybeResolve(ctx, data)
	}
	return nil
}

func (g *Bluff) maybeResolve(ctx *Context, data *BluffData) {
	voters := 0
	for _, p := range participants(ctx.Room) {
		if p.ID != data.ClaimerID {
			voters++
		}
	}
	voted := 0
	for id := range data.Votes {
		if _, ok := participant(ctx.Room, id); ok && id != data.ClaimerID {
			voted++
		}
	}
	if voted < voters {
		return
	}

	data.Phase = BluffResults
	lying := data.IsLying
	data.WasLying = &lying
	claimer, _ := participant(ctx.Room, data.ClaimerID)
	for voterID, believedTruth := range data.Votes {
		voter, ok := participant(ctx.Room, voterID)
		if !ok {
			continue
		}
		if believedTruth == !data.IsLying {
			voter.Score += 50
		} else if claimer != nil {
			claimer.Score += 25
		}
	}
}

// PlayerLeft hands the round to the next claimer when the claimer drops
// before finishing their claim, otherwise drops the departed vote and
// re-checks whether the remaining voters have all voted.
func (g *Bluff) PlayerLeft(ctx *Context, playerID string) {
	data, ok := ctx.Room.GameData.(*BluffData)
	if !ok {
		return
	}
	switch data.Phase {
	case BluffClaim:
		if playerID != data.ClaimerID {
			return
		}
		g.idx++
		if !g.startRound(ctx) {
			data.Phase = BluffResults
		}
	case BluffVoting:
		delete(data.Votes, playerID)
		g.maybeResolve(ctx, data)
	}
}

func (g *Bluff) Advance(ctx *Context) bool {
	data, ok := ctx.Room.GameData.(*BluffData)
	if !ok {
		return false
	}
	if data.Phase != BluffResults {
		return true
	}
	g.idx++
	return g.startRound(ctx)
}

func (g *Bluff) End(ctx *Context) {}
