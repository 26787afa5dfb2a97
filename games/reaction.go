package games

import (
	"encoding/json"
	"math/rand"
	"time"

	"github.com/yaegerbomb42/famgame/models"
)

const EventReactionClick = "reactionClick"

const (
	reactionRounds    = 5
	reactionFakeOdds  = 0.3
	reactionFakeFlash = 500 * time.Millisecond
)

// Reaction phases.
const (
	ReactionWaiting = "waiting"
	ReactionGo      = "go"
)

// ReactionData is the REACTION payload. After a random delay (optionally
// preceded by one fake flash) the screen says go; clicks are scored by
// latency, early clicks cost points.
type ReactionData struct {
	Round       int              `json:"round"`
	TotalRounds int              `json:"totalRounds"`
	Phase       string           `json:"phase"`
	FakeFlash   bool             `json:"fakeFlash"`
	GoAt        time.Time        `json:"-"`
	Times       map[string]int64 `json:"times"` // reaction ms per player
	Early       map[string]bool  `json:"early"`
	Done        bool             `json:"done"`
}

func (ReactionData) GameTag() models.GameTag { return models.GameReaction }

type Reaction struct {
	round int
}

func NewReaction() *Reaction {
	return &Reaction{}
}

func (g *Reaction) Tag() models.GameTag { return models.GameReaction }

func (g *Reaction) Start(ctx *Context) {
	g.startRound(ctx)
}

func (g *Reaction) startRound(ctx *Context) {
	data := &ReactionData{
		Round:       g.round + 1,
		TotalRounds: reactionRounds,
		Phase:       ReactionWaiting,
		Times:       make(map[string]int64),
		Early:       make(map[string]bool),
	}
	ctx.Room.GameData = data
	round := data.Round

	goDelay := time.Duration(2000+rand.Intn(3001)) * time.Millisecond

	if rand.Float64() < reactionFakeOdds {
		fakeDelay := time.Duration(1000+rand.Intn(1500)) * time.Millisecond
		ctx.Schedule(fakeDelay, func() {
			if cur := g.current(ctx, round); cur != nil && cur.Phase == ReactionWaiting {
				cur.FakeFlash = true
			}
		})
		ctx.Schedule(fakeDelay+reactionFakeFlash, func() {
			if cur := g.current(ctx, round); cur != nil {
				cur.FakeFlash = false
			}
		})
		goDelay = fakeDelay + reactionFakeFlash + time.Duration(1500+rand.Intn(1500))*time.Millisecond
	}

	ctx.Schedule(goDelay, func() {
		cur := g.current(ctx, round)
		if cur == nil || cur.Phase != ReactionWaiting {
			return
		}
		cur.Phase = ReactionGo
		cur.FakeFlash = false
		cur.GoAt = ctx.Now()
	})
}

func (g *Reaction) current(ctx *Context, round int) *ReactionData {
	data, ok := ctx.Room.GameData.(*ReactionData)
	if !ok || data.Round != round {
		return nil
	}
	return data
}

func (g *Reaction) HandleInput(ctx *Context, playerID, event string, payload json.RawMessage) error {
	if event != EventReactionClick {
		return nil
	}
	data, ok := ctx.Room.GameData.(*ReactionData)
	if !ok || data.Done {
		return nil
	}
	p, ok := participant(ctx.Room, playerID)
	if !ok {
		return nil
	}

	switch data.Phase {
	case ReactionWaiting:
		// One penalty per player per round, repeated jitters are free.
		if data.Early[playerID] {
			return nil
		}
		data.Early[playerID] = true
		p.Score -= 10
	case ReactionGo:
		if _, clicked := data.Times[playerID]; clicked {
			return nil
		}
		ms := ctx.Now().Sub(data.GoAt).Milliseconds()
		data.Times[playerID] = ms
		switch {
		case ms < 300:
			p.Score += 100
		case ms < 500:
			p.Score += 50
		default:
			p.Score += 10
		}
		if len(data.Times) >= participantCount(ctx.Room) {
			data.Done = true
		}
	}
	return nil
}

func (g *Reaction) PlayerLeft(ctx *Context, playerID string) {
	data, ok := ctx.Room.GameData.(*ReactionData)
	if !ok || data.Done || data.Phase != ReactionGo {
		return
	}
	delete(data.Times, playerID)
	if n := participantCount(ctx.Room); n > 0 && len(data.Times) >= n {
		data.Done = true
	}
}

func (g *Reaction) Advance(ctx *Context) bool {
	g.round++
	if g.round >= reactionRounds {
		return false
	}
	g.startRound(ctx)
	return true
}

func (g *Reaction) End(ctx *Context) {}
