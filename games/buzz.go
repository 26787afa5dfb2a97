package games

import (
	"encoding/json"
	"math/rand"
	"time"

	"github.com/yaegerbomb42/famgame/models"
	"github.com/yaegerbomb42/famgame/network"
)

const EventBuzz = "buzz"

const (
	buzzRounds      = 5
	buzzPenalty     = 2 * time.Second
	buzzArmMinDelay = 2 * time.Second
	buzzArmMaxDelay = 4 * time.Second
)

// Buzz phases.
const (
	BuzzWaiting = "waiting"
	BuzzActive  = "active"
	BuzzBuzzed  = "buzzed"
)

// BuzzData is the BUZZ payload. The buzzer arms after a random delay;
// first buzz while active wins, buzzing early costs a 2s ban.
type BuzzData struct {
	Round       int       `json:"round"`
	TotalRounds int       `json:"totalRounds"`
	Phase       string    `json:"phase"`
	WinnerID    string    `json:"winnerId,omitempty"`
	ArmedAt     time.Time `json:"-"`
}

func (BuzzData) GameTag() models.GameTag { return models.GameBuzz }

type Buzz struct {
	round int
}

func NewBuzz() *Buzz {
	return &Buzz{}
}

func (g *Buzz) Tag() models.GameTag { return models.GameBuzz }

func (g *Buzz) Start(ctx *Context) {
	g.startRound(ctx)
}

func (g *Buzz) startRound(ctx *Context) {
	data := &BuzzData{
		Round:       g.round + 1,
		TotalRounds: buzzRounds,
		Phase:       BuzzWaiting,
	}
	ctx.Room.GameData = data

	delay := buzzArmMinDelay + time.Duration(rand.Int63n(int64(buzzArmMaxDelay-buzzArmMinDelay)+1))
	round := data.Round
	ctx.Schedule(delay, func() {
		// A buzz timer from a previous round must not re-arm this one.
		cur, ok := ctx.Room.GameData.(*BuzzData)
		if !ok || cur.Round != round || cur.Phase != BuzzWaiting {
			return
		}
		cur.Phase = BuzzActive
		cur.ArmedAt = ctx.Now()
	})
}

func (g *Buzz) HandleInput(ctx *Context, playerID, event string, payload json.RawMessage) error {
	if event != EventBuzz {
		return nil
	}
	data, ok := ctx.Room.GameData.(*BuzzData)
	if !ok {
		return nil
	}
	p, ok := participant(ctx.Room, playerID)
	if !ok {
		return nil
	}

	now := ctx.Now()
	if p.Banned(now) {
		return nil
	}

	switch data.Phase {
	case BuzzWaiting:
		p.BannedUntil = now.Add(buzzPenalty)
		ctx.SendTo(playerID, network.EventFalseStart, nil)
	case BuzzActive:
		if data.WinnerID == "" {
			data.WinnerID = playerID
			data.Phase = BuzzBuzzed
			p.Score += 50
		}
	case BuzzBuzzed:
		// Round already won.
	}
	return nil
}

func (g *Buzz) Advance(ctx *Context) bool {
	g.round++
	if g.round >= buzzRounds {
		return false
	}
	g.startRound(ctx)
	return true
}

func (g *Buzz) End(ctx *Context) {}
