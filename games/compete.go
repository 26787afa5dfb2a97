package games

import (
	"encoding/json"
	"time"

	"github.com/yaegerbomb42/famgame/models"
)

const EventCompeteProgress = "competeProgress"

const competeCountdown = 3 * time.Second

// Compete phases.
const (
	CompeteCountdown = "countdown"
	CompeteActive    = "active"
	CompeteResults   = "results"
)

var competeChallenges = []string{
	"Tap the button 50 times!",
	"Shake your phone like a maraca!",
	"Trace the spiral as fast as you can!",
}

// CompeteData is the COMPETE payload: a 1v1 race after a 3 second
// countdown, first challenger to 100% wins 200.
type CompeteData struct {
	Phase       string             `json:"phase"`
	Challenge   string             `json:"challenge"`
	Challengers []string           `json:"challengers"`
	Progress    map[string]float64 `json:"progress"`
	WinnerID    string             `json:"winnerId,omitempty"`
}

func (CompeteData) GameTag() models.GameTag { return models.GameCompete }

type Compete struct{}

func NewCompete() *Compete {
	return &Compete{}
}

func (g *Compete) Tag() models.GameTag { return models.GameCompete }

func (g *Compete) Start(ctx *Context) {
	challengers := make([]string, 0, 2)
	for _, p := range participants(ctx.Room) {
		challengers = append(challengers, p.ID)
		if len(challengers) == 2 {
			break
		}
	}

	data := &CompeteData{
		Phase:       CompeteCountdown,
		Challenge:   competeChallenges[0],
		Challengers: challengers,
		Progress:    make(map[string]float64),
	}
	ctx.Room.GameData = data

	ctx.Schedule(competeCountdown, func() {
		if cur, ok := ctx.Room.GameData.(*CompeteData); ok && cur.Phase == CompeteCountdown {
			cur.Phase = CompeteActive
		}
	})
}

func (g *Compete) HandleInput(ctx *Context, playerID, event string, payload json.RawMessage) error {
	if event != EventCompeteProgress {
		return nil
	}
	data, ok := ctx.Room.GameData.(*CompeteData)
	if !ok || data.Phase != CompeteActive {
		return nil
	}
	if _, ok := participant(ctx.Room, playerID); !ok {
		return nil
	}
	challenger := false
	for _, id := range data.Challengers {
		if id == playerID {
			challenger = true
			break
		}
	}
	if !challenger {
		return nil
	}

	var in struct {
		Percent float64 `json:"percent"`
	}
	if err := decode(payload, &in); err != nil {
		return err
	}
	if in.Percent < 0 {
		in.Percent = 0
	}
	if in.Percent > 100 {
		in.Percent = 100
	}
	data.Progress[playerID] = in.Percent

	if in.Percent >= 100 && data.WinnerID == "" {
		data.WinnerID = playerID
		data.Phase = CompeteResults
		if p, ok := participant(ctx.Room, playerID); ok {
			p.Score += 200
		}
	}
	return nil
}

func (g *Compete) Advance(ctx *Context) bool {
	return false
}

func (g *Compete) End(ctx *Context) {}
