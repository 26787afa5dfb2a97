package games

import (
	"encoding/json"
	"strings"

	"github.com/yaegerbomb42/famgame/models"
)

const (
	EventSubmitDrawing = "submitDrawing"
	EventVoteDrawing   = "voteDrawing"
)

const maxDrawingBytes = 512 * 1024

var drawingPrompts = []string{
	"Draw your spirit animal.",
	"Draw the last thing you ate.",
	"Draw this room in 30 seconds.",
}

// DrawingData is the DRAWING payload: everyone submits a data-URL sketch,
// then votes; every vote is worth 100 to the artist.
type DrawingData struct {
	Phase    string            `json:"phase"`
	Prompt   string            `json:"prompt"`
	Drawings map[string]string `json:"drawings"`
	Votes    map[string]string `json:"votes"`
	Tally    map[string]int    `json:"tally,omitempty"`
}

func (DrawingData) GameTag() models.GameTag { return models.GameDrawing }

type Drawing struct{}

func NewDrawing() *Drawing {
	return &Drawing{}
}

func (g *Drawing) Tag() models.GameTag { return models.GameDrawing }

func (g *Drawing) Start(ctx *Context) {
	ctx.Room.GameData = &DrawingData{
		Phase:    PhaseInput,
		Prompt:   drawingPrompts[0],
		Drawings: make(map[string]string),
		Votes:    make(map[string]string),
	}
}

func (g *Drawing) HandleInput(ctx *Context, playerID, event string, payload json.RawMessage) error {
	data, ok := ctx.Room.GameData.(*DrawingData)
	if !ok {
		return nil
	}
	if _, ok := participant(ctx.Room, playerID); !ok {
		return nil
	}

	switch event {
	case EventSubmitDrawing:
		if data.Phase != PhaseInput {
			return nil
		}
		var in struct {
			DataURL string `json:"dataUrl"`
		}
		if err := decode(payload, &in); err != nil {
			return err
		}
		if !strings.HasPrefix(in.DataURL, "data:image/") || len(in.DataURL) > maxDrawingBytes {
			return ErrBadPayload
		}
		data.Drawings[playerID] = in.DataURL
		if len(data.Drawings) >= participantCount(ctx.Room) {
			data.Phase = PhaseVoting
			g.maybeResolve(ctx, data)
		}

	case EventVoteDrawing:
		if data.Phase != PhaseVoting {
			return nil
		}
		var in struct {
			TargetID string `json:"targetId"`
		}
		if err := decode(payload, &in); err != nil {
			return err
		}
		if _, ok := data.Drawings[in.TargetID]; !ok {
			return ErrBadPayload
		}
		data.Votes[playerID] = in.TargetID
		g.maybeResolve(ctx, data)
	}
	return nil
}

func (g *Drawing) maybeResolve(ctx *Context, data *DrawingData) {
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

func (g *Drawing) PlayerLeft(ctx *Context, playerID string) {
	data, ok := ctx.Room.GameData.(*DrawingData)
	if !ok {
		return
	}
	switch data.Phase {
	case PhaseInput:
		delete(data.Drawings, playerID)
		if n := participantCount(ctx.Room); n > 0 && len(data.Drawings) >= n {
			data.Phase = PhaseVoting
			g.maybeResolve(ctx, data)
		}
	case PhaseVoting:
		delete(data.Votes, playerID)
		g.maybeResolve(ctx, data)
	}
}

func (g *Drawing) Advance(ctx *Context) bool {
	return false
}

func (g *Drawing) End(ctx *Context) {}
