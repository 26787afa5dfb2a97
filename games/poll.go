package games

import (
	"encoding/json"
	"strings"

	"github.com/yaegerbomb42/famgame/models"
)

const EventSubmitPollVote = "submitPollVote"

var pollPrompts = []string{
	"Who in this room would survive longest in a zombie apocalypse?",
	"Who is most likely to become famous?",
	"Who would win a cooking competition?",
}

// PollData is the POLL payload. Same submit-then-vote shape as hot takes,
// but votes are only tallied, never scored.
type PollData struct {
	Phase       string            `json:"phase"`
	Prompt      string            `json:"prompt"`
	Submissions map[string]string `json:"submissions"`
	Votes       map[string]string `json:"votes"`
	Tally       map[string]int    `json:"tally,omitempty"`
}

func (PollData) GameTag() models.GameTag { return models.GamePoll }

type Poll struct{}

func NewPoll() *Poll {
	return &Poll{}
}

func (g *Poll) Tag() models.GameTag { return models.GamePoll }

func (g *Poll) Start(ctx *Context) {
	ctx.Room.GameData = &PollData{
		Phase:       PhaseInput,
		Prompt:      pollPrompts[0],
		Submissions: make(map[string]string),
		Votes:       make(map[string]string),
	}
}

func (g *Poll) HandleInput(ctx *Context, playerID, event string, payload json.RawMessage) error {
	data, ok := ctx.Room.GameData.(*PollData)
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
		data.Submissions[playerID] = text
		if len(data.Submissions) >= participantCount(ctx.Room) {
			data.Phase = PhaseVoting
			g.maybeResolve(ctx, data)
		}

	case EventSubmitPollVote:
		if data.Phase != PhaseVoting {
			return nil
		}
		var in struct {
			TargetID string `json:"targetId"`
		}
		if err := decode(payload, &in); err != nil {
			return err
		}
		if _, ok := participant(ctx.Room, in.TargetID); !ok {
			return ErrBadPayload
		}
		data.Votes[playerID] = in.TargetID
		g.maybeResolve(ctx, data)
	}
	return nil
}

func (g *Poll) maybeResolve(ctx *Context, data *PollData) {
	if participantCount(ctx.Room) >= 2 && len(data.Votes) < participantCount(ctx.Room) {
		return
	}
	data.Phase = PhaseResults
	data.Tally = make(map[string]int)
	for _, targetID := range data.Votes {
		data.Tally[targetID]++
	}
}

func (g *Poll) PlayerLeft(ctx *Context, playerID string) {
	data, ok := ctx.Room.GameData.(*PollData)
	if !ok {
		return
	}
	switch data.Phase {
	case PhaseInput:
		delete(data.Submissions, playerID)
		if n := participantCount(ctx.Room); n > 0 && len(data.Submissions) >= n {
			data.Phase = PhaseVoting
			g.maybeResolve(ctx, data)
		}
	case PhaseVoting:
		delete(data.Votes, playerID)
		g.maybeResolve(ctx, data)
	}
}

func (g *Poll) Advance(ctx *Context) bool {
	return false
}

func (g *Poll) End(ctx *Context) {}
