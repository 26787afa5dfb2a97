package games

import (
	"encoding/json"

	"github.com/yaegerbomb42/famgame/models"
)

const EventVoteOption = "voteOption"

// This-or-That phases.
const (
	ThisOrThatVoting  = "voting"
	ThisOrThatResults = "results"
)

// ThisOrThatPrompt is one A/B question.
type ThisOrThatPrompt struct {
	Text    string `json:"text"`
	OptionA string `json:"optionA"`
	OptionB string `json:"optionB"`
}

var thisOrThatPrompts = []ThisOrThatPrompt{
	{"Pick a side:", "Beach vacation", "Mountain vacation"},
	{"Pick a side:", "Sweet", "Savory"},
	{"Pick a side:", "Night owl", "Early bird"},
	{"Pick a side:", "Teleportation", "Invisibility"},
	{"Pick a side:", "Text", "Call"},
}

// ThisOrThatData is the THIS_OR_THAT payload: everyone picks A or B, the
// result is tallied without scoring.
type ThisOrThatData struct {
	Round  int               `json:"round"`
	Prompt ThisOrThatPrompt  `json:"prompt"`
	Phase  string            `json:"phase"`
	Votes  map[string]string `json:"votes"`
	TallyA int               `json:"tallyA"`
	TallyB int               `json:"tallyB"`
}

func (ThisOrThatData) GameTag() models.GameTag { return models.GameThisOrThat }

type ThisOrThat struct {
	round int
}

func NewThisOrThat() *ThisOrThat {
	return &ThisOrThat{}
}

func (g *ThisOrThat) Tag() models.GameTag { return models.GameThisOrThat }

func (g *ThisOrThat) Start(ctx *Context) {
	g.startRound(ctx)
}

func (g *ThisOrThat) startRound(ctx *Context) {
	ctx.Room.GameData = &ThisOrThatData{
		Round:  g.round + 1,
		Prompt: thisOrThatPrompts[g.round],
		Phase:  ThisOrThatVoting,
		Votes:  make(map[string]string),
	}
}

func (g *ThisOrThat) HandleInput(ctx *Context, playerID, event string, payload json.RawMessage) error {
	if event != EventVoteOption {
		return nil
	}
	data, ok := ctx.Room.GameData.(*ThisOrThatData)
	if !ok || data.Phase != ThisOrThatVoting {
		return nil
	}
	if _, ok := participant(ctx.Room, playerID); !ok {
		return nil
	}

	var in struct {
		Option string `json:"option"`
	}
	if err := decode(payload, &in); err != nil {
		return err
	}
	if in.Option != "A" && in.Option != "B" {
		return ErrBadPayload
	}
	data.Votes[playerID] = in.Option
	g.maybeTally(ctx, data)
	return nil
}

func (g *ThisOrThat) maybeTally(ctx *Context, data *ThisOrThatData) {
	if n := participantCount(ctx.Room); n == 0 || len(data.Votes) < n {
		return
	}
	data.Phase = ThisOrThatResults
	for _, v := range data.Votes {
		if v == "A" {
			data.TallyA++
		} else {
			data.TallyB++
		}
	}
}

func (g *ThisOrThat) PlayerLeft(ctx *Context, playerID string) {
	data, ok := ctx.Room.GameData.(*ThisOrThatData)
	if !ok || data.Phase != ThisOrThatVoting {
		return
	}
	delete(data.Votes, playerID)
	g.maybeTally(ctx, data)
}

func (g *ThisOrThat) Advance(ctx *Context) bool {
	g.round++
	if g.round >= len(thisOrThatPrompts) {
		return false
	}
	g.startRound(ctx)
	return true
}

func (g *ThisOrThat) End(ctx *Context) {}
