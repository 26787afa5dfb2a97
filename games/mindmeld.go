package games

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/yaegerbomb42/famgame/models"
)

const EventSubmitMindMeldAnswer = "submitMindMeldAnswer"

const mindMeldWindow = 15 * time.Second

// Mind Meld phases.
const (
	MindMeldAnswering = "answering"
	MindMeldResults   = "results"
)

var mindMeldPrompts = []string{
	"Name a breakfast food.",
	"Name something you'd bring to a desert island.",
	"Name a famous scientist.",
}

// MindMeldData is the MIND_MELD payload: everyone answers the same prompt
// inside a 15 second window; matching pairs both score.
type MindMeldData struct {
	Round   int               `json:"round"`
	Prompt  string            `json:"prompt"`
	Phase   string            `json:"phase"`
	EndsAt  time.Time         `json:"endsAt"`
	Answers map[string]string `json:"answers"`
	Matches [][]string        `json:"matches,omitempty"`
}

func (MindMeldData) GameTag() models.GameTag { return models.GameMindMeld }

type MindMeld struct {
	round int
}

func NewMindMeld() *MindMeld {
	return &MindMeld{}
}

func (g *MindMeld) Tag() models.GameTag { return models.GameMindMeld }

func (g *MindMeld) Start(ctx *Context) {
	g.startRound(ctx)
}

func (g *MindMeld) startRound(ctx *Context) {
	data := &MindMeldData{
		Round:   g.round + 1,
		Prompt:  mindMeldPrompts[g.round],
		Phase:   MindMeldAnswering,
		EndsAt:  ctx.Now().Add(mindMeldWindow),
		Answers: make(map[string]string),
	}
	ctx.Room.GameData = data

	round := data.Round
	ctx.Schedule(mindMeldWindow, func() {
		cur, ok := ctx.Room.GameData.(*MindMeldData)
		if !ok || cur.Round != round || cur.Phase != MindMeldAnswering {
			return
		}
		g.resolve(ctx, cur)
	})
}

func (g *MindMeld) HandleInput(ctx *Context, playerID, event string, payload json.RawMessage) error {
	if event != EventSubmitMindMeldAnswer {
		return nil
	}
	data, ok := ctx.Room.GameData.(*MindMeldData)
	if !ok || data.Phase != MindMeldAnswering {
		return nil
	}
	if _, ok := participant(ctx.Room, playerID); !ok {
		return nil
	}

	var in struct {
		Text string `json:"text"`
	}
	if err := decode(payload, &in); err != nil {
		return err
	}
	data.Answers[playerID] = models.SanitizeChat(in.Text)
	return nil
}

// resolve runs the pairwise comparison at window expiry: answers equal,
// ignoring case and surrounding space, pay both members 100.
func (g *MindMeld) resolve(ctx *Context, data *MindMeldData) {
	data.Phase = MindMeldResults

	ids := make([]string, 0, len(data.Answers))
	for _, p := range participants(ctx.Room) {
		if _, ok := data.Answers[p.ID]; ok {
			ids = append(ids, p.ID)
		}
	}
	for i := 0; i < len(ids); i++ {
		for j := i + 1; j < len(ids); j++ {
			a := strings.TrimSpace(data.Answers[ids[i]])
			b := strings.TrimSpace(data.Answers[ids[j]])
			if a == "" || !strings.EqualFold(a, b) {
				continue
			}
			data.Matches = append(data.Matches, []string{ids[i], ids[j]})
			if p, ok := participant(ctx.Room, ids[i]); ok {
				p.Score += 100
			}
			if p, ok := participant(ctx.Room, ids[j]); ok {
				p.Score += 100
			}
		}
	}
}

func (g *MindMeld) Advance(ctx *Context) bool {
	g.round++
	if g.round >= len(mindMeldPrompts) {
		return false
	}
	g.startRound(ctx)
	return true
}

func (g *MindMeld) End(ctx *Context) {}
