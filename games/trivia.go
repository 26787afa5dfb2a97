package games

import (
	"encoding/json"

	"github.com/yaegerbomb42/famgame/models"
)

const EventSubmitAnswer = "submitAnswer"

type triviaQuestion struct {
	text    string
	options []string
	correct int
}

// Question bank in fixed order so rounds are reproducible.
var triviaQuestions = []triviaQuestion{
	{"Which planet has the most moons?", []string{"Earth", "Saturn", "Mars", "Venus"}, 1},
	{"What is the largest ocean on Earth?", []string{"Atlantic", "Indian", "Pacific", "Arctic"}, 2},
	{"How many hearts does an octopus have?", []string{"One", "Two", "Three", "Four"}, 2},
	{"Which country invented pizza?", []string{"France", "Italy", "Greece", "Spain"}, 1},
	{"What is the fastest land animal?", []string{"Cheetah", "Lion", "Ostrich", "Horse"}, 0},
}

// TriviaData is the TRIVIA payload: one question per round, reveal once
// every player has answered.
type TriviaData struct {
	Round        int            `json:"round"`
	TotalRounds  int            `json:"totalRounds"`
	Question     string         `json:"question"`
	Options      []string       `json:"options"`
	Answers      map[string]int `json:"answers"`
	ShowResult   bool           `json:"showResult"`
	CorrectIndex int            `json:"correctIndex"` // -1 until reveal
}

func (TriviaData) GameTag() models.GameTag { return models.GameTrivia }

type Trivia struct {
	round int
}

func NewTrivia() *Trivia {
	return &Trivia{}
}

func (g *Trivia) Tag() models.GameTag { return models.GameTrivia }

func (g *Trivia) Start(ctx *Context) {
	ctx.Room.GameData = g.newRound()
}

func (g *Trivia) newRound() *TriviaData {
	q := triviaQuestions[g.round]
	return &TriviaData{
		Round:        g.round + 1,
		TotalRounds:  len(triviaQuestions),
		Question:     q.text,
		Options:      q.options,
		Answers:      make(map[string]int),
		CorrectIndex: -1,
	}
}

func (g *Trivia) HandleInput(ctx *Context, playerID, event string, payload json.RawMessage) error {
	if event != EventSubmitAnswer {
		return nil
	}
	data, ok := ctx.Room.GameData.(*TriviaData)
	if !ok || data.ShowResult {
		return nil
	}
	if _, ok := participant(ctx.Room, playerID); !ok {
		return nil
	}

	var in struct {
		Index int `json:"index"`
	}
	if err := decode(payload, &in); err != nil {
		return err
	}
	if in.Index < 0 || in.Index >= len(data.Options) {
		return ErrBadPayload
	}

	// Resubmission before the reveal overwrites, never double-scores.
	data.Answers[playerID] = in.Index

	if len(data.Answers) >= participantCount(ctx.Room) {
		g.reveal(ctx, data)
	}
	return nil
}

func (g *Trivia) reveal(ctx *Context, data *TriviaData) {
	data.ShowResult = true
	data.CorrectIndex = triviaQuestions[g.round].correct
	for id, answer := range data.Answers {
		if answer != data.CorrectIndex {
			continue
		}
		if p, ok := participant(ctx.Room, id); ok {
			p.Score += 100
		}
	}
}

// PlayerLeft drops the departed player's answer and re-checks the reveal
// condition against the remaining players.
func (g *Trivia) PlayerLeft(ctx *Context, playerID string) {
	data, ok := ctx.Room.GameData.(*TriviaData)
	if !ok || data.ShowResult {
		return
	}
	delete(data.Answers, playerID)
	if n := participantCount(ctx.Room); n > 0 && len(data.Answers) >= n {
		g.reveal(ctx, data)
	}
}

func (g *Trivia) Advance(ctx *Context) bool {
	g.round++
	if g.round >= len(triviaQuestions) {
		return false
	}
	ctx.Room.GameData = g.newRound()
	return true
}

func (g *Trivia) End(ctx *Context) {}
