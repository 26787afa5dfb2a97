package games

import (
	"encoding/json"
	"strings"

	"github.com/yaegerbomb42/famgame/models"
)

const (
	EventSubmitStatements = "submitStatements"
	EventVoteLie          = "voteLie"
)

// Two Truths phases.
const (
	TwoTruthsInput  = "input"
	TwoTruthsVoting = "voting"
	TwoTruthsReveal = "reveal"
)

// TwoTruthsEntry is one player's three statements. The lie index stays
// server-side until the subject's reveal.
type TwoTruthsEntry struct {
	Statements []string `json:"statements"`
	LieIndex   int      `json:"-"`
}

// TwoTruthsData is the TWO_TRUTHS payload: everyone submits three
// statements plus a lie index, then the room votes on each subject in
// turn.
type TwoTruthsData struct {
	Phase       string                     `json:"phase"`
	Entries     map[string]*TwoTruthsEntry `json:"entries"`
	SubjectIDs  []string                   `json:"subjectIds"`
	SubjectIdx  int                        `json:"subjectIdx"`
	Votes       map[string]int             `json:"votes"`
	RevealedLie int                        `json:"revealedLie"` // -1 until reveal
}

func (TwoTruthsData) GameTag() models.GameTag { return models.GameTwoTruths }

func (d *TwoTruthsData) subject() string {
	if d.SubjectIdx < 0 || d.SubjectIdx >= len(d.SubjectIDs) {
		return ""
	}
	return d.SubjectIDs[d.SubjectIdx]
}

type TwoTruths struct{}

func NewTwoTruths() *TwoTruths {
	return &TwoTruths{}
}

func (g *TwoTruths) Tag() models.GameTag { return models.GameTwoTruths }

func (g *TwoTruths) Start(ctx *Context) {
	ctx.Room.GameData = &TwoTruthsData{
		Phase:       TwoTruthsInput,
		Entries:     make(map[string]*TwoTruthsEntry),
		Votes:       make(map[string]int),
		RevealedLie: -1,
	}
}

func (g *TwoTruths) HandleInput(ctx *Context, playerID, event string, payload json.RawMessage) error {
	data, ok := ctx.Room.GameData.(*TwoTruthsData)
	if !ok {
		return nil
	}
	if _, ok := participant(ctx.Room, playerID); !ok {
		return nil
	}

	switch event {
	case EventSubmitStatements:
		if data.Phase != TwoTruthsInput {
			return nil
		}
		var in struct {
			Statements []string `json:"statements"`
			LieIndex   int      `json:"lieIndex"`
		}
		if err := decode(payload, &in); err != nil {
			return err
		}
		if len(in.Statements) != 3 || in.LieIndex < 0 || in.LieIndex > 2 {
			return ErrBadPayload
		}
		for i, s := range in.Statements {
			in.Statements[i] = models.SanitizeChat(s)
			if strings.TrimSpace(in.Statements[i]) == "" {
				return ErrBadPayload
			}
		}
		data.Entries[playerID] = &TwoTruthsEntry{
			Statements: in.Statements,
			LieIndex:   in.LieIndex,
		}
		if len(data.Entries) >= participantCount(ctx.Room) {
			g.startVoting(ctx, data)
		}

	case EventVoteLie:
		if data.Phase != TwoTruthsVoting {
			return nil
		}
		subject := data.subject()
		if playerID == subject {
			return nil
		}
		var in struct {
			Index int `json:"index"`
		}
		if err := decode(payload, &in); err != nil {
			return err
		}
		if in.Index < 0 || in.Index > 2 {
			return ErrBadPayload
		}
		data.Votes[playerID] = in.Index
		g.maybeReveal(ctx, data)
	}
	return nil
}

func (g *TwoTruths) startVoting(ctx *Context, data *TwoTruthsData) {
	data.SubjectIDs = data.SubjectIDs[:0]
	for _, p := range participants(ctx.Room) {
		if _, ok := data.Entries[p.ID]; ok {
			data.SubjectIDs = append(data.SubjectIDs, p.ID)
		}
	}
	data.SubjectIdx = 0
	data.Phase = TwoTruthsVoting
	data.Votes = make(map[string]int)
	data.RevealedLie = -1
	g.maybeReveal(ctx, data)
}

// maybeReveal resolves the current subject once every eligible voter has
// voted. A room with no one but the subject reveals immediately.
func (g *TwoTruths) maybeReveal(ctx *Context, data *TwoTruthsData) {
	subject := data.subject()
	if subject == "" {
		return
	}
	voters := 0
	for _, p := range participants(ctx.Room) {
		if p.ID != subject {
			voters++
		}
	}
	voted := 0
	for id := range data.Votes {
		if id != subject {
			if _, ok := participant(ctx.Room, id); ok {
				voted++
			}
		}
	}
	if voted < voters {
		return
	}

	entry := data.Entries[subject]
	data.Phase = TwoTruthsReveal
	data.RevealedLie = entry.LieIndex
	subjectPlayer, _ := participant(ctx.Room, subject)
	for voterID, vote := range data.Votes {
		voter, ok := participant(ctx.Room, voterID)
		if !ok {
			continue
		}
		if vote == entry.LieIndex {
			voter.Score += 50
		} else if subjectPlayer != nil {
			subjectPlayer.Score += 25
		}
	}
}

// PlayerLeft re-checks whichever completion gate the departure affects:
// the statement count during input, the voter count during voting.
func (g *TwoTruths) PlayerLeft(ctx *Context, playerID string) {
	data, ok := ctx.Room.GameData.(*TwoTruthsData)
	if !ok {
		return
	}
	switch data.Phase {
	case TwoTruthsInput:
		delete(data.Entries, playerID)
		if n := participantCount(ctx.Room); n > 0 && len(data.Entries) >= n {
			g.startVoting(ctx, data)
		}
	case TwoTruthsVoting:
		delete(data.Votes, playerID)
		g.maybeReveal(ctx, data)
	}
}

func (g *TwoTruths) Advance(ctx *Context) bool {
	data, ok := ctx.Room.GameData.(*TwoTruthsData)
	if !ok {
		return false
	}
	if data.Phase != TwoTruthsReveal {
		return true
	}
	data.SubjectIdx++
	if data.SubjectIdx >= len(data.SubjectIDs) {
		return false
	}
	data.Phase = TwoTruthsVoting
	data.Votes = make(map[string]int)
	data.RevealedLie = -1
	g.maybeReveal(ctx, data)
	return true
}

func (g *TwoTruths) End(ctx *Context) {}
