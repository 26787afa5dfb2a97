package games

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/yaegerbomb42/famgame/models"
)

const EventSubmitWord = "submitWord"

const wordRaceWindow = 45 * time.Second

// Word Race phases.
const (
	WordRaceActive  = "active"
	WordRaceResults = "results"
)

// WordRaceData is the WORD_RACE payload: a free-running 45 second window,
// 10 points per accepted word.
type WordRaceData struct {
	Phase  string              `json:"phase"`
	EndsAt time.Time           `json:"endsAt"`
	Words  map[string][]string `json:"words"`
}

func (WordRaceData) GameTag() models.GameTag { return models.GameWordRace }

type WordRace struct{}

func NewWordRace() *WordRace {
	return &WordRace{}
}

func (g *WordRace) Tag() models.GameTag { return models.GameWordRace }

func (g *WordRace) Start(ctx *Context) {
	data := &WordRaceData{
		Phase:  WordRaceActive,
		EndsAt: ctx.Now().Add(wordRaceWindow),
		Words:  make(map[string][]string),
	}
	ctx.Room.GameData = data

	ctx.Schedule(wordRaceWindow, func() {
		if cur, ok := ctx.Room.GameData.(*WordRaceData); ok {
			cur.Phase = WordRaceResults
		}
	})
}

func (g *WordRace) HandleInput(ctx *Context, playerID, event string, payload json.RawMessage) error {
	if event != EventSubmitWord {
		return nil
	}
	data, ok := ctx.Room.GameData.(*WordRaceData)
	if !ok || data.Phase != WordRaceActive {
		return nil
	}
	p, ok := participant(ctx.Room, playerID)
	if !ok {
		return nil
	}

	var in struct {
		Word string `json:"word"`
	}
	if err := decode(payload, &in); err != nil {
		return err
	}

	// Too short or already used by this player: silently not accepted.
	word := strings.ToLower(strings.TrimSpace(in.Word))
	if len([]rune(word)) < 3 {
		return nil
	}
	for _, seen := range data.Words[playerID] {
		if seen == word {
			return nil
		}
	}

	data.Words[playerID] = append(data.Words[playerID], word)
	p.Score += 10
	return nil
}

func (g *WordRace) Advance(ctx *Context) bool {
	return false
}

func (g *WordRace) End(ctx *Context) {}
