package games

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/yaegerbomb42/famgame/models"
)

const EventSubmitChainWord = "submitChainWord"

const chainTurnWindow = 5 * time.Second

// Chain Reaction phases.
const (
	ChainActive = "active"
	ChainEnded  = "ended"
)

// ChainWord is one accepted submission.
type ChainWord struct {
	PlayerID string `json:"playerId"`
	Word     string `json:"word"`
}

// ChainData is the CHAIN payload: players take 5 second turns submitting
// words until somebody's timer runs out.
type ChainData struct {
	Phase      string      `json:"phase"`
	TurnID     string      `json:"turnId"`
	TurnSeq    int         `json:"-"`
	TurnEndsAt time.Time   `json:"turnEndsAt"`
	Words      []ChainWord `json:"words"`
}

func (ChainData) GameTag() models.GameTag { return models.GameChain }

type Chain struct {
	order []string
	idx   int
}

func NewChain() *Chain {
	return &Chain{}
}

func (g *Chain) Tag() models.GameTag { return models.GameChain }

func (g *Chain) Start(ctx *Context) {
	for _, p := range participants(ctx.Room) {
		g.order = append(g.order, p.ID)
	}
	data := &ChainData{Phase: ChainActive}
	ctx.Room.GameData = data
	g.armTurn(ctx, data)
}

// armTurn hands the turn to the next connected player and starts a fresh
// 5 second timer. The sequence number keeps a stale timer from ending a
// later turn.
func (g *Chain) armTurn(ctx *Context, data *ChainData) {
	turnID := g.nextTurn(ctx)
	if turnID == "" {
		data.Phase = ChainEnded
		return
	}
	data.TurnID = turnID
	data.TurnSeq++
	data.TurnEndsAt = ctx.Now().Add(chainTurnWindow)

	seq := data.TurnSeq
	ctx.Schedule(chainTurnWindow, func() {
		cur, ok := ctx.Room.GameData.(*ChainData)
		if !ok || cur.TurnSeq != seq || cur.Phase != ChainActive {
			return
		}
		cur.Phase = ChainEnded
	})
}

func (g *Chain) nextTurn(ctx *Context) string {
	for range g.order {
		id := g.order[g.idx%len(g.order)]
		g.idx++
		if _, ok := participant(ctx.Room, id); ok {
			return id
		}
	}
	return ""
}

func (g *Chain) HandleInput(ctx *Context, playerID, event string, payload json.RawMessage) error {
	if event != EventSubmitChainWord {
		return nil
	}
	data, ok := ctx.Room.GameData.(*ChainData)
	if !ok || data.Phase != ChainActive || playerID != data.TurnID {
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
	word := strings.ToLower(strings.TrimSpace(in.Word))
	if len([]rune(word)) < 2 {
		return nil
	}

	data.Words = append(data.Words, ChainWord{PlayerID: playerID, Word: word})
	p.Score += 10
	g.armTurn(ctx, data)
	return nil
}

// PlayerLeft re-arms the turn if the holder dropped, so the chain keeps
// moving instead of waiting out the dead player's timer.
func (g *Chain) PlayerLeft(ctx *Context, playerID string) {
	data, ok := ctx.Room.GameData.(*ChainData)
	if !ok || data.Phase != ChainActive || data.TurnID != playerID {
		return
	}
	g.armTurn(ctx, data)
}

func (g *Chain) Advance(ctx *Context) bool {
	return false
}

func (g *Chain) End(ctx *Context) {}
