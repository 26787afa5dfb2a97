package games

import (
	"fmt"
	"sort"

	"github.com/yaegerbomb42/famgame/models"
)

// registry maps every game tag to its constructor. Adding a mini-game
// means implementing Game and adding one line here.
var registry = map[models.GameTag]func() Game{
	models.GameTrivia:     func() Game { return NewTrivia() },
	models.GameBuzz:       func() Game { return NewBuzz() },
	models.GameReaction:   func() Game { return NewReaction() },
	models.GameTwoTruths:  func() Game { return NewTwoTruths() },
	models.GameHotTakes:   func() Game { return NewHotTakes() },
	models.GamePoll:       func() Game { return NewPoll() },
	models.GameBluff:      func() Game { return NewBluff() },
	models.GameWordRace:   func() Game { return NewWordRace() },
	models.GameCompete:    func() Game { return NewCompete() },
	models.GameMindMeld:   func() Game { return NewMindMeld() },
	models.GameChain:      func() Game { return NewChain() },
	models.GameDrawing:    func() Game { return NewDrawing() },
	models.GameThisOrThat: func() Game { return NewThisOrThat() },
}

// New instantiates a fresh game for tag.
func New(tag models.GameTag) (Game, error) {
	ctor, ok := registry[tag]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownGame, tag)
	}
	return ctor(), nil
}

// Known reports whether tag names a registered game.
func Known(tag models.GameTag) bool {
	_, ok := registry[tag]
	return ok
}

// Tags lists every registered game tag in stable order.
func Tags() []models.GameTag {
	tags := make([]models.GameTag, 0, len(registry))
	for tag := range registry {
		tags = append(tags, tag)
	}
	sort.Slice(tags, func(i, j int) bool { return tags[i] < tags[j] })
	return tags
}
