package games

import (
	"errors"
	"testing"
)

func TestTrivia_RevealAfterAllAnswers(t *testing.T) {
	env := newTestEnv("alice", "bob")
	ctx := env.ctx()

	g := NewTrivia()
	g.Start(ctx)

	data := ctx.Room.GameData.(*TriviaData)
	if data.Round != 1 || data.CorrectIndex != -1 {
		t.Fatalf("Expected round 1 with hidden answer, got round %d index %d", data.Round, data.CorrectIndex)
	}

	if err := g.HandleInput(ctx, "alice", EventSubmitAnswer, []byte(`{"index":1}`)); err != nil {
		t.Fatalf("HandleInput returned error: %v", err)
	}
	if data.ShowResult {
		t.Fatal("Result should stay hidden until every player has answered")
	}

	if err := g.HandleInput(ctx, "bob", EventSubmitAnswer, []byte(`{"index":0}`)); err != nil {
		t.Fatalf("HandleInput returned error: %v", err)
	}
	if !data.ShowResult {
		t.Fatal("Result should be revealed once every player has answered")
	}
	if data.CorrectIndex != 1 {
		t.Errorf("Expected correct index 1, got %d", data.CorrectIndex)
	}
	if env.score("alice") != 100 {
		t.Errorf("Expected alice to score 100, got %d", env.score("alice"))
	}
	if env.score("bob") != 0 {
		t.Errorf("Expected bob to score 0, got %d", env.score("bob"))
	}
}

func TestTrivia_ResubmissionOverwrites(t *testing.T) {
	env := newTestEnv("alice", "bob")
	ctx := env.ctx()

	g := NewTrivia()
	g.Start(ctx)
	data := ctx.Room.GameData.(*TriviaData)

	g.HandleInput(ctx, "alice", EventSubmitAnswer, []byte(`{"index":0}`))
	g.HandleInput(ctx, "alice", EventSubmitAnswer, []byte(`{"index":1}`))

	if len(data.Answers) != 1 {
		t.Fatalf("Expected 1 recorded answer, got %d", len(data.Answers))
	}
	if data.Answers["alice"] != 1 {
		t.Errorf("Expected resubmission to overwrite, got %d", data.Answers["alice"])
	}
}

func TestTrivia_HostInputIgnored(t *testing.T) {
	env := newTestEnv("alice")
	ctx := env.ctx()

	g := NewTrivia()
	g.Start(ctx)
	data := ctx.Room.GameData.(*TriviaData)

	g.HandleInput(ctx, "host", EventSubmitAnswer, []byte(`{"index":1}`))
	if len(data.Answers) != 0 {
		t.Fatal("Host answers should not count")
	}
	if data.ShowResult {
		t.Fatal("Host input should not trigger the reveal")
	}
}

func TestTrivia_BadIndex(t *testing.T) {
	env := newTestEnv("alice")
	ctx := env.ctx()

	g := NewTrivia()
	g.Start(ctx)

	err := g.HandleInput(ctx, "alice", EventSubmitAnswer, []byte(`{"index":9}`))
	if !errors.Is(err, ErrBadPayload) {
		t.Fatalf("Expected ErrBadPayload for an out-of-range index, got %v", err)
	}
	err = g.HandleInput(ctx, "alice", EventSubmitAnswer, []byte(`not json`))
	if !errors.Is(err, ErrBadPayload) {
		t.Fatalf("Expected ErrBadPayload for malformed JSON, got %v", err)
	}
}

func TestTrivia_PlayerLeftTriggersReveal(t *testing.T) {
	env := newTestEnv("alice", "bob")
	ctx := env.ctx()

	g := NewTrivia()
	g.Start(ctx)
	data := ctx.Room.GameData.(*TriviaData)

	g.HandleInput(ctx, "alice", EventSubmitAnswer, []byte(`{"index":1}`))
	if data.ShowResult {
		t.Fatal("Result should stay hidden while bob is still in")
	}

	// Bob drops without answering; alice is now everyone.
	env.room.RemovePlayer("bob")
	g.PlayerLeft(ctx, "bob")

	if !data.ShowResult {
		t.Fatal("Expected the reveal once the departed player no longer counts")
	}
	if env.score("alice") != 100 {
		t.Errorf("Expected alice to score 100, got %d", env.score("alice"))
	}
}

func TestTrivia_AdvanceThroughBank(t *testing.T) {
	env := newTestEnv("alice")
	ctx := env.ctx()

	g := NewTrivia()
	g.Start(ctx)

	rounds := 1
	for g.Advance(ctx) {
		rounds++
		data := ctx.Room.GameData.(*TriviaData)
		if data.Round != rounds {
			t.Fatalf("Expected round %d, got %d", rounds, data.Round)
		}
	}
	if rounds != len(triviaQuestions) {
		t.Errorf("Expected %d rounds, got %d", len(triviaQuestions), rounds)
	}
}
