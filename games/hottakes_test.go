package games

import (
	"errors"
	"testing"
)

func TestHotTakes_SubmitAndVote(t *testing.T) {
	env := newTestEnv("alice", "bob")
	ctx := env.ctx()

	g := NewHotTakes()
	g.Start(ctx)
	data := ctx.Room.GameData.(*HotTakesData)

	g.HandleInput(ctx, "alice", EventSubmitTake, []byte(`{"text":"Pineapple belongs on pizza"}`))
	if data.Phase != PhaseInput {
		t.Fatal("Voting should wait for every take")
	}
	g.HandleInput(ctx, "bob", EventSubmitTake, []byte(`{"text":"Cereal is soup"}`))
	if data.Phase != PhaseVoting {
		t.Fatalf("Expected voting phase, got %s", data.Phase)
	}

	if err := g.HandleInput(ctx, "alice", EventVoteTake, []byte(`{"targetId":"nobody"}`)); !errors.Is(err, ErrBadPayload) {
		t.Fatalf("Expected ErrBadPayload for a vote on a missing take, got %v", err)
	}

	g.HandleInput(ctx, "alice", EventVoteTake, []byte(`{"targetId":"bob"}`))
	g.HandleInput(ctx, "bob", EventVoteTake, []byte(`{"targetId":"bob"}`))

	if data.Phase != PhaseResults {
		t.Fatalf("Expected results phase, got %s", data.Phase)
	}
	if data.Tally["bob"] != 2 {
		t.Errorf("Expected 2 votes for bob, got %d", data.Tally["bob"])
	}
	if env.score("bob") != 200 {
		t.Errorf("Expected bob to score 200, got %d", env.score("bob"))
	}
	if env.score("alice") != 0 {
		t.Errorf("Expected alice to score 0, got %d", env.score("alice"))
	}

	if g.Advance(ctx) {
		t.Error("Hot takes is a single-round game")
	}
}

func TestHotTakes_LonePlayerResolvesWithoutVotes(t *testing.T) {
	env := newTestEnv("alice")
	ctx := env.ctx()

	g := NewHotTakes()
	g.Start(ctx)
	data := ctx.Room.GameData.(*HotTakesData)

	g.HandleInput(ctx, "alice", EventSubmitTake, []byte(`{"text":"Mondays are fine"}`))
	if data.Phase != PhaseResults {
		t.Fatalf("A lone player's round should resolve immediately, got %s", data.Phase)
	}
	if env.score("alice") != 0 {
		t.Errorf("Expected no score without votes, got %d", env.score("alice"))
	}
}
