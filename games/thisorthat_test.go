package games

import (
	"errors"
	"testing"
)

func TestThisOrThat_TallyWithoutScoring(t *testing.T) {
	env := newTestEnv("alice", "bob")
	ctx := env.ctx()

	g := NewThisOrThat()
	g.Start(ctx)
	data := ctx.Room.GameData.(*ThisOrThatData)

	if err := g.HandleInput(ctx, "alice", EventVoteOption, []byte(`{"option":"C"}`)); !errors.Is(err, ErrBadPayload) {
		t.Fatalf("Expected ErrBadPayload for an unknown option, got %v", err)
	}

	g.HandleInput(ctx, "alice", EventVoteOption, []byte(`{"option":"A"}`))
	if data.Phase != ThisOrThatVoting {
		t.Fatal("Results should wait for every vote")
	}
	g.HandleInput(ctx, "bob", EventVoteOption, []byte(`{"option":"B"}`))

	if data.Phase != ThisOrThatResults {
		t.Fatalf("Expected results phase, got %s", data.Phase)
	}
	if data.TallyA != 1 || data.TallyB != 1 {
		t.Errorf("Expected a 1-1 split, got %d-%d", data.TallyA, data.TallyB)
	}
	if env.score("alice") != 0 || env.score("bob") != 0 {
		t.Error("This-or-that votes must never award points")
	}
}

func TestThisOrThat_AdvanceThroughPrompts(t *testing.T) {
	env := newTestEnv("alice")
	ctx := env.ctx()

	g := NewThisOrThat()
	g.Start(ctx)

	rounds := 1
	for g.Advance(ctx) {
		rounds++
	}
	if rounds != len(thisOrThatPrompts) {
		t.Errorf("Expected %d rounds, got %d", len(thisOrThatPrompts), rounds)
	}
}
