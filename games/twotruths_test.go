package games

import (
	"errors"
	"testing"
)

func submitStatements(t *testing.T, g *TwoTruths, ctx *Context, playerID string, lie int) {
	t.Helper()
	payload := []byte(`{"statements":["I ran a marathon","I met a president","I can juggle"],"lieIndex":` + string(rune('0'+lie)) + `}`)
	if err := g.HandleInput(ctx, playerID, EventSubmitStatements, payload); err != nil {
		t.Fatalf("submitStatements for %s returned error: %v", playerID, err)
	}
}

func TestTwoTruths_FullCycle(t *testing.T) {
	env := newTestEnv("alice", "bob")
	ctx := env.ctx()

	g := NewTwoTruths()
	g.Start(ctx)
	data := ctx.Room.GameData.(*TwoTruthsData)
	if data.Phase != TwoTruthsInput {
		t.Fatalf("Expected input phase, got %s", data.Phase)
	}

	submitStatements(t, g, ctx, "alice", 2)
	if data.Phase != TwoTruthsInput {
		t.Fatal("Voting should wait for every player's statements")
	}
	submitStatements(t, g, ctx, "bob", 0)

	if data.Phase != TwoTruthsVoting {
		t.Fatalf("Expected voting phase, got %s", data.Phase)
	}
	if len(data.SubjectIDs) != 2 || data.SubjectIDs[0] != "alice" {
		t.Fatalf("Expected subjects in join order, got %v", data.SubjectIDs)
	}

	// Subject alice: the subject's own vote is ignored, bob guesses right.
	g.HandleInput(ctx, "alice", EventVoteLie, []byte(`{"index":0}`))
	if len(data.Votes) != 0 {
		t.Fatal("The subject must not vote on their own statements")
	}
	g.HandleInput(ctx, "bob", EventVoteLie, []byte(`{"index":2}`))
	if data.Phase != TwoTruthsReveal || data.RevealedLie != 2 {
		t.Fatalf("Expected reveal of lie 2, got phase %s lie %d", data.Phase, data.RevealedLie)
	}
	if env.score("bob") != 50 {
		t.Errorf("Expected bob to score 50 for a correct guess, got %d", env.score("bob"))
	}

	// Subject bob: alice guesses wrong, the subject collects 25.
	if !g.Advance(ctx) {
		t.Fatal("Advance should move to the next subject")
	}
	g.HandleInput(ctx, "alice", EventVoteLie, []byte(`{"index":1}`))
	if data.Phase != TwoTruthsReveal {
		t.Fatalf("Expected reveal, got %s", data.Phase)
	}
	if env.score("bob") != 75 {
		t.Errorf("Expected bob at 75 after fooling alice, got %d", env.score("bob"))
	}
	if env.score("alice") != 0 {
		t.Errorf("Expected alice at 0, got %d", env.score("alice"))
	}

	if g.Advance(ctx) {
		t.Fatal("Advance should report the game over after the last subject")
	}
}

func TestTwoTruths_BadStatements(t *testing.T) {
	env := newTestEnv("alice")
	ctx := env.ctx()

	g := NewTwoTruths()
	g.Start(ctx)

	err := g.HandleInput(ctx, "alice", EventSubmitStatements, []byte(`{"statements":["only","two"],"lieIndex":0}`))
	if !errors.Is(err, ErrBadPayload) {
		t.Fatalf("Expected ErrBadPayload for two statements, got %v", err)
	}
	err = g.HandleInput(ctx, "alice", EventSubmitStatements, []byte(`{"statements":["a b","   ","c d"],"lieIndex":1}`))
	if !errors.Is(err, ErrBadPayload) {
		t.Fatalf("Expected ErrBadPayload for a blank statement, got %v", err)
	}
}

func TestTwoTruths_PlayerLeftDuringInputStartsVoting(t *testing.T) {
	env := newTestEnv("alice", "bob", "carol")
	ctx := env.ctx()

	g := NewTwoTruths()
	g.Start(ctx)
	data := ctx.Room.GameData.(*TwoTruthsData)

	submitStatements(t, g, ctx, "alice", 0)
	submitStatements(t, g, ctx, "bob", 1)
	if data.Phase != TwoTruthsInput {
		t.Fatalf("Voting should wait for carol, got %s", data.Phase)
	}

	env.room.RemovePlayer("carol")
	g.PlayerLeft(ctx, "carol")

	if data.Phase != TwoTruthsVoting {
		t.Fatalf("Expected voting once carol no longer counts, got %s", data.Phase)
	}
}

func TestTwoTruths_PlayerLeftDuringVotingReveals(t *testing.T) {
	env := newTestEnv("alice", "bob", "carol")
	ctx := env.ctx()

	g := NewTwoTruths()
	g.Start(ctx)
	data := ctx.Room.GameData.(*TwoTruthsData)

	submitStatements(t, g, ctx, "alice", 2)
	submitStatements(t, g, ctx, "bob", 0)
	submitStatements(t, g, ctx, "carol", 1)
	if data.Phase != TwoTruthsVoting {
		t.Fatalf("Expected voting phase, got %s", data.Phase)
	}

	// Subject alice: bob votes, carol drops without voting.
	g.HandleInput(ctx, "bob", EventVoteLie, []byte(`{"index":2}`))
	if data.Phase != TwoTruthsVoting {
		t.Fatalf("The reveal should wait for carol, got %s", data.Phase)
	}

	env.room.RemovePlayer("carol")
	g.PlayerLeft(ctx, "carol")

	if data.Phase != TwoTruthsReveal {
		t.Fatalf("Expected the reveal once carol no longer counts, got %s", data.Phase)
	}
	if env.score("bob") != 50 {
		t.Errorf("Expected bob to score 50, got %d", env.score("bob"))
	}
}

func TestTwoTruths_LoneSubjectRevealsImmediately(t *testing.T) {
	env := newTestEnv("alice")
	ctx := env.ctx()

	g := NewTwoTruths()
	g.Start(ctx)
	submitStatements(t, g, ctx, "alice", 1)

	data := ctx.Room.GameData.(*TwoTruthsData)
	if data.Phase != TwoTruthsReveal {
		t.Fatalf("A subject with no voters should reveal immediately, got %s", data.Phase)
	}
	if env.score("alice") != 0 {
		t.Errorf("Expected no score without voters, got %d", env.score("alice"))
	}
}
