package games

import "testing"

func TestBluff_ClaimAndVotes(t *testing.T) {
	env := newTestEnv("alice", "bob", "cara")
	ctx := env.ctx()

	g := NewBluff()
	g.Start(ctx)
	data := ctx.Room.GameData.(*BluffData)
	if data.ClaimerID != "alice" || data.Phase != BluffClaim {
		t.Fatalf("Expected alice to claim first, got %q phase %s", data.ClaimerID, data.Phase)
	}

	// Only the claimer may submit the claim.
	g.HandleInput(ctx, "bob", EventSubmitClaim, []byte(`{"claim":"I own a boat","isLying":false}`))
	if data.Phase != BluffClaim {
		t.Fatal("A non-claimer's claim should be ignored")
	}

	g.HandleInput(ctx, "alice", EventSubmitClaim, []byte(`{"claim":"I have been to space","isLying":true}`))
	if data.Phase != BluffVoting {
		t.Fatalf("Expected voting phase, got %s", data.Phase)
	}

	// bob believes the lie, cara calls it.
	g.HandleInput(ctx, "bob", EventVoteBluff, []byte(`{"truth":true}`))
	if data.Phase != BluffVoting {
		t.Fatal("Resolution should wait for every voter")
	}
	g.HandleInput(ctx, "cara", EventVoteBluff, []byte(`{"truth":false}`))

	if data.Phase != BluffResults {
		t.Fatalf("Expected results phase, got %s", data.Phase)
	}
	if data.WasLying == nil || !*data.WasLying {
		t.Fatal("Expected reveal to report the claim was a lie")
	}
	if env.score("cara") != 50 {
		t.Errorf("Expected cara to score 50 for the right call, got %d", env.score("cara"))
	}
	if env.score("alice") != 25 {
		t.Errorf("Expected alice to score 25 for fooling bob, got %d", env.score("alice"))
	}
	if env.score("bob") != 0 {
		t.Errorf("Expected bob to score 0, got %d", env.score("bob"))
	}

	if !g.Advance(ctx) {
		t.Fatal("Advance should move the claim to the next player")
	}
	data = ctx.Room.GameData.(*BluffData)
	if data.ClaimerID != "bob" {
		t.Errorf("Expected bob to claim next, got %q", data.ClaimerID)
	}
}

func TestBluff_ClaimerLeavesMidClaim(t *testing.T) {
	env := newTestEnv("alice", "bob")
	ctx := env.ctx()

	g := NewBluff()
	g.Start(ctx)

	env.room.RemovePlayer("alice")
	g.PlayerLeft(ctx, "alice")

	data := ctx.Room.GameData.(*BluffData)
	if data.ClaimerID != "bob" || data.Phase != BluffClaim {
		t.Fatalf("Expected bob to take over the claim, got %q phase %s", data.ClaimerID, data.Phase)
	}
}

func TestBluff_VoterLeavesMidVoting(t *testing.T) {
	env := newTestEnv("alice", "bob", "cara")
	ctx := env.ctx()

	g := NewBluff()
	g.Start(ctx)
	data := ctx.Room.GameData.(*BluffData)

	g.HandleInput(ctx, "alice", EventSubmitClaim, []byte(`{"claim":"I have met a celebrity","isLying":false}`))
	g.HandleInput(ctx, "bob", EventVoteBluff, []byte(`{"truth":true}`))
	if data.Phase != BluffVoting {
		t.Fatalf("Resolution should wait for cara, got %s", data.Phase)
	}

	env.room.RemovePlayer("cara")
	g.PlayerLeft(ctx, "cara")

	if data.Phase != BluffResults {
		t.Fatalf("Expected results once cara no longer counts, got %s", data.Phase)
	}
	if env.score("bob") != 50 {
		t.Errorf("Expected bob to score 50, got %d", env.score("bob"))
	}
}

func TestBluff_SkipsDepartedClaimer(t *testing.T) {
	env := newTestEnv("alice", "bob", "cara")
	ctx := env.ctx()

	g := NewBluff()
	g.Start(ctx)
	data := ctx.Room.GameData.(*BluffData)

	g.HandleInput(ctx, "alice", EventSubmitClaim, []byte(`{"claim":"I speak four languages","isLying":false}`))
	g.HandleInput(ctx, "bob", EventVoteBluff, []byte(`{"truth":true}`))
	g.HandleInput(ctx, "cara", EventVoteBluff, []byte(`{"truth":true}`))
	if data.Phase != BluffResults {
		t.Fatalf("Expected results phase, got %s", data.Phase)
	}

	ctx.Room.RemovePlayer("bob")
	if !g.Advance(ctx) {
		t.Fatal("Advance should find a remaining claimer")
	}
	data = ctx.Room.GameData.(*BluffData)
	if data.ClaimerID != "cara" {
		t.Errorf("Expected the departed claimer to be skipped, got %q", data.ClaimerID)
	}
}
