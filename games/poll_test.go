package games

import "testing"

func TestPoll_TalliesWithoutScoring(t *testing.T) {
	env := newTestEnv("alice", "bob")
	ctx := env.ctx()

	g := NewPoll()
	g.Start(ctx)
	data := ctx.Room.GameData.(*PollData)

	g.HandleInput(ctx, "alice", EventSubmitTake, []byte(`{"text":"Definitely bob"}`))
	g.HandleInput(ctx, "bob", EventSubmitTake, []byte(`{"text":"Me, obviously"}`))
	if data.Phase != PhaseVoting {
		t.Fatalf("Expected voting phase, got %s", data.Phase)
	}

	g.HandleInput(ctx, "alice", EventSubmitPollVote, []byte(`{"targetId":"bob"}`))
	g.HandleInput(ctx, "bob", EventSubmitPollVote, []byte(`{"targetId":"bob"}`))

	if data.Phase != PhaseResults {
		t.Fatalf("Expected results phase, got %s", data.Phase)
	}
	if data.Tally["bob"] != 2 {
		t.Errorf("Expected 2 votes for bob, got %d", data.Tally["bob"])
	}
	if env.score("alice") != 0 || env.score("bob") != 0 {
		t.Error("Poll votes must never award points")
	}
}
