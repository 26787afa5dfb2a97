package models

import (
	"strconv"
	"strings"
	"testing"
	"time"
)

func TestRoom_AddRemovePlayer(t *testing.T) {
	r := NewRoom("ABCD", Persona{Name: "Maxine"})
	r.AddPlayer(&Player{ID: "a", Name: "A"})
	r.AddPlayer(&Player{ID: "b", Name: "B"})
	r.AddPlayer(&Player{ID: "c", Name: "C"})

	ordered := r.OrderedPlayers()
	if len(ordered) != 3 || ordered[0].ID != "a" || ordered[2].ID != "c" {
		t.Fatalf("Expected join order a,b,c, got %v", ordered)
	}

	p, ok := r.RemovePlayer("b")
	if !ok || p.ID != "b" {
		t.Fatal("RemovePlayer should return the removed player")
	}
	if len(r.Order) != 2 {
		t.Errorf("Expected order length 2, got %d", len(r.Order))
	}
	if _, ok := r.RemovePlayer("b"); ok {
		t.Error("Removing an absent player should report false")
	}
}

func TestRoom_AddPlayerTwiceKeepsOneOrderEntry(t *testing.T) {
	r := NewRoom("ABCD", Persona{})
	r.AddPlayer(&Player{ID: "a", Name: "A"})
	r.AddPlayer(&Player{ID: "a", Name: "A again"})

	if len(r.Order) != 1 {
		t.Fatalf("Expected order length 1 after re-adding, got %d", len(r.Order))
	}
	if r.Players["a"].Name != "A again" {
		t.Error("Re-adding should replace the stored player")
	}
	if got := len(r.OrderedPlayers()); got != 1 {
		t.Errorf("Expected 1 ordered player, got %d", got)
	}
}

func TestRoom_ChatRingBuffer(t *testing.T) {
	r := NewRoom("ABCD", Persona{})
	for i := 0; i < MaxChatMessages+25; i++ {
		r.AppendChat(ChatMessage{ID: strconv.Itoa(i), Text: "line"})
	}
	if len(r.Chat) != MaxChatMessages {
		t.Fatalf("Expected the chat capped at %d, got %d", MaxChatMessages, len(r.Chat))
	}
	if r.Chat[0].ID != "25" {
		t.Errorf("Expected the oldest lines dropped, got first ID %s", r.Chat[0].ID)
	}
}

func TestSanitizeChat(t *testing.T) {
	if got := SanitizeChat("  hello \n\t world  "); got != "hello world" {
		t.Errorf("Expected collapsed whitespace, got %q", got)
	}
	long := strings.Repeat("x", MaxChatLength+50)
	if got := SanitizeChat(long); len([]rune(got)) != MaxChatLength {
		t.Errorf("Expected a %d rune cap, got %d", MaxChatLength, len([]rune(got)))
	}
	if got := SanitizeChat("   "); got != "" {
		t.Errorf("Expected empty output for blank input, got %q", got)
	}
}

func TestRoom_VoteTally(t *testing.T) {
	r := NewRoom("ABCD", Persona{})
	r.AddPlayer(&Player{ID: "a", GameVote: GameTrivia})
	r.AddPlayer(&Player{ID: "b", GameVote: GameTrivia})
	r.AddPlayer(&Player{ID: "c", GameVote: GameBuzz})
	r.AddPlayer(&Player{ID: "d"})

	tally := r.VoteTally()
	if tally[GameTrivia] != 2 || tally[GameBuzz] != 1 {
		t.Fatalf("Expected 2 trivia and 1 buzz, got %v", tally)
	}
	if _, ok := tally[""]; ok {
		t.Error("Players without a vote must not appear in the tally")
	}

	r.ClearVotes()
	if len(r.VoteTally()) != 0 {
		t.Error("Expected an empty tally after ClearVotes")
	}
}

func TestPlayer_Banned(t *testing.T) {
	now := time.Now()
	p := &Player{}
	if p.Banned(now) {
		t.Error("A player with no penalty is not banned")
	}
	p.BannedUntil = now.Add(time.Second)
	if !p.Banned(now) {
		t.Error("Expected the player to be banned")
	}
	if p.Banned(now.Add(2 * time.Second)) {
		t.Error("Expected the ban to expire")
	}
}

func TestRoom_BuildSnapshotLeaderboard(t *testing.T) {
	r := NewRoom("ABCD", Persona{})
	r.AddPlayer(&Player{ID: "a", Score: 10})
	r.AddPlayer(&Player{ID: "b", Score: 30})
	r.AddPlayer(&Player{ID: "c", Score: 30})
	r.AddPlayer(&Player{ID: "d", Score: 20})

	snap := r.BuildSnapshot()
	if snap.Players[0].ID != "a" {
		t.Error("Players must stay in join order")
	}

	got := make([]string, 0, len(snap.Leaderboard))
	for _, p := range snap.Leaderboard {
		got = append(got, p.ID)
	}
	// Ties keep join order: b before c.
	want := []string{"b", "c", "d", "a"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Expected leaderboard %v, got %v", want, got)
		}
	}
}
