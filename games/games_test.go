package games

import (
	"testing"
	"time"

	"github.com/yaegerbomb42/famgame/models"
)

// testEnv wires a Context whose clock, scheduler and outbound channel are
// all under test control. Scheduled callbacks are captured and fired
// manually.
type testEnv struct {
	room      *models.Room
	scheduled []func()
	delays    []time.Duration
	sent      []sentEvent
	now       time.Time
}

type sentEvent struct {
	playerID string
	event    string
}

// newTestEnv builds a room with a host plus the given phone players.
func newTestEnv(playerIDs ...string) *testEnv {
	room := models.NewRoom("TEST", models.Persona{Name: "Maxine"})
	host := &models.Player{ID: "host", Name: "Host", IsHost: true}
	room.AddPlayer(host)
	room.HostID = host.ID
	for _, id := range playerIDs {
		room.AddPlayer(&models.Player{ID: id, Name: id})
	}
	return &testEnv{room: room, now: time.Now()}
}

func (e *testEnv) ctx() *Context {
	return &Context{
		Room: e.room,
		Now:  func() time.Time { return e.now },
		Schedule: func(delay time.Duration, fn func()) {
			e.delays = append(e.delays, delay)
			e.scheduled = append(e.scheduled, fn)
		},
		SendTo: func(playerID, event string, data any) {
			e.sent = append(e.sent, sentEvent{playerID, event})
		},
	}
}

// fire runs every callback captured so far, in scheduling order.
func (e *testEnv) fire() {
	fns := e.scheduled
	e.scheduled = nil
	e.delays = nil
	for _, fn := range fns {
		fn()
	}
}

func (e *testEnv) score(playerID string) int {
	return e.room.Players[playerID].Score
}

func TestRegistry_New(t *testing.T) {
	for _, tag := range Tags() {
		game, err := New(tag)
		if err != nil {
			t.Fatalf("New(%s) returned error: %v", tag, err)
		}
		if game.Tag() != tag {
			t.Errorf("Expected tag %s, got %s", tag, game.Tag())
		}
	}
}

func TestRegistry_UnknownGame(t *testing.T) {
	if _, err := New(models.GameTag("CHESS")); err == nil {
		t.Fatal("New should reject an unknown game tag")
	}
	if Known(models.GameTag("CHESS")) {
		t.Error("Known should be false for an unknown game tag")
	}
	if !Known(models.GameTrivia) {
		t.Error("Known should be true for a registered game tag")
	}
}

func TestRegistry_FreshInstances(t *testing.T) {
	a, _ := New(models.GameTrivia)
	b, _ := New(models.GameTrivia)
	if a == b {
		t.Fatal("New should return a fresh instance per call")
	}
}
