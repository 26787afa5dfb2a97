package room

import (
	"math/rand"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/yaegerbomb42/famgame/logger"
	"github.com/yaegerbomb42/famgame/models"
	"github.com/yaegerbomb42/famgame/scheduler"
)

// codeAlphabet omits visually ambiguous glyphs (I, O, 0, 1).
const codeAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

const codeLength = 4

var personas = []models.Persona{
	{Name: "Maxine", Avatar: "🎤"},
	{Name: "DJ Byte", Avatar: "🎧"},
	{Name: "Sparky", Avatar: "🎇"},
	{Name: "Luna", Avatar: "🌙"},
}

// Manager owns every live room, keyed by join code, plus the session to
// room membership index.
type Manager struct {
	mutex      sync.RWMutex
	rooms      map[string]*Room
	membership map[string]*Room // session ID -> room

	notifier   Notifier
	timers     *scheduler.Manager
	records    RecordSink
	maxPlayers int
	genCounter atomic.Int64
}

func NewManager(timers *scheduler.Manager, records RecordSink, maxPlayers int) *Manager {
	return &Manager{
		rooms:      make(map[string]*Room),
		membership: make(map[string]*Room),
		timers:     timers,
		records:    records,
		maxPlayers: maxPlayers,
	}
}

// SetNotifier wires the outbound side after construction; the broadcaster
// needs the session manager, which in turn is built alongside this one.
func (m *Manager) SetNotifier(n Notifier) {
	m.notifier = n
}

func (m *Manager) nextGeneration() int64 {
	return m.genCounter.Add(1)
}

// newCodeLocked generates a code unused by any live room. Caller holds
// mutex.
func (m *Manager) newCodeLocked() string {
	for {
		b := make([]byte, codeLength)
		for i := range b {
			b[i] = codeAlphabet[rand.Intn(len(codeAlphabet))]
		}
		code := string(b)
		if _, taken := m.rooms[code]; !taken {
			return code
		}
	}
}

// CreateRoom opens a fresh room with the caller as host and sole player.
// A caller already in some room leaves it first.
func (m *Manager) CreateRoom(sessionID, name string) (*Room, error) {
	m.Disconnect(sessionID)

	m.mutex.Lock()
	code := m.newCodeLocked()
	r := &Room{
		state:    models.NewRoom(code, personas[rand.Intn(len(personas))]),
		notifier: m.notifier,
		timers:   m.timers,
		records:  m.records,
		nextGen:  m.nextGeneration,
	}
	r.generation = m.nextGeneration()
	m.rooms[code] = r
	m.membership[sessionID] = r
	m.mutex.Unlock()

	host := &models.Player{
		ID:       sessionID,
		Name:     models.SanitizeChat(name),
		IsHost:   true,
		JoinedAt: time.Now(),
	}
	if err := r.join(host); err != nil {
		return nil, err
	}
	logger.Log.Infow("room created", "code", code, "host", sessionID)
	return r, nil
}

// JoinRoom adds a player to the room matching code. Codes are
// case-insensitive; a code that matches no live room mutates nothing.
// A caller already in some room leaves it first, so a session is never a
// member of two rooms and never appears twice in one.
func (m *Manager) JoinRoom(sessionID, code, name, avatar string) error {
	key := strings.ToUpper(strings.TrimSpace(code))

	if err := m.checkJoin(key); err != nil {
		return err
	}
	m.Disconnect(sessionID)

	m.mutex.Lock()
	// Re-resolve after the detach: a departing host re-keys their old
	// room, which may have been the one the code named.
	r, ok := m.rooms[key]
	if !ok {
		m.mutex.Unlock()
		return ErrInvalidCode
	}
	r.mu.Lock()
	if len(r.state.Players) >= m.maxPlayers {
		r.mu.Unlock()
		m.mutex.Unlock()
		return ErrRoomFull
	}
	r.mu.Unlock()
	m.membership[sessionID] = r
	m.mutex.Unlock()

	return r.join(&models.Player{
		ID:       sessionID,
		Name:     models.SanitizeChat(name),
		Avatar:   avatar,
		JoinedAt: time.Now(),
	})
}

// checkJoin validates a join target before the caller is detached from
// their current room, so a join that was never going to succeed leaves
// the caller's membership untouched.
func (m *Manager) checkJoin(key string) error {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	r, ok := m.rooms[key]
	if !ok {
		return ErrInvalidCode
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.state.Players) >= m.maxPlayers {
		return ErrRoomFull
	}
	return nil
}

// Disconnect removes the session from its room, if any. A departing host
// tears the whole room down: everyone else gets roomClosed and the room
// comes back empty under a fresh code.
func (m *Manager) Disconnect(sessionID string) {
	m.mutex.Lock()
	r, ok := m.membership[sessionID]
	if !ok {
		m.mutex.Unlock()
		return
	}
	delete(m.membership, sessionID)

	r.mu.Lock()
	isHost := r.state.HostID == sessionID
	oldCode := r.state.Code
	r.mu.Unlock()

	if !isHost {
		m.mutex.Unlock()
		r.leave(sessionID)
		return
	}

	delete(m.rooms, oldCode)
	newCode := m.newCodeLocked()
	m.rooms[newCode] = r
	m.mutex.Unlock()

	orphans := r.teardown(newCode, personas[rand.Intn(len(personas))])

	m.mutex.Lock()
	for _, id := range orphans {
		delete(m.membership, id)
	}
	m.mutex.Unlock()

	logger.Log.Infow("host left, room reset", "old_code", oldCode, "new_code", newCode)
}

// Find returns the room the session currently belongs to.
func (m *Manager) Find(sessionID string) (*Room, bool) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()
	r, ok := m.membership[sessionID]
	return r, ok
}

// Count returns the number of live rooms.
func (m *Manager) Count() int {
	m.mutex.RLock()
	defer m.mutex.RUnlock()
	return len(m.rooms)
}

// Stats describes one live room for the admin surface.
type Stats struct {
	Code        string
	Status      models.RoomStatus
	Players     int
	CurrentGame models.GameTag
}

func (m *Manager) RoomStats() []Stats {
	m.mutex.RLock()
	rooms := make([]*Room, 0, len(m.rooms))
	for _, r := range m.rooms {
		rooms = append(rooms, r)
	}
	m.mutex.RUnlock()

	stats := make([]Stats, 0, len(rooms))
	for _, r := range rooms {
		r.mu.Lock()
		stats = append(stats, Stats{
			Code:        r.state.Code,
			Status:      r.state.Status,
			Players:     len(r.state.Players),
			CurrentGame: r.state.CurrentGame,
		})
		r.mu.Unlock()
	}
	return stats
}
