// Package scheduler provides cancellable delayed callbacks for mini-game
// phase transitions. Every task is tagged with the generation of the game
// instance that created it; cancelling a generation is how a superseded
// game's timers are prevented from firing into a newer game's state.
package scheduler

import (
	"container/heap"
	"sync"
	"time"
)

type Task struct {
	ID         int64
	Generation int64
	Execute    time.Time
	Callback   func()
	index      int
}

type taskQueue []*Task

func (q taskQueue) Len() int { return len(q) }

func (q taskQueue) Less(i, j int) bool {
	return q[i].Execute.Before(q[j].Execute)
}

func (q taskQueue) Swap(i, j int) {
	q[i], q[j] = q[j], q[i]
	q[i].index = i
	q[j].index = j
}

func (q *taskQueue) Push(x interface{}) {
	n := len(*q)
	task := x.(*Task)
	task.index = n
	*q = append(*q, task)
}

func (q *taskQueue) Pop() interface{} {
	old := *q
	n := len(old)
	task := old[n-1]
	task.index = -1
	*q = old[0 : n-1]
	return task
}

// Manager runs scheduled tasks off a single heap. Cancellation here is
// best-effort: a task already in flight can still fire, so callbacks must
// additionally check their own generation before touching state.
type Manager struct {
	queue    taskQueue
	mutex    sync.Mutex
	nextID   int64
	trigger  chan *Task
	stopChan chan struct{}
	stopOnce sync.Once
}

func NewManager() *Manager {
	m := &Manager{
		queue:    make(taskQueue, 0),
		trigger:  make(chan *Task, 1000),
		nextID:   1,
		stopChan: make(chan struct{}),
	}
	heap.Init(&m.queue)
	go m.process()
	return m
}

// Schedule queues callback to run after delay, tagged with gen.
func (m *Manager) Schedule(gen int64, delay time.Duration, callback func()) int64 {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	task := &Task{
		ID:         m.nextID,
		Generation: gen,
		Execute:    time.Now().Add(delay),
		Callback:   callback,
	}
	m.nextID++

	heap.Push(&m.queue, task)
	return task.ID
}

// Cancel removes a single pending task.
func (m *Manager) Cancel(taskID int64) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	for i, task := range m.queue {
		if task.ID == taskID {
			heap.Remove(&m.queue, i)
			break
		}
	}
}

// CancelGeneration removes every pending task belonging to gen.
func (m *Manager) CancelGeneration(gen int64) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	kept := make(taskQueue, 0, len(m.queue))
	for _, task := range m.queue {
		if task.Generation != gen {
			kept = append(kept, task)
		}
	}
	m.queue = kept
	heap.Init(&m.queue)
}

// Pending returns the number of queued tasks.
func (m *Manager) Pending() int {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	return m.queue.Len()
}

func (m *Manager) Stop() {
	m.stopOnce.Do(func() {
		close(m.stopChan)
	})
}

func (m *Manager) process() {
	ticker := time.NewTicker(10 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-m.stopChan:
			return

		case <-ticker.C:
			m.mutex.Lock()
			now := time.Now()
			for m.queue.Len() > 0 {
				task := m.queue[0]
				if task.Execute.After(now) {
					break
				}
				heap.Pop(&m.queue)
				m.trigger <- task
			}
			m.mutex.Unlock()

		case task := <-m.trigger:
			go task.Callback()
		}
	}
}
