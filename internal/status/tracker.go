package status

import (
	"sync"
	"time"

	"github.com/saulo-duarte/quizsolver/internal/attempt"
	"github.com/saulo-duarte/quizsolver/internal/discovery"
)

type State string

const (
	StateRunning   State = "RUNNING"
	StateSatisfied State = "SATISFIED"
)

type Snapshot struct {
	QuizID      string           `json:"quiz_id"`
	State       State            `json:"state"`
	Attempts    int              `json:"attempts"`
	Stats       discovery.Stats  `json:"stats"`
	LastAttempt *attempt.Summary `json:"last_attempt,omitempty"`
	UpdatedAt   time.Time        `json:"updated_at"`
}

// Tracker holds the latest progress snapshot for the status API. The run
// loop writes it; HTTP handlers read it.
type Tracker struct {
	mu   sync.RWMutex
	snap Snapshot
}

func NewTracker(quizID string) *Tracker {
	return &Tracker{snap: Snapshot{QuizID: quizID, State: StateRunning}}
}

// Publish records kb's progress. A nil summary keeps the previous one.
func (t *Tracker) Publish(kb *discovery.KnowledgeBase, summary *attempt.Summary) {
	if t == nil {
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()

	t.snap.QuizID = kb.QuizID
	t.snap.Attempts = len(kb.Attempts)
	t.snap.Stats = kb.Stats()
	t.snap.State = StateRunning
	if kb.IsSatisfied() {
		t.snap.State = StateSatisfied
	}
	if summary != nil {
		s := *summary
		t.snap.LastAttempt = &s
	}
	t.snap.UpdatedAt = time.Now()
}

func (t *Tracker) Snapshot() Snapshot {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.snap
}
