package notify

import (
	"errors"
	"sync"
	"time"

	"github.com/gammazero/deque"
	"github.com/google/uuid"
	"gitlab.com/TitanInd/crowdfund-client/internal/interfaces"
	"gitlab.com/TitanInd/crowdfund-client/internal/lib"
)

type Alert struct {
	ID        uuid.UUID      `json:"id"`
	Message   string         `json:"message"`
	Level     lib.AlertLevel `json:"level"`
	CreatedAt time.Time      `json:"createdAt"`
}

// Notifier keeps the transient alerts shown to the user. Alerts disappear after
// the dismiss delay, the oldest one is dropped when the queue is full.
type Notifier struct {
	// config
	dismissDelay time.Duration
	cap          int

	// state
	alerts *deque.Deque[Alert]
	mutex  sync.Mutex

	// deps
	now func() time.Time
	log interfaces.ILogger
}

func NewNotifier(dismissDelay time.Duration, cap int, log interfaces.ILogger) *Notifier {
	if cap < 1 {
		cap = 1
	}
	return &Notifier{
		dismissDelay: dismissDelay,
		cap:          cap,
		alerts:       deque.New[Alert](cap),
		now:          time.Now,
		log:          log,
	}
}

// SetClock overrides the time source, used in tests
func (n *Notifier) SetClock(now func() time.Time) {
	n.now = now
}

func (n *Notifier) DismissDelay() time.Duration {
	return n.dismissDelay
}

func (n *Notifier) Push(level lib.AlertLevel, message string) Alert {
	n.mutex.Lock()
	defer n.mutex.Unlock()

	// stamped under the lock so the queue stays ordered by creation time
	alert := Alert{
		ID:        uuid.New(),
		Message:   message,
		Level:     level,
		CreatedAt: n.now(),
	}

	if n.alerts.Len() >= n.cap {
		n.alerts.PopFront()
	}
	n.alerts.PushBack(alert)

	switch level {
	case lib.AlertDanger:
		n.log.Warnf("alert: %s", message)
	default:
		n.log.Debugf("alert %s: %s", level, message)
	}
	return alert
}

// Error reports err with the level that matches its kind. Remote failures show the underlying message.
func (n *Notifier) Error(prefix string, err error) Alert {
	msg := err.Error()
	var remoteErr *lib.RemoteCallError
	if errors.As(err, &remoteErr) {
		msg = remoteErr.Message()
	}
	if prefix != "" {
		msg = prefix + ": " + msg
	}
	return n.Push(lib.AlertLevelFor(err), msg)
}

// Active evicts dismissed alerts and returns the rest, oldest first
func (n *Notifier) Active() []Alert {
	n.mutex.Lock()
	defer n.mutex.Unlock()

	now := n.now()
	for n.alerts.Len() > 0 && now.Sub(n.alerts.Front().CreatedAt) >= n.dismissDelay {
		n.alerts.PopFront()
	}

	active := make([]Alert, n.alerts.Len())
	for i := range active {
		active[i] = n.alerts.At(i)
	}
	return active
}

// Dismiss hides the alert before its delay elapses
func (n *Notifier) Dismiss(id uuid.UUID) bool {
	n.mutex.Lock()
	defer n.mutex.Unlock()

	found := false
	for i, size := 0, n.alerts.Len(); i < size; i++ {
		alert := n.alerts.PopFront()
		if alert.ID == id {
			found = true
			continue
		}
		n.alerts.PushBack(alert)
	}
	return found
}
