package notify

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Severity indicates the importance of a notice.
type Severity string

const (
	SeverityInfo    Severity = "info"
	SeveritySuccess Severity = "success"
	SeverityWarning Severity = "warning"
	SeverityError   Severity = "error"
)

// dismissDelays control how long the presentation layer should keep a
// notice on screen before auto-dismissing it. Errors linger longest.
var dismissDelays = map[Severity]time.Duration{
	SeverityInfo:    3 * time.Second,
	SeveritySuccess: 3 * time.Second,
	SeverityWarning: 5 * time.Second,
	SeverityError:   8 * time.Second,
}

// Notice is a single transient status message for the presentation layer.
type Notice struct {
	ID           string        `json:"id"`
	Message      string        `json:"message"`
	Severity     Severity      `json:"severity"`
	CreatedAt    time.Time     `json:"created_at"`
	DismissAfter time.Duration `json:"dismiss_after_ms"`
}

// subscriberBuffer is the per-subscriber channel capacity. A subscriber
// that stops draining loses notices rather than blocking publishers.
const subscriberBuffer = 16

// Channel is the single sink for user-visible status. Publishing never
// blocks and never fails; with no subscribers attached, Notify is a no-op.
type Channel struct {
	mu   sync.Mutex
	subs map[int]chan Notice
	next int
}

// NewChannel creates a Channel with no subscribers.
func NewChannel() *Channel {
	return &Channel{subs: make(map[int]chan Notice)}
}

// Notify publishes a notice to all current subscribers.
func (c *Channel) Notify(message string, severity Severity) {
	n := Notice{
		ID:           uuid.NewString(),
		Message:      message,
		Severity:     severity,
		CreatedAt:    time.Now().UTC(),
		DismissAfter: dismissDelays[severity],
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	for _, ch := range c.subs {
		select {
		case ch <- n:
		default:
			// Subscriber is not keeping up; drop rather than block.
		}
	}
}

// Subscribe registers a new listener. The returned cancel function removes
// the listener and closes its channel; it is safe to call more than once.
func (c *Channel) Subscribe() (<-chan Notice, func()) {
	c.mu.Lock()
	defer c.mu.Unlock()

	id := c.next
	c.next++
	ch := make(chan Notice, subscriberBuffer)
	c.subs[id] = ch

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			c.mu.Lock()
			defer c.mu.Unlock()
			delete(c.subs, id)
			close(ch)
		})
	}
	return ch, cancel
}

// Notifier is the publishing side of the channel, accepted by components
// that only emit notices.
type Notifier interface {
	Notify(message string, severity Severity)
}
