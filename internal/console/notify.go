package console

import (
	"sync"
	"time"
)

// noticeTTL is how long a transient notice stays on the status bar.
const noticeTTL = 4 * time.Second

// NoticeLevel distinguishes success from error notices.
type NoticeLevel int

const (
	NoticeSuccess NoticeLevel = iota
	NoticeError
)

// Notice is one transient status-bar message.
type Notice struct {
	Level   NoticeLevel
	Message string
	At      time.Time
}

// Notices collects transient messages for the status bar. It satisfies
// auth.Notifier and is safe for concurrent use: mutations run on
// command goroutines while the view reads on the update loop.
type Notices struct {
	mu      sync.Mutex
	entries []Notice
	now     func() time.Time
}

// NewNotices creates an empty notice list.
func NewNotices() *Notices {
	return &Notices{now: time.Now}
}

// Success records a success notice.
func (n *Notices) Success(message string) { n.add(NoticeSuccess, message) }

// Error records an error notice.
func (n *Notices) Error(message string) { n.add(NoticeError, message) }

func (n *Notices) add(level NoticeLevel, message string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.entries = append(n.entries, Notice{Level: level, Message: message, At: n.now()})
}

// Active returns the notices still within their display window,
// dropping expired ones as a side effect.
func (n *Notices) Active() []Notice {
	n.mu.Lock()
	defer n.mu.Unlock()
	cutoff := n.now().Add(-noticeTTL)
	kept := n.entries[:0]
	for _, entry := range n.entries {
		if entry.At.After(cutoff) {
			kept = append(kept, entry)
		}
	}
	n.entries = kept
	out := make([]Notice, len(kept))
	copy(out, kept)
	return out
}
