package app

import (
	"sync"
	"time"
)

// Notice is a user-facing error message. The set is closed; NoticeNone means
// nothing is shown.
type Notice string

// Notices shown by the application.
const (
	NoticeNone           Notice = ""
	NoticeEmptyTitle     Notice = "Title should not be empty"
	NoticeUnableToLoad   Notice = "Unable to load todos"
	NoticeUnableToAdd    Notice = "Unable to add a todo"
	NoticeUnableToDelete Notice = "Unable to delete a todo"
	NoticeUnableToUpdate Notice = "Unable to update a todo"
)

// String returns the message text.
func (n Notice) String() string {
	return string(n)
}

// Timer is the part of *time.Timer the notifier needs.
type Timer interface {
	Stop() bool
}

// AfterFunc schedules f after d. time.AfterFunc satisfies it once wrapped.
type AfterFunc func(d time.Duration, f func()) Timer

func timeAfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

// Notifier holds the current notice and clears it after a delay.
// Every Raise restarts the delay.
type Notifier struct {
	mu       sync.Mutex
	current  Notice
	delay    time.Duration
	after    AfterFunc
	timer    Timer
	gen      uint64
	onChange func(Notice)
}

// NewNotifier creates a notifier. A nil after uses real timers; onChange, if
// set, is called outside the lock whenever the notice changes.
func NewNotifier(delay time.Duration, after AfterFunc, onChange func(Notice)) *Notifier {
	if after == nil {
		after = timeAfterFunc
	}
	return &Notifier{
		delay:    delay,
		after:    after,
		onChange: onChange,
	}
}

// Current returns the notice being shown.
func (n *Notifier) Current() Notice {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.current
}

// Delay returns the auto-dismiss delay.
func (n *Notifier) Delay() time.Duration {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.delay
}

// SetDelay changes the auto-dismiss delay for future notices.
func (n *Notifier) SetDelay(d time.Duration) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.delay = d
}

// Raise shows notice and (re)starts the dismiss timer. A zero delay keeps the
// notice until it is dismissed.
func (n *Notifier) Raise(notice Notice) {
	if notice == NoticeNone {
		n.Dismiss()
		return
	}

	n.mu.Lock()
	n.stopLocked()
	n.gen++
	gen := n.gen
	n.current = notice
	if n.delay > 0 {
		n.timer = n.after(n.delay, func() { n.expire(gen) })
	}
	n.mu.Unlock()

	n.changed(notice)
}

// Dismiss hides the current notice. It reports whether one was showing.
func (n *Notifier) Dismiss() bool {
	n.mu.Lock()
	if n.current == NoticeNone {
		n.mu.Unlock()
		return false
	}
	n.stopLocked()
	n.gen++
	n.current = NoticeNone
	n.mu.Unlock()

	n.changed(NoticeNone)
	return true
}

// Stop cancels any pending timer without changing the notice.
func (n *Notifier) Stop() {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.stopLocked()
}

// expire clears the notice if no Raise or Dismiss happened since gen.
func (n *Notifier) expire(gen uint64) {
	n.mu.Lock()
	if n.gen != gen || n.current == NoticeNone {
		n.mu.Unlock()
		return
	}
	n.current = NoticeNone
	n.timer = nil
	n.mu.Unlock()

	n.changed(NoticeNone)
}

func (n *Notifier) stopLocked() {
	if n.timer != nil {
		n.timer.Stop()
		n.timer = nil
	}
}

func (n *Notifier) changed(notice Notice) {
	if n.onChange != nil {
		n.onChange(notice)
	}
}
