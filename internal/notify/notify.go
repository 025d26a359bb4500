// Package notify delivers transient toast notifications to the user.
//
// Delivery is fire-and-forget: Notify never returns an error and never blocks
// the submission that triggered it.
package notify

import (
	"context"
	"sync"
)

type Icon string

const (
	IconSuccess Icon = "success"
	IconError   Icon = "error"
	IconInfo    Icon = "info"
)

// SuccessTimerMS is how long a success toast stays visible.
const SuccessTimerMS = 1500

type Notification struct {
	Icon    Icon   `json:"icon"`
	Title   string `json:"title"`
	Text    string `json:"text,omitempty"`
	TimerMS int    `json:"timer,omitempty"`
}

func Success(title string) Notification {
	return Notification{Icon: IconSuccess, Title: title, TimerMS: SuccessTimerMS}
}

func Failure(title, text string) Notification {
	return Notification{Icon: IconError, Title: title, Text: text}
}

// Notifier is the notification surface a workflow reports to.
type Notifier interface {
	Notify(ctx context.Context, userID int64, n Notification)
}

// Collector keeps the notifications of one request so the page can render them.
type Collector struct {
	mu    sync.Mutex
	items []Notification
}

func NewCollector() *Collector {
	return &Collector{}
}

func (c *Collector) Notify(_ context.Context, _ int64, n Notification) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = append(c.items, n)
}

// Drain returns the collected notifications and empties the collector.
func (c *Collector) Drain() []Notification {
	c.mu.Lock()
	defer c.mu.Unlock()
	items := c.items
	c.items = nil
	return items
}

// Fanout forwards every notification to all of its notifiers.
type Fanout []Notifier

func (f Fanout) Notify(ctx context.Context, userID int64, n Notification) {
	for _, notifier := range f {
		if notifier != nil {
			notifier.Notify(ctx, userID, n)
		}
	}
}

// Nop discards notifications.
type Nop struct{}

func (Nop) Notify(context.Context, int64, Notification) {}
