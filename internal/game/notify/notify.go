// Package notify carries the timed on-screen messages a battle produces.
package notify

import "time"

// Sink receives timed messages. Only the most recent message is displayed.
type Sink interface {
	Notify(text string, d time.Duration)
}

// Message is a single timed notification.
type Message struct {
	Text     string
	Duration time.Duration
}

// Queue is a Sink that displays the newest message until its time runs out and
// keeps every message it has seen in History.
type Queue struct {
	current   Message
	remaining time.Duration
	history   []Message
}

// NewQueue returns an empty Queue.
func NewQueue() *Queue {
	return &Queue{}
}

// Notify replaces the displayed message.
func (q *Queue) Notify(text string, d time.Duration) {
	m := Message{Text: text, Duration: d}
	q.current = m
	q.remaining = d
	q.history = append(q.history, m)
}

// Update advances the display countdown by delta.
func (q *Queue) Update(delta time.Duration) {
	if q.remaining <= 0 {
		return
	}
	q.remaining -= delta
	if q.remaining <= 0 {
		q.remaining = 0
		q.current = Message{}
	}
}

// Current returns the message on display, if any.
func (q *Queue) Current() (Message, bool) {
	if q.remaining <= 0 {
		return Message{}, false
	}
	return q.current, true
}

// History returns a copy of every message received, oldest first.
func (q *Queue) History() []Message {
	return append([]Message(nil), q.history...)
}

// Texts returns the text of every message received, oldest first.
func (q *Queue) Texts() []string {
	out := make([]string, len(q.history))
	for i, m := range q.history {
		out[i] = m.Text
	}
	return out
}

// Discard is a Sink that drops every message.
type Discard struct{}

// Notify drops the message.
func (Discard) Notify(string, time.Duration) {}
