package server

import (
	"encoding/json"
	"sync"
)

// Game event types published on the SSE stream.
const (
	EventAnswerGraded = "answer_graded"
	EventSpecialTile  = "special_event"
	EventWinner       = "winner"
)

// GameEvent is the payload published to scoreboard subscribers, e.g. a
// projector screen following the game.
type GameEvent struct {
	Type       string `json:"type"`
	Player     string `json:"player,omitempty"`
	QuestionID string `json:"questionId,omitempty"`
	Score      int    `json:"score,omitempty"`
	Total      int    `json:"total,omitempty"`
	Message    string `json:"message,omitempty"`
}

// Broker is an in-process pub/sub for SSE events. The game has a single
// shared scoreboard, so every subscriber sees every event.
type Broker struct {
	mu   sync.RWMutex
	subs map[chan []byte]struct{}
}

func NewBroker() *Broker {
	return &Broker{
		subs: make(map[chan []byte]struct{}),
	}
}

// Subscribe returns a channel that receives JSON-encoded game events.
func (b *Broker) Subscribe() chan []byte {
	ch := make(chan []byte, 16)
	b.mu.Lock()
	b.subs[ch] = struct{}{}
	b.mu.Unlock()
	return ch
}

// Unsubscribe removes a channel from the subscriber set.
func (b *Broker) Unsubscribe(ch chan []byte) {
	b.mu.Lock()
	delete(b.subs, ch)
	b.mu.Unlock()
}

// Publish sends an event to all subscribers.
func (b *Broker) Publish(event GameEvent) {
	data, _ := json.Marshal(event)
	b.mu.RLock()
	for ch := range b.subs {
		select {
		case ch <- data:
		default:
			// Drop if subscriber is slow.
		}
	}
	b.mu.RUnlock()
}
