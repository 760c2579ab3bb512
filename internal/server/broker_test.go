package server

import (
	"encoding/json"
	"testing"
)

func TestBrokerPublishReachesAllSubscribers(t *testing.T) {
	b := NewBroker()
	ch1 := b.Subscribe()
	ch2 := b.Subscribe()

	b.Publish(GameEvent{Type: EventAnswerGraded, Player: "Alice", Score: 8, Total: 13})

	for _, ch := range []chan []byte{ch1, ch2} {
		select {
		case data := <-ch:
			var ev GameEvent
			if err := json.Unmarshal(data, &ev); err != nil {
				t.Fatalf("unmarshal event: %v", err)
			}
			if ev.Type != EventAnswerGraded || ev.Total != 13 {
				t.Errorf("event = %+v", ev)
			}
		default:
			t.Fatal("subscriber did not receive the event")
		}
	}
}

func TestBrokerUnsubscribe(t *testing.T) {
	b := NewBroker()
	ch := b.Subscribe()
	b.Unsubscribe(ch)

	b.Publish(GameEvent{Type: EventWinner})

	select {
	case <-ch:
		t.Fatal("unsubscribed channel received an event")
	default:
	}
}

func TestBrokerDropsWhenSubscriberIsSlow(t *testing.T) {
	b := NewBroker()
	ch := b.Subscribe()

	// Fill the buffer past capacity; Publish must not block.
	for range 32 {
		b.Publish(GameEvent{Type: EventAnswerGraded})
	}

	if len(ch) != cap(ch) {
		t.Errorf("buffered = %d, want full buffer %d", len(ch), cap(ch))
	}
}
