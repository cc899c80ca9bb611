package wshub

import (
	"encoding/json"
	"testing"
	"time"

	"typingracer/internal/model"
)

func TestRegisterAndBroadcast(t *testing.T) {
	h := NewHub()

	c1 := &Client{ID: "c1", Send: make(chan []byte, 16)}
	c2 := &Client{ID: "c2", Send: make(chan []byte, 16)}

	h.Register(c1)
	h.Register(c2)

	if h.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", h.Len())
	}

	user := "alice"
	h.PublishResult(model.Result{ResultID: "r-1", UserID: &user, WPM: 55})

	for _, c := range []*Client{c1, c2} {
		select {
		case data := <-c.Send:
			var got ServerMessage
			if err := json.Unmarshal(data, &got); err != nil {
				t.Fatalf("unmarshal: %v", err)
			}
			if got.Type != "result" || got.Result == nil {
				t.Fatalf("unexpected message: %s", data)
			}
			if got.Result.ResultID != "r-1" || got.Result.WPM != 55 || got.Result.Owner() != "alice" {
				t.Fatalf("unexpected result: %+v", got.Result)
			}
		case <-time.After(100 * time.Millisecond):
			t.Fatalf("%s did not receive message", c.ID)
		}
	}
}

func TestUnregisterClosesSend(t *testing.T) {
	h := NewHub()

	c1 := &Client{ID: "c1", Send: make(chan []byte, 16)}
	c2 := &Client{ID: "c2", Send: make(chan []byte, 16)}
	h.Register(c1)
	h.Register(c2)

	h.Unregister("c1")

	if h.Len() != 1 {
		t.Errorf("Len() = %d, want 1", h.Len())
	}

	// c1's Send channel should be closed
	_, ok := <-c1.Send
	if ok {
		t.Fatal("c1.Send should be closed")
	}

	h.PublishResult(model.Result{ResultID: "r-2"})
	select {
	case <-c2.Send:
	case <-time.After(100 * time.Millisecond):
		t.Fatal("c2 did not receive message after c1 left")
	}
}

func TestUnregisterNonexistent(t *testing.T) {
	h := NewHub()
	// Should not panic
	h.Unregister("nonexistent")
}

func TestBroadcastDropsWhenFull(t *testing.T) {
	h := NewHub()

	// Channel with capacity 1
	c := &Client{ID: "c1", Send: make(chan []byte, 1)}
	h.Register(c)

	// Fill the channel
	c.Send <- []byte("filler")

	// Should not block, the message is dropped
	h.PublishResult(model.Result{ResultID: "dropped"})

	// Only the filler should be in the channel
	data := <-c.Send
	if string(data) != "filler" {
		t.Fatalf("expected filler, got: %s", data)
	}

	select {
	case <-c.Send:
		t.Fatal("should be empty after draining filler")
	default:
		// expected
	}
}
