package broadcast

import (
	"sync"

	"typingracer/internal/events"
	"typingracer/internal/model"
)

// Sink receives every saved result. Sinks run on the broadcaster goroutine,
// one after another, so they must not block for long.
type Sink func(model.Result)

type Broadcaster struct {
	Mu    sync.Mutex
	Sinks map[string]Sink
}

// NewBroadcaster forwards every ResultSaved event on the bus to the
// registered sinks until the bus channel is closed.
func NewBroadcaster(bus *events.Bus) *Broadcaster {
	b := &Broadcaster{
		Sinks: make(map[string]Sink),
	}
	go func() {
		for ev := range bus.ResultsSaved {
			b.Dispatch(ev.Result)
		}
	}()
	return b
}

func (b *Broadcaster) Subscribe(name string, sink Sink) {
	b.Mu.Lock()
	b.Sinks[name] = sink
	b.Mu.Unlock()
}

func (b *Broadcaster) Unsubscribe(name string) {
	b.Mu.Lock()
	delete(b.Sinks, name)
	b.Mu.Unlock()
}

func (b *Broadcaster) Dispatch(r model.Result) {
	b.Mu.Lock()
	sinks := make([]Sink, 0, len(b.Sinks))
	for _, s := range b.Sinks {
		sinks = append(sinks, s)
	}
	b.Mu.Unlock()

	for _, s := range sinks {
		s(r)
	}
}
