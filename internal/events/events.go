package events

import "typingracer/internal/model"

type ResultSaved struct {
	Result model.Result
}

type Bus struct {
	ResultsSaved chan ResultSaved
}

func NewBus() *Bus {
	return &Bus{
		ResultsSaved: make(chan ResultSaved, 64),
	}
}

// PublishResult queues a saved result without blocking. It reports false when
// the buffer is full and the event was dropped.
func (b *Bus) PublishResult(r model.Result) bool {
	select {
	case b.ResultsSaved <- ResultSaved{Result: r}:
		return true
	default:
		return false
	}
}
