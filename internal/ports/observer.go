package ports

import "github.com/abdimannabov/CoinFlip/internal/domain"

// Observer receives every state change of a flip sequencer, in order.
// Publish is called synchronously and must not block or call back into
// the sequencer.
type Observer interface {
	Publish(s domain.Snapshot)
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc func(domain.Snapshot)

func (f ObserverFunc) Publish(s domain.Snapshot) { f(s) }
