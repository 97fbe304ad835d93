package tui

import (
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/abdimannabov/CoinFlip/internal/domain"
)

// SnapshotMsg carries a sequencer state change into the program.
type SnapshotMsg domain.Snapshot

// Listener is a ports.Observer that hands snapshots to a bubbletea program.
// Publish never blocks: when the buffer is full the oldest snapshot is
// dropped, since each snapshot holds the full state.
type Listener struct {
	ch        chan domain.Snapshot
	done      chan struct{}
	closeOnce sync.Once
}

func NewListener(buffer int) *Listener {
	if buffer < 1 {
		buffer = 1
	}
	return &Listener{
		ch:   make(chan domain.Snapshot, buffer),
		done: make(chan struct{}),
	}
}

func (l *Listener) Publish(s domain.Snapshot) {
	for {
		select {
		case l.ch <- s:
			return
		default:
		}
		select {
		case <-l.ch:
		default:
		}
	}
}

// Listen waits for the next snapshot. It yields nil once the listener is
// closed.
func (l *Listener) Listen() tea.Cmd {
	return func() tea.Msg {
		select {
		case s := <-l.ch:
			return SnapshotMsg(s)
		case <-l.done:
			return nil
		}
	}
}

func (l *Listener) Close() {
	l.closeOnce.Do(func() { close(l.done) })
}
