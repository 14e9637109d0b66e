package service

import (
	"sync"

	"github.com/YanisseIsmaili/github-monitor/internal/domain"
)

// EventBus broadcasts refresh completions to presentation subscribers.
// Slow subscribers are skipped rather than blocking the refresh path.
type EventBus struct {
	mu   sync.RWMutex
	subs []chan domain.RefreshEvent
}

func NewEventBus() *EventBus {
	return &EventBus{}
}

func (b *EventBus) Publish(evt domain.RefreshEvent) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	for _, ch := range b.subs {
		select {
		case ch <- evt:
		default:
		}
	}
}

func (b *EventBus) Subscribe() chan domain.RefreshEvent {
	b.mu.Lock()
	defer b.mu.Unlock()
	ch := make(chan domain.RefreshEvent, 10)
	b.subs = append(b.subs, ch)
	return ch
}

func (b *EventBus) Unsubscribe(ch chan domain.RefreshEvent) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for i, s := range b.subs {
		if s == ch {
			b.subs = append(b.subs[:i], b.subs[i+1:]...)
			break
		}
	}
	close(ch)
}
