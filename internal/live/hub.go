package live

import (
	"context"
	"sync"
)

// Hub is an in-process Notifier for single-instance deployments.
type Hub struct {
	mu   sync.Mutex
	subs map[int64]map[*hubSub]struct{}
}

func NewHub() *Hub {
	return &Hub{subs: make(map[int64]map[*hubSub]struct{})}
}

func (h *Hub) Publish(_ context.Context, interviewID int64) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	for s := range h.subs[interviewID] {
		signal(s.ch)
	}
	return nil
}

func (h *Hub) Subscribe(_ context.Context, interviewID int64) (Subscription, error) {
	s := &hubSub{hub: h, interviewID: interviewID, ch: make(chan struct{}, 1)}
	h.mu.Lock()
	if h.subs[interviewID] == nil {
		h.subs[interviewID] = make(map[*hubSub]struct{})
	}
	h.subs[interviewID][s] = struct{}{}
	h.mu.Unlock()
	return s, nil
}

// Subscribers returns the number of open subscriptions for an interview.
func (h *Hub) Subscribers(interviewID int64) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subs[interviewID])
}

func (h *Hub) remove(s *hubSub) {
	h.mu.Lock()
	defer h.mu.Unlock()
	set := h.subs[s.interviewID]
	delete(set, s)
	if len(set) == 0 {
		delete(h.subs, s.interviewID)
	}
}

type hubSub struct {
	hub         *Hub
	interviewID int64
	ch          chan struct{}
	once        sync.Once
}

func (s *hubSub) C() <-chan struct{} { return s.ch }

func (s *hubSub) Close() error {
	s.once.Do(func() { s.hub.remove(s) })
	return nil
}
