package boardevents

import (
	wsmodels "hr-pipeline-backend/models/ws"
	"sync"
)

// Subscriber - получатель событий доски вакансии (websocket сессия)
type Subscriber interface {
	Send(event wsmodels.BoardEvent)
}

type hub struct {
	mu          sync.RWMutex
	subscribers map[string]map[int]Subscriber // map[jobID]map[subscriptionID]
	nextID      int
}

func newHub() *hub {
	return &hub{
		subscribers: map[string]map[int]Subscriber{},
	}
}

func (h *hub) subscribe(jobID string, subscriber Subscriber) (unsubscribe func()) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.nextID++
	id := h.nextID
	if _, ok := h.subscribers[jobID]; !ok {
		h.subscribers[jobID] = map[int]Subscriber{}
	}
	h.subscribers[jobID][id] = subscriber
	return func() {
		h.mu.Lock()
		defer h.mu.Unlock()
		delete(h.subscribers[jobID], id)
		if len(h.subscribers[jobID]) == 0 {
			delete(h.subscribers, jobID)
		}
	}
}

func (h *hub) broadcast(event wsmodels.BoardEvent) {
	h.mu.RLock()
	list := make([]Subscriber, 0, len(h.subscribers[event.JobID]))
	for _, subscriber := range h.subscribers[event.JobID] {
		list = append(list, subscriber)
	}
	h.mu.RUnlock()
	for _, subscriber := range list {
		subscriber.Send(event)
	}
}

func (h *hub) count(jobID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subscribers[jobID])
}
