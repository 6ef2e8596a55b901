package boardevents

import (
	"context"
	wsmodels "hr-pipeline-backend/models/ws"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

type collector struct {
	mu     sync.Mutex
	events []wsmodels.BoardEvent
}

func (c *collector) Send(event wsmodels.BoardEvent) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.events = append(c.events, event)
}

func (c *collector) list() []wsmodels.BoardEvent {
	c.mu.Lock()
	defer c.mu.Unlock()
	result := make([]wsmodels.BoardEvent, len(c.events))
	copy(result, c.events)
	return result
}

func TestLocalHub(t *testing.T) {
	provider := New(nil)
	first := &collector{}
	second := &collector{}
	unsubscribe := provider.Subscribe("job-1", first)
	provider.Subscribe("job-2", second)
	require.Equal(t, 1, provider.SubscriberCount("job-1"))

	provider.Publish(context.Background(), wsmodels.BoardEvent{JobID: "job-1", Code: wsmodels.EventCandidateHired, ApplicationID: "app-1"})
	require.Len(t, first.list(), 1)
	require.Equal(t, wsmodels.EventCandidateHired, first.list()[0].Code)
	require.NotEmpty(t, first.list()[0].Time)
	require.Empty(t, second.list())

	unsubscribe()
	require.Zero(t, provider.SubscriberCount("job-1"))
	provider.Publish(context.Background(), wsmodels.BoardEvent{JobID: "job-1", Code: wsmodels.EventCandidateMoved})
	require.Len(t, first.list(), 1)
}

func TestRedisBus(t *testing.T) {
	server := miniredis.RunT(t)
	newClient := func() *redis.Client {
		client := redis.NewClient(&redis.Options{Addr: server.Addr()})
		t.Cleanup(func() { _ = client.Close() })
		return client
	}
	publisher := New(newClient())
	receiver := New(newClient())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go receiver.Run(ctx)

	sub := &collector{}
	receiver.Subscribe("job-1", sub)
	require.Eventually(t, func() bool {
		return server.PubSubNumSub(Channel)[Channel] > 0
	}, time.Second*2, time.Millisecond*10)

	publisher.Publish(ctx, wsmodels.BoardEvent{
		JobID:         "job-1",
		Code:          wsmodels.EventCandidateHired,
		ApplicationID: "app-1",
		StageID:       "stage-1",
		StageName:     "Hired",
	})

	require.Eventually(t, func() bool {
		return len(sub.list()) == 1
	}, time.Second*2, time.Millisecond*10)
	event := sub.list()[0]
	require.Equal(t, "app-1", event.ApplicationID)
	require.Equal(t, "Hired", event.StageName)
}
