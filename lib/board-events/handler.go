package boardevents

import (
	"context"
	"encoding/json"
	wsmodels "hr-pipeline-backend/models/ws"
	"time"

	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"
)

// Channel - канал redis для рассылки событий между экземплярами сервиса
const Channel = "pipeline:board-events"

type Provider interface {
	Publish(ctx context.Context, event wsmodels.BoardEvent)
	Subscribe(jobID string, subscriber Subscriber) (unsubscribe func())
	SubscriberCount(jobID string) int
	Run(ctx context.Context)
}

var Instance Provider

// NewHandler - без redis события доставляются только подписчикам этого экземпляра
func NewHandler(client *redis.Client) {
	Instance = New(client)
}

func New(client *redis.Client) Provider {
	return &impl{
		client: client,
		hub:    newHub(),
	}
}

type impl struct {
	client *redis.Client
	hub    *hub
}

func (i *impl) Publish(ctx context.Context, event wsmodels.BoardEvent) {
	if event.Time == "" {
		event.Time = time.Now().Format(wsmodels.TimeFormat)
	}
	logger := log.
		WithField("job_id", event.JobID).
		WithField("code", event.Code)
	if i.client == nil {
		i.hub.broadcast(event)
		return
	}
	body, err := json.Marshal(event)
	if err != nil {
		logger.WithError(err).Error("ошибка сериализации события доски")
		return
	}
	if err = i.client.Publish(ctx, Channel, body).Err(); err != nil {
		logger.WithError(err).Error("ошибка публикации события доски в redis, событие доставлено только локальным подписчикам")
		i.hub.broadcast(event)
	}
}

func (i *impl) Subscribe(jobID string, subscriber Subscriber) (unsubscribe func()) {
	return i.hub.subscribe(jobID, subscriber)
}

func (i *impl) SubscriberCount(jobID string) int {
	return i.hub.count(jobID)
}

// Run пересылает события из redis локальным подписчикам до завершения контекста
func (i *impl) Run(ctx context.Context) {
	if i.client == nil {
		return
	}
	pubsub := i.client.Subscribe(ctx, Channel)
	defer func() {
		if err := pubsub.Close(); err != nil {
			log.WithError(err).Warn("ошибка закрытия подписки redis")
		}
	}()
	if _, err := pubsub.Receive(ctx); err != nil {
		log.WithError(err).Error("ошибка подписки на события доски в redis")
		return
	}
	log.WithField("channel", Channel).Info("подписка на события доски запущена")
	ch := pubsub.Channel()
	for {
		select {
		case <-ctx.Done():
			return
		case msg, opened := <-ch:
			if !opened {
				return
			}
			event := wsmodels.BoardEvent{}
			if err := json.Unmarshal([]byte(msg.Payload), &event); err != nil {
				log.WithError(err).Warn("получено некорректное событие доски")
				continue
			}
			i.hub.broadcast(event)
		}
	}
}
