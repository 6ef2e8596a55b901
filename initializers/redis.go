package initializers

import (
	"context"
	"hr-pipeline-backend/config"
	"time"

	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"
)

// InitRedis - без адреса возвращает nil, события доски не выходят за пределы экземпляра
func InitRedis(ctx context.Context) *redis.Client {
	if config.Conf.Redis.Address == "" {
		log.Info("Redis не настроен, события доски рассылаются внутри экземпляра")
		return nil
	}
	client := redis.NewClient(&redis.Options{
		Addr:     config.Conf.Redis.Address,
		Password: config.Conf.Redis.Password,
		DB:       config.Conf.Redis.DB,
	})
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		log.WithError(err).Error("Redis соединение не удалось, события доски рассылаются внутри экземпляра")
		_ = client.Close()
		return nil
	}
	log.Info("Redis клиент успешно инициализирован")
	return client
}
