package feed

import (
	"context"
	"fmt"

	"github.com/go-redis/redis/v8"

	"github.com/jhoicas/gymdesk-api/internal/application/ports"
	"github.com/jhoicas/gymdesk-api/pkg/config"
	"github.com/jhoicas/gymdesk-api/pkg/logger"
)

var _ ports.ChangeFeed = (*Redis)(nil)

// channelPrefix separa los canales de la API de otros usos de la misma instancia de Redis.
const channelPrefix = "gymdesk:"

// Redis feed sobre Redis pub/sub. Los avisos llegan a todas las instancias de la API.
type Redis struct {
	client *redis.Client
	log    *logger.Logger
}

// NewRedisClient crea el cliente y verifica la conexión.
func NewRedisClient(ctx context.Context, cfg config.RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return client, nil
}

// NewRedis construye el feed sobre un cliente ya conectado.
func NewRedis(client *redis.Client, log *logger.Logger) *Redis {
	if log == nil {
		log = logger.Nop()
	}
	return &Redis{client: client, log: log}
}

// Publish publica un aviso en el canal del tópico.
func (r *Redis) Publish(ctx context.Context, topic string) error {
	if err := r.client.Publish(ctx, channelPrefix+topic, "changed").Err(); err != nil {
		return fmt.Errorf("publish %s: %w", topic, err)
	}
	return nil
}

// Subscribe se suscribe al canal del tópico. La suscripción se cierra cuando ctx se cancela.
func (r *Redis) Subscribe(ctx context.Context, topic string) (<-chan struct{}, error) {
	ps := r.client.Subscribe(ctx, channelPrefix+topic)
	// Receive confirma la suscripción antes de devolver el canal.
	if _, err := ps.Receive(ctx); err != nil {
		_ = ps.Close()
		return nil, fmt.Errorf("subscribe %s: %w", topic, err)
	}

	out := make(chan struct{}, 1)
	msgs := ps.Channel()
	go func() {
		defer close(out)
		defer func() {
			if err := ps.Close(); err != nil {
				r.log.Debug().Err(err).Str("topic", topic).Msg("cerrar suscripción redis")
			}
		}()
		for {
			select {
			case <-ctx.Done():
				return
			case _, ok := <-msgs:
				if !ok {
					return
				}
				select {
				case out <- struct{}{}:
				default:
				}
			}
		}
	}()
	return out, nil
}

// Close cierra el cliente.
func (r *Redis) Close() error {
	return r.client.Close()
}
