package usecase

import (
	"context"
	"fmt"

	"github.com/jhoicas/gymdesk-api/internal/application/ports"
	"github.com/jhoicas/gymdesk-api/pkg/logger"
)

// watch abre una suscripción al tópico, publica la primera instantánea y vuelve a cargar
// la colección completa con cada aviso. Si la primera carga falla se devuelve el error y no
// queda nada abierto. Una recarga fallida se registra y la instantánea anterior sigue vigente.
// La suscripción vive hasta que se cancela ctx; en ese momento se cierra el canal.
func watch[T any](
	ctx context.Context,
	feed ports.ChangeFeed,
	topic string,
	load func(context.Context) (T, error),
	log *logger.Logger,
) (<-chan T, error) {
	subCtx, cancel := context.WithCancel(ctx)
	// Suscribirse antes de la primera carga: un cambio entre ambas no se pierde.
	changes, err := feed.Subscribe(subCtx, topic)
	if err != nil {
		cancel()
		return nil, fmt.Errorf("suscribir %s: %w", topic, err)
	}
	first, err := load(subCtx)
	if err != nil {
		cancel()
		return nil, err
	}

	out := make(chan T, 1)
	out <- first
	go func() {
		defer close(out)
		defer cancel()
		for {
			select {
			case <-subCtx.Done():
				return
			case _, ok := <-changes:
				if !ok {
					return
				}
				snap, err := load(subCtx)
				if err != nil {
					if subCtx.Err() != nil {
						return
					}
					log.Warn().Err(err).Str("topic", topic).Msg("recarga fallida, se mantiene la instantánea anterior")
					continue
				}
				select {
				case out <- snap:
				case <-subCtx.Done():
					return
				}
			}
		}
	}()
	return out, nil
}

// notify publica un aviso de cambio. La escritura ya quedó hecha: un fallo del aviso se registra
// y los suscriptores verán el cambio con el siguiente aviso.
func notify(ctx context.Context, feed ports.ChangeFeed, topic string, log *logger.Logger) {
	if err := feed.Publish(ctx, topic); err != nil {
		log.Warn().Err(err).Str("topic", topic).Msg("no se pudo publicar el aviso de cambio")
	}
}
