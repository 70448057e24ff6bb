package usecase

import (
	"context"
	"sync"
	"time"

	"github.com/jhoicas/gymdesk-api/internal/domain/repository"
	"github.com/jhoicas/gymdesk-api/pkg/logger"
)

// ZoneResolver resuelve la zona horaria de cada dueño para calcular "hoy".
// Si el dueño no tiene zona o la zona no es válida, se usa la de la aplicación.
type ZoneResolver struct {
	owners   repository.OwnerRepository
	fallback *time.Location
	log      *logger.Logger

	mu    sync.RWMutex
	cache map[string]*time.Location
}

// NewZoneResolver construye el resolver. owners puede ser nil (siempre fallback).
func NewZoneResolver(owners repository.OwnerRepository, fallback *time.Location, log *logger.Logger) *ZoneResolver {
	if fallback == nil {
		fallback = time.UTC
	}
	if log == nil {
		log = logger.Nop()
	}
	return &ZoneResolver{owners: owners, fallback: fallback, log: log, cache: make(map[string]*time.Location)}
}

// LoadLocation interpreta una zona IANA; vacía o inválida devuelve fallback.
func LoadLocation(tz string, fallback *time.Location) *time.Location {
	if tz == "" {
		return fallback
	}
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return fallback
	}
	return loc
}

// Location devuelve la zona del dueño. Un error de lectura no se cachea.
func (z *ZoneResolver) Location(ctx context.Context, ownerID string) *time.Location {
	z.mu.RLock()
	loc, ok := z.cache[ownerID]
	z.mu.RUnlock()
	if ok {
		return loc
	}
	if z.owners == nil {
		return z.fallback
	}
	owner, err := z.owners.GetByID(ctx, ownerID)
	if err != nil {
		z.log.Warn().Err(err).Str("owner_id", ownerID).Msg("zona horaria: no se pudo leer la cuenta, uso la de la aplicación")
		return z.fallback
	}
	loc = z.fallback
	if owner != nil {
		loc = LoadLocation(owner.Timezone, z.fallback)
	}
	z.mu.Lock()
	z.cache[ownerID] = loc
	z.mu.Unlock()
	return loc
}

// Forget descarta la zona cacheada de un dueño.
func (z *ZoneResolver) Forget(ownerID string) {
	z.mu.Lock()
	delete(z.cache, ownerID)
	z.mu.Unlock()
}
