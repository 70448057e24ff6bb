// Package feed implementa ports.ChangeFeed: en memoria para un solo proceso y sobre
// Redis pub/sub cuando varias instancias de la API comparten la base.
package feed

import (
	"context"
	"sync"

	"github.com/jhoicas/gymdesk-api/internal/application/ports"
)

var _ ports.ChangeFeed = (*Memory)(nil)

// Memory feed en proceso. Cada suscriptor tiene un buffer de un aviso: los avisos que llegan
// mientras hay uno pendiente se funden en él (igual da, el suscriptor relee todo).
type Memory struct {
	mu     sync.Mutex
	nextID int
	subs   map[string]map[int]chan struct{}
}

// NewMemory construye el feed en memoria.
func NewMemory() *Memory {
	return &Memory{subs: make(map[string]map[int]chan struct{})}
}

// Publish avisa a los suscriptores actuales del tópico. Nunca bloquea.
func (m *Memory) Publish(_ context.Context, topic string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, ch := range m.subs[topic] {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
	return nil
}

// Subscribe registra un suscriptor hasta que ctx se cancela.
func (m *Memory) Subscribe(ctx context.Context, topic string) (<-chan struct{}, error) {
	ch := make(chan struct{}, 1)
	m.mu.Lock()
	id := m.nextID
	m.nextID++
	if m.subs[topic] == nil {
		m.subs[topic] = make(map[int]chan struct{})
	}
	m.subs[topic][id] = ch
	m.mu.Unlock()

	go func() {
		<-ctx.Done()
		m.mu.Lock()
		delete(m.subs[topic], id)
		if len(m.subs[topic]) == 0 {
			delete(m.subs, topic)
		}
		close(ch)
		m.mu.Unlock()
	}()
	return ch, nil
}

// Subscribers cantidad de suscriptores activos de un tópico.
func (m *Memory) Subscribers(topic string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.subs[topic])
}
