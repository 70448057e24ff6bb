package ports

import (
	"context"
	"fmt"
)

// ChangeFeed define el puerto de salida para notificaciones de cambio por colección.
// Un aviso no lleva datos: quien lo recibe vuelve a leer la colección completa.
// Implementaciones: Redis pub/sub (varios procesos) y memoria (un proceso, tests).
type ChangeFeed interface {
	// Publish avisa a todos los suscriptores del tópico.
	Publish(ctx context.Context, topic string) error
	// Subscribe devuelve un canal que recibe un valor por cada aviso. El canal se cierra
	// cuando ctx se cancela; cancelar ctx es la única forma de liberar la suscripción.
	Subscribe(ctx context.Context, topic string) (<-chan struct{}, error)
}

// Colecciones de un dueño con aviso de cambios.
const (
	CollectionClients = "clients"
	CollectionSales   = "sales"
	CollectionSlots   = "slots"
)

// Topic arma el nombre de tópico de una colección de un dueño: "owners:<id>:<colección>".
func Topic(ownerID, collection string) string {
	return fmt.Sprintf("owners:%s:%s", ownerID, collection)
}
