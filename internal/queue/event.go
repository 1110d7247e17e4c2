// Package queue defines message payloads exchanged over the message broker.
package queue

import "time"

// CatalogQueueName is the durable queue carrying catalog change events.
const CatalogQueueName = "catalog.changed"

// Catalog event types.
const (
	GameCreated = "game.created"
	GameUpdated = "game.updated"
	GameDeleted = "game.deleted"
)

// CatalogEvent is published after an admin write to the catalog.  It
// carries enough for downstream consumers to audit the change without
// querying the primary database.
type CatalogEvent struct {
	Type       string `json:"type"`
	GameID     int64  `json:"game_id"`
	Name       string `json:"name"`
	CategoryID int64  `json:"category_id"`
	ActorID    int64  `json:"actor_id"`
	OccurredAt string `json:"occurred_at"`
}

// NewCatalogEvent stamps an event with at, formatted as RFC3339 UTC.
func NewCatalogEvent(typ string, gameID int64, name string, categoryID, actorID int64, at time.Time) CatalogEvent {
	return CatalogEvent{
		Type:       typ,
		GameID:     gameID,
		Name:       name,
		CategoryID: categoryID,
		ActorID:    actorID,
		OccurredAt: at.UTC().Format(time.RFC3339),
	}
}
