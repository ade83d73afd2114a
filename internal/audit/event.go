// Package audit records successful mutations as events.
//
// Services emit events after their unit of work commits. Emission never fails
// the request: publishers log what they cannot deliver.
package audit

import (
	"strconv"
	"time"

	"github.com/google/uuid"
)

type Action string

const (
	ActionCategoryCreated       Action = "categoria_criada"
	ActionTrainingCenterCreated Action = "centro_treinamento_criado"
	ActionAthleteCreated        Action = "atleta_criado"
	ActionAthleteUpdated        Action = "atleta_atualizado"
	ActionAthleteDeleted        Action = "atleta_removido"
)

type Entity string

const (
	EntityCategory       Entity = "categoria"
	EntityTrainingCenter Entity = "centro_treinamento"
	EntityAthlete        Entity = "atleta"
)

// Event is the JSON payload written to the audit topic.
type Event struct {
	ID        uuid.UUID `json:"id"`
	Action    Action    `json:"action"`
	Entity    Entity    `json:"entity"`
	EntityID  int64     `json:"entity_id"`
	RequestID string    `json:"request_id,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// NewEvent stamps a fresh event id. A zero now falls back to the wall clock.
func NewEvent(action Action, entity Entity, entityID int64, requestID string, now time.Time) Event {
	if now.IsZero() {
		now = time.Now().UTC()
	}
	return Event{
		ID:        uuid.New(),
		Action:    action,
		Entity:    entity,
		EntityID:  entityID,
		RequestID: requestID,
		Timestamp: now,
	}
}

// Key partitions events by entity so one row's history stays ordered.
func (e Event) Key() string {
	return string(e.Entity) + ":" + strconv.FormatInt(e.EntityID, 10)
}
