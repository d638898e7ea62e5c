package shared

import (
	"time"

	"github.com/google/uuid"
)

// Entity is implemented by every persisted record in the receiving domain.
type Entity interface {
	GetID() uuid.UUID
	GetCreatedAt() time.Time
	GetUpdatedAt() time.Time
}

// BaseEntity carries the identifier and audit timestamps shared by
// suppliers, items, receipts, stock and debt records. IDs are generated
// in the application, so inserts never round-trip to the database for a
// generated key.
type BaseEntity struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

// NewBaseEntity returns a BaseEntity with a fresh ID and both audit
// timestamps set to now.
func NewBaseEntity() BaseEntity {
	now := time.Now()
	return BaseEntity{ID: uuid.New(), CreatedAt: now, UpdatedAt: now}
}

// Touch bumps the update timestamp. Aggregates call it on every mutation.
func (e *BaseEntity) Touch() {
	e.UpdatedAt = time.Now()
}

func (e *BaseEntity) GetID() uuid.UUID        { return e.ID }
func (e *BaseEntity) GetCreatedAt() time.Time { return e.CreatedAt }
func (e *BaseEntity) GetUpdatedAt() time.Time { return e.UpdatedAt }
