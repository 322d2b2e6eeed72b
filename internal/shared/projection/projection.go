package projection

import "time"

// Metadata carries the persistence timestamps of a stored aggregate.
type Metadata struct {
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Touch stamps a save at now, keeping the first CreatedAt.
func (m Metadata) Touch(now time.Time) Metadata {
	if m.CreatedAt.IsZero() {
		m.CreatedAt = now
	}
	m.UpdatedAt = now
	return m
}

// Projection pairs an aggregate with the metadata of its stored row.
type Projection[T any] struct {
	Entity   T
	Metadata Metadata
}

func New[T any](entity T, createdAt, updatedAt time.Time) *Projection[T] {
	return &Projection[T]{Entity: entity, Metadata: Metadata{CreatedAt: createdAt, UpdatedAt: updatedAt}}
}
