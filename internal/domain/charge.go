package domain

import (
	"time"

	"github.com/google/uuid"
)

// Charge is an immutable tuition charge row. Created by the admin intake
// path (single or batch), never updated or deleted.
type Charge struct {
	ID        uuid.UUID
	StudentID uuid.UUID
	Term      string
	Amount    Money
	CreatedAt time.Time
}
