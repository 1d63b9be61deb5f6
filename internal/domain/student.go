package domain

import (
	"time"

	"github.com/google/uuid"
)

type Student struct {
	ID        uuid.UUID
	StudentNo string
	FullName  *string
	CreatedAt time.Time
}
