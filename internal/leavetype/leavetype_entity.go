package leavetype

import (
	"github.com/google/uuid"
)

type LeaveType struct {
	ID   uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name string    `gorm:"type:varchar(50);uniqueIndex;not null"`
}
