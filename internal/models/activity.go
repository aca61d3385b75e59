package models

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// ErrActivityImmutable is returned when something tries to rewrite the log.
var ErrActivityImmutable = errors.New("activity records are immutable")

// ActivityKind is the operation an Activity describes.
type ActivityKind string

const (
	ActivityCreate       ActivityKind = "create"
	ActivityUpdate       ActivityKind = "update"
	ActivityDelete       ActivityKind = "delete"
	ActivityStatusChange ActivityKind = "status_change"
)

// Activity is one append-only audit entry for a project.
// EntityID is deliberately not a foreign key: the row it names may be gone.
type Activity struct {
	ID          uuid.UUID      `gorm:"type:varchar(36);primaryKey" json:"id"`
	ProjectID   uuid.UUID      `gorm:"type:varchar(36);not null;index:idx_activities_project_created,priority:1" json:"projectId"`
	Type        ActivityKind   `gorm:"type:varchar(32);not null" json:"type"`
	Entity      EntityKind     `gorm:"type:varchar(32);not null" json:"entity"`
	EntityID    *uuid.UUID     `gorm:"type:varchar(36)" json:"entityId"`
	Description string         `gorm:"type:text;not null" json:"description"`
	Changes     datatypes.JSON `gorm:"not null" json:"changes"`
	CreatedAt   time.Time      `gorm:"index:idx_activities_project_created,priority:2" json:"createdAt"`
}

func (Activity) TableName() string { return "activities" }

func (a *Activity) BeforeCreate(tx *gorm.DB) error {
	assignID(&a.ID)
	return nil
}

func (a *Activity) BeforeUpdate(tx *gorm.DB) error { return ErrActivityImmutable }

func (a *Activity) BeforeDelete(tx *gorm.DB) error { return ErrActivityImmutable }
