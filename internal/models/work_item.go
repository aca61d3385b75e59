package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// WorkItem holds the columns shared by features, bugs and improvements.
type WorkItem struct {
	ID          uuid.UUID  `gorm:"type:varchar(36);primaryKey" json:"id"`
	ProjectID   uuid.UUID  `gorm:"type:varchar(36);index;not null" json:"projectId"`
	Description string     `gorm:"type:text;not null" json:"description"`
	Status      string     `gorm:"type:varchar(20);not null;index" json:"status"`
	Rank        int        `gorm:"not null;default:0" json:"rank"`
	Tags        StringList `gorm:"type:text" json:"tags"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"-"`
}

func (w *WorkItem) BeforeCreate(tx *gorm.DB) error {
	assignID(&w.ID)
	if w.Tags == nil {
		w.Tags = StringList{}
	}
	return nil
}

// Trackable is implemented by the three work item tables.
type Trackable interface {
	TableName() string
	Kind() EntityKind
	Item() *WorkItem
}

// TrackablePtr constrains generic code to pointers of work item models.
type TrackablePtr[T any] interface {
	*T
	Trackable
}

type Feature struct {
	WorkItem
}

func (Feature) TableName() string  { return "features" }
func (Feature) Kind() EntityKind    { return EntityFeature }
func (f *Feature) Item() *WorkItem { return &f.WorkItem }

type Bug struct {
	WorkItem
}

func (Bug) TableName() string  { return "bugs" }
func (Bug) Kind() EntityKind    { return EntityBug }
func (b *Bug) Item() *WorkItem { return &b.WorkItem }

type Improvement struct {
	WorkItem
}

func (Improvement) TableName() string  { return "improvements" }
func (Improvement) Kind() EntityKind    { return EntityImprovement }
func (i *Improvement) Item() *WorkItem { return &i.WorkItem }
