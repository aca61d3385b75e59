package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Project is the tenant-owned container for work items and activity.
type Project struct {
	ID              uuid.UUID  `gorm:"type:varchar(36);primaryKey" json:"id"`
	UserID          uuid.UUID  `gorm:"type:varchar(36);index;not null" json:"userId"`
	Name            string     `gorm:"type:text;not null" json:"name"`
	Description     string     `gorm:"type:text" json:"description"`
	ProductionLink  string     `gorm:"type:text" json:"productionLink"`
	RepoLink        string     `gorm:"type:text" json:"repoLink"`
	FrontendLink    string     `gorm:"type:text" json:"frontendLink"`
	BackendLink     string     `gorm:"type:text" json:"backendLink"`
	FrontendDetails string     `gorm:"type:text" json:"frontendDetails"`
	BackendDetails  string     `gorm:"type:text" json:"backendDetails"`
	EnvDetails      string     `gorm:"type:text" json:"envDetails"`
	TestUserDetails string     `gorm:"type:text" json:"testUserDetails"`
	AuthDetails     string     `gorm:"type:text" json:"authDetails"`
	SetupSteps      StringList `gorm:"type:text" json:"setupSteps"`
	CreatedAt       time.Time  `json:"createdAt"`
	UpdatedAt       time.Time  `json:"-"`

	Features     []Feature     `gorm:"constraint:OnDelete:CASCADE" json:"features"`
	Bugs         []Bug         `gorm:"constraint:OnDelete:CASCADE" json:"bugs"`
	Improvements []Improvement `gorm:"constraint:OnDelete:CASCADE" json:"improvements"`
	Activities   []Activity    `gorm:"constraint:OnDelete:CASCADE" json:"-"`
}

func (p *Project) BeforeCreate(tx *gorm.DB) error {
	assignID(&p.ID)
	return nil
}
