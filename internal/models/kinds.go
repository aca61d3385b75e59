package models

import "slices"

// EntityKind names a trackable entity in activity records.
type EntityKind string

const (
	EntityProject     EntityKind = "project"
	EntityFeature     EntityKind = "feature"
	EntityBug         EntityKind = "bug"
	EntityImprovement EntityKind = "improvement"
)

const (
	StatusPending   = "pending"
	StatusCompleted = "completed"
	StatusOpen      = "open"
	StatusFixed     = "fixed"
)

var kindStatuses = map[EntityKind][]string{
	EntityFeature:     {StatusPending, StatusCompleted},
	EntityBug:         {StatusOpen, StatusFixed},
	EntityImprovement: {StatusPending, StatusCompleted},
}

var kindTitles = map[EntityKind]string{
	EntityProject:     "Project",
	EntityFeature:     "Feature",
	EntityBug:         "Bug",
	EntityImprovement: "Improvement",
}

// Title is the capitalised name used in activity descriptions.
func (k EntityKind) Title() string {
	if t, ok := kindTitles[k]; ok {
		return t
	}
	return string(k)
}

// Statuses lists the closed status enumeration; the first entry is the default.
func (k EntityKind) Statuses() []string {
	return slices.Clone(kindStatuses[k])
}

func (k EntityKind) DefaultStatus() string {
	if s := kindStatuses[k]; len(s) > 0 {
		return s[0]
	}
	return ""
}

func (k EntityKind) AllowsStatus(status string) bool {
	return slices.Contains(kindStatuses[k], status)
}
