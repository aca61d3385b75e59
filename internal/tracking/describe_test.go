package tracking

import (
	"testing"

	"github.com/devtrack/engine/internal/models"
	"github.com/stretchr/testify/assert"
)

func TestDescriptionTemplates(t *testing.T) {
	assert.Equal(t, "Project 'Demo' created", DescribeCreate(models.EntityProject, "Demo"))
	assert.Equal(t, "Feature 'Login' status updated to 'completed'", DescribeStatus(models.EntityFeature, "Login", "completed"))
	assert.Equal(t, "Bug 'Crash' deleted", DescribeDelete(models.EntityBug, "Crash"))

	assert.Equal(t,
		"Project 'Demo' updated with Field 'name' changed from 'Demo' to 'Demo2'",
		DescribeUpdate(models.EntityProject, "Demo", []Change{{Field: "name", Old: "Demo", New: "Demo2"}}),
	)
}

func TestDescribeUpdateJoinsClausesInOrder(t *testing.T) {
	got := DescribeUpdate(models.EntityImprovement, "Faster search", []Change{
		{Field: "rank", Old: 1, New: 3},
		{Field: "tags", Old: models.StringList{}, New: models.StringList{"perf", "db"}},
	})
	assert.Equal(t,
		`Improvement 'Faster search' updated with Field 'rank' changed from '1' to '3', Field 'tags' changed from '[]' to '["perf","db"]'`,
		got,
	)
}

func TestDescribeUpdateWithoutChanges(t *testing.T) {
	assert.Equal(t, "Bug 'Crash' updated with", DescribeUpdate(models.EntityBug, "Crash", nil))
}
