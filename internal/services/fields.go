package services

import (
	"strings"

	"github.com/devtrack/engine/internal/models"
	"github.com/devtrack/engine/internal/tracking"
	appErr "github.com/devtrack/engine/pkg/errors"
)

// ProjectFields lists the project columns a client may change, in table order.
var ProjectFields = tracking.NewFieldSet(
	tracking.String("name", "name", func(p *models.Project) *string { return &p.Name }),
	tracking.String("description", "description", func(p *models.Project) *string { return &p.Description }),
	tracking.String("production_link", "productionLink", func(p *models.Project) *string { return &p.ProductionLink }),
	tracking.String("repo_link", "repoLink", func(p *models.Project) *string { return &p.RepoLink }),
	tracking.String("frontend_link", "frontendLink", func(p *models.Project) *string { return &p.FrontendLink }),
	tracking.String("backend_link", "backendLink", func(p *models.Project) *string { return &p.BackendLink }),
	tracking.String("frontend_details", "frontendDetails", func(p *models.Project) *string { return &p.FrontendDetails }),
	tracking.String("backend_details", "backendDetails", func(p *models.Project) *string { return &p.BackendDetails }),
	tracking.String("env_details", "envDetails", func(p *models.Project) *string { return &p.EnvDetails }),
	tracking.String("test_user_details", "testUserDetails", func(p *models.Project) *string { return &p.TestUserDetails }),
	tracking.String("auth_details", "authDetails", func(p *models.Project) *string { return &p.AuthDetails }),
	tracking.List("setup_steps", "setupSteps", func(p *models.Project) *models.StringList { return &p.SetupSteps }),
)

// WorkItemFields is shared by features, bugs and improvements.
var WorkItemFields = tracking.NewFieldSet(
	tracking.String("description", "description", func(w *models.WorkItem) *string { return &w.Description }),
	tracking.String("status", "status", func(w *models.WorkItem) *string { return &w.Status }),
	tracking.Int("rank", "rank", func(w *models.WorkItem) *int { return &w.Rank }),
	tracking.List("tags", "tags", func(w *models.WorkItem) *models.StringList { return &w.Tags }),
)

func requireNonBlank(p *tracking.Patch, field string) error {
	v, ok := p.Get(field)
	if !ok {
		return nil
	}
	if s, _ := v.(string); strings.TrimSpace(s) == "" {
		return appErr.New(appErr.CodeInvalid, field+" must not be empty").WithMeta("field", field)
	}
	return nil
}

func checkStatus(kind models.EntityKind, status string) error {
	if !kind.AllowsStatus(status) {
		return appErr.New(appErr.CodeInvalid, "invalid "+string(kind)+" status "+quote(status)).
			WithMeta("allowed", kind.Statuses())
	}
	return nil
}

func quote(s string) string { return "'" + s + "'" }
