package types

type RegisterRequest struct {
	Email           string `json:"email" validate:"required,email"`
	Password        string `json:"password" validate:"required,min=8"`
	Name            string `json:"name" validate:"required"`
	ProfileImageURL string `json:"profileImageUrl" validate:"omitempty,url"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// ProjectRequest documents the project body. Updates accept any subset of it.
type ProjectRequest struct {
	Name            string   `json:"name" validate:"required"`
	Description     string   `json:"description"`
	ProductionLink  string   `json:"productionLink"`
	RepoLink        string   `json:"repoLink"`
	FrontendLink    string   `json:"frontendLink"`
	BackendLink     string   `json:"backendLink"`
	FrontendDetails string   `json:"frontendDetails"`
	BackendDetails  string   `json:"backendDetails"`
	EnvDetails      string   `json:"envDetails"`
	TestUserDetails string   `json:"testUserDetails"`
	AuthDetails     string   `json:"authDetails"`
	SetupSteps      []string `json:"setupSteps"`
}

// WorkItemRequest is the feature, bug and improvement body. ProjectID comes
// from the path when the item is created under /projects/{projectId}.
type WorkItemRequest struct {
	ProjectID   string   `json:"projectId" validate:"omitempty,uuid"`
	Description string   `json:"description" validate:"required"`
	Status      string   `json:"status"`
	Rank        int      `json:"rank"`
	Tags        []string `json:"tags"`
}

type StatusUpdateRequest struct {
	Status string `json:"status" validate:"required"`
}
