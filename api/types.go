package api

import (
	"time"

	"github.com/p-miano/portfolio-api/models"
)

// routeHandlers contains all the handlers for different route types
type routeHandlers struct {
	authHandler            authHandler
	categoryHandler        categoryHandler
	technologyHandler      technologyHandler
	technologyGroupHandler technologyGroupHandler
	projectHandler         projectHandler
	publicHandler          publicHandler
	healthHandler          healthHandler
}

// ErrorResponse represents an error response from the API
type ErrorResponse struct {
	Error   string              `json:"error"`
	Status  string              `json:"status"`
	Message string              `json:"message,omitempty"`
	Field   string              `json:"field,omitempty"`
	Details string              `json:"details,omitempty"`
	Errors  map[string][]string `json:"errors,omitempty"`
}

type UserResponse struct {
	ID       uint     `json:"id"`
	FullName string   `json:"fullName"`
	Email    string   `json:"email"`
	Roles    []string `json:"roles,omitempty"`
}

type LoginResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}

type CategoryResponse struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

type TechnologyResponse struct {
	ID                  uint   `json:"id"`
	Name                string `json:"name"`
	TechnologyGroupID   uint   `json:"technologyGroupId"`
	TechnologyGroupName string `json:"technologyGroupName"`
}

type TechnologySummary struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

type TechnologyGroupResponse struct {
	ID           uint                `json:"id"`
	Name         string              `json:"name"`
	Technologies []TechnologySummary `json:"technologies"`
}

type ProjectResponse struct {
	ID           uint                 `json:"id"`
	Title        string               `json:"title"`
	Description  string               `json:"description"`
	GithubLink   *string              `json:"githubLink"`
	DeployedLink *string              `json:"deployedLink"`
	IsVisible    bool                 `json:"isVisible"`
	StartDate    *time.Time           `json:"startDate"`
	EndDate      *time.Time           `json:"endDate"`
	Difficulty   string               `json:"difficulty"`
	CategoryID   uint                 `json:"categoryId"`
	CategoryName string               `json:"categoryName"`
	Technologies []TechnologyResponse `json:"technologies"`
}

type HealthResponse struct {
	Status        string    `json:"status"`
	Database      string    `json:"database"`
	StartedAt     time.Time `json:"startedAt"`
	UptimeSeconds int64     `json:"uptimeSeconds"`
}

func newUserResponse(u *models.User, withRoles bool) UserResponse {
	resp := UserResponse{ID: u.ID, FullName: u.FullName, Email: u.Email}
	if withRoles {
		resp.Roles = append([]string{}, u.Roles...)
	}
	return resp
}

func newCategoryResponse(c models.Category) CategoryResponse {
	return CategoryResponse{ID: c.ID, Name: c.Name}
}

func newCategoryResponses(categories []models.Category) []CategoryResponse {
	out := make([]CategoryResponse, 0, len(categories))
	for _, c := range categories {
		out = append(out, newCategoryResponse(c))
	}
	return out
}

func newTechnologyResponse(t models.Technology) TechnologyResponse {
	return TechnologyResponse{
		ID:                  t.ID,
		Name:                t.Name,
		TechnologyGroupID:   t.TechnologyGroupID,
		TechnologyGroupName: t.TechnologyGroup.Name,
	}
}

func newTechnologyResponses(technologies []models.Technology) []TechnologyResponse {
	out := make([]TechnologyResponse, 0, len(technologies))
	for _, t := range technologies {
		out = append(out, newTechnologyResponse(t))
	}
	return out
}

func newTechnologyGroupResponse(g models.TechnologyGroup) TechnologyGroupResponse {
	technologies := make([]TechnologySummary, 0, len(g.Technologies))
	for _, t := range g.Technologies {
		technologies = append(technologies, TechnologySummary{ID: t.ID, Name: t.Name})
	}
	return TechnologyGroupResponse{ID: g.ID, Name: g.Name, Technologies: technologies}
}

func newTechnologyGroupResponses(groups []models.TechnologyGroup) []TechnologyGroupResponse {
	out := make([]TechnologyGroupResponse, 0, len(groups))
	for _, g := range groups {
		out = append(out, newTechnologyGroupResponse(g))
	}
	return out
}

func newProjectResponse(p models.Project) ProjectResponse {
	technologies := make([]TechnologyResponse, 0, len(p.ProjectTechnologies))
	for _, pt := range p.ProjectTechnologies {
		technologies = append(technologies, newTechnologyResponse(pt.Technology))
	}
	return ProjectResponse{
		ID:           p.ID,
		Title:        p.Title,
		Description:  p.Description,
		GithubLink:   p.GithubLink,
		DeployedLink: p.DeployedLink,
		IsVisible:    p.IsVisible,
		StartDate:    p.StartDate,
		EndDate:      p.EndDate,
		Difficulty:   p.Difficulty.String(),
		CategoryID:   p.CategoryID,
		CategoryName: p.Category.Name,
		Technologies: technologies,
	}
}

func newProjectResponses(projects []models.Project) []ProjectResponse {
	out := make([]ProjectResponse, 0, len(projects))
	for _, p := range projects {
		out = append(out, newProjectResponse(p))
	}
	return out
}
