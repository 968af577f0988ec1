package models

import "time"

// Work is a production a user took part in, with the roles they held and
// the tasks they performed.
type Work struct {
	ID             int64      `json:"id"`
	UserID         string     `json:"user_id"`
	Title          string     `json:"title" validate:"required"`
	ProductionType string     `json:"production_type,omitempty"`
	StartDate      *time.Time `json:"start_date,omitempty"`
	EndDate        *time.Time `json:"end_date,omitempty"`
	Description    string     `json:"description,omitempty"`
	PortfolioURL   string     `json:"portfolio_url,omitempty" validate:"omitempty,url"`
	Roles          []WorkRole `json:"roles" validate:"dive"`
	Tasks          []WorkTask `json:"tasks" validate:"dive"`
}

// WorkRole is a role held within a production ("director", "editor", ...).
// Rows are shared between works and created on first use.
type WorkRole struct {
	ID   int64  `json:"id"`
	Name string `json:"name" validate:"required"`
}

// WorkTask is a task performed within a production. Rows are shared
// between works and created on first use.
type WorkTask struct {
	ID   int64  `json:"id"`
	Name string `json:"name" validate:"required"`
}

// WorkLookup names one of the find-or-create lookup tables.
type WorkLookup string

const (
	WorkLookupRoles WorkLookup = "work_roles"
	WorkLookupTasks WorkLookup = "work_tasks"
)
