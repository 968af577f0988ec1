package models

import "time"

// Training is a course or certification completed by a user. Trainings are
// owned by exactly one user and are only visible to that user and admins.
type Training struct {
	ID              int64      `json:"id"`
	UserID          string     `json:"user_id"`
	CourseName      string     `json:"course_name" validate:"required"`
	Institution     string     `json:"institution" validate:"required"`
	CertificateType string     `json:"certificate_type" validate:"required"`
	StudyLevel      string     `json:"study_level" validate:"required"`
	StartDate       *time.Time `json:"start_date,omitempty"`
	EndDate         *time.Time `json:"end_date,omitempty"`
	DurationHours   int        `json:"duration_hours" validate:"gte=0"`
	CertificateURL  string     `json:"certificate_url,omitempty" validate:"omitempty,url"`
	KnowledgeArea   string     `json:"knowledge_area" validate:"required"`
	Description     string     `json:"description,omitempty" validate:"max=1500"`
	Grade           string     `json:"grade,omitempty"`
	Language        string     `json:"language,omitempty"`
	InstructorName  string     `json:"instructor_name,omitempty"`
	ProgramName     string     `json:"program_name,omitempty"`
	Country         string     `json:"country" validate:"required"`
	City            string     `json:"city" validate:"required"`
	Province        string     `json:"province,omitempty"`
	Notes           string     `json:"notes,omitempty" validate:"max=1000"`
}

// TableName returns the name of the database table
// associated with the Training model.
func (t Training) TableName() string {
	return "trainings"
}
