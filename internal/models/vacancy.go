package models

// Modality is the work arrangement of a vacancy.
type Modality string

const (
	ModalityRemote Modality = "REMOTE"
	ModalityHybrid Modality = "HYBRID"
	ModalityOnsite Modality = "ONSITE"
)

// VacancyStatus is the publication state of a vacancy.
type VacancyStatus string

const (
	VacancyOpen   VacancyStatus = "OPEN"
	VacancyClosed VacancyStatus = "CLOSED"
)

type Tag struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

type Vacancy struct {
	ID                 string        `json:"id"`
	CompanyID          string        `json:"companyId"`
	Title              string        `json:"title"`
	Description        string        `json:"description"`
	Location           string        `json:"location"`
	MinimumSalaryValue float64       `json:"minimumSalaryValue"`
	MaximumSalaryValue float64       `json:"maximumSalaryValue"`
	Status             VacancyStatus `json:"status"`
	Modality           Modality      `json:"modality"`
	CreatedAt          string        `json:"createdAt"`
	UpdatedAt          string        `json:"updatedAt"`
	Tags               []Tag         `json:"tags,omitempty"`
}

// CreateVacancyRequest is the backend payload for creating a vacancy.
// Status is always OPEN on creation; the service layer fills it in.
type CreateVacancyRequest struct {
	Title              string        `json:"title"`
	Description        string        `json:"description"`
	Location           string        `json:"location"`
	MinimumSalaryValue float64       `json:"minimumSalaryValue"`
	MaximumSalaryValue float64       `json:"maximumSalaryValue"`
	Modality           Modality      `json:"modality"`
	Status             VacancyStatus `json:"status"`
	Tags               []Tag         `json:"tags,omitempty"`
}

// UpdateVacancyRequest carries the full vacancy state; the backend requires
// every field on update.
type UpdateVacancyRequest struct {
	Title              string        `json:"title"`
	Description        string        `json:"description"`
	Location           string        `json:"location"`
	MinimumSalaryValue float64       `json:"minimumSalaryValue"`
	MaximumSalaryValue float64       `json:"maximumSalaryValue"`
	Status             VacancyStatus `json:"status"`
	Modality           Modality      `json:"modality"`
	Tags               []Tag         `json:"tags,omitempty"`
}

type VacancyList struct {
	Vacancies []Vacancy `json:"vacancies"`
	Total     int       `json:"total"`
}
