package models

// ApplicationStatus is the processing state of a job application.
// ANALISYS matches the backend spelling.
type ApplicationStatus string

const (
	ApplicationNew      ApplicationStatus = "NEW"
	ApplicationReviewed ApplicationStatus = "REVIEWED"
	ApplicationAnalisys ApplicationStatus = "ANALISYS"
	ApplicationRejected ApplicationStatus = "REJECTED"
	ApplicationHired    ApplicationStatus = "HIRED"
)

type JobApplication struct {
	ID              string              `json:"id"`
	CandidateID     string              `json:"candidateId"`
	VacancyID       string              `json:"vacancyId"`
	Status          ApplicationStatus   `json:"status"`
	ApplicationDate string              `json:"applicationDate"`
	Vacancy         *Vacancy            `json:"vacancy,omitempty"`
	Candidate       *ApplicantCandidate `json:"candidate,omitempty"`
}

// ApplicantCandidate is the candidate summary embedded in applications
// listed for an employer.
type ApplicantCandidate struct {
	ID          string         `json:"id"`
	UserID      string         `json:"userId"`
	FullName    string         `json:"fullName,omitempty"`
	Bio         string         `json:"bio,omitempty"`
	Phone       string         `json:"phone,omitempty"`
	ResumeURL   string         `json:"resumeUrl,omitempty"`
	LinkedInURL string         `json:"linkedInUrl,omitempty"`
	ImageURL    string         `json:"imageUrl,omitempty"`
	Tags        []Tag          `json:"tags,omitempty"`
	User        *ApplicantUser `json:"user,omitempty"`
}

type ApplicantUser struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

type ApplicationList struct {
	JobApplications []JobApplication `json:"jobApplications"`
	Total           int              `json:"total"`
}

// ProcessApplicationRequest updates an application's status and optionally
// asks the backend to notify the candidate by email.
type ProcessApplicationRequest struct {
	ApplicationID string            `json:"applicationId"`
	Status        ApplicationStatus `json:"status"`
	Message       string            `json:"message,omitempty"`
	SendMessage   bool              `json:"sendMessage"`
}
