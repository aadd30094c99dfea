package models

// CandidateProfile is the candidate view returned by GET /candidate,
// including the embedded user record.
type CandidateProfile struct {
	ID          string      `json:"id"`
	UserID      string      `json:"userId"`
	FullName    string      `json:"fullName"`
	Phone       string      `json:"phone"`
	LinkedInURL string      `json:"linkedInUrl,omitempty"`
	ResumeURL   string      `json:"resumeUrl,omitempty"`
	ImageURL    string      `json:"imageUrl,omitempty"`
	Bio         string      `json:"bio,omitempty"`
	User        ProfileUser `json:"user"`
	Tags        []Tag       `json:"tags,omitempty"`
	CreatedAt   string      `json:"createdAt"`
	UpdatedAt   string      `json:"updatedAt"`
}

type ProfileUser struct {
	ID       string `json:"id"`
	Email    string `json:"email"`
	ImageURL string `json:"imageUrl,omitempty"`
}

// UpdateCandidateRequest carries a partial profile update. Pointer fields
// distinguish "leave unchanged" (nil) from "clear" (empty string), which the
// backend expects as null.
type UpdateCandidateRequest struct {
	FullName    *string `json:"fullName,omitempty"`
	Phone       *string `json:"phone,omitempty"`
	LinkedInURL *string `json:"linkedInUrl,omitempty"`
	Bio         *string `json:"bio,omitempty"`
	ImageURL    *string `json:"imageUrl,omitempty"`
	ResumeURL   *string `json:"resumeUrl,omitempty"`
}

type UploadImageResponse struct {
	URL string `json:"url"`
}

type UploadResumeResponse struct {
	ResumeURL string `json:"resumeUrl"`
}

// CandidateFileType selects which stored file DELETE /candidate/file/:type
// removes.
type CandidateFileType string

const (
	CandidateFileImage  CandidateFileType = "IMAGE"
	CandidateFileResume CandidateFileType = "RESUME"
)
