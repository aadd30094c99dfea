package models

// CandidateSignup is the form-level candidate registration data.
type CandidateSignup struct {
	FullName string `json:"fullName"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Password string `json:"password"`
}

// EmployerSignup is the form-level employer registration data.
type EmployerSignup struct {
	CompanyName string `json:"companyName"`
	ContactName string `json:"contactName"`
	CNPJ        string `json:"cnpj"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
	Password    string `json:"password"`
}

// RegisterRequest is the backend shape for POST /auth/register. Exactly one
// of Candidate or Company is set, matching the user role.
type RegisterRequest struct {
	User      RegisterUser       `json:"user"`
	Candidate *RegisterCandidate `json:"candidate,omitempty"`
	Company   *RegisterCompany   `json:"company,omitempty"`
}

type RegisterUser struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     Role   `json:"role"`
	Phone    string `json:"phone"`
}

type RegisterCandidate struct {
	FullName string `json:"fullName"`
	Bio      string `json:"bio"`
	Phone    string `json:"phone"`
}

type RegisterCompany struct {
	Name        string `json:"name"`
	Document    string `json:"document"`
	ContactName string `json:"contactName"`
	Phone       string `json:"phone"`
}

type RegisterResponse struct {
	User      RegisteredUser       `json:"user"`
	Candidate *RegisteredCandidate `json:"candidate,omitempty"`
	Company   *RegisteredCompany   `json:"company,omitempty"`
}

type RegisteredUser struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

type RegisteredCandidate struct {
	ID       string `json:"id"`
	FullName string `json:"fullName"`
	Phone    string `json:"phone"`
	Bio      string `json:"bio"`
	Tags     []Tag  `json:"tags,omitempty"`
}

type RegisteredCompany struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Document    string `json:"document"`
	ContactName string `json:"contactName"`
	Phone       string `json:"phone"`
}

type LoginResponse struct {
	AccessToken string `json:"accessToken"`
}
