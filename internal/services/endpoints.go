package service

// Backend endpoints. The configured base URL already carries the /api/v1
// prefix, so paths here do not include it.
const (
	endpointLogin    = "/auth/login"
	endpointRegister = "/auth/register"

	endpointCompanyVacancy     = "/company/vacancy"
	endpointProcessApplication = "/company/job-application/process"

	endpointCandidate          = "/candidate"
	endpointCandidateVacancies = "/candidate/vacancy"
	endpointCandidateResume    = "/candidate/resume"
	endpointCandidateFile      = "/candidate/file"

	endpointProfileImage = "/user/profile-image"

	endpointApply        = "/job/apply"
	endpointApplications = "/job/applications"
	endpointVacancyApps  = "/job/vacancy/%s/applications"

	endpointTags = "/tags"
)
