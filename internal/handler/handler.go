package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/hirable/webgate/internal/guard"
	"github.com/hirable/webgate/internal/models"
	service "github.com/hirable/webgate/internal/services"
	"github.com/hirable/webgate/internal/session"
	"github.com/hirable/webgate/internal/storage/token"
	pkgerrors "github.com/hirable/webgate/pkg/errors"
)

// SessionCookie identifies the gateway session; the token cookie carries
// the backend credential itself.
const SessionCookie = "hirable_session"

// GatewaySession bundles the per-request session manager with the store it
// is bound to.
type GatewaySession struct {
	Manager *session.Manager
	Store   token.Store
	ID      string
}

// SessionFactory builds the session bound to one request.
type SessionFactory func(r *http.Request) *GatewaySession

type Handler struct {
	sessions     SessionFactory
	vacancies    service.VacancyService
	candidates   service.CandidateService
	applications service.JobApplicationService
	tags         service.TagService
}

func NewHandler(
	sessions SessionFactory,
	vacancies service.VacancyService,
	candidates service.CandidateService,
	applications service.JobApplicationService,
	tags service.TagService,
) *Handler {
	return &Handler{
		sessions:     sessions,
		vacancies:    vacancies,
		candidates:   candidates,
		applications: applications,
		tags:         tags,
	}
}

type errorResponse struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
	Error   string `json:"error,omitempty"`
}

func (h *Handler) writeError(w http.ResponseWriter, err error) {
	if apiErr := pkgerrors.AsAPIError(err); apiErr != nil {
		status := apiErr.Status
		switch status {
		case 0:
			// The backend never answered; from the caller's side the
			// gateway is a bad gateway.
			status = http.StatusBadGateway
		case http.StatusUnauthorized:
			// Session invalid everywhere: drop the credential cookie.
			expireCookie(w, token.StorageKey)
		}
		writeJSON(w, status, errorResponse{Status: apiErr.Status, Message: apiErr.Message, Error: apiErr.Code})
		return
	}
	if errors.Is(err, pkgerrors.ErrRejectedWithMessage) {
		writeJSON(w, http.StatusBadRequest, errorResponse{Status: http.StatusBadRequest, Message: err.Error()})
		return
	}
	writeJSON(w, http.StatusInternalServerError, errorResponse{Status: http.StatusInternalServerError, Message: "internal error"})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeBadRequest(w http.ResponseWriter, message string) {
	writeJSON(w, http.StatusBadRequest, errorResponse{Status: http.StatusBadRequest, Message: message})
}

func expireCookie(w http.ResponseWriter, name string) {
	http.SetCookie(w, &http.Cookie{Name: name, Value: "", Path: "/", MaxAge: -1, HttpOnly: true})
}

func (h *Handler) RegisterAuthRoutes(r *mux.Router) {
	r.HandleFunc("/auth/login", h.Login).Methods("POST")
	r.HandleFunc("/auth/logout", h.Logout).Methods("POST")
	r.HandleFunc("/auth/register/candidate", h.RegisterCandidate).Methods("POST")
	r.HandleFunc("/auth/register/employer", h.RegisterEmployer).Methods("POST")
	r.HandleFunc("/session", h.Session).Methods("GET")
}

func (h *Handler) RegisterCandidateRoutes(r *mux.Router) {
	r.HandleFunc("/feed", h.Feed).Methods("GET")
	r.HandleFunc("/profile", h.Profile).Methods("GET")
	r.HandleFunc("/profile", h.UpdateProfile).Methods("PUT")
	r.HandleFunc("/profile/image", h.UploadProfileImage).Methods("POST")
	r.HandleFunc("/profile/image", h.DeleteProfileImage).Methods("DELETE")
	r.HandleFunc("/profile/resume", h.UploadResume).Methods("POST")
	r.HandleFunc("/profile/resume", h.DeleteResume).Methods("DELETE")
	r.HandleFunc("/applications", h.Applications).Methods("GET")
	r.HandleFunc("/applications", h.Apply).Methods("POST")
	r.HandleFunc("/tags", h.Tags).Methods("GET")
}

func (h *Handler) RegisterEmployerRoutes(r *mux.Router) {
	r.HandleFunc("/dashboard/employer", h.CompanyVacancies).Methods("GET")
	r.HandleFunc("/dashboard/employer/vacancies", h.CreateVacancy).Methods("POST")
	r.HandleFunc("/dashboard/employer/vacancies/{id}", h.UpdateVacancy).Methods("PUT")
	r.HandleFunc("/dashboard/employer/vacancies/{id}", h.DeleteVacancy).Methods("DELETE")
	r.HandleFunc("/dashboard/employer/jobs/{id}/candidates", h.VacancyApplications).Methods("GET")
	r.HandleFunc("/dashboard/employer/applications/process", h.ProcessApplication).Methods("POST")
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "invalid request body")
		return
	}

	sess := h.sessions(r)
	if err := sess.Manager.Login(r.Context(), req.Email, req.Password); err != nil {
		h.writeError(w, err)
		return
	}

	raw, err := sess.Store.Get(r.Context())
	if err != nil {
		h.writeError(w, err)
		return
	}

	http.SetCookie(w, &http.Cookie{Name: SessionCookie, Value: sess.ID, Path: "/", HttpOnly: true})
	http.SetCookie(w, &http.Cookie{Name: token.StorageKey, Value: raw, Path: "/", HttpOnly: true})

	writeJSON(w, http.StatusOK, map[string]any{
		"accessToken": raw,
		"user":        sess.Manager.CurrentUser(),
	})
}

func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	sess := h.sessions(r)
	// Restore the session first so the logout audit event carries the user.
	_ = sess.Manager.Initialize(r.Context())
	sess.Manager.Logout(r.Context())

	expireCookie(w, SessionCookie)
	expireCookie(w, token.StorageKey)
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) RegisterCandidate(w http.ResponseWriter, r *http.Request) {
	var req models.CandidateSignup
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "invalid request body")
		return
	}

	resp, err := h.sessions(r).Manager.RegisterCandidate(r.Context(), req)
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (h *Handler) RegisterEmployer(w http.ResponseWriter, r *http.Request) {
	var req models.EmployerSignup
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "invalid request body")
		return
	}

	resp, err := h.sessions(r).Manager.RegisterEmployer(r.Context(), req)
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

// Session exposes the auth context the way the UI consumes it.
func (h *Handler) Session(w http.ResponseWriter, r *http.Request) {
	user, ok := guard.UserFromContext(r.Context())
	resp := map[string]any{
		"isAuthenticated": ok,
	}
	if ok {
		resp["user"] = user
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) Feed(w http.ResponseWriter, r *http.Request) {
	params := service.FeedParams{
		Modality: models.Modality(r.URL.Query().Get("modality")),
		Limit:    queryInt(r, "limit"),
		Offset:   queryInt(r, "offset"),
	}

	list, err := h.vacancies.ListAvailable(r.Context(), params)
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (h *Handler) Profile(w http.ResponseWriter, r *http.Request) {
	profile, err := h.candidates.GetProfile(r.Context())
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, profile)
}

func (h *Handler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	var req models.UpdateCandidateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "invalid request body")
		return
	}

	profile, err := h.candidates.UpdateProfile(r.Context(), req)
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, profile)
}

func (h *Handler) UploadProfileImage(w http.ResponseWriter, r *http.Request) {
	file, header, err := r.FormFile("file")
	if err != nil {
		writeBadRequest(w, "file is required")
		return
	}
	defer file.Close()

	resp, err := h.candidates.UploadProfileImage(r.Context(), header.Filename, file)
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) UploadResume(w http.ResponseWriter, r *http.Request) {
	file, header, err := r.FormFile("file")
	if err != nil {
		writeBadRequest(w, "file is required")
		return
	}
	defer file.Close()

	resp, err := h.candidates.UploadResume(r.Context(), header.Filename, file)
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) DeleteProfileImage(w http.ResponseWriter, r *http.Request) {
	profile, err := h.candidates.DeleteProfileImage(r.Context())
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, profile)
}

func (h *Handler) DeleteResume(w http.ResponseWriter, r *http.Request) {
	profile, err := h.candidates.DeleteResume(r.Context())
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, profile)
}

func (h *Handler) Applications(w http.ResponseWriter, r *http.Request) {
	list, err := h.applications.List(r.Context())
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (h *Handler) Apply(w http.ResponseWriter, r *http.Request) {
	var req struct {
		VacancyID string `json:"vacancyId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "invalid request body")
		return
	}
	if req.VacancyID == "" {
		writeBadRequest(w, "vacancyId is required")
		return
	}

	application, err := h.applications.Apply(r.Context(), req.VacancyID)
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, application)
}

func (h *Handler) Tags(w http.ResponseWriter, r *http.Request) {
	tags, err := h.tags.Tags(r.Context())
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, tags)
}

func (h *Handler) CompanyVacancies(w http.ResponseWriter, r *http.Request) {
	params := service.ListParams{
		Limit:  queryInt(r, "limit"),
		Offset: queryInt(r, "offset"),
	}

	list, err := h.vacancies.List(r.Context(), params)
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (h *Handler) CreateVacancy(w http.ResponseWriter, r *http.Request) {
	var req models.CreateVacancyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "invalid request body")
		return
	}

	vacancy, err := h.vacancies.Create(r.Context(), req)
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, vacancy)
}

func (h *Handler) UpdateVacancy(w http.ResponseWriter, r *http.Request) {
	var req models.UpdateVacancyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "invalid request body")
		return
	}

	vacancy, err := h.vacancies.Update(r.Context(), mux.Vars(r)["id"], req)
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, vacancy)
}

func (h *Handler) DeleteVacancy(w http.ResponseWriter, r *http.Request) {
	if err := h.vacancies.Delete(r.Context(), mux.Vars(r)["id"]); err != nil {
		h.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) VacancyApplications(w http.ResponseWriter, r *http.Request) {
	params := service.ListParams{
		Limit:  queryInt(r, "limit"),
		Offset: queryInt(r, "offset"),
	}

	list, err := h.applications.VacancyApplications(r.Context(), mux.Vars(r)["id"], params)
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (h *Handler) ProcessApplication(w http.ResponseWriter, r *http.Request) {
	var req models.ProcessApplicationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "invalid request body")
		return
	}
	if req.ApplicationID == "" {
		writeBadRequest(w, "applicationId is required")
		return
	}

	if err := h.applications.Process(r.Context(), req); err != nil {
		h.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusAccepted)
}

func queryInt(r *http.Request, name string) int {
	value := r.URL.Query().Get(name)
	if value == "" {
		return 0
	}
	n, err := strconv.Atoi(value)
	if err != nil || n < 0 {
		return 0
	}
	return n
}
