package service

import (
	"context"
	"log/slog"
	"strings"

	"github.com/hirable/webgate/internal/apiclient"
	"github.com/hirable/webgate/internal/models"
)

type AuthService interface {
	Login(ctx context.Context, email, password string) (*models.LoginResponse, error)
	RegisterCandidate(ctx context.Context, data models.CandidateSignup) (*models.RegisterResponse, error)
	RegisterEmployer(ctx context.Context, data models.EmployerSignup) (*models.RegisterResponse, error)
}

type authService struct {
	client *apiclient.Client
}

func NewAuthService(client *apiclient.Client) *authService {
	return &authService{client: client}
}

func (s *authService) Login(ctx context.Context, email, password string) (*models.LoginResponse, error) {
	req := struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}{Email: email, Password: password}

	var resp models.LoginResponse
	if err := s.client.Post(ctx, endpointLogin, req, &resp); err != nil {
		slog.Warn("login request failed", "email", email, "error", err)
		return nil, err
	}
	return &resp, nil
}

func (s *authService) RegisterCandidate(ctx context.Context, data models.CandidateSignup) (*models.RegisterResponse, error) {
	req := models.RegisterRequest{
		User: models.RegisterUser{
			Email:    data.Email,
			Password: data.Password,
			Role:     models.RoleCandidate,
			Phone:    data.Phone,
		},
		Candidate: &models.RegisterCandidate{
			FullName: data.FullName,
			Bio:      "",
			Phone:    data.Phone,
		},
	}

	var resp models.RegisterResponse
	if err := s.client.Post(ctx, endpointRegister, req, &resp); err != nil {
		slog.Warn("candidate registration failed", "email", data.Email, "error", err)
		return nil, err
	}
	slog.Info("candidate registered", "email", data.Email)
	return &resp, nil
}

func (s *authService) RegisterEmployer(ctx context.Context, data models.EmployerSignup) (*models.RegisterResponse, error) {
	req := models.RegisterRequest{
		User: models.RegisterUser{
			Email:    data.Email,
			Password: data.Password,
			Role:     models.RoleEmployer,
			Phone:    data.Phone,
		},
		Company: &models.RegisterCompany{
			Name:        data.CompanyName,
			Document:    normalizeCNPJ(data.CNPJ),
			ContactName: data.ContactName,
			Phone:       data.Phone,
		},
	}

	var resp models.RegisterResponse
	if err := s.client.Post(ctx, endpointRegister, req, &resp); err != nil {
		slog.Warn("employer registration failed", "email", data.Email, "error", err)
		return nil, err
	}
	slog.Info("employer registered", "email", data.Email)
	return &resp, nil
}

// normalizeCNPJ keeps only the digits of the company document.
func normalizeCNPJ(cnpj string) string {
	var b strings.Builder
	for _, r := range cnpj {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
