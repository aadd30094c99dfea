package service

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"

	"github.com/hirable/webgate/internal/apiclient"
	"github.com/hirable/webgate/internal/models"
)

// ListParams carries pagination for vacancy listings. A zero Limit means
// "backend default"; Offset is only sent when positive.
type ListParams struct {
	Limit  int
	Offset int
}

// FeedParams filters the candidate feed.
type FeedParams struct {
	Modality models.Modality
	Limit    int
	Offset   int
}

type VacancyService interface {
	Create(ctx context.Context, data models.CreateVacancyRequest) (*models.Vacancy, error)
	List(ctx context.Context, params ListParams) (*models.VacancyList, error)
	Update(ctx context.Context, id string, data models.UpdateVacancyRequest) (*models.Vacancy, error)
	Delete(ctx context.Context, id string) error
	ListAvailable(ctx context.Context, params FeedParams) (*models.VacancyList, error)
}

type vacancyService struct {
	client *apiclient.Client
}

func NewVacancyService(client *apiclient.Client) *vacancyService {
	return &vacancyService{client: client}
}

// Create publishes a new vacancy. Status is always OPEN on creation,
// whatever the caller set.
func (s *vacancyService) Create(ctx context.Context, data models.CreateVacancyRequest) (*models.Vacancy, error) {
	data.Status = models.VacancyOpen

	var resp models.Vacancy
	if err := s.client.Post(ctx, endpointCompanyVacancy, data, &resp); err != nil {
		slog.Warn("vacancy creation failed", "title", data.Title, "error", err)
		return nil, err
	}
	slog.Info("vacancy created", "vacancy_id", resp.ID, "title", resp.Title)
	return &resp, nil
}

func (s *vacancyService) List(ctx context.Context, params ListParams) (*models.VacancyList, error) {
	query := url.Values{}
	if params.Limit > 0 {
		query.Set("limit", fmt.Sprintf("%d", params.Limit))
	}
	if params.Offset > 0 {
		query.Set("offset", fmt.Sprintf("%d", params.Offset))
	}

	endpoint := endpointCompanyVacancy
	if encoded := query.Encode(); encoded != "" {
		endpoint += "?" + encoded
	}

	var resp models.VacancyList
	if err := s.client.Get(ctx, endpoint, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (s *vacancyService) Update(ctx context.Context, id string, data models.UpdateVacancyRequest) (*models.Vacancy, error) {
	var resp models.Vacancy
	if err := s.client.Put(ctx, endpointCompanyVacancy+"/"+id, data, &resp); err != nil {
		slog.Warn("vacancy update failed", "vacancy_id", id, "error", err)
		return nil, err
	}
	return &resp, nil
}

// Delete removes a vacancy. The backend answers 204 with no body.
func (s *vacancyService) Delete(ctx context.Context, id string) error {
	if err := s.client.Delete(ctx, endpointCompanyVacancy+"/"+id, nil); err != nil {
		slog.Warn("vacancy deletion failed", "vacancy_id", id, "error", err)
		return err
	}
	slog.Info("vacancy deleted", "vacancy_id", id)
	return nil
}

// ListAvailable returns the candidate feed: open vacancies the candidate
// has not applied to yet.
func (s *vacancyService) ListAvailable(ctx context.Context, params FeedParams) (*models.VacancyList, error) {
	query := url.Values{}
	if params.Modality != "" {
		query.Set("modality", string(params.Modality))
	}
	if params.Limit > 0 {
		query.Set("limit", fmt.Sprintf("%d", params.Limit))
	}
	if params.Offset > 0 {
		query.Set("offset", fmt.Sprintf("%d", params.Offset))
	}

	endpoint := endpointCandidateVacancies
	if encoded := query.Encode(); encoded != "" {
		endpoint += "?" + encoded
	}

	var resp models.VacancyList
	if err := s.client.Get(ctx, endpoint, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}
