package service

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"

	"github.com/hirable/webgate/internal/apiclient"
	"github.com/hirable/webgate/internal/models"
	pkgerrors "github.com/hirable/webgate/pkg/errors"
)

type JobApplicationService interface {
	Apply(ctx context.Context, vacancyID string) (*models.JobApplication, error)
	List(ctx context.Context) (*models.ApplicationList, error)
	VacancyApplications(ctx context.Context, vacancyID string, params ListParams) (*models.ApplicationList, error)
	Process(ctx context.Context, data models.ProcessApplicationRequest) error
}

type jobApplicationService struct {
	client *apiclient.Client
}

func NewJobApplicationService(client *apiclient.Client) *jobApplicationService {
	return &jobApplicationService{client: client}
}

func (s *jobApplicationService) Apply(ctx context.Context, vacancyID string) (*models.JobApplication, error) {
	req := struct {
		VacancyID string `json:"vacancyId"`
	}{VacancyID: vacancyID}

	var resp models.JobApplication
	if err := s.client.Post(ctx, endpointApply, req, &resp); err != nil {
		slog.Warn("job application failed", "vacancy_id", vacancyID, "error", err)
		return nil, err
	}
	slog.Info("applied to vacancy", "vacancy_id", vacancyID, "application_id", resp.ID)
	return &resp, nil
}

func (s *jobApplicationService) List(ctx context.Context) (*models.ApplicationList, error) {
	var resp models.ApplicationList
	if err := s.client.Get(ctx, endpointApplications, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (s *jobApplicationService) VacancyApplications(ctx context.Context, vacancyID string, params ListParams) (*models.ApplicationList, error) {
	query := url.Values{}
	if params.Limit > 0 {
		query.Set("limit", fmt.Sprintf("%d", params.Limit))
	}
	if params.Offset > 0 {
		query.Set("offset", fmt.Sprintf("%d", params.Offset))
	}

	endpoint := fmt.Sprintf(endpointVacancyApps, vacancyID)
	if encoded := query.Encode(); encoded != "" {
		endpoint += "?" + encoded
	}

	var resp models.ApplicationList
	if err := s.client.Get(ctx, endpoint, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Process updates an application's status. Rejections never carry a
// candidate notification; the backend would send a rejection email and the
// product rule forbids that.
func (s *jobApplicationService) Process(ctx context.Context, data models.ProcessApplicationRequest) error {
	if data.Status == models.ApplicationRejected && data.SendMessage {
		return pkgerrors.ErrRejectedWithMessage
	}

	if err := s.client.Post(ctx, endpointProcessApplication, data, nil); err != nil {
		slog.Warn("application processing failed",
			"application_id", data.ApplicationID,
			"status", data.Status,
			"error", err)
		return err
	}
	slog.Info("application processed", "application_id", data.ApplicationID, "status", data.Status)
	return nil
}
