package service

import (
	"context"
	"io"
	"log/slog"

	"github.com/hirable/webgate/internal/apiclient"
	"github.com/hirable/webgate/internal/models"
)

type CandidateService interface {
	GetProfile(ctx context.Context) (*models.CandidateProfile, error)
	UpdateProfile(ctx context.Context, data models.UpdateCandidateRequest) (*models.CandidateProfile, error)
	UploadProfileImage(ctx context.Context, filename string, file io.Reader) (*models.UploadImageResponse, error)
	UploadResume(ctx context.Context, filename string, file io.Reader) (*models.UploadResumeResponse, error)
	DeleteProfileImage(ctx context.Context) (*models.CandidateProfile, error)
	DeleteResume(ctx context.Context) (*models.CandidateProfile, error)
}

type candidateService struct {
	client *apiclient.Client
}

func NewCandidateService(client *apiclient.Client) *candidateService {
	return &candidateService{client: client}
}

func (s *candidateService) GetProfile(ctx context.Context) (*models.CandidateProfile, error) {
	var resp models.CandidateProfile
	if err := s.client.Get(ctx, endpointCandidate, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// UpdateProfile sends only the fields the caller set. An empty string in
// ImageURL or ResumeURL becomes an explicit null, which the backend reads
// as "remove the file reference".
func (s *candidateService) UpdateProfile(ctx context.Context, data models.UpdateCandidateRequest) (*models.CandidateProfile, error) {
	payload := map[string]any{}
	if data.FullName != nil {
		payload["fullName"] = *data.FullName
	}
	if data.Phone != nil {
		payload["phone"] = *data.Phone
	}
	if data.LinkedInURL != nil {
		payload["linkedInUrl"] = *data.LinkedInURL
	}
	if data.Bio != nil {
		payload["bio"] = *data.Bio
	}
	if data.ImageURL != nil {
		payload["imageUrl"] = nullableURL(*data.ImageURL)
	}
	if data.ResumeURL != nil {
		payload["resumeUrl"] = nullableURL(*data.ResumeURL)
	}

	var resp models.CandidateProfile
	if err := s.client.Put(ctx, endpointCandidate, payload, &resp); err != nil {
		slog.Warn("profile update failed", "error", err)
		return nil, err
	}
	return &resp, nil
}

func nullableURL(value string) any {
	if value == "" {
		return nil
	}
	return value
}

func (s *candidateService) UploadProfileImage(ctx context.Context, filename string, file io.Reader) (*models.UploadImageResponse, error) {
	var resp models.UploadImageResponse
	if err := s.client.PostForm(ctx, endpointProfileImage, "file", filename, file, &resp); err != nil {
		slog.Warn("profile image upload failed", "filename", filename, "error", err)
		return nil, err
	}
	slog.Info("profile image uploaded", "url", resp.URL)
	return &resp, nil
}

func (s *candidateService) UploadResume(ctx context.Context, filename string, file io.Reader) (*models.UploadResumeResponse, error) {
	var resp models.UploadResumeResponse
	if err := s.client.PostForm(ctx, endpointCandidateResume, "file", filename, file, &resp); err != nil {
		slog.Warn("resume upload failed", "filename", filename, "error", err)
		return nil, err
	}
	slog.Info("resume uploaded", "url", resp.ResumeURL)
	return &resp, nil
}

// DeleteProfileImage removes the stored image. The backend may answer 204,
// in which case the returned profile is zero-valued.
func (s *candidateService) DeleteProfileImage(ctx context.Context) (*models.CandidateProfile, error) {
	return s.deleteFile(ctx, models.CandidateFileImage)
}

func (s *candidateService) DeleteResume(ctx context.Context) (*models.CandidateProfile, error) {
	return s.deleteFile(ctx, models.CandidateFileResume)
}

func (s *candidateService) deleteFile(ctx context.Context, fileType models.CandidateFileType) (*models.CandidateProfile, error) {
	var resp models.CandidateProfile
	if err := s.client.Delete(ctx, endpointCandidateFile+"/"+string(fileType), &resp); err != nil {
		slog.Warn("candidate file deletion failed", "type", fileType, "error", err)
		return nil, err
	}
	return &resp, nil
}
