package service

import (
	"context"
	"log/slog"

	"github.com/hirable/webgate/internal/apiclient"
	"github.com/hirable/webgate/internal/models"
)

type TagService interface {
	Tags(ctx context.Context) ([]models.Tag, error)
}

type tagService struct {
	client *apiclient.Client
}

func NewTagService(client *apiclient.Client) *tagService {
	return &tagService{client: client}
}

// Tags fetches the available skill tags. When the backend is unreachable
// or the endpoint is missing the static fallback list is returned instead,
// so tag pickers keep working.
func (s *tagService) Tags(ctx context.Context) ([]models.Tag, error) {
	var tags []models.Tag
	if err := s.client.Get(ctx, endpointTags, &tags); err != nil {
		slog.Warn("tags endpoint unavailable, using fallback list", "error", err)
		return fallbackTags(), nil
	}
	return tags, nil
}

func fallbackTags() []models.Tag {
	return []models.Tag{
		{ID: 1, Name: "React"},
		{ID: 2, Name: "Node.js"},
		{ID: 3, Name: "Python"},
		{ID: 4, Name: "TypeScript"},
		{ID: 5, Name: "JavaScript"},
		{ID: 6, Name: "Design"},
		{ID: 7, Name: "Marketing"},
		{ID: 8, Name: "Backend"},
		{ID: 9, Name: "Frontend"},
		{ID: 10, Name: "DevOps"},
		{ID: 11, Name: "Java"},
		{ID: 12, Name: "C#"},
		{ID: 13, Name: "Go"},
		{ID: 14, Name: "Ruby"},
		{ID: 15, Name: "PHP"},
	}
}
