package service

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/hirable/webgate/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVacancyService_Create(t *testing.T) {
	stub := newBackendStub(t, http.StatusCreated, `{"id":"v1","title":"Backend Dev","status":"OPEN"}`)
	svc := NewVacancyService(stub.client())

	vacancy, err := svc.Create(context.Background(), models.CreateVacancyRequest{
		Title:    "Backend Dev",
		Modality: models.ModalityRemote,
		Status:   models.VacancyClosed, // whatever the caller set
	})
	require.NoError(t, err)
	assert.Equal(t, "v1", vacancy.ID)

	assert.Equal(t, http.MethodPost, stub.method)
	assert.Equal(t, "/company/vacancy", stub.path)

	var sent models.CreateVacancyRequest
	require.NoError(t, json.Unmarshal(stub.body, &sent))
	assert.Equal(t, models.VacancyOpen, sent.Status)
}

func TestVacancyService_List(t *testing.T) {
	t.Run("zero params send no query", func(t *testing.T) {
		stub := newBackendStub(t, http.StatusOK, `{"vacancies":[],"total":0}`)
		svc := NewVacancyService(stub.client())

		_, err := svc.List(context.Background(), ListParams{})
		require.NoError(t, err)
		assert.Equal(t, "/company/vacancy", stub.path)
		assert.Empty(t, stub.query)
	})

	t.Run("positive params are sent", func(t *testing.T) {
		stub := newBackendStub(t, http.StatusOK, `{"vacancies":[],"total":0}`)
		svc := NewVacancyService(stub.client())

		_, err := svc.List(context.Background(), ListParams{Limit: 20, Offset: 40})
		require.NoError(t, err)
		assert.Equal(t, "limit=20&offset=40", stub.query)
	})
}

func TestVacancyService_Update(t *testing.T) {
	stub := newBackendStub(t, http.StatusOK, `{"id":"v1","title":"Backend Dev","status":"CLOSED"}`)
	svc := NewVacancyService(stub.client())

	vacancy, err := svc.Update(context.Background(), "v1", models.UpdateVacancyRequest{
		Title:  "Backend Dev",
		Status: models.VacancyClosed,
	})
	require.NoError(t, err)
	assert.Equal(t, models.VacancyClosed, vacancy.Status)

	assert.Equal(t, http.MethodPut, stub.method)
	assert.Equal(t, "/company/vacancy/v1", stub.path)
}

func TestVacancyService_Delete(t *testing.T) {
	stub := newBackendStub(t, http.StatusNoContent, "")
	svc := NewVacancyService(stub.client())

	require.NoError(t, svc.Delete(context.Background(), "v1"))
	assert.Equal(t, http.MethodDelete, stub.method)
	assert.Equal(t, "/company/vacancy/v1", stub.path)
}

func TestVacancyService_ListAvailable(t *testing.T) {
	t.Run("modality filter", func(t *testing.T) {
		stub := newBackendStub(t, http.StatusOK, `{"vacancies":[{"id":"v1"}],"total":1}`)
		svc := NewVacancyService(stub.client())

		list, err := svc.ListAvailable(context.Background(), FeedParams{Modality: models.ModalityRemote, Limit: 10})
		require.NoError(t, err)
		assert.Equal(t, 1, list.Total)

		assert.Equal(t, "/candidate/vacancy", stub.path)
		assert.Equal(t, "limit=10&modality=REMOTE", stub.query)
	})

	t.Run("no filters", func(t *testing.T) {
		stub := newBackendStub(t, http.StatusOK, `{"vacancies":[],"total":0}`)
		svc := NewVacancyService(stub.client())

		_, err := svc.ListAvailable(context.Background(), FeedParams{})
		require.NoError(t, err)
		assert.Empty(t, stub.query)
	})
}
