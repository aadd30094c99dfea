package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/hirable/webgate/internal/storage/token"
	pkgerrors "github.com/hirable/webgate/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
)

var (
	backendRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "backend_requests_total",
			Help: "Total number of requests sent to the job board backend",
		},
		[]string{"method", "status"},
	)
	backendDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "backend_request_duration_seconds",
			Help:    "Duration of backend requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method"},
	)
)

func init() {
	prometheus.MustRegister(backendRequests, backendDuration)
}

// Client is the only component that talks to the backend. It attaches the
// bearer credential when one is stored and normalizes every failure into
// *errors.APIError; no raw transport error escapes it.
type Client struct {
	baseURL string
	httpc   *http.Client
	tokens  token.Store
}

func New(baseURL string, tokens token.Store) *Client {
	return &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		httpc:   &http.Client{Timeout: 30 * time.Second},
		tokens:  tokens,
	}
}

// NewWithHTTPClient lets tests and the gateway inject their own transport.
func NewWithHTTPClient(baseURL string, tokens token.Store, httpc *http.Client) *Client {
	return &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		httpc:   httpc,
		tokens:  tokens,
	}
}

func (c *Client) url(endpoint string) string {
	return c.baseURL + "/" + strings.TrimPrefix(endpoint, "/")
}

func (c *Client) Get(ctx context.Context, endpoint string, out any) error {
	return c.do(ctx, http.MethodGet, endpoint, nil, "", out, false)
}

func (c *Client) Post(ctx context.Context, endpoint string, body, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return &pkgerrors.APIError{Status: 0, Message: "failed to encode request body", Code: "EncodeError"}
	}
	return c.do(ctx, http.MethodPost, endpoint, bytes.NewReader(payload), "application/json", out, false)
}

func (c *Client) Put(ctx context.Context, endpoint string, body, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return &pkgerrors.APIError{Status: 0, Message: "failed to encode request body", Code: "EncodeError"}
	}
	return c.do(ctx, http.MethodPut, endpoint, bytes.NewReader(payload), "application/json", out, false)
}

// Delete tolerates 204 and empty or non-JSON bodies; out is left untouched
// in that case.
func (c *Client) Delete(ctx context.Context, endpoint string, out any) error {
	return c.do(ctx, http.MethodDelete, endpoint, nil, "application/json", out, true)
}

// PostForm uploads one file as a multipart request. The content type comes
// from the multipart writer so boundary generation stays with the encoder,
// never set by hand.
func (c *Client) PostForm(ctx context.Context, endpoint, field, filename string, file io.Reader, out any) error {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile(field, filename)
	if err != nil {
		return &pkgerrors.APIError{Status: 0, Message: "failed to encode multipart body", Code: "EncodeError"}
	}
	if _, err := io.Copy(part, file); err != nil {
		return &pkgerrors.APIError{Status: 0, Message: "failed to encode multipart body", Code: "EncodeError"}
	}
	if err := writer.Close(); err != nil {
		return &pkgerrors.APIError{Status: 0, Message: "failed to encode multipart body", Code: "EncodeError"}
	}
	return c.do(ctx, http.MethodPost, endpoint, &buf, writer.FormDataContentType(), out, false)
}

func (c *Client) do(ctx context.Context, method, endpoint string, body io.Reader, contentType string, out any, tolerateEmpty bool) error {
	tracer := otel.Tracer("webgate")
	ctx, span := tracer.Start(ctx, fmt.Sprintf("backend %s %s", method, endpoint))
	defer span.End()

	req, err := http.NewRequestWithContext(ctx, method, c.url(endpoint), body)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "bad request target")
		return &pkgerrors.APIError{Status: 0, Message: "invalid request target", Code: "RequestError"}
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	req.Header.Set("X-Request-ID", uuid.NewString())

	if tok, tokErr := c.tokens.Get(ctx); tokErr == nil && tok != "" {
		req.Header.Set("Authorization", "Bearer "+tok)
	}

	start := time.Now()
	resp, err := c.httpc.Do(req)
	backendDuration.WithLabelValues(method).Observe(time.Since(start).Seconds())
	if err != nil {
		backendRequests.WithLabelValues(method, "0").Inc()
		span.RecordError(err)
		span.SetStatus(codes.Error, "transport failure")
		slog.Debug("backend unreachable", "method", method, "endpoint", endpoint, "error", err)
		return pkgerrors.NewConnectionError()
	}
	defer resp.Body.Close()

	backendRequests.WithLabelValues(method, fmt.Sprintf("%d", resp.StatusCode)).Inc()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := c.errorFromResponse(resp)
		span.SetStatus(codes.Error, apiErr.Message)
		slog.Debug("backend request failed",
			"method", method,
			"endpoint", endpoint,
			"status", apiErr.Status,
			"message", apiErr.Message)
		return apiErr
	}

	if out == nil {
		return nil
	}

	if tolerateEmpty {
		if resp.StatusCode == http.StatusNoContent {
			return nil
		}
		if !strings.Contains(resp.Header.Get("Content-Type"), "application/json") {
			return nil
		}
		data, readErr := io.ReadAll(resp.Body)
		if readErr != nil || len(bytes.TrimSpace(data)) == 0 {
			return nil
		}
		if err := json.Unmarshal(data, out); err != nil {
			return &pkgerrors.APIError{Status: resp.StatusCode, Message: "unexpected response body", Code: "DecodeError"}
		}
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		span.RecordError(err)
		return &pkgerrors.APIError{Status: resp.StatusCode, Message: "unexpected response body", Code: "DecodeError"}
	}
	return nil
}

// errorFromResponse builds the typed error from a non-2xx response, using
// the backend's {error, message} body when it parses and the status-keyed
// default message otherwise.
func (c *Client) errorFromResponse(resp *http.Response) *pkgerrors.APIError {
	var body struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}

	data, err := io.ReadAll(resp.Body)
	if err == nil {
		if jsonErr := json.Unmarshal(data, &body); jsonErr != nil {
			body.Error = "Unknown error"
			body.Message = ""
		}
	}

	message := body.Message
	if message == "" {
		message = body.Error
	}
	if message == "" || message == "Unknown error" {
		message = pkgerrors.DefaultMessage(resp.StatusCode)
	}

	return &pkgerrors.APIError{
		Status:  resp.StatusCode,
		Message: message,
		Code:    body.Error,
	}
}
