package registration

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/hashicorp/go-retryablehttp"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Ensure HTTPService implements Service interface.
var _ Service = (*HTTPService)(nil)

// HTTPService asks a remote registration service. Transient failures
// are retried; a 404 means no registration, not an error.
type HTTPService struct {
	client  *retryablehttp.Client
	baseURL string
	apiKey  string
}

func NewHTTPService(baseURL, apiKey string) *HTTPService {
	client := retryablehttp.NewClient()
	client.RetryMax = 3
	client.RetryWaitMin = 100 * time.Millisecond
	client.RetryWaitMax = 5 * time.Second
	client.Logger = nil

	return &HTTPService{
		client:  client,
		baseURL: baseURL,
		apiKey:  apiKey,
	}
}

func (s *HTTPService) HasActiveRegistration(
	ctx context.Context,
	eventID, userID uuid.UUID,
) (bool, error) {
	ctx, span := tracer.Start(ctx, "HTTPService.HasActiveRegistration", trace.WithAttributes(
		attribute.String("event.id", eventID.String()),
		attribute.String("user.id", userID.String()),
	))
	defer span.End()

	url := fmt.Sprintf(
		"%s/events/%s/registrations/%s",
		s.baseURL,
		eventID.String(),
		userID.String(),
	)

	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to construct request")
		return false, err
	}
	if s.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+s.apiKey)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to reach registration service")
		return false, err
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusNotFound:
		span.AddEvent("no registration found")
		return false, nil
	case http.StatusOK:
	default:
		err = fmt.Errorf("invalid status code: %d", resp.StatusCode)
		span.RecordError(err)
		span.SetStatus(codes.Error, "invalid status code")
		return false, err
	}

	var body struct {
		Active bool `json:"active"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to decode response")
		return false, err
	}

	span.AddEvent("checked registration")
	return body.Active, nil
}
