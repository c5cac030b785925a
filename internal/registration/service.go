package registration

import (
	"context"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
)

var tracer = otel.Tracer(
	"github.com/hackwave-community/platform-api/internal/registration",
)

//go:generate mockgen -destination ./mock/mock.go -package mock . Service

// Service answers whether a user holds an active registration for an
// event. Submission creation and PARTICIPANTS scoped voting both gate
// on this.
type Service interface {
	HasActiveRegistration(ctx context.Context, eventID, userID uuid.UUID) (bool, error)
}
