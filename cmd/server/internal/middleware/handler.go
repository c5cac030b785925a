package middleware

import (
	"go.opentelemetry.io/otel"
	"gorm.io/gorm"
)

const name string = "github.com/hackwave-community/platform-api/server/middleware"

var tracer = otel.Tracer(name)

// Handler carries the shared state middleware needs.
type Handler struct {
	DB *gorm.DB
}

func NewHandler(db *gorm.DB) *Handler {
	return &Handler{DB: db}
}
