package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/product-catalog/internal/middleware"
	"github.com/iliyamo/product-catalog/internal/queue"
	"github.com/iliyamo/product-catalog/internal/validate"
)

// envelope is the uniform response shape returned by every endpoint.
type envelope struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

func success(c echo.Context, code int, msg string, data any) error {
	return c.JSON(code, envelope{Status: "success", Message: msg, Data: data})
}

func fail(c echo.Context, code int, msg string) error {
	return c.JSON(code, envelope{Status: "error", Message: msg})
}

// validationFailed reports every violated field at once, never just the
// first.
func validationFailed(c echo.Context, errs validate.Errors) error {
	return c.JSON(http.StatusBadRequest, envelope{
		Status:  "error",
		Message: "validation failed: " + errs.Error(),
		Data:    echo.Map{"errors": errs},
	})
}

// reqCtx bounds the duration of the store calls behind a single request.
func reqCtx(c echo.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.Request().Context(), 5*time.Second)
}

// EventSink receives catalog mutation events. A nil sink disables
// publishing, which tests rely on.
type EventSink interface {
	Publish(ctx context.Context, ev queue.CatalogEvent) error
}

// emit publishes a mutation event, attributing it to the authenticated
// user when one is attached to the request. Publish failures are already
// logged by the publisher and never affect the response.
func emit(c echo.Context, sink EventSink, entity, action string, id uuid.UUID) {
	if sink == nil {
		return
	}
	ev := queue.CatalogEvent{
		Entity:     entity,
		Action:     action,
		EntityID:   id.String(),
		OccurredAt: time.Now().UTC().Format(time.RFC3339),
	}
	if u, ok := middleware.CurrentUser(c); ok {
		ev.ActorID = u.ID.String()
	}
	_ = sink.Publish(c.Request().Context(), ev)
}
