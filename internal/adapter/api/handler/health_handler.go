package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"resqnet/internal/domain/repository"
)

type HealthHandler struct {
	store   repository.EntityStore
	backend string
}

func NewHealthHandler(store repository.EntityStore, backend string) *HealthHandler {
	return &HealthHandler{
		store:   store,
		backend: backend,
	}
}

func (h *HealthHandler) CheckHealth(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status": "Server is running",
		"time":   time.Now().Format(time.RFC3339),
	})
}

// CheckStoreHealth reads the schema metadata record from the entity store.
func (h *HealthHandler) CheckStoreHealth(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 3*time.Second)
	defer cancel()

	rec, ok, err := h.store.Load(ctx, repository.MetaKey)
	if err != nil {
		return c.JSON(http.StatusServiceUnavailable, map[string]string{
			"status":  "Entity store unreachable",
			"backend": h.backend,
			"error":   err.Error(),
		})
	}
	if !ok {
		return c.JSON(http.StatusServiceUnavailable, map[string]string{
			"status":  "Entity store not initialized",
			"backend": h.backend,
		})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"status":   "Entity store reachable",
		"backend":  h.backend,
		"revision": rec.Revision,
	})
}
