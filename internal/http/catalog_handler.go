package http

import (
	"context"
	"net/http"

	"github.com/LegacyPlugin/platform-app/internal/domain"
)

type CatalogSource interface {
	Plugins(ctx context.Context) ([]domain.Plugin, error)
}

type CatalogHandler struct {
	catalog CatalogSource
}

func NewCatalogHandler(catalog CatalogSource) *CatalogHandler {
	return &CatalogHandler{catalog: catalog}
}

// GET /api/v1/store/plugins
func (h *CatalogHandler) List(w http.ResponseWriter, r *http.Request) {
	plugins, err := h.catalog.Plugins(r.Context())
	if err != nil {
		respondUpstreamError(w, err)
		return
	}
	if plugins == nil {
		plugins = []domain.Plugin{}
	}
	respondJSON(w, http.StatusOK, plugins)
}
