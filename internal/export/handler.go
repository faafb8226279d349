package export

import (
	"fmt"
	"net/http"
	"time"

	"github.com/bloomwell/wellness-platform/pkg/logging"
)

// Handler handles HTTP requests for directory exports
type Handler struct {
	service *Service
	logger  *logging.Logger
}

// NewHandler creates a new export handler
func NewHandler(service *Service, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}
	return &Handler{service: service, logger: logger}
}

// Export handles GET /admin/companies/export?format=csv|xlsx requests
func (h *Handler) Export(w http.ResponseWriter, r *http.Request) {
	format, err := ParseFormat(r.URL.Query().Get("format"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	filename := fmt.Sprintf("directorio-%s.%s", time.Now().Format("2006-01-02"), format)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))

	switch format {
	case FormatCSV:
		w.Header().Set("Content-Type", "text/csv; charset=utf-8")
		err = h.service.WriteCSV(r.Context(), w)
	case FormatXLSX:
		w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		err = h.service.WriteXLSX(r.Context(), w)
	}
	if err != nil {
		h.logger.Error("failed to export directory", "format", format, "error", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	h.logger.Info("directory exported", "format", format)
}
