package get_kitchen_config

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/kitchenly/KB-BookingService/internal/api/handlers"
	"github.com/kitchenly/KB-BookingService/internal/service/kitchens"
)

const (
	msgInvalidKitchenID = "некорректный ID кухни"
	msgKitchenNotFound  = "кухня не найдена"
)

type Handler struct {
	service KitchenService
	logger  Logger
}

func NewHandler(service KitchenService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/kitchens/{kitchenId}/config
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	kitchenID, err := strconv.ParseInt(mux.Vars(r)["kitchenId"], 10, 64)
	if err != nil || kitchenID <= 0 {
		h.logger.Warn("GET /kitchens/{id}/config - Invalid kitchen ID: %s", mux.Vars(r)["kitchenId"])
		handlers.RespondBadRequest(w, msgInvalidKitchenID)
		return
	}

	config, err := h.service.GetConfig(r.Context(), kitchenID)
	if err != nil {
		switch {
		case errors.Is(err, kitchens.ErrKitchenNotFound):
			h.logger.Warn("GET /kitchens/{id}/config - Kitchen not found: kitchen_id=%d", kitchenID)
			handlers.RespondNotFound(w, msgKitchenNotFound)

		default:
			h.logger.Error("GET /kitchens/{id}/config - Failed: kitchen_id=%d, error=%v", kitchenID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /kitchens/{id}/config - Config fetched: kitchen_id=%d", kitchenID)
	handlers.RespondJSON(w, http.StatusOK, config)
}
