package get_kitchen_schedule

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/kitchenly/KB-BookingService/internal/api/handlers"
	"github.com/kitchenly/KB-BookingService/internal/service/schedule"
)

const (
	msgInvalidKitchenID = "некорректный ID кухни"
	msgKitchenNotFound  = "кухня не найдена"
)

type Handler struct {
	service ScheduleService
	logger  Logger
}

func NewHandler(service ScheduleService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/kitchens/{kitchenId}/schedule
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	kitchenID, err := strconv.ParseInt(mux.Vars(r)["kitchenId"], 10, 64)
	if err != nil || kitchenID <= 0 {
		h.logger.Warn("GET /kitchens/{id}/schedule - Invalid kitchen ID: %s", mux.Vars(r)["kitchenId"])
		handlers.RespondBadRequest(w, msgInvalidKitchenID)
		return
	}

	result, err := h.service.GetSchedule(r.Context(), kitchenID)
	if err != nil {
		switch {
		case errors.Is(err, schedule.ErrKitchenNotFound):
			h.logger.Warn("GET /kitchens/{id}/schedule - Kitchen not found: kitchen_id=%d", kitchenID)
			handlers.RespondNotFound(w, msgKitchenNotFound)

		default:
			h.logger.Error("GET /kitchens/{id}/schedule - Failed: kitchen_id=%d, error=%v", kitchenID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /kitchens/{id}/schedule - Schedule fetched: kitchen_id=%d", kitchenID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
