package get_daily_policy

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/kitchenly/KB-BookingService/internal/api/handlers"
	"github.com/kitchenly/KB-BookingService/internal/domain"
	"github.com/kitchenly/KB-BookingService/internal/service/schedule"
)

const (
	msgInvalidKitchenID = "некорректный ID кухни"
	msgInvalidDate      = "некорректный параметр date, ожидается YYYY-MM-DD"
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

// Handle GET /api/v1/kitchens/{kitchenId}/daily-policy?date=YYYY-MM-DD
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	kitchenID, err := strconv.ParseInt(mux.Vars(r)["kitchenId"], 10, 64)
	if err != nil || kitchenID <= 0 {
		h.logger.Warn("GET /kitchens/{id}/daily-policy - Invalid kitchen ID: %s", mux.Vars(r)["kitchenId"])
		handlers.RespondBadRequest(w, msgInvalidKitchenID)
		return
	}

	date, err := time.Parse(domain.DateFormat, r.URL.Query().Get("date"))
	if err != nil {
		h.logger.Warn("GET /kitchens/{id}/daily-policy - Invalid date: %s", r.URL.Query().Get("date"))
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	policy, err := h.service.GetDailyPolicy(r.Context(), kitchenID, date)
	if err != nil {
		switch {
		case errors.Is(err, schedule.ErrKitchenNotFound):
			h.logger.Warn("GET /kitchens/{id}/daily-policy - Kitchen not found: kitchen_id=%d", kitchenID)
			handlers.RespondNotFound(w, msgKitchenNotFound)

		default:
			h.logger.Error("GET /kitchens/{id}/daily-policy - Failed: kitchen_id=%d, error=%v", kitchenID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /kitchens/{id}/daily-policy - Policy fetched: kitchen_id=%d, date=%s",
		kitchenID, date.Format(domain.DateFormat))
	handlers.RespondJSON(w, http.StatusOK, policy)
}
