package update_kitchen_schedule

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/kitchenly/KB-BookingService/internal/api/handlers"
	"github.com/kitchenly/KB-BookingService/internal/api/middleware"
	"github.com/kitchenly/KB-BookingService/internal/service/schedule"
	"github.com/kitchenly/KB-BookingService/internal/service/schedule/models"
)

const (
	msgInvalidKitchenID = "некорректный ID кухни"
	msgInvalidBody      = "некорректное тело запроса"
	msgKitchenNotFound  = "кухня не найдена"
	msgAccessDenied     = "изменение расписания доступно только менеджерам локации"
	msgUnauthorized     = "требуется аутентификация"
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

// Handle PUT /api/v1/kitchens/{kitchenId}/schedule
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		handlers.RespondError(w, http.StatusUnauthorized, msgUnauthorized)
		return
	}

	kitchenID, err := strconv.ParseInt(mux.Vars(r)["kitchenId"], 10, 64)
	if err != nil || kitchenID <= 0 {
		h.logger.Warn("PUT /kitchens/{id}/schedule - Invalid kitchen ID: %s", mux.Vars(r)["kitchenId"])
		handlers.RespondBadRequest(w, msgInvalidKitchenID)
		return
	}

	var req UpdateScheduleRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /kitchens/{id}/schedule - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBody)
		return
	}

	serviceReq := &models.UpdateScheduleRequest{
		KitchenID: kitchenID,
		UserID:    userID,
		Days:      req.Days,
	}

	result, err := h.service.UpdateSchedule(r.Context(), serviceReq)
	if err != nil {
		switch {
		case errors.Is(err, schedule.ErrKitchenNotFound):
			h.logger.Warn("PUT /kitchens/{id}/schedule - Kitchen not found: kitchen_id=%d", kitchenID)
			handlers.RespondNotFound(w, msgKitchenNotFound)

		case errors.Is(err, schedule.ErrAccessDenied):
			h.logger.Warn("PUT /kitchens/{id}/schedule - Access denied: kitchen_id=%d, user_id=%d", kitchenID, userID)
			handlers.RespondForbidden(w, msgAccessDenied)

		case errors.Is(err, schedule.ErrInvalidInput):
			h.logger.Warn("PUT /kitchens/{id}/schedule - Invalid input: kitchen_id=%d: %v", kitchenID, err)
			handlers.RespondBadRequest(w, msgInvalidBody)

		default:
			h.logger.Error("PUT /kitchens/{id}/schedule - Failed: kitchen_id=%d, error=%v", kitchenID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /kitchens/{id}/schedule - Schedule updated: kitchen_id=%d, user_id=%d", kitchenID, userID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
