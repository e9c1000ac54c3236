package create_override

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/kitchenly/KB-BookingService/internal/api/handlers"
	"github.com/kitchenly/KB-BookingService/internal/api/middleware"
	"github.com/kitchenly/KB-BookingService/internal/service/schedule"
)

const (
	msgInvalidKitchenID = "некорректный ID кухни"
	msgInvalidBody      = "некорректное тело запроса"
	msgInvalidDate      = "некорректный формат даты, ожидается YYYY-MM-DD"
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

// Handle POST /api/v1/kitchens/{kitchenId}/overrides
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		handlers.RespondError(w, http.StatusUnauthorized, msgUnauthorized)
		return
	}

	kitchenID, err := strconv.ParseInt(mux.Vars(r)["kitchenId"], 10, 64)
	if err != nil || kitchenID <= 0 {
		h.logger.Warn("POST /kitchens/{id}/overrides - Invalid kitchen ID: %s", mux.Vars(r)["kitchenId"])
		handlers.RespondBadRequest(w, msgInvalidKitchenID)
		return
	}

	var req CreateOverrideRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /kitchens/{id}/overrides - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBody)
		return
	}

	serviceReq, err := req.ToServiceRequest(kitchenID, userID)
	if err != nil {
		h.logger.Warn("POST /kitchens/{id}/overrides - Invalid date: %s", req.Date)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	override, err := h.service.CreateOverride(r.Context(), serviceReq)
	if err != nil {
		switch {
		case errors.Is(err, schedule.ErrKitchenNotFound):
			h.logger.Warn("POST /kitchens/{id}/overrides - Kitchen not found: kitchen_id=%d", kitchenID)
			handlers.RespondNotFound(w, msgKitchenNotFound)

		case errors.Is(err, schedule.ErrAccessDenied):
			h.logger.Warn("POST /kitchens/{id}/overrides - Access denied: kitchen_id=%d, user_id=%d", kitchenID, userID)
			handlers.RespondForbidden(w, msgAccessDenied)

		case errors.Is(err, schedule.ErrInvalidInput):
			h.logger.Warn("POST /kitchens/{id}/overrides - Invalid input: kitchen_id=%d: %v", kitchenID, err)
			handlers.RespondBadRequest(w, msgInvalidBody)

		default:
			h.logger.Error("POST /kitchens/{id}/overrides - Failed: kitchen_id=%d, error=%v", kitchenID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /kitchens/{id}/overrides - Override created: override_id=%d, kitchen_id=%d", override.ID, kitchenID)
	handlers.RespondJSON(w, http.StatusCreated, override)
}
