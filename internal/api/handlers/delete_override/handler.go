package delete_override

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
	msgInvalidKitchenID  = "некорректный ID кухни"
	msgInvalidOverrideID = "некорректный ID override-записи"
	msgKitchenNotFound   = "кухня не найдена"
	msgOverrideNotFound  = "override-запись не найдена"
	msgAccessDenied      = "изменение расписания доступно только менеджерам локации"
	msgUnauthorized      = "требуется аутентификация"
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

// Handle DELETE /api/v1/kitchens/{kitchenId}/overrides/{overrideId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		handlers.RespondError(w, http.StatusUnauthorized, msgUnauthorized)
		return
	}

	vars := mux.Vars(r)

	kitchenID, err := strconv.ParseInt(vars["kitchenId"], 10, 64)
	if err != nil || kitchenID <= 0 {
		h.logger.Warn("DELETE /kitchens/{id}/overrides/{overrideId} - Invalid kitchen ID: %s", vars["kitchenId"])
		handlers.RespondBadRequest(w, msgInvalidKitchenID)
		return
	}

	overrideID, err := strconv.ParseInt(vars["overrideId"], 10, 64)
	if err != nil || overrideID <= 0 {
		h.logger.Warn("DELETE /kitchens/{id}/overrides/{overrideId} - Invalid override ID: %s", vars["overrideId"])
		handlers.RespondBadRequest(w, msgInvalidOverrideID)
		return
	}

	if err := h.service.DeleteOverride(r.Context(), kitchenID, overrideID, userID); err != nil {
		switch {
		case errors.Is(err, schedule.ErrKitchenNotFound):
			h.logger.Warn("DELETE /kitchens/{id}/overrides/{overrideId} - Kitchen not found: kitchen_id=%d", kitchenID)
			handlers.RespondNotFound(w, msgKitchenNotFound)

		case errors.Is(err, schedule.ErrOverrideNotFound):
			h.logger.Warn("DELETE /kitchens/{id}/overrides/{overrideId} - Override not found: override_id=%d", overrideID)
			handlers.RespondNotFound(w, msgOverrideNotFound)

		case errors.Is(err, schedule.ErrAccessDenied):
			h.logger.Warn("DELETE /kitchens/{id}/overrides/{overrideId} - Access denied: kitchen_id=%d, user_id=%d", kitchenID, userID)
			handlers.RespondForbidden(w, msgAccessDenied)

		default:
			h.logger.Error("DELETE /kitchens/{id}/overrides/{overrideId} - Failed: override_id=%d, error=%v", overrideID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /kitchens/{id}/overrides/{overrideId} - Override deleted: override_id=%d, kitchen_id=%d", overrideID, kitchenID)
	w.WriteHeader(http.StatusNoContent)
}
