package confirm_booking

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/kitchenly/KB-BookingService/internal/api/handlers"
	"github.com/kitchenly/KB-BookingService/internal/api/middleware"
	"github.com/kitchenly/KB-BookingService/internal/service/bookings"
	"github.com/kitchenly/KB-BookingService/internal/service/bookings/models"
)

const (
	msgInvalidBookingID   = "некорректный ID бронирования"
	msgBookingNotFound    = "бронирование не найдено"
	msgAccessDenied       = "подтверждение доступно только менеджерам локации"
	msgCannotConfirm      = "отменённое бронирование нельзя подтвердить"
	msgLicenseNotApproved = "лицензия локации не одобрена"
	msgUnauthorized       = "требуется аутентификация"
)

type Handler struct {
	service BookingService
	logger  Logger
}

func NewHandler(service BookingService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/bookings/{bookingId}/confirm
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		handlers.RespondError(w, http.StatusUnauthorized, msgUnauthorized)
		return
	}

	bookingID, err := strconv.ParseInt(mux.Vars(r)["bookingId"], 10, 64)
	if err != nil || bookingID <= 0 {
		h.logger.Warn("PATCH /bookings/{id}/confirm - Invalid booking ID: %s", mux.Vars(r)["bookingId"])
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	serviceReq := &models.ConfirmBookingRequest{UserID: userID}

	booking, err := h.service.Confirm(r.Context(), bookingID, serviceReq)
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrBookingNotFound):
			h.logger.Warn("PATCH /bookings/{id}/confirm - Booking not found: booking_id=%d", bookingID)
			handlers.RespondNotFound(w, msgBookingNotFound)

		case errors.Is(err, bookings.ErrAccessDenied):
			h.logger.Warn("PATCH /bookings/{id}/confirm - Access denied: booking_id=%d, user_id=%d", bookingID, userID)
			handlers.RespondForbidden(w, msgAccessDenied)

		case errors.Is(err, bookings.ErrCannotConfirm):
			h.logger.Warn("PATCH /bookings/{id}/confirm - Cannot confirm cancelled: booking_id=%d", bookingID)
			handlers.RespondError(w, http.StatusConflict, msgCannotConfirm)

		case errors.Is(err, bookings.ErrLicenseNotApproved):
			h.logger.Warn("PATCH /bookings/{id}/confirm - License not approved: booking_id=%d", bookingID)
			handlers.RespondError(w, http.StatusConflict, msgLicenseNotApproved)

		default:
			h.logger.Error("PATCH /bookings/{id}/confirm - Failed: booking_id=%d, error=%v", bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /bookings/{id}/confirm - Booking confirmed: booking_id=%d, user_id=%d", bookingID, userID)
	handlers.RespondJSON(w, http.StatusOK, booking)
}
