package create_booking

import (
	"errors"
	"net/http"

	"github.com/kitchenly/KB-BookingService/internal/api/handlers"
	"github.com/kitchenly/KB-BookingService/internal/api/middleware"
	createBooking "github.com/kitchenly/KB-BookingService/internal/usecase/create_booking"
)

const (
	msgInvalidRequestBody   = "некорректное тело запроса"
	msgInvalidDate          = "некорректный формат даты бронирования, ожидается YYYY-MM-DD"
	msgKitchenNotFound      = "кухня не найдена"
	msgNotEligible          = "нет одобренной заявки на эту локацию"
	msgLicenseNotApproved   = "лицензия локации не одобрена"
	msgTooSoonToBook        = "до начала бронирования меньше минимального окна"
	msgDailyLimitExceeded   = "превышен дневной лимит бронирований"
	msgSlotConflict         = "выбранный интервал уже занят"
	msgKitchenClosed        = "кухня закрыта в выбранное время"
	msgInvalidRange         = "некорректный интервал бронирования"
	msgExternalOnlyManagers = "внешнее бронирование доступно только менеджерам локации"
	msgUnauthorized         = "требуется аутентификация"
)

type Handler struct {
	useCase CreateBookingUseCase
	logger  Logger
}

func NewHandler(useCase CreateBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		handlers.RespondError(w, http.StatusUnauthorized, msgUnauthorized)
		return
	}

	var req CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	// Конвертируем HTTP запрос в модель use case (с парсингом даты и времени)
	useCaseReq, err := req.ToUseCaseRequest(userID)
	if err != nil {
		h.logger.Warn("POST /bookings - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, createBooking.ErrKitchenNotFound):
			h.logger.Warn("POST /bookings - Kitchen not found: kitchen_id=%d", req.KitchenID)
			handlers.RespondNotFound(w, msgKitchenNotFound)

		case errors.Is(err, createBooking.ErrNotEligible):
			h.logger.Warn("POST /bookings - Chef not eligible: user_id=%d, kitchen_id=%d", userID, req.KitchenID)
			handlers.RespondForbidden(w, msgNotEligible)

		case errors.Is(err, createBooking.ErrForbidden):
			h.logger.Warn("POST /bookings - External booking by non-manager: user_id=%d, kitchen_id=%d", userID, req.KitchenID)
			handlers.RespondForbidden(w, msgExternalOnlyManagers)

		case errors.Is(err, createBooking.ErrLicenseNotApproved):
			h.logger.Warn("POST /bookings - License not approved: kitchen_id=%d", req.KitchenID)
			handlers.RespondError(w, http.StatusConflict, msgLicenseNotApproved)

		case errors.Is(err, createBooking.ErrTooSoonToBook):
			h.logger.Warn("POST /bookings - Too soon to book: user_id=%d, kitchen_id=%d", userID, req.KitchenID)
			handlers.RespondBadRequest(w, msgTooSoonToBook)

		case errors.Is(err, createBooking.ErrDailyLimitExceeded):
			h.logger.Warn("POST /bookings - Daily limit exceeded: user_id=%d, kitchen_id=%d", userID, req.KitchenID)
			handlers.RespondError(w, http.StatusConflict, msgDailyLimitExceeded)

		case errors.Is(err, createBooking.ErrSlotConflict):
			h.logger.Warn("POST /bookings - Slot conflict: user_id=%d, kitchen_id=%d", userID, req.KitchenID)
			handlers.RespondError(w, http.StatusConflict, msgSlotConflict)

		case errors.Is(err, createBooking.ErrKitchenClosed):
			h.logger.Warn("POST /bookings - Kitchen closed: kitchen_id=%d", req.KitchenID)
			handlers.RespondBadRequest(w, msgKitchenClosed)

		case errors.Is(err, createBooking.ErrInvalidRange):
			h.logger.Warn("POST /bookings - Invalid range: user_id=%d, kitchen_id=%d", userID, req.KitchenID)
			handlers.RespondBadRequest(w, msgInvalidRange)

		case errors.Is(err, createBooking.ErrInvalidInput):
			h.logger.Warn("POST /bookings - Invalid input: user_id=%d, kitchen_id=%d: %v", userID, req.KitchenID, err)
			handlers.RespondBadRequest(w, msgInvalidRequestBody)

		default:
			h.logger.Error("POST /bookings - Failed to create booking: user_id=%d, kitchen_id=%d, error=%v",
				userID, req.KitchenID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	response := FromUseCaseResponse(result)

	h.logger.Info("POST /bookings - Booking created successfully: booking_id=%d, user_id=%d, kitchen_id=%d",
		result.ID, userID, req.KitchenID)
	handlers.RespondJSON(w, http.StatusCreated, response)
}
