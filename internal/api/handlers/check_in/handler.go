package check_in

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-SchedulingService/internal/api/handlers"
	checkIn "github.com/m04kA/SMC-SchedulingService/internal/usecase/check_in"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidTokenFormat = "некорректный формат токена, ожидается 3 буквы и 3 цифры"
	msgTokenNotFound      = "токен не найден"
	msgTokenExpired       = "срок действия токена истёк"
	msgTokenConsumed      = "токен уже был использован"
)

type Handler struct {
	useCase CheckInUseCase
	logger  Logger
}

func NewHandler(useCase CheckInUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/check-in
// Вызывается терминалом салона при предъявлении токена клиентом
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CheckInRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /check-in - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), checkIn.CheckInRequest{Token: req.Token})
	if err != nil {
		switch {
		case errors.Is(err, checkIn.ErrTokenFormatInvalid):
			h.logger.Warn("POST /check-in - Invalid token format: token=%q", req.Token)
			handlers.RespondBadRequest(w, msgInvalidTokenFormat)

		case errors.Is(err, checkIn.ErrTokenNotFound):
			h.logger.Warn("POST /check-in - Token not found: token=%s", req.Token)
			handlers.RespondNotFound(w, msgTokenNotFound)

		case errors.Is(err, checkIn.ErrTokenExpired):
			h.logger.Warn("POST /check-in - Token expired: token=%s", req.Token)
			handlers.RespondError(w, http.StatusGone, msgTokenExpired)

		case errors.Is(err, checkIn.ErrTokenAlreadyConsumed):
			h.logger.Warn("POST /check-in - Token already consumed: token=%s", req.Token)
			handlers.RespondError(w, http.StatusConflict, msgTokenConsumed)

		default:
			h.logger.Error("POST /check-in - Failed to check in: token=%s, error=%v", req.Token, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	response := FromUseCaseResponse(result)

	h.logger.Info("POST /check-in - Checked in: token=%s, salon_id=%d", response.Token, response.SalonID)
	handlers.RespondJSON(w, http.StatusOK, response)
}
