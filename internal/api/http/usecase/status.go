package httpUsecase

import (
	"errors"
	"net/http"

	"wordgame-service/domain"
)

// StatusFor maps engine errors to HTTP statuses.
func StatusFor(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, domain.ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrConflict):
		return http.StatusConflict
	case errors.Is(err, domain.ErrTransient):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func publicRooms(rooms []*domain.Room) []*domain.Room {
	out := make([]*domain.Room, 0, len(rooms))
	for _, r := range rooms {
		out = append(out, r.Public())
	}
	return out
}
