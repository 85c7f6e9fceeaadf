package handler

import (
	"wordgame-service/domain"
	middleware "wordgame-service/internal/handler"

	"github.com/gofiber/fiber/v2"
)

// callerSession returns the identity set by the auth middleware.
func callerSession(fbrCtx *fiber.Ctx) (domain.Session, int, error) {
	s, ok := middleware.SessionFrom(fbrCtx)
	if !ok {
		// İstek Authenticate'den geçmiş olmalı; yine de kontrol ediyoruz.
		return domain.Session{}, fiber.StatusUnauthorized, domain.ErrUnauthorized
	}
	return s, fiber.StatusOK, nil
}
