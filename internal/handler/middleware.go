package handler

import (
	"context"
	"errors"

	"wordgame-service/domain"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

var validate = validator.New()

func HandleWithFiber[R Request, Res Response](handler FiberHandler[R, Res]) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req R

		if err := parseRequest(c, &req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
		}

		if err := validate.Struct(req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "validation failed", "details": err.Error()})
		}

		ctx := c.UserContext()
		res, status, err := handler.Handle(c, ctx, &req)
		if err != nil {
			if status >= fiber.StatusInternalServerError {
				zap.L().Error("Failed to handle request", zap.String("path", c.Path()), zap.Error(err))
			} else {
				zap.L().Debug("Request rejected", zap.String("path", c.Path()), zap.Int("status", status), zap.Error(err))
			}
			return c.Status(status).JSON(fiber.Map{"error": err.Error()})
		}
		if status == 0 {
			status = fiber.StatusOK
		}
		return c.Status(status).JSON(res)
	}
}

func parseRequest[R any](c *fiber.Ctx, req *R) error {
	if len(c.Body()) > 0 {
		if err := c.BodyParser(req); err != nil && !errors.Is(err, fiber.ErrUnprocessableEntity) {
			return err
		}
	}

	if err := c.ParamsParser(req); err != nil {
		return err
	}

	if err := c.QueryParser(req); err != nil {
		return err
	}

	if err := c.ReqHeaderParser(req); err != nil {
		return err
	}

	return nil
}

// HandleWithFiberWS upgrades the connection and carries the session resolved
// by the auth middleware into ctx.
func HandleWithFiberWS[R Request](handler FiberWSHandler[R]) fiber.Handler {
	return websocket.New(func(c *websocket.Conn) {
		var req R
		ctx := context.Background()
		if s, ok := c.Locals(SessionKey).(domain.Session); ok {
			ctx = WithSession(ctx, s)
		}

		handler.HandleWS(c, ctx, &req)
	})
}

// UpgradeOnly rejects plain HTTP requests on websocket routes.
func UpgradeOnly() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	}
}
