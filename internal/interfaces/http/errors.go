package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/ekspresi/itm-sub002/internal/application/dto"
	"github.com/ekspresi/itm-sub002/internal/domain"
)

// respondError traduce un error de dominio a su código HTTP. Los errores no
// reconocidos se registran con la ruta y se devuelven como 500.
func respondError(c *fiber.Ctx, err error) error {
	status, code := classify(err)
	if status == fiber.StatusInternalServerError {
		log := RequestLogger(c)
		log.Error().Err(err).
			Str("method", c.Method()).
			Str("route", c.Route().Path).
			Msg("error interno atendiendo la petición")
		return c.Status(status).JSON(dto.ErrorResponse{Code: code, Message: "error interno, intente más tarde"})
	}
	return c.Status(status).JSON(dto.ErrorResponse{Code: code, Message: err.Error()})
}

func classify(err error) (int, string) {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return fiber.StatusBadRequest, "VALIDATION"
	case errors.Is(err, domain.ErrUserNotFound), errors.Is(err, domain.ErrUnauthorized):
		return fiber.StatusUnauthorized, "UNAUTHORIZED"
	case errors.Is(err, domain.ErrForbidden):
		return fiber.StatusForbidden, "FORBIDDEN"
	case errors.Is(err, domain.ErrNoCensusesForYear):
		return fiber.StatusNotFound, "NO_DATA"
	case errors.Is(err, domain.ErrNotFound):
		return fiber.StatusNotFound, "NOT_FOUND"
	case errors.Is(err, domain.ErrEmailAlreadyExists):
		return fiber.StatusConflict, "EMAIL_EXISTS"
	case errors.Is(err, domain.ErrLocationAlreadyCensused):
		return fiber.StatusConflict, "ALREADY_CENSUSED"
	case errors.Is(err, domain.ErrConflict):
		return fiber.StatusConflict, "CONFLICT"
	case errors.Is(err, domain.ErrReportNotReady):
		return fiber.StatusConflict, "REPORT_NOT_READY"
	default:
		return fiber.StatusInternalServerError, "INTERNAL"
	}
}

func badRequest(c *fiber.Ctx, code, msg string) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: code, Message: msg})
}

func invalidBody(c *fiber.Ctx) error {
	return badRequest(c, "INVALID_BODY", "cuerpo inválido")
}
