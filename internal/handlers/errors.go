package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Messages returned under the "error" key.
const (
	MsgInvalidID       = "ID inválido"
	MsgIDNotNumber     = "ID debe ser un número"
	MsgProductNotFound = "Producto no encontrado"
	MsgProductDeleted  = "Producto Eliminado"
	MsgInternalError   = "Error interno del servidor"
)

var (
	ErrInvalidID       = fiber.NewError(fiber.StatusBadRequest, MsgInvalidID)
	ErrIDNotNumber     = fiber.NewError(fiber.StatusBadRequest, MsgIDNotNumber)
	ErrProductNotFound = fiber.NewError(fiber.StatusNotFound, MsgProductNotFound)
)

// ErrorHandler renders *fiber.Error values as {"error": message} with their
// status code. Anything else is logged and reported as a 500.
func ErrorHandler(logger *zap.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		var fe *fiber.Error
		if errors.As(err, &fe) {
			return c.Status(fe.Code).JSON(fiber.Map{
				"error": fe.Message,
			})
		}

		logger.Error("request failed",
			zap.String("method", c.Method()),
			zap.String("path", c.Path()),
			zap.Error(err),
		)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": MsgInternalError,
		})
	}
}
