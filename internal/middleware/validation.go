package middleware

import (
	"catalog/internal/validation"

	"github.com/gofiber/fiber/v2"
)

const validatedBodyKey = "validated_body"

// MsgInvalidBody is returned when the request body is not a JSON object.
const MsgInvalidBody = "Cuerpo de solicitud inválido"

// ValidateBody parses the JSON body and runs rules against it. When any rule
// fails the request ends with 400 and the issue list; otherwise the parsed
// body is stored for the handler.
func ValidateBody(rules []validation.Rule) fiber.Handler {
	return func(c *fiber.Ctx) error {
		body := make(map[string]interface{})
		if len(c.Body()) > 0 {
			if err := c.BodyParser(&body); err != nil {
				return fiber.NewError(fiber.StatusBadRequest, MsgInvalidBody)
			}
		}

		if issues := validation.Run(body, rules); len(issues) > 0 {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"errors": issues,
			})
		}

		c.Locals(validatedBodyKey, body)
		return c.Next()
	}
}

// ValidatedBody returns the body stored by ValidateBody.
func ValidatedBody(c *fiber.Ctx) map[string]interface{} {
	body, ok := c.Locals(validatedBodyKey).(map[string]interface{})
	if !ok {
		return map[string]interface{}{}
	}
	return body
}
