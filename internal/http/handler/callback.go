package handler

import (
	"github.com/gofiber/fiber/v2"

	"hancock/internal/model"
	"hancock/internal/service"
)

// ListCallbacks returns the account's Connect configurations.
//
// @Summary List callbacks
// @Tags callbacks
// @Produce json
// @Success 200 {array} model.Callback
// @Failure 502 {object} errorPayload
// @Router /callbacks [get]
func ListCallbacks(svc service.CallbackService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		callbacks, err := svc.All(c.UserContext())
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(fiber.Map{"data": callbacks, "total": len(callbacks)})
	}
}

// SaveCallback creates or updates the Connect configuration with the given name.
//
// @Summary Save a callback
// @Tags callbacks
// @Accept json
// @Produce json
// @Param callback body model.Callback true "Callback"
// @Success 200 {object} model.Callback
// @Failure 400 {object} errorPayload
// @Failure 502 {object} errorPayload
// @Router /callbacks [put]
func SaveCallback(svc service.CallbackService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var cb model.Callback
		if err := c.BodyParser(&cb); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "invalid callback body")
		}
		if err := svc.Save(c.UserContext(), &cb); err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(cb)
	}
}
