package handlers

import "github.com/gofiber/fiber/v2"

func (h *Handler) Root(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"message": msgRootRunning})
}

// TestDatabase reports backend and database status. It always answers 200.
func (h *Handler) TestDatabase(c *fiber.Ctx) error {
	return c.JSON(h.status.Check(c.UserContext()))
}
