package handlers

import "github.com/gofiber/fiber/v2"

// Me returns the authenticated user's token identity.
func Me(c *fiber.Ctx) error {
	userID := c.Locals("userID").(string)
	userEmail := c.Locals("userEmail").(string)
	return c.JSON(fiber.Map{
		"uid":   userID,
		"email": userEmail,
	})
}
