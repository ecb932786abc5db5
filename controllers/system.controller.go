package controllers

import (
	"context"
	"time"

	"github.com/VinukaThejana/go-utils/logger"
	"github.com/aviary-chat/accounts/connect"
	"github.com/gofiber/fiber/v2"
)

// System is a struct that contains system level controllers
type System struct {
	Conn *connect.Connector
}

// Health is a function that is notifys the system health
func (s *System) Health(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), time.Second)
	defer cancel()

	db, err := s.Conn.DB.DB()
	if err == nil {
		err = db.PingContext(ctx)
	}
	if err != nil {
		logger.Error(err)
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"health": false,
		})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"health": true,
	})
}
