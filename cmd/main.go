// Accounts is a backend that owns the platform account records
package main

import (
	"fmt"
	"time"

	"github.com/VinukaThejana/go-utils/logger"
	"github.com/aviary-chat/accounts/config"
	"github.com/aviary-chat/accounts/connect"
	"github.com/aviary-chat/accounts/controllers"
	"github.com/aviary-chat/accounts/utils"
	"github.com/bwmarrin/snowflake"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	fiberLogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/monitor"
)

var (
	env  config.Env
	conn connect.Connector
	node *snowflake.Node
)

func init() {
	env.Load()

	conn.InitDatabase(&env)
	utils.CheckForMigrations(&conn, &env)

	conn.InitRatelimiter(&env)

	var err error
	node, err = snowflake.NewNode(env.SnowflakeNodeID)
	if err != nil {
		logger.Errorf(err)
	}
}

func main() {
	app := fiber.New()
	if config.GetDevEnv(&env) == config.Dev {
		app.Use(fiberLogger.New())
	}

	app.Use(cors.New(cors.Config{
		AllowHeaders:     "Origin, Content-Type, Accept",
		AllowOrigins:     env.FrontendHostname,
		AllowCredentials: true,
		AllowMethods:     "*",
	}))

	app.Use(limiter.New(limiter.Config{
		Max:        100,
		Expiration: 1 * time.Minute,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return c.SendStatus(fiber.StatusTooManyRequests)
		},
		SkipFailedRequests:     false,
		SkipSuccessfulRequests: false,
		LimiterMiddleware:      limiter.SlidingWindow{},
		Storage:                conn.Ratelimter,
	}))

	accountC := controllers.Account{
		Conn: &conn,
		Env:  &env,
		Node: node,
	}
	systemC := controllers.System{
		Conn: &conn,
	}

	app.Route("/accounts", func(router fiber.Router) {
		router.Post("/", accountC.Register)
		router.Get("/:id", accountC.Get)
		router.Patch("/:id", accountC.Edit)
		router.Put("/:id/settings", accountC.LinkSettings)
		router.Delete("/:id/settings", accountC.UnlinkSettings)
	})

	app.Get("/health", systemC.Health)

	app.Route("/monitor", func(router fiber.Router) {
		router.Get("/metrics", monitor.New(monitor.Config{
			Title: "Monitor Accounts",
		}))
	})

	logger.Errorf(app.Listen(fmt.Sprintf(":%s", env.Port)))
}
