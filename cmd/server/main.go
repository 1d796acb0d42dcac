package main

import (
	"log"

	"github.com/gin-gonic/gin"

	"ticket-inventory-manager/config"
	"ticket-inventory-manager/internal/cache"
	"ticket-inventory-manager/internal/database"
	"ticket-inventory-manager/internal/handler"
	"ticket-inventory-manager/internal/repository"
	"ticket-inventory-manager/internal/service"
)

func main() {
	cfg := config.LoadConfig()

	pool, err := database.InitDatabase(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer pool.Close()

	rdb, err := database.InitRedis(&cfg.Redis)
	if err != nil {
		log.Fatalf("Failed to initialize redis: %v", err)
	}
	defer rdb.Close()

	eventRepo := repository.NewEventRepository(pool)
	ticketRepo := repository.NewTicketRepository(pool)
	capacityCache := cache.NewCapacityCache(rdb)

	eventService := service.NewEventService(eventRepo)
	ticketService := service.NewTicketService(eventRepo, ticketRepo, capacityCache)

	router := gin.Default()
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"message": "pong",
		})
	})

	handler.NewEventHandler(eventService).RegisterRoutes(router)
	handler.NewTicketHandler(ticketService).RegisterRoutes(router)

	router.Run(":" + cfg.Server.Port)
}
