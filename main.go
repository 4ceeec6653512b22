package main

import (
	"DocVault/config"
	"DocVault/internal/handler"
	"DocVault/internal/mq"
	"DocVault/internal/repo"
	"DocVault/internal/service"
	"DocVault/internal/storage"
	"DocVault/router"
	"DocVault/utils"
)

// main initializes collaborators, wires the services and starts the HTTP server.
func main() {
	config.InitConfig()
	repo.InitMysql()
	repo.InitRedis()
	storage.InitMinio()

	linkRepo := repo.NewLinkRepository(repo.Db, repo.Redis)
	eventRepo := repo.NewViewerEventRepository(repo.Db)
	tokenStore := repo.NewTokenStore(repo.Redis)
	mailer := utils.NewSMTPMailer()

	linkService := service.NewLinkService(linkRepo)
	accessService := service.NewAccessService(linkRepo, eventRepo, mq.Publisher{})
	magicService := service.NewMagicLinkService(
		linkRepo,
		tokenStore,
		mailer,
		config.AppConfig.AppBaseURL,
		config.AppConfig.MagicLinkTTL,
	)
	userService := service.NewUserService(repo.Db)
	analyticsService := service.NewAnalyticsService(eventRepo)

	r := router.InitRouter(router.Handlers{
		Auth:      handler.NewAuthHandler(userService, tokenStore, mailer),
		Link:      handler.NewLinkHandler(linkService, storage.Default),
		View:      handler.NewViewHandler(accessService, storage.Default),
		Magic:     handler.NewMagicHandler(magicService),
		Analytics: handler.NewAnalyticsHandler(analyticsService),
	})

	r.Run(":8000")
}
