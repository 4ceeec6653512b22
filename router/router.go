package router

import (
	"DocVault/internal/handler"
	"DocVault/utils"

	"github.com/gin-gonic/gin"
)

// Handlers groups the route handlers the router wires up.
type Handlers struct {
	Auth      *handler.AuthHandler
	Link      *handler.LinkHandler
	View      *handler.ViewHandler
	Magic     *handler.MagicHandler
	Analytics *handler.AnalyticsHandler
}

// InitRouter builds API routes.
func InitRouter(h Handlers) *gin.Engine {
	r := gin.Default()
	r.Use(utils.CORSMiddleware())

	api := r.Group("/api")
	{
		api.POST("/register", h.Auth.Register)
		api.GET("/activate", h.Auth.Activate)
		api.POST("/login", h.Auth.Login)

		auth := api.Group("")
		auth.Use(utils.AuthMiddleware())

		links := auth.Group("/links")
		{
			links.POST("/create", h.Link.CreateLink)
			links.POST("/update", h.Link.UpdateLink)
			links.POST("/delete", h.Link.DeleteLink)
			links.GET("/analytics/logs", h.Analytics.GetViewerEvents)
			links.GET("/analytics/stats", h.Analytics.GetDailyStats)
		}

		api.POST("/links/view/:linkID", h.View.ViewLink)
		api.POST("/links/request-access", h.Magic.RequestAccess)
		api.GET("/links/redeem", h.Magic.Redeem)
	}
	return r
}
