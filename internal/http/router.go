package http

import (
	"five_in_row/internal/http/handlers"
	"five_in_row/internal/service"
	"five_in_row/internal/ws"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// RegisterRoutes подключает API досок, websocket-ленту ходов и метрики
func RegisterRoutes(r *gin.Engine, boards *service.BoardService, hub *ws.Hub, version, allowedOrigin string) {
	h := handlers.NewHandler(boards, version)

	r.GET("/health", h.Health)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group("/api")
	{
		api.POST("/boards", h.CreateBoard)
		api.GET("/boards/:id", h.GetBoard)
		api.DELETE("/boards/:id", h.DeleteBoard)
		api.POST("/boards/:id/moves", h.PlaceStone)
		api.DELETE("/boards/:id/moves", h.ClearStone)
		api.GET("/boards/:id/sequences", h.Sequences)
		api.GET("/boards/:id/frontier", h.Frontier)
	}

	r.GET("/ws/boards/:id", ws.NewWSHandler(hub, boards.Exists, allowedOrigin).HandleWS())
}
