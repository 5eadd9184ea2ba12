package main

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"captn.backend/internal/interfaces/http/handlers"
)

type routeDeps struct {
	scheduleHandler    *handlers.ScheduleHandler
	captainshipHandler *handlers.CaptainshipHandler
	authHandler        *handlers.AuthHandler
	requireAuth        gin.HandlerFunc
}

func registerRoutes(r *gin.Engine, d routeDeps) {
	r.GET("/", d.scheduleHandler.Index)
	r.GET("/captain.json", d.scheduleHandler.CurrentCaptain)
	r.GET("/:year/from/:start/to/:end/", d.scheduleHandler.Range)

	r.POST("/captainships/", d.requireAuth, d.captainshipHandler.Claim)
	r.DELETE("/captainships/", d.requireAuth, d.captainshipHandler.Release)

	r.POST("/login/", d.authHandler.Login)
	r.GET("/logout/", d.authHandler.Logout)
}

func registerHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
}

func registerMetricsRoute(r *gin.Engine) {
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
}
