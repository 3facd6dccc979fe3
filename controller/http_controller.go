package controller

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"push-fanout-service/conf"
	"push-fanout-service/controller/auth"
	_ "push-fanout-service/docs"
	"push-fanout-service/service/fanout_service"
	"push-fanout-service/service/roomban_service"
	"push-fanout-service/service/subscription_service"
)

// Services holds the wired service instances the handlers use.
type Services struct {
	Cache  *subscription_service.Cache
	Center *fanout_service.Center
	Bans   *roomban_service.Service
}

var services *Services

// Run registers the admin API routes and blocks serving HTTP.
func Run(s *Services) {
	services = s

	router := gin.Default()
	router.Use(Cors())

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	v1 := router.Group("/v1")
	{
		fanoutGroup := v1.Group("/fanout")
		{
			fanoutGroup.POST("/reload", auth.AuthSignMiddleware(), ReloadSubscriptions)
			fanoutGroup.POST("/dispatch", auth.AuthSignMiddleware(), DispatchLine)
			fanoutGroup.GET("/subscription", GetSubscriptionByToken)
			fanoutGroup.GET("/subscriptions", GetSubscriptionsByUser)
		}

		roomGroup := v1.Group("/rooms")
		{
			roomGroup.POST("/ban", auth.AuthSignMiddleware(), BanUser)
			roomGroup.POST("/unban", auth.AuthSignMiddleware(), UnbanUser)
			roomGroup.GET("/banned", GetBannedInRoom)
		}
	}

	_ = router.Run(fmt.Sprintf("0.0.0.0:%s", conf.Port))
}

func Cors() gin.HandlerFunc {
	return func(c *gin.Context) {
		method := c.Request.Method
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "POST, GET, OPTIONS, PUT, DELETE")
		c.Header("Access-Control-Allow-Headers", "Content-Type,AccessToken,X-CSRF-Token, Authorization,X-API-KEY,X-Timestamp,X-Signature,X-Public-Key")
		c.Header("Access-Control-Allow-Credentials", "true")
		c.Set("content-type", "application/json")
		if method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
		}
		c.Next()
	}
}
