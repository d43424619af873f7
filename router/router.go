package router

import (
	"github.com/ogdev97/isuanming/serve/fortune"

	"github.com/gin-gonic/gin"
)

// InitRoutes 初始化路由
func InitRoutes(r *gin.Engine) {

	fortuneHandler := fortune.NewHandler()

	// 路由组 /api
	api := r.Group("/api")
	{
		api.POST("/fortune", fortuneHandler.HandleGenerateFortune) // 生成运势报告
	}
}
