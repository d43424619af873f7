package fortune

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	// 无任何代理头时的兜底标识，此时所有匿名客户端共享同一个限流桶（按原样保留的已知局限）
	fallbackClientId = "unknown-client"

	msgRateLimited      = "Rate limit exceeded. Please try again tomorrow."
	msgGenerationFailed = "Failed to generate fortune"
)

type Handler interface {
	HandleGenerateFortune(c *gin.Context)
}

type handler struct {
	srv Service
}

func NewHandler() Handler {
	return &handler{
		srv: NewService(),
	}
}

// HandleGenerateFortune 处理生成运势报告请求
func (h *handler) HandleGenerateFortune(c *gin.Context) {
	var req ReqFortune
	err := c.ShouldBindJSON(&req)
	if err != nil {
		z.Error("failed to bind request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "invalid request body",
		})
		return
	}

	report, err := h.srv.Generate(c.Request.Context(), req, resolveClientId(c))
	if err != nil {
		switch {
		case errors.Is(err, ErrRateLimited):
			// 限流不算应用错误，不在这里记日志
			c.JSON(http.StatusTooManyRequests, gin.H{
				"error": msgRateLimited,
			})
		default:
			// 配置缺失与生成失败统一返回笼统错误，不向外暴露内部细节
			z.Error("failed to generate fortune", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": msgGenerationFailed,
			})
		}
		return
	}

	c.JSON(http.StatusOK, report)
}

// resolveClientId 解析客户端标识
// 优先级：X-Forwarded-For 首个地址 → X-Real-IP → CF-Connecting-IP → 兜底值
func resolveClientId(c *gin.Context) string {
	if xff := c.GetHeader("X-Forwarded-For"); xff != "" {
		first := strings.TrimSpace(strings.Split(xff, ",")[0])
		if first != "" {
			return first
		}
	}

	if ip := c.GetHeader("X-Real-IP"); ip != "" {
		return ip
	}

	if ip := c.GetHeader("CF-Connecting-IP"); ip != "" {
		return ip
	}

	return fallbackClientId
}
