package llm

import (
	"time"

	"github.com/ogdev97/isuanming/cmn"

	"github.com/spf13/viper"
	"go.uber.org/zap"
)

const (
	defaultTimeout = 60 * time.Second

	defaultGeminiModel   = "gemini-2.0-flash"
	defaultGeminiBaseUrl = "https://generativelanguage.googleapis.com"

	defaultDeepSeekModel   = "deepseek-chat"
	defaultDeepSeekBaseUrl = "https://api.deepseek.com"
)

var (
	z        *zap.Logger
	platform string
	timeout  time.Duration

	geminiConfig   GeminiConfig
	deepSeekConfig DeepSeekConfig
)

func Init() {
	z = cmn.GetLogger()

	platform = viper.GetString("llm.platform")
	if platform == "" {
		platform = "gemini"
	}

	timeout = viper.GetDuration("llm.timeout")
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	switch platform {
	case "gemini":
		initGemini()
	case "deepseek":
		initDeepSeek()
	default:
		z.Fatal("[ FAIL ] llm platform is not supported", zap.String("platform", platform))
	}

	// 凭证缺失不终止进程，请求阶段返回配置错误
	if !Ready() {
		cmn.MiniLogger.Info("[ -- ] llm api key not set, generation unavailable")
		return
	}

	cmn.MiniLogger.Info("[ OK ] llm module initialed", zap.String("platform", platform))
}

// Ready 返回模型凭证是否已配置
func Ready() bool {
	switch platform {
	case "gemini":
		return geminiConfig.ApiKey != ""
	case "deepseek":
		return deepSeekConfig.ApiKey != ""
	}
	return false
}

func initGemini() {
	geminiConfig.ApiKey = viper.GetString("llm.data.apiKey")

	geminiConfig.Model = viper.GetString("llm.data.model")
	if geminiConfig.Model == "" {
		geminiConfig.Model = defaultGeminiModel
	}

	geminiConfig.BaseUrl = viper.GetString("llm.data.baseUrl")
	if geminiConfig.BaseUrl == "" {
		geminiConfig.BaseUrl = defaultGeminiBaseUrl
	}
}

func initDeepSeek() {
	deepSeekConfig.ApiKey = viper.GetString("llm.data.apiKey")

	deepSeekConfig.Model = viper.GetString("llm.data.model")
	if deepSeekConfig.Model == "" {
		deepSeekConfig.Model = defaultDeepSeekModel
	}

	deepSeekConfig.BaseUrl = viper.GetString("llm.data.baseUrl")
	if deepSeekConfig.BaseUrl == "" {
		deepSeekConfig.BaseUrl = defaultDeepSeekBaseUrl
	}
}
