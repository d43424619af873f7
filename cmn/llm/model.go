package llm

type GeminiConfig struct {
	ApiKey  string
	Model   string
	BaseUrl string
}

type DeepSeekConfig struct {
	ApiKey  string
	Model   string
	BaseUrl string
}
