package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"
)

type Service interface {
	// Generate 发送提示词并返回模型的原始文本输出
	Generate(ctx context.Context, prompt string) (string, error)
}

type geminiImpl struct {
}

type deepSeekImpl struct {
}

func NewService() Service {
	switch platform {
	case "gemini":
		return &geminiImpl{}
	case "deepseek":
		return &deepSeekImpl{}
	}

	return &geminiImpl{}
}

// Generate 调用 Gemini generateContent 接口，要求模型直接输出 JSON
func (*geminiImpl) Generate(ctx context.Context, prompt string) (string, error) {
	if geminiConfig.ApiKey == "" {
		z.Error("gemini api key not set")
		return "", fmt.Errorf("gemini api key not set")
	}
	if prompt == "" {
		return "", fmt.Errorf("prompt is empty")
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	// 请求体结构
	type Part struct {
		Text string `json:"text"`
	}
	type Content struct {
		Role  string `json:"role"`
		Parts []Part `json:"parts"`
	}
	type GenerationConfig struct {
		ResponseMimeType string `json:"responseMimeType"`
	}
	type GenerateRequest struct {
		Contents         []Content        `json:"contents"`
		GenerationConfig GenerationConfig `json:"generationConfig"`
	}

	// 响应体结构（只取文本部分）
	type GenerateResponse struct {
		Candidates []struct {
			Content struct {
				Parts []Part `json:"parts"`
			} `json:"content"`
		} `json:"candidates"`
	}

	requestBody := GenerateRequest{
		Contents: []Content{
			{Role: "user", Parts: []Part{{Text: prompt}}},
		},
		GenerationConfig: GenerationConfig{ResponseMimeType: "application/json"},
	}

	jsonData, err := json.Marshal(requestBody)
	if err != nil {
		z.Error("json marshal fail", zap.Error(err))
		return "", err
	}

	// 向 Gemini API 发送 POST 请求
	url := fmt.Sprintf("%s/v1beta/models/%s:generateContent", geminiConfig.BaseUrl, geminiConfig.Model)
	fastReq := fasthttp.AcquireRequest()
	fastResp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(fastReq)
	defer fasthttp.ReleaseResponse(fastResp)

	fastReq.SetRequestURI(url)
	fastReq.Header.SetMethod("POST")
	fastReq.Header.SetContentType("application/json")
	fastReq.Header.Set("x-goog-api-key", geminiConfig.ApiKey)
	fastReq.SetBody(jsonData)

	// 发送请求，限定单次调用的耗时上限
	client := &fasthttp.Client{
		ReadTimeout:  timeout,
		WriteTimeout: timeout,
	}
	err = client.DoTimeout(fastReq, fastResp, timeout)
	if err != nil {
		z.Error("gemini request failed", zap.Error(err))
		return "", fmt.Errorf("failed to send request to gemini API: %w", err)
	}

	if fastResp.StatusCode() != http.StatusOK {
		z.Error("gemini returned non-200", zap.Int("status", fastResp.StatusCode()))
		return "", fmt.Errorf("gemini API returned status %d", fastResp.StatusCode())
	}

	var genResp GenerateResponse
	err = json.Unmarshal(fastResp.Body(), &genResp)
	if err != nil {
		z.Error("json unmarshal fail", zap.Error(err))
		return "", err
	}

	if len(genResp.Candidates) > 0 && len(genResp.Candidates[0].Content.Parts) > 0 {
		return genResp.Candidates[0].Content.Parts[0].Text, nil
	}

	z.Warn("no response candidate found")
	return "", fmt.Errorf("no response candidate found")
}

// Generate 调用 DeepSeek chat 接口，要求模型输出 JSON 对象
func (*deepSeekImpl) Generate(ctx context.Context, prompt string) (string, error) {
	if deepSeekConfig.ApiKey == "" {
		z.Error("deepseek api key not set")
		return "", fmt.Errorf("deepseek api key not set")
	}
	if prompt == "" {
		return "", fmt.Errorf("prompt is empty")
	}

	// 请求消息结构
	type Message struct {
		Role    string `json:"role"`
		Content string `json:"content"`
	}
	type ResponseFormat struct {
		Type string `json:"type"`
	}

	// 请求体结构
	type ChatRequest struct {
		Model          string         `json:"model"`
		Messages       []Message      `json:"messages"`
		Stream         bool           `json:"stream"`
		ResponseFormat ResponseFormat `json:"response_format"`
	}

	// 响应体结构（只取content字段）
	type ChatResponse struct {
		Choices []struct {
			Message Message `json:"message"`
		} `json:"choices"`
	}

	url := deepSeekConfig.BaseUrl + "/chat/completions"

	// 构造请求体
	requestBody := ChatRequest{
		Model: deepSeekConfig.Model,
		Messages: []Message{
			{Role: "user", Content: prompt},
		},
		Stream:         false,
		ResponseFormat: ResponseFormat{Type: "json_object"},
	}

	// 序列化为 JSON
	jsonData, err := json.Marshal(requestBody)
	if err != nil {
		z.Error("json marshal fail", zap.Error(err))
		return "", err
	}

	// 构造 HTTP 请求
	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewBuffer(jsonData))
	if err != nil {
		z.Error("new request fail", zap.Error(err))
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+deepSeekConfig.ApiKey)

	// 执行请求
	client := &http.Client{Timeout: timeout}
	resp, err := client.Do(req)
	if err != nil {
		return "", err
	}
	defer func(Body io.ReadCloser) {
		err := Body.Close()
		if err != nil {
			z.Error("close response body fail")
		}
	}(resp.Body)

	// 读取响应
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		z.Error("read response body fail", zap.Error(err))
		return "", err
	}

	if resp.StatusCode != http.StatusOK {
		z.Error("deepseek returned non-200", zap.Int("status", resp.StatusCode))
		return "", fmt.Errorf("deepseek API returned status %d", resp.StatusCode)
	}

	// 解析响应 JSON
	var chatResp ChatResponse
	err = json.Unmarshal(body, &chatResp)
	if err != nil {
		z.Error("json unmarshal fail", zap.Error(err))
		return "", err
	}

	if len(chatResp.Choices) > 0 {
		return chatResp.Choices[0].Message.Content, nil
	}

	z.Warn("no response message found")
	return "", fmt.Errorf("no response message found")
}
