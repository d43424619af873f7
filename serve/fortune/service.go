package fortune

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/ogdev97/isuanming/cmn/llm"

	"go.uber.org/zap"
)

var (
	// ErrRateLimited 窗口内请求次数超限
	ErrRateLimited = errors.New("rate limit exceeded")
	// ErrMisconfigured 模型凭证未配置
	ErrMisconfigured = errors.New("llm credential not configured")
	// ErrGenerationFailed 模型调用失败或返回内容无法解析
	ErrGenerationFailed = errors.New("failed to generate fortune")
)

type Service interface {
	// Generate 处理一次算命请求：限流 → 落记录 → 构造提示词 → 调用模型 → 解析报告
	Generate(ctx context.Context, req ReqFortune, clientId string) (*FortuneReport, error)
}

type service struct {
	limiter LimitStore
	sink    SubmissionSink
	model   llm.Service
	ready   func() bool
}

func NewService() Service {
	return &service{
		limiter: limitStore,
		sink:    submissionSink,
		model:   llm.NewService(),
		ready:   llm.Ready,
	}
}

func (s *service) Generate(ctx context.Context, req ReqFortune, clientId string) (*FortuneReport, error) {
	// 限流检查，超限立即返回
	if !s.limiter.CheckAndRecord(ctx, clientId) {
		return nil, ErrRateLimited
	}

	// 落提交记录，失败只记日志不影响主流程
	// 此步在模型调用之前同步完成，调用方断开连接也不会跳过
	err := s.sink.Record(req.Name, req.Gender, req.DOB, req.BirthTime)
	if err != nil {
		z.Error("failed to record submission", zap.Error(err), zap.String("name", req.Name))
	}

	// 凭证缺失时不发起外部调用
	if !s.ready() {
		return nil, ErrMisconfigured
	}

	prompt := BuildPrompt(req.Name, req.Gender, req.DOB, req.BirthTime)

	// 调用模型，耗时上限由 llm 模块控制，期间不持有任何锁
	raw, err := s.model.Generate(ctx, prompt)
	if err != nil {
		z.Error("llm generate failed", zap.Error(err))
		return nil, fmt.Errorf("%w: %v", ErrGenerationFailed, err)
	}

	// 解析模型输出，解析失败不合成降级报告
	var report FortuneReport
	err = json.Unmarshal([]byte(raw), &report)
	if err != nil {
		z.Error("failed to parse model output", zap.Error(err))
		return nil, fmt.Errorf("%w: %v", ErrGenerationFailed, err)
	}

	// 原样返回，分数范围与中英文列表长度由模型对前端负责
	return &report, nil
}
