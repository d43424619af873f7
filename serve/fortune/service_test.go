package fortune

import (
	"context"
	"errors"
	"fmt"
	"testing"
)

type fakeLimiter struct {
	allow bool
	calls int
}

func (f *fakeLimiter) CheckAndRecord(_ context.Context, _ string) bool {
	f.calls++
	return f.allow
}

type fakeSink struct {
	records [][4]string
	err     error
}

func (f *fakeSink) Record(name, gender, dob, birthTime string) error {
	f.records = append(f.records, [4]string{name, gender, dob, birthTime})
	return f.err
}

type fakeModel struct {
	out   string
	err   error
	calls int
}

func (f *fakeModel) Generate(_ context.Context, _ string) (string, error) {
	f.calls++
	return f.out, f.err
}

const validReportJSON = `{
	"zodiac": "Horse",
	"zodiac_zh": "马",
	"element": "Metal",
	"element_zh": "金",
	"kua": 7,
	"overview": "A promising year.",
	"overview_zh": "充满希望的一年。",
	"pillars": {
		"career": {"score": 8, "text": "Strong momentum.", "text_zh": "势头强劲。"},
		"wealth": {"score": 6, "text": "Steady gains.", "text_zh": "稳步增长。"},
		"love": {"score": 7, "text": "Harmony ahead.", "text_zh": "和谐美满。"},
		"health": {"score": 9, "text": "Vitality abounds.", "text_zh": "精力充沛。"}
	},
	"lucky": {
		"colors": ["Red", "Gold"],
		"colors_zh": ["红色", "金色"],
		"numbers": ["3", "8"],
		"numbers_zh": ["三", "八"],
		"directions": ["South", "East"],
		"directions_zh": ["南", "东"]
	}
}`

func newTestService(limiter LimitStore, sink SubmissionSink, model *fakeModel, ready bool) *service {
	return &service{
		limiter: limiter,
		sink:    sink,
		model:   model,
		ready:   func() bool { return ready },
	}
}

func testRequest() ReqFortune {
	return ReqFortune{
		Name:     "Alice",
		DOB:      "1990-05-01",
		Gender:   "female",
		Language: "en",
	}
}

func TestService_RateLimited(t *testing.T) {
	sink := &fakeSink{}
	model := &fakeModel{out: validReportJSON}
	svc := newTestService(&fakeLimiter{allow: false}, sink, model, true)

	report, err := svc.Generate(context.Background(), testRequest(), "1.2.3.4")
	if !errors.Is(err, ErrRateLimited) {
		t.Fatalf("expected ErrRateLimited, got %v", err)
	}
	if report != nil {
		t.Fatal("expected no report")
	}
	if len(sink.records) != 0 {
		t.Fatal("rate-limited request must not be recorded")
	}
	if model.calls != 0 {
		t.Fatal("rate-limited request must not reach the model")
	}
}

func TestService_Misconfigured(t *testing.T) {
	sink := &fakeSink{}
	model := &fakeModel{out: validReportJSON}
	svc := newTestService(&fakeLimiter{allow: true}, sink, model, false)

	_, err := svc.Generate(context.Background(), testRequest(), "1.2.3.4")
	if !errors.Is(err, ErrMisconfigured) {
		t.Fatalf("expected ErrMisconfigured, got %v", err)
	}

	// 凭证缺失时不发起外部调用，但提交记录仍要落盘
	if model.calls != 0 {
		t.Fatal("misconfigured service must not call the model")
	}
	if len(sink.records) != 1 {
		t.Fatal("submission must be recorded before the configuration check")
	}
}

func TestService_SinkFailureSwallowed(t *testing.T) {
	sink := &fakeSink{err: fmt.Errorf("disk full")}
	model := &fakeModel{out: validReportJSON}
	svc := newTestService(&fakeLimiter{allow: true}, sink, model, true)

	report, err := svc.Generate(context.Background(), testRequest(), "1.2.3.4")
	if err != nil {
		t.Fatalf("sink failure must not fail the request: %v", err)
	}
	if report == nil {
		t.Fatal("expected a report")
	}
}

func TestService_MalformedModelOutput(t *testing.T) {
	model := &fakeModel{out: "I am sorry, I cannot do that."}
	svc := newTestService(&fakeLimiter{allow: true}, &fakeSink{}, model, true)

	report, err := svc.Generate(context.Background(), testRequest(), "1.2.3.4")
	if !errors.Is(err, ErrGenerationFailed) {
		t.Fatalf("expected ErrGenerationFailed, got %v", err)
	}
	if report != nil {
		t.Fatal("malformed output must not yield a partial report")
	}
}

func TestService_ModelTransportFailure(t *testing.T) {
	model := &fakeModel{err: fmt.Errorf("connection reset")}
	svc := newTestService(&fakeLimiter{allow: true}, &fakeSink{}, model, true)

	_, err := svc.Generate(context.Background(), testRequest(), "1.2.3.4")
	if !errors.Is(err, ErrGenerationFailed) {
		t.Fatalf("expected ErrGenerationFailed, got %v", err)
	}
}

func TestService_PassThrough(t *testing.T) {
	model := &fakeModel{out: validReportJSON}
	svc := newTestService(&fakeLimiter{allow: true}, &fakeSink{}, model, true)

	report, err := svc.Generate(context.Background(), testRequest(), "1.2.3.4")
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	// 模型输出原样透传，不做范围校验
	if report.Zodiac != "Horse" || report.ZodiacZh != "马" {
		t.Fatalf("unexpected zodiac: %+v", report)
	}
	if report.Kua != 7 {
		t.Fatalf("unexpected kua: %d", report.Kua)
	}
	if report.Pillars.Career.Score != 8 || report.Pillars.Health.TextZh != "精力充沛。" {
		t.Fatalf("unexpected pillars: %+v", report.Pillars)
	}
	if len(report.Lucky.Colors) != 2 || report.Lucky.DirectionsZh[0] != "南" {
		t.Fatalf("unexpected lucky attributes: %+v", report.Lucky)
	}
}

func TestService_RecordsUnknownBirthTimeInput(t *testing.T) {
	sink := &fakeSink{}
	model := &fakeModel{out: validReportJSON}
	svc := newTestService(&fakeLimiter{allow: true}, sink, model, true)

	req := testRequest() // birthTime 为空
	_, err := svc.Generate(context.Background(), req, "1.2.3.4")
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	if len(sink.records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(sink.records))
	}
	if sink.records[0][3] != "" {
		// 占位值由 sink 实现补齐，服务层透传原始输入
		t.Fatalf("service should pass raw birth time through, got %q", sink.records[0][3])
	}
}
