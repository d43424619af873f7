package fortune

import (
	"context"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// LimitStore 按客户端标识在滑动窗口内统计请求次数
type LimitStore interface {
	// CheckAndRecord 未超限时记录本次请求并返回 true，超限时不记录并返回 false
	// 永不报错：存储故障按放行处理
	CheckAndRecord(ctx context.Context, clientId string) bool
}

// memoryLimitStore 进程内限流存储
// 每个 clientId 维护一个按时间排序的请求时刻列表，过期项在访问时懒清理
// 不淘汰旧的 clientId（进程生命周期内的已知局限），重启后计数清零
type memoryLimitStore struct {
	mu       sync.Mutex
	requests map[string][]time.Time
	max      int
	window   time.Duration
	now      func() time.Time
}

func newMemoryLimitStore(max int, window time.Duration) *memoryLimitStore {
	return &memoryLimitStore{
		requests: make(map[string][]time.Time),
		max:      max,
		window:   window,
		now:      time.Now,
	}
}

func (s *memoryLimitStore) CheckAndRecord(_ context.Context, clientId string) bool {
	now := s.now()

	// 清理-计数-追加必须是同一临界区，避免并发请求同时通过
	s.mu.Lock()
	defer s.mu.Unlock()

	var recent []time.Time
	for _, at := range s.requests[clientId] {
		if now.Sub(at) < s.window {
			recent = append(recent, at)
		}
	}

	if len(recent) >= s.max {
		s.requests[clientId] = recent
		return false
	}

	s.requests[clientId] = append(recent, now)
	return true
}

// redisLimitStore 基于 Redis ZSET 的限流存储，重启后计数保留
type redisLimitStore struct {
	rdb    *redis.Client
	prefix string
	max    int
	window time.Duration
}

func newRedisLimitStore(rdb *redis.Client, max int, window time.Duration) *redisLimitStore {
	return &redisLimitStore{
		rdb:    rdb,
		prefix: "fortune:limiter",
		max:    max,
		window: window,
	}
}

func (s *redisLimitStore) CheckAndRecord(ctx context.Context, clientId string) bool {
	key := s.prefix + ":" + clientId
	now := time.Now()
	// 距今不小于窗口时长的记录视为过期
	minScore := strconv.FormatInt(now.Add(-s.window).UnixNano(), 10)

	// 先清理窗口外的记录再计数
	pipe := s.rdb.Pipeline()
	pipe.ZRemRangeByScore(ctx, key, "-inf", minScore)
	cardCmd := pipe.ZCard(ctx, key)
	_, err := pipe.Exec(ctx)
	if err != nil {
		// 存储故障放行，宁可多放不可阻断
		z.Error("limiter redis purge failed", zap.Error(err), zap.String("clientId", clientId))
		return true
	}

	if cardCmd.Val() >= int64(s.max) {
		return false
	}

	pipe = s.rdb.Pipeline()
	pipe.ZAdd(ctx, key, redis.Z{
		Score:  float64(now.UnixNano()),
		Member: uuid.NewString(),
	})
	pipe.Expire(ctx, key, s.window)
	_, err = pipe.Exec(ctx)
	if err != nil {
		z.Error("limiter redis record failed", zap.Error(err), zap.String("clientId", clientId))
	}

	return true
}
