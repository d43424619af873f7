package fortune

import (
	"context"
	"time"

	"github.com/ogdev97/isuanming/cmn"

	"github.com/redis/go-redis/v9"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

const (
	defaultMaxRequests = 3              // 窗口内允许的最大请求数
	defaultWindow      = 24 * time.Hour // 滑动窗口时长
	defaultLogPath     = "users.csv"    // 提交记录文件
)

var (
	z *zap.Logger

	limitStore     LimitStore
	submissionSink SubmissionSink
)

func Init() {
	z = cmn.GetLogger()

	initLimitStore()
	initSubmissionSink()

	cmn.MiniLogger.Info("[ OK ] fortune module initialed",
		zap.String("limiter", viper.GetString("fortune.limiter.backend")),
		zap.String("log", viper.GetString("fortune.log.backend")))
}

func initLimitStore() {
	maxRequests := viper.GetInt("fortune.limiter.maxRequests")
	if maxRequests <= 0 {
		maxRequests = defaultMaxRequests
	}

	window := viper.GetDuration("fortune.limiter.window")
	if window <= 0 {
		window = defaultWindow
	}

	backend := viper.GetString("fortune.limiter.backend")
	switch backend {
	case "", "memory":
		limitStore = newMemoryLimitStore(maxRequests, window)
	case "redis":
		addr := viper.GetString("fortune.limiter.redis.addr")
		if addr == "" {
			z.Fatal("[ FAIL ] limiter redis addr not set")
		}
		rdb := redis.NewClient(&redis.Options{
			Addr:     addr,
			Password: viper.GetString("fortune.limiter.redis.password"),
			DB:       viper.GetInt("fortune.limiter.redis.db"),
		})

		// 启动时探活，避免运行期才发现连不上
		pingCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		_, err := rdb.Ping(pingCtx).Result()
		cancel()
		if err != nil {
			z.Fatal("[ FAIL ] limiter redis ping failed", zap.Error(err))
		}

		limitStore = newRedisLimitStore(rdb, maxRequests, window)
	default:
		z.Fatal("[ FAIL ] limiter backend is not supported", zap.String("backend", backend))
	}
}

func initSubmissionSink() {
	backend := viper.GetString("fortune.log.backend")
	switch backend {
	case "", "csv":
		path := viper.GetString("fortune.log.path")
		if path == "" {
			path = defaultLogPath
		}
		submissionSink = newCsvSink(path)
	case "db":
		if cmn.GormDB == nil {
			z.Fatal("[ FAIL ] fortune log backend is db but db module is disabled")
		}
		submissionSink = newGormSink(cmn.GormDB)
	default:
		z.Fatal("[ FAIL ] fortune log backend is not supported", zap.String("backend", backend))
	}
}
