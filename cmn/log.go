package cmn

import (
	"fmt"
	"os"
	"sync"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const (
	logDir = "logs"
)

var (
	logger     *zap.Logger
	MiniLogger *zap.Logger
	logOnce    sync.Once
)

// InitLogger 初始化全局日志模块
// debug 模式输出彩色控制台日志，否则输出 JSON 日志并同时写入日志文件
func InitLogger(debug bool) {
	logOnce.Do(func() {
		if debug {
			initDevLogger()
		} else {
			// 日志文件名带启动时间戳
			name := fmt.Sprintf("%s/%s.log", logDir, time.Now().Format("2006-01-02T15-04-05"))
			err := initProdLogger(name)
			if err != nil {
				fmt.Printf("init prod logger failed: %v\n", err)
				os.Exit(1)
			}
		}

		initMiniLogger()

		logger = zap.L()
	})

	MiniLogger.Info("[ OK ] log module initialized")
}

// GetLogger 获取全局的logger
func GetLogger() *zap.Logger {
	return logger
}

// initDevLogger 初始化开发环境日志（控制台、彩色级别）
func initDevLogger() {
	encoderConfig := zap.NewDevelopmentEncoderConfig()
	encoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	encoderConfig.EncodeCaller = zapcore.ShortCallerEncoder

	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(encoderConfig),
		zapcore.AddSync(os.Stdout),
		zapcore.DebugLevel,
	)

	zap.ReplaceGlobals(zap.New(core, zap.AddCaller()))
}

// initProdLogger 初始化生产环境日志（控制台 + 文件双写）
func initProdLogger(logFilePath string) error {
	err := InitDir(logDir)
	if err != nil {
		return err
	}

	// 追加写入，避免同日重启覆盖旧日志
	file, err := os.OpenFile(logFilePath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return err
	}

	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	encoderConfig.EncodeCaller = zapcore.ShortCallerEncoder
	encoderConfig.EncodeDuration = zapcore.StringDurationEncoder

	consoleCore := zapcore.NewCore(
		zapcore.NewJSONEncoder(encoderConfig),
		zapcore.AddSync(os.Stdout),
		zapcore.InfoLevel,
	)
	fileCore := zapcore.NewCore(
		zapcore.NewJSONEncoder(encoderConfig),
		zapcore.AddSync(file),
		zapcore.InfoLevel,
	)

	zap.ReplaceGlobals(zap.New(zapcore.NewTee(consoleCore, fileCore), zap.AddCaller()))

	return nil
}

// initMiniLogger 初始化极简日志，仅用于模块启动提示
func initMiniLogger() {
	encoderConfig := zapcore.EncoderConfig{
		MessageKey: "msg", // 只保留 msg
	}

	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(encoderConfig),
		zapcore.AddSync(zapcore.Lock(os.Stdout)),
		zapcore.InfoLevel,
	)

	MiniLogger = zap.New(core)
}
