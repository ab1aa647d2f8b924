package logging

import (
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/poflygogo/pox5fly-oj/internal/constants"
)

// NewLogger 创建 zap 日志实例并替换全局 logger。
// 日志写入滚动文件而不是标准输出,避免污染测试报告。
// cfg 可以为 nil,此时使用默认配置。
func NewLogger(cfg *viper.Viper) (*zap.Logger, error) {
	logFile := constants.DefaultLogFile
	maxSize := constants.DefaultLogMaxSize
	maxAge := constants.DefaultLogMaxAge
	backups := constants.DefaultLogBackups
	levelStr := constants.LogLevelInfo

	if cfg != nil {
		if cfg.IsSet("log.file") {
			logFile = cfg.GetString("log.file")
		}
		if cfg.IsSet("log.max_size") {
			maxSize = cfg.GetInt("log.max_size")
		}
		if cfg.IsSet("log.max_age") {
			maxAge = cfg.GetInt("log.max_age")
		}
		if cfg.IsSet("log.max_backups") {
			backups = cfg.GetInt("log.max_backups")
		}
		if cfg.IsSet("log.level") {
			levelStr = cfg.GetString("log.level")
		}
	}

	level, err := zapcore.ParseLevel(levelStr)
	if err != nil {
		level = zapcore.InfoLevel
	}

	writer := zapcore.AddSync(&lumberjack.Logger{
		Filename:   logFile,
		MaxSize:    maxSize, // MB
		MaxAge:     maxAge,  // days
		MaxBackups: backups,
	})

	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	core := zapcore.NewCore(zapcore.NewJSONEncoder(encoderCfg), writer, level)

	logger := zap.New(core, zap.AddCaller())
	zap.ReplaceGlobals(logger)
	return logger, nil
}
