package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/sirupsen/logrus"
)

// Log 全局日志实例
var Log *logrus.Logger

// lineFormatter 单行日志格式: [TIME] [LEVEL] [FILE:LINE] MSG key=value ...
type lineFormatter struct{}

func (f *lineFormatter) Format(entry *logrus.Entry) ([]byte, error) {
	var sb strings.Builder

	fmt.Fprintf(&sb, "[%s]", entry.Time.Format("2006-01-02 15:04:05"))

	level := strings.ToUpper(entry.Level.String())
	if len(level) > 4 {
		level = level[:4]
	}
	fmt.Fprintf(&sb, " [%s]", level)

	if entry.HasCaller() {
		fmt.Fprintf(&sb, " [%s:%d]", filepath.Base(entry.Caller.File), entry.Caller.Line)
	}

	sb.WriteByte(' ')
	sb.WriteString(entry.Message)

	// 附加字段按键名排序，保证输出稳定
	if len(entry.Data) > 0 {
		keys := make([]string, 0, len(entry.Data))
		for k := range entry.Data {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			fmt.Fprintf(&sb, " %s=%v", k, entry.Data[k])
		}
	}
	sb.WriteByte('\n')

	return []byte(sb.String()), nil
}

// InitLogger 初始化日志。levelStr 非法时退回 info；
// filePath 非空时同时写入文件和控制台。
func InitLogger(levelStr string, filePath string) error {
	Log = logrus.New()

	Log.SetReportCaller(true)
	Log.SetFormatter(&lineFormatter{})

	level, err := logrus.ParseLevel(levelStr)
	if err != nil {
		level = logrus.InfoLevel
	}
	Log.SetLevel(level)

	writers := []io.Writer{os.Stdout}
	if filePath != "" {
		logDir := filepath.Dir(filePath)
		if logDir != "." {
			if err := os.MkdirAll(logDir, 0o755); err != nil {
				return fmt.Errorf("failed to create log directory: %w", err)
			}
		}

		file, err := os.OpenFile(filePath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o666)
		if err != nil {
			return err
		}
		writers = append(writers, file)
	}
	Log.SetOutput(io.MultiWriter(writers...))

	return nil
}
