package logx

import (
	"io"
	"log"
	"os"
	"strings"
	"sync"
)

const (
	levelDebug = iota
	levelInfo
	levelWarn
	levelError
)

var (
	names = map[string]int{
		"debug": levelDebug,
		"info":  levelInfo,
		"warn":  levelWarn,
		"error": levelError,
	}
	mu sync.Mutex
)

type leveledWriter struct {
	minLevel int
	target   io.Writer
}

func (w *leveledWriter) Write(p []byte) (int, error) {
	if levelFromMessage(string(p)) < w.minLevel {
		return len(p), nil
	}
	return w.target.Write(p)
}

func Setup(level string) {
	mu.Lock()
	defer mu.Unlock()
	lvl, ok := names[strings.ToLower(level)]
	if !ok {
		lvl = levelInfo
	}
	log.SetOutput(&leveledWriter{minLevel: lvl, target: os.Stdout})
	log.SetFlags(log.LstdFlags | log.Lmicroseconds)
}

func levelFromMessage(msg string) int {
	msg = strings.ToLower(msg)
	switch {
	case strings.Contains(msg, "error"):
		return levelError
	case strings.Contains(msg, "warn"):
		return levelWarn
	case strings.Contains(msg, "debug"):
		return levelDebug
	default:
		return levelInfo
	}
}
