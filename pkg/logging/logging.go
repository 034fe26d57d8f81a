package logging

import (
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"runtime"
	"sync"

	"github.com/sirupsen/logrus"
)

type writerHook struct {
	Writer    []io.Writer
	LogLevels []logrus.Level
}

func (hook *writerHook) Fire(entry *logrus.Entry) error {
	line, err := entry.String()
	if err != nil {
		return err
	}
	mu.Lock()
	defer mu.Unlock()
	for _, w := range hook.Writer {
		_, _ = w.Write([]byte(line))
	}
	return err
}

func (hook *writerHook) Levels() []logrus.Level {
	return hook.LogLevels
}

type Logger struct {
	*logrus.Entry
}

var (
	entry *logrus.Entry
	hook  *writerHook
	once  sync.Once
	mu    sync.Mutex
)

func setup() {
	l := logrus.New()
	l.SetReportCaller(true)
	l.Formatter = &logrus.TextFormatter{
		CallerPrettyfier: func(frame *runtime.Frame) (function string, file string) {
			filename := path.Base(frame.File)
			return fmt.Sprintf("%s()", frame.Function), fmt.Sprintf("%s:%d", filename, frame.Line)
		},
		DisableColors:   true,
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02T15:04:05.000",
	}
	l.SetOutput(io.Discard)

	hook = &writerHook{
		Writer:    []io.Writer{os.Stdout},
		LogLevels: logrus.AllLevels,
	}
	l.AddHook(hook)
	l.SetLevel(logrus.InfoLevel)

	entry = logrus.NewEntry(l)
}

func GetLogger() *Logger {
	once.Do(setup)
	return &Logger{entry}
}

// Configure sets the level and adds a log file next to stdout. An empty file
// keeps stdout only.
func Configure(debug bool, file string) error {
	once.Do(setup)
	mu.Lock()
	defer mu.Unlock()

	if debug {
		entry.Logger.SetLevel(logrus.DebugLevel)
	} else {
		entry.Logger.SetLevel(logrus.InfoLevel)
	}

	if file == "" {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(file), 0770); err != nil {
		return err
	}
	f, err := os.OpenFile(file, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0640)
	if err != nil {
		return err
	}
	hook.Writer = []io.Writer{os.Stdout, f}
	return nil
}

// SetOutput replaces every writer of the logger, tests use it to silence or
// capture output.
func SetOutput(w ...io.Writer) {
	once.Do(setup)
	mu.Lock()
	defer mu.Unlock()
	hook.Writer = w
}
