package log

import (
	"fmt"
	"io"
	"os"
	"time"
)

func init() {
	Global = registerNewSubLogger("LOG")
	Engine = registerNewSubLogger("ENGINE")
	Scheduler = registerNewSubLogger("SCHEDULER")
	Exchange = registerNewSubLogger("EXCHANGE")
	Ledger = registerNewSubLogger("LEDGER")
	Config = registerNewSubLogger("CONFIG")
	Data = registerNewSubLogger("DATA")
	Report = registerNewSubLogger("REPORT")
}

func registerNewSubLogger(name string) *SubLogger {
	sl := &SubLogger{
		name:   name,
		levels: Levels{Info: true, Warn: true, Error: true},
		output: os.Stdout,
	}
	mu.Lock()
	subLoggers[name] = sl
	mu.Unlock()
	return sl
}

// SetOutput redirects every registered sublogger to w
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	for _, sl := range subLoggers {
		sl.output = w
	}
}

// SetLevels applies the supplied level flags to every registered sublogger
func SetLevels(l Levels) {
	mu.Lock()
	defer mu.Unlock()
	for _, sl := range subLoggers {
		sl.levels = l
	}
}

func (sl *SubLogger) stage(header, msg string) {
	fmt.Fprintf(sl.output, "%s%s%s%s%s%s%s\n",
		time.Now().Format(timestampFormat), spacer, sl.name, spacer, header, spacer, msg)
}

// Info logs at info level
func Info(sl *SubLogger, msg string) {
	mu.RLock()
	defer mu.RUnlock()
	if sl == nil || !sl.levels.Info {
		return
	}
	sl.stage(infoHeader, msg)
}

// Infof logs a formatted message at info level
func Infof(sl *SubLogger, format string, v ...interface{}) {
	Info(sl, fmt.Sprintf(format, v...))
}

// Infoln logs its operands at info level
func Infoln(sl *SubLogger, v ...interface{}) {
	Info(sl, fmt.Sprint(v...))
}

// Debug logs at debug level
func Debug(sl *SubLogger, msg string) {
	mu.RLock()
	defer mu.RUnlock()
	if sl == nil || !sl.levels.Debug {
		return
	}
	sl.stage(debugHeader, msg)
}

// Debugf logs a formatted message at debug level
func Debugf(sl *SubLogger, format string, v ...interface{}) {
	Debug(sl, fmt.Sprintf(format, v...))
}

// Warn logs at warn level
func Warn(sl *SubLogger, msg string) {
	mu.RLock()
	defer mu.RUnlock()
	if sl == nil || !sl.levels.Warn {
		return
	}
	sl.stage(warnHeader, msg)
}

// Warnf logs a formatted message at warn level
func Warnf(sl *SubLogger, format string, v ...interface{}) {
	Warn(sl, fmt.Sprintf(format, v...))
}

// Error logs at error level
func Error(sl *SubLogger, msg string) {
	mu.RLock()
	defer mu.RUnlock()
	if sl == nil || !sl.levels.Error {
		return
	}
	sl.stage(errorHeader, msg)
}

// Errorf logs a formatted message at error level
func Errorf(sl *SubLogger, format string, v ...interface{}) {
	Error(sl, fmt.Sprintf(format, v...))
}
