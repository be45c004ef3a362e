package log

import (
	"io"
	"sync"
)

const (
	timestampFormat = "02/01/2006 15:04:05"
	spacer          = " | "

	infoHeader  = "[INFO]"
	warnHeader  = "[WARN]"
	debugHeader = "[DEBUG]"
	errorHeader = "[ERROR]"
)

// SubLogger scopes log output to a named subsystem with its own level toggles
type SubLogger struct {
	name   string
	levels Levels
	output io.Writer
}

// Levels flags which log levels a sublogger emits
type Levels struct {
	Info  bool
	Debug bool
	Warn  bool
	Error bool
}

var (
	mu         sync.RWMutex
	subLoggers = map[string]*SubLogger{}

	// Global is the catch-all sublogger
	Global *SubLogger
	// Engine covers the simulation run loop
	Engine *SubLogger
	// Scheduler covers rebalance timestamp generation
	Scheduler *SubLogger
	// Exchange covers simulated order execution
	Exchange *SubLogger
	// Ledger covers accounting updates
	Ledger *SubLogger
	// Config covers configuration loading and validation
	Config *SubLogger
	// Data covers bar feed loading
	Data *SubLogger
	// Report covers statistics output and the report server
	Report *SubLogger
)
