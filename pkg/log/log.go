package log

import (
	"fmt"
	"log"
	"os"
	"time"
)

type Logger interface {
	Error(format string, v ...any)
	Warning(format string, v ...any)
	Info(format string, v ...any)
	Debug(format string, v ...any)
	Close() error
}

// New returns a logger writing to the file at path. When path is empty errors
// and warnings go to stderr, info and debug lines to stdout. Debug lines are only written when verbose is set.
func New(path string, verbose bool) (Logger, error) {
	if path != "" {
		file, err := os.OpenFile(path, os.O_WRONLY|os.O_APPEND|os.O_CREATE, 0666)
		if err != nil {
			return nil, err
		}
		return &StdLog{
			err:     log.New(file, "ERROR ", log.Ldate|log.Ltime),
			wrn:     log.New(file, "WARN ", log.Ldate|log.Ltime),
			inf:     log.New(file, "INFO ", log.Ldate|log.Ltime),
			dbg:     log.New(file, "DEBUG ", log.Ldate|log.Ltime),
			verbose: verbose,
			file:    file,
		}, nil
	}
	return &StdLog{
		err:     log.New(os.Stderr, "", 0),
		wrn:     log.New(os.Stderr, "", 0),
		inf:     log.New(os.Stdout, "", 0),
		dbg:     log.New(os.Stdout, "", 0),
		verbose: verbose,
	}, nil
}

type StdLog struct {
	err, wrn, inf, dbg *log.Logger
	verbose            bool
	file               *os.File
}

func (l *StdLog) Error(format string, v ...any) {
	_ = l.err.Output(2, fmt.Sprintf(format, v...))
}

func (l *StdLog) Info(format string, v ...any) {
	_ = l.inf.Output(2, fmt.Sprintf(format, v...))
}

func (l *StdLog) Warning(format string, v ...any) {
	_ = l.wrn.Output(2, fmt.Sprintf(format, v...))
}

func (l *StdLog) Debug(format string, v ...any) {
	if !l.verbose {
		return
	}
	_ = l.dbg.Output(2, fmt.Sprintf(format, v...))
}

func (l *StdLog) Close() error {
	if l.file != nil {
		return l.file.Close()
	}
	return nil
}

type EmptyLog struct{}

func NewEmptyLog() Logger { return EmptyLog{} }

func (l EmptyLog) Error(string, ...any)   {}
func (l EmptyLog) Warning(string, ...any) {}
func (l EmptyLog) Info(string, ...any)    {}
func (l EmptyLog) Debug(string, ...any)   {}
func (l EmptyLog) Close() error           { return nil }

type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarning
	LevelError
)

func (lvl Level) String() string {
	switch lvl {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarning:
		return "WARN"
	case LevelError:
		return "ERROR"
	}
	return "?"
}

// Record is a single log line delivered through ChanLog.
type Record struct {
	Level   Level
	Message string
	Time    time.Time
}

// ChanLog sends records to a channel, optionally mirroring them to another logger.
// Records are dropped when nobody reads the channel.
type ChanLog struct {
	records chan Record
	next    Logger
}

func NewChanLog(size int, next Logger) *ChanLog {
	if next == nil {
		next = NewEmptyLog()
	}
	return &ChanLog{records: make(chan Record, size), next: next}
}

func (l *ChanLog) Records() <-chan Record {
	return l.records
}

func (l *ChanLog) send(lvl Level, format string, v ...any) {
	select {
	case l.records <- Record{Level: lvl, Message: fmt.Sprintf(format, v...), Time: time.Now()}:
	default:
	}
}

func (l *ChanLog) Error(format string, v ...any) {
	l.send(LevelError, format, v...)
	l.next.Error(format, v...)
}

func (l *ChanLog) Warning(format string, v ...any) {
	l.send(LevelWarning, format, v...)
	l.next.Warning(format, v...)
}

func (l *ChanLog) Info(format string, v ...any) {
	l.send(LevelInfo, format, v...)
	l.next.Info(format, v...)
}

func (l *ChanLog) Debug(format string, v ...any) {
	l.next.Debug(format, v...)
}

func (l *ChanLog) Close() error {
	return l.next.Close()
}
