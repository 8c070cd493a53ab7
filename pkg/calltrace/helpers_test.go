package calltrace_test

import (
	"strings"
	"sync"
)

type entry struct {
	level  string
	msg    string
	err    error
	fields map[string]interface{}
}

// recordingLogger keeps every line written by the tracer.
type recordingLogger struct {
	mu      sync.Mutex
	entries []entry
}

func (l *recordingLogger) record(level, msg string, err error, fields []map[string]interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	merged := map[string]interface{}{}
	for _, f := range fields {
		for k, v := range f {
			merged[k] = v
		}
	}
	l.entries = append(l.entries, entry{level: level, msg: msg, err: err, fields: merged})
}

func (l *recordingLogger) Info(msg string, err error, fields ...map[string]interface{}) {
	l.record("info", msg, err, fields)
}

func (l *recordingLogger) Debug(msg string, err error, fields ...map[string]interface{}) {
	l.record("debug", msg, err, fields)
}

func (l *recordingLogger) Warn(msg string, err error, fields ...map[string]interface{}) {
	l.record("warn", msg, err, fields)
}

func (l *recordingLogger) Error(msg string, err error, fields ...map[string]interface{}) {
	l.record("error", msg, err, fields)
}

func (l *recordingLogger) Fatal(msg string, err error, fields ...map[string]interface{}) {
	l.record("fatal", msg, err, fields)
}

// traceLines returns the trace entries, skipping debug output of the interceptor.
func (l *recordingLogger) traceLines() []entry {
	l.mu.Lock()
	defer l.mu.Unlock()
	var out []entry
	for _, e := range l.entries {
		if e.level == "debug" {
			continue
		}
		out = append(out, e)
	}
	return out
}

func (l *recordingLogger) messages() []string {
	var out []string
	for _, e := range l.traceLines() {
		out = append(out, e.msg)
	}
	return out
}

func (l *recordingLogger) linesFor(id string) []entry {
	var out []entry
	for _, e := range l.traceLines() {
		if strings.HasPrefix(e.msg, "["+id+"]") {
			out = append(out, e)
		}
	}
	return out
}

func fixedID(id string) func() string {
	return func() string { return id }
}
