package parse

import (
	"regexp"
	"strings"
	"time"

	"github.com/valyala/fastjson"

	"github.com/portholedev/porthole/internal/logring"
)

// Regex patterns for plain text log lines.
var (
	timestampRe = regexp.MustCompile(`^(\d{4}-\d{2}-\d{2}[ T]\d{2}:\d{2}:\d{2}(?:\.\d+)?(?:Z|[+-]\d{2}:?\d{2})?)\s*`)
	levelRe     = regexp.MustCompile(`^\[?(TRACE|TRC|DEBUG|DBG|INFO|INF|WARNING|WARN|WRN|ERROR|ERR|FATAL|PANIC|CRITICAL)\]?[:\s]\s*`)
)

var timeLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02 15:04:05.000",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
}

var parsers fastjson.ParserPool

// Line parses a single raw log line into a record. JSON lines are detected
// by a leading '{'; everything else goes through the plain text pass. When
// neither matches, the raw line becomes an info record with the current time.
func Line(raw string) logring.Record {
	trimmed := strings.TrimRight(raw, "\r")
	if strings.HasPrefix(strings.TrimSpace(trimmed), "{") {
		if rec, ok := jsonLine(trimmed); ok {
			return rec
		}
	}
	return textLine(trimmed)
}

func textLine(line string) logring.Record {
	ts := time.Now()
	rest := line

	if m := timestampRe.FindStringSubmatch(rest); m != nil {
		if parsed, ok := parseTime(m[1]); ok {
			ts = parsed
		}
		rest = rest[len(m[0]):]
	}

	level := logring.LevelInfo
	if m := levelRe.FindStringSubmatch(strings.ToUpper(rest)); m != nil {
		level = logring.ParseLevel(m[1])
		rest = rest[len(m[0]):]
	}

	rec := logring.NewRecord(ts, level, strings.TrimSpace(rest))
	rec.Formatted = line
	return rec
}

func jsonLine(line string) (logring.Record, bool) {
	p := parsers.Get()
	defer parsers.Put(p)

	v, err := p.Parse(line)
	if err != nil {
		return logring.Record{}, false
	}

	msg := string(v.GetStringBytes("message"))
	if msg == "" {
		msg = string(v.GetStringBytes("msg"))
	}
	if msg == "" {
		return logring.Record{}, false
	}

	level := logring.ParseLevel(string(v.GetStringBytes("level")))

	ts := time.Now()
	for _, key := range []string{"time", "timestamp", "ts"} {
		if raw := string(v.GetStringBytes(key)); raw != "" {
			if parsed, ok := parseTime(raw); ok {
				ts = parsed
			}
			break
		}
	}

	return logring.NewRecord(ts, level, msg), true
}

func parseTime(raw string) (time.Time, bool) {
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
