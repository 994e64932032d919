package testutils

import (
	"bytes"
	"log"
	"reflect"
	"strings"
	"testing"

	"github.com/benoitkugler/inlinelayout/logger"
)

func AssertEqual(t *testing.T, got, exp interface{}) {
	t.Helper()
	if !reflect.DeepEqual(exp, got) {
		t.Fatalf("expected\n%v\n got \n%v", exp, got)
	}
}

// Assert calls t.Fatal with [msg] if [b] is false.
func Assert(t *testing.T, b bool, msg string) {
	t.Helper()
	if !b {
		t.Fatal(msg)
	}
}

// CapturedLogs stores the warnings emitted while it is active.
type CapturedLogs struct {
	previous *log.Logger
	buf      bytes.Buffer
}

// CaptureLogs redirects [logger.WarningLogger] until
// one of the Assert methods is called.
func CaptureLogs() *CapturedLogs {
	out := &CapturedLogs{previous: logger.WarningLogger}
	logger.WarningLogger = log.New(&out.buf, "", 0)
	return out
}

func (c *CapturedLogs) restore() {
	logger.WarningLogger = c.previous
}

// Logs returns the captured messages and stops the capture.
func (c *CapturedLogs) Logs() []string {
	c.restore()
	s := strings.TrimSpace(c.buf.String())
	if s == "" {
		return nil
	}
	return strings.Split(s, "\n")
}

// AssertNoLogs fails if a warning has been emitted.
func (c *CapturedLogs) AssertNoLogs(t *testing.T) {
	t.Helper()
	if logs := c.Logs(); len(logs) != 0 {
		t.Fatalf("expected no logs, got (%d): \n%s", len(logs), strings.Join(logs, "\n"))
	}
}

// AssertLogs fails if the number of warnings is not [n].
func (c *CapturedLogs) AssertLogs(t *testing.T, n int) {
	t.Helper()
	if logs := c.Logs(); len(logs) != n {
		t.Fatalf("expected %d logs, got (%d): \n%s", n, len(logs), strings.Join(logs, "\n"))
	}
}
