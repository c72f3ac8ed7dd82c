package runner

import (
	"flag"
	"fmt"
	"io"
	"strings"
	"sync"
	"testing"

	"pgregory.net/rapid"
)

var _ rapid.TB = (*T)(nil)

// stop unwinds the goroutine of a T after FailNow or SkipNow.
type stop struct{}

var initFlags sync.Once

// ensureFlags prepares the testing flags rapid consults (-test.short) when
// properties run outside of `go test`.
func ensureFlags() {
	initFlags.Do(func() {
		testing.Init()
		if !flag.Parsed() {
			_ = flag.CommandLine.Parse(nil)
		}
	})
}

// T is a rapid.TB for running properties outside of `go test`.
// Log output is written to the configured writer as it happens.
type T struct {
	name string
	out  io.Writer

	mu       sync.Mutex
	failed   bool
	skipped  bool
	messages []string
}

// NewT creates a T named name. out may be nil.
func NewT(name string, out io.Writer) *T {
	return &T{name: name, out: out}
}

func (t *T) Helper()      {}
func (t *T) Name() string { return t.name }

func (t *T) Log(args ...any)                 { t.log(fmt.Sprintln(args...)) }
func (t *T) Logf(format string, args ...any) { t.log(fmt.Sprintf(format, args...)) }

func (t *T) Error(args ...any) {
	t.Log(args...)
	t.Fail()
}

func (t *T) Errorf(format string, args ...any) {
	t.Logf(format, args...)
	t.Fail()
}

func (t *T) Fatal(args ...any) {
	t.Log(args...)
	t.FailNow()
}

func (t *T) Fatalf(format string, args ...any) {
	t.Logf(format, args...)
	t.FailNow()
}

func (t *T) Skip(args ...any) {
	t.Log(args...)
	t.SkipNow()
}

func (t *T) Skipf(format string, args ...any) {
	t.Logf(format, args...)
	t.SkipNow()
}

func (t *T) SkipNow() {
	t.mu.Lock()
	t.skipped = true
	t.mu.Unlock()
	panic(stop{})
}

func (t *T) Fail() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.failed = true
}

func (t *T) FailNow() {
	t.Fail()
	panic(stop{})
}

func (t *T) Failed() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.failed
}

// Skipped reports whether the run was skipped.
func (t *T) Skipped() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.skipped
}

// Messages returns everything logged so far.
func (t *T) Messages() []string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return append([]string(nil), t.messages...)
}

// Do calls fn with t and returns once fn returns, fails fatally or skips.
// Any other panic marks t failed and is logged.
func (t *T) Do(fn func(rapid.TB)) {
	ensureFlags()
	defer func() {
		r := recover()
		if _, ok := r.(stop); ok || r == nil {
			return
		}
		t.Logf("panic: %v", r)
		t.Fail()
	}()
	fn(t)
}

func (t *T) log(msg string) {
	msg = strings.TrimSuffix(msg, "\n")
	t.mu.Lock()
	t.messages = append(t.messages, msg)
	t.mu.Unlock()
	if t.out != nil {
		fmt.Fprintf(t.out, "%s: %s\n", t.name, msg)
	}
}
