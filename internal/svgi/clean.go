package svgi

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"regexp"
	"strings"
)

// Cleaner prepares raw SVG text for code generation.
//
// A Cleaner returns either Sync text or a Deferred clean that settles later.
// Returning nil breaks the contract and fails the transform with a
// CleanFunctionError.
type Cleaner interface {
	Clean(ctx context.Context, raw string) Cleaned
}

// Cleaned is the outcome of a Cleaner: Sync or *Deferred.
// The interface is sealed; no other implementations exist.
type Cleaned interface {
	await(ctx context.Context) (string, error)
}

// Sync is cleaned text that is available immediately.
type Sync string

func (s Sync) await(context.Context) (string, error) {
	return string(s), nil
}

var errDeferredNotStarted = errors.New("deferred clean was never started")

// Deferred is cleaned text produced asynchronously. Create one with Defer.
type Deferred struct {
	done chan struct{}
	text string
	err  error
}

// Defer starts fn in its own goroutine and returns a Deferred that settles
// when fn returns.
func Defer(ctx context.Context, fn func(ctx context.Context) (string, error)) *Deferred {
	d := &Deferred{done: make(chan struct{})}
	go func() {
		defer close(d.done)
		d.text, d.err = fn(ctx)
	}()
	return d
}

// Wait blocks until the clean settles or ctx is done.
func (d *Deferred) Wait(ctx context.Context) (string, error) {
	return d.await(ctx)
}

func (d *Deferred) await(ctx context.Context) (string, error) {
	if d == nil || d.done == nil {
		return "", errDeferredNotStarted
	}
	select {
	case <-d.done:
		return d.text, d.err
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

// CleanFunc adapts a synchronous text transform to a Cleaner.
type CleanFunc func(raw string) string

// Clean implements Cleaner.
func (f CleanFunc) Clean(_ context.Context, raw string) Cleaned {
	return Sync(f(raw))
}

// DeferredFunc adapts an asynchronous text transform to a Cleaner.
type DeferredFunc func(ctx context.Context, raw string) (string, error)

// Clean implements Cleaner.
func (f DeferredFunc) Clean(ctx context.Context, raw string) Cleaned {
	return Defer(ctx, func(ctx context.Context) (string, error) {
		return f(ctx, raw)
	})
}

// NoClean passes the raw SVG through untouched.
var NoClean Cleaner = noClean{}

type noClean struct{}

func (noClean) Clean(_ context.Context, raw string) Cleaned {
	return Sync(raw)
}

// DefaultCleaner runs CleanSVG.
var DefaultCleaner Cleaner = defaultCleaner{}

type defaultCleaner struct{}

func (defaultCleaner) Clean(_ context.Context, raw string) Cleaned {
	return Sync(CleanSVG(raw))
}

// space is the JavaScript \s class. RE2's \s only covers ASCII, so vertical
// tab, Zs separators, U+2028/U+2029 and the byte order mark are added.
const space = `[\s\x{0B}\p{Zs}\x{2028}\x{2029}\x{FEFF}]`

var (
	xmlDeclRe    = regexp.MustCompile(space + `*<\?xml[\s\S]+?\?>` + space + `*`)
	doctypeRe    = regexp.MustCompile(`(?i)` + space + `*<!DOCTYPE[\s\S]*?>` + space + `*`)
	namespacedRe = regexp.MustCompile(`(?i)` + space + `+(?:xmlns|[a-z_][\w.-]*:[a-z_][\w.-]*)` + space + `*=` + space + `*"[^"]*"`)
	commentRe    = regexp.MustCompile(space + `*<!--[\s\S]*?-->` + space + `*`)
	whitespaceRe = regexp.MustCompile(space + `+`)
)

// CleanSVG is the built-in normalization pipeline. In order it removes the
// first XML declaration, the first DOCTYPE, every namespace declaration and
// namespaced attribute, and every comment, then collapses whitespace runs to
// a single space. Malformed fragments pass through.
func CleanSVG(raw string) string {
	s := replaceFirst(xmlDeclRe, raw, "")
	s = replaceFirst(doctypeRe, s, "")
	s = namespacedRe.ReplaceAllString(s, "")
	s = commentRe.ReplaceAllString(s, "")
	return whitespaceRe.ReplaceAllString(s, " ")
}

func replaceFirst(re *regexp.Regexp, s, repl string) string {
	loc := re.FindStringIndex(s)
	if loc == nil {
		return s
	}
	return s[:loc[0]] + repl + s[loc[1]:]
}

// CommandCleaner pipes the SVG through an external program (for example
// `svgo -i - -o -`) and reads the cleaned text from its stdout.
type CommandCleaner struct {
	// Args is the program and its arguments.
	Args []string

	// Dir is the working directory of the program (optional).
	Dir string
}

// Clean implements Cleaner. An empty command yields no result.
func (c CommandCleaner) Clean(ctx context.Context, raw string) Cleaned {
	if len(c.Args) == 0 {
		return nil
	}
	return Defer(ctx, func(ctx context.Context) (string, error) {
		cmd := exec.CommandContext(ctx, c.Args[0], c.Args[1:]...)
		cmd.Dir = c.Dir
		cmd.Stdin = strings.NewReader(raw)

		var stdout, stderr bytes.Buffer
		cmd.Stdout = &stdout
		cmd.Stderr = &stderr

		if err := cmd.Run(); err != nil {
			if msg := strings.TrimSpace(stderr.String()); msg != "" {
				return "", fmt.Errorf("%s: %w: %s", c.Args[0], err, msg)
			}
			return "", fmt.Errorf("%s: %w", c.Args[0], err)
		}
		return stdout.String(), nil
	})
}
