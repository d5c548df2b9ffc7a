// Package viewer hands model URLs to the platform's URL opener.
package viewer

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"runtime"
	"strings"

	"github.com/kk-code-lab/tocview/internal/logging"
	"go.uber.org/zap"
)

// ErrNoOpener is returned when no opener command was found.
var ErrNoOpener = errors.New("no url opener found")

// Runner starts a detached command.
type Runner func(ctx context.Context, name string, args ...string) error

// Opener launches URLs with a detected platform command.
type Opener struct {
	command []string
	run     Runner
}

// Detect finds the opener for the current platform. The returned Opener is
// usable even when nothing was found; Open then reports ErrNoOpener.
func Detect() *Opener {
	cmd, _ := detectOpenerInternal(runtime.GOOS, exec.LookPath)
	return &Opener{command: cmd, run: startDetached}
}

// NewWithCommand builds an opener around an explicit command prefix.
func NewWithCommand(command []string, run Runner) *Opener {
	if run == nil {
		run = startDetached
	}
	return &Opener{command: command, run: run}
}

// Available reports whether an opener command was found.
func (o *Opener) Available() bool {
	return o != nil && len(o.command) > 0
}

// Open launches url without waiting for the viewer to exit.
func (o *Opener) Open(ctx context.Context, url string) error {
	if !o.Available() {
		return ErrNoOpener
	}
	args := append(append([]string{}, o.command[1:]...), url)
	logging.Named("viewer").Debug("opening url",
		zap.String("command", o.command[0]),
		zap.String("url", url))
	if err := o.run(ctx, o.command[0], args...); err != nil {
		return fmt.Errorf("open %s: %w", url, err)
	}
	return nil
}

func startDetached(ctx context.Context, name string, args ...string) error {
	cmd := exec.CommandContext(ctx, name, args...)
	if err := cmd.Start(); err != nil {
		return err
	}
	go func() { _ = cmd.Wait() }()
	return nil
}

func detectOpenerInternal(goos string, lookPath func(string) (string, error)) ([]string, bool) {
	switch strings.ToLower(goos) {
	case "windows":
		if path, err := lookPath("rundll32"); err == nil && path != "" {
			return []string{path, "url.dll,FileProtocolHandler"}, true
		}
		if path, err := lookPath("cmd"); err == nil && path != "" {
			return []string{path, "/c", "start", ""}, true
		}
		return nil, false
	case "darwin":
		if path, err := lookPath("open"); err == nil && path != "" {
			return []string{path}, true
		}
		return nil, false
	}

	for _, candidate := range []string{"xdg-open", "wslview", "gio"} {
		path, err := lookPath(candidate)
		if err != nil || path == "" {
			continue
		}
		if candidate == "gio" {
			return []string{path, "open"}, true
		}
		return []string{path}, true
	}
	return nil, false
}
