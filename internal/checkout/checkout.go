// Package checkout hands the visitor off to the external payment page.
package checkout

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"os/exec"
	"runtime"
)

// ErrInvalidURL is returned for URLs that are not absolute http(s).
var ErrInvalidURL = errors.New("invalid checkout URL")

// Opener performs the outbound redirect.
type Opener interface {
	Open(ctx context.Context, rawURL string) error
}

// Runner starts an external command. It exists so tests can observe the
// command line without launching a browser.
type Runner func(ctx context.Context, name string, args ...string) error

// BrowserOpener opens URLs with the operating system's URL handler.
type BrowserOpener struct {
	GOOS string // defaults to runtime.GOOS
	Run  Runner // defaults to exec
}

// NewBrowserOpener returns an opener for the current platform.
func NewBrowserOpener() *BrowserOpener {
	return &BrowserOpener{}
}

// Command returns the command line that opens rawURL on goos.
func Command(goos, rawURL string) (string, []string) {
	switch goos {
	case "darwin":
		return "open", []string{rawURL}
	case "windows":
		return "rundll32", []string{"url.dll,FileProtocolHandler", rawURL}
	default:
		return "xdg-open", []string{rawURL}
	}
}

// Validate checks that rawURL is an absolute http or https URL.
func Validate(rawURL string) error {
	u, err := url.Parse(rawURL)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" || u.Host == "" {
		return fmt.Errorf("%w: %q", ErrInvalidURL, rawURL)
	}
	return nil
}

func (o *BrowserOpener) Open(ctx context.Context, rawURL string) error {
	if err := Validate(rawURL); err != nil {
		return err
	}
	goos := o.GOOS
	if goos == "" {
		goos = runtime.GOOS
	}
	run := o.Run
	if run == nil {
		run = execRun
	}

	name, args := Command(goos, rawURL)
	if err := run(ctx, name, args...); err != nil {
		return fmt.Errorf("open checkout with %s: %w", name, err)
	}
	return nil
}

func execRun(ctx context.Context, name string, args ...string) error {
	return exec.CommandContext(ctx, name, args...).Run()
}
