// Package browser implements the session's automation driver over a rod
// controlled Chromium instance.
package browser

import (
	"context"
	"fmt"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"go.uber.org/zap"

	"github.com/v0xg/selfheal/internal/session"
)

// Options configures the launched browser.
type Options struct {
	Width      int
	Height     int
	Headless   bool
	ProfileDir string // Chrome/Chromium profile directory for authenticated sessions
	Logger     *zap.Logger
}

// Driver wraps one rod browser and page and implements session.Driver.
type Driver struct {
	browser *rod.Browser
	page    *rod.Page
	log     *zap.Logger
}

// Launch starts a browser and opens a blank page.
func Launch(opts Options) (*Driver, error) {
	if opts.Width == 0 {
		opts.Width = 1280
	}
	if opts.Height == 0 {
		opts.Height = 720
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}

	path, _ := launcher.LookPath()
	l := launcher.New().Bin(path).Headless(opts.Headless)
	if opts.ProfileDir != "" {
		l = l.UserDataDir(opts.ProfileDir)
	}

	u, err := l.Launch()
	if err != nil {
		return nil, fmt.Errorf("launch browser: %w", err)
	}

	b := rod.New().ControlURL(u)
	if err := b.Connect(); err != nil {
		return nil, fmt.Errorf("connect browser: %w", err)
	}

	page, err := b.Page(protoBlankPage())
	if err != nil {
		b.Close()
		return nil, fmt.Errorf("open page: %w", err)
	}
	if err := page.SetViewport(viewport(opts.Width, opts.Height)); err != nil {
		b.Close()
		return nil, fmt.Errorf("set viewport: %w", err)
	}

	return &Driver{browser: b, page: page, log: opts.Logger}, nil
}

// Navigate loads the URL and waits for the page to settle. SPAs get a
// short network-idle grace so hydrated content is present before the
// first selector resolves.
func (d *Driver) Navigate(ctx context.Context, url string) error {
	page := d.page.Context(ctx)
	if err := page.Navigate(url); err != nil {
		return fmt.Errorf("navigate %s: %w", url, err)
	}
	if err := page.WaitLoad(); err != nil {
		return fmt.Errorf("wait load %s: %w", url, err)
	}
	// Bounded so persistent connections (websockets, polling) cannot hang us.
	page.Timeout(5 * time.Second).WaitRequestIdle(500*time.Millisecond, nil, nil, nil)()
	d.log.Debug("navigated", zap.String("url", url))
	return nil
}

// Resolve waits up to timeout for the selector to match an element.
func (d *Driver) Resolve(ctx context.Context, selector string, timeout time.Duration) (session.Handle, error) {
	el, err := d.page.Context(ctx).Timeout(timeout).Element(selector)
	if err != nil {
		return nil, &session.ResolveError{Selector: selector, Timeout: timeout, Err: err}
	}
	return &element{el: el}, nil
}

// CurrentMarkup captures the live document as HTML text.
func (d *Driver) CurrentMarkup(ctx context.Context) (string, error) {
	html, err := d.page.Context(ctx).HTML()
	if err != nil {
		return "", fmt.Errorf("markup snapshot: %w", err)
	}
	return html, nil
}

// EvalJSON runs a JS function in the page and returns its string result.
// Callers pass functions that JSON.stringify their payload.
func (d *Driver) EvalJSON(ctx context.Context, js string) (string, error) {
	obj, err := d.page.Context(ctx).Eval(js)
	if err != nil {
		return "", fmt.Errorf("page eval: %w", err)
	}
	return obj.Value.Str(), nil
}

// Page exposes the underlying rod page for callers needing direct access.
func (d *Driver) Page() *rod.Page {
	return d.page
}

// Close releases the page and browser.
func (d *Driver) Close() {
	if d.page != nil {
		d.page.Close()
	}
	if d.browser != nil {
		d.browser.Close()
	}
}
