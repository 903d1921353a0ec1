// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package browser

import (
	"context"
	"fmt"
	"sync"

	"github.com/chromedp/chromedp"
	"github.com/chromedp/chromedp/kb"
	"go.uber.org/zap"
)

// Options configures a Chrome launch.
type Options struct {
	// ExecPath is the resolved browser executable (see ResolveDriver).
	ExecPath string

	// Headless runs the browser without a window.
	Headless bool

	// NoSandbox passes --no-sandbox to the browser.
	NoSandbox bool

	// UserAgent overrides the browser's User-Agent when non-empty.
	UserAgent string

	// Logger receives browser lifecycle events. Nil disables logging.
	Logger *zap.Logger
}

// Chrome is one browser process with a single tab. It is not safe for
// concurrent use.
type Chrome struct {
	ctx         context.Context
	cancelTab   context.CancelFunc
	cancelAlloc context.CancelFunc
	log         *zap.Logger
	closeOnce   sync.Once
}

// Launch starts the browser process and opens its first tab. The process
// lives until Close, independent of ctx; ctx only bounds the startup.
func Launch(ctx context.Context, opts Options) (*Chrome, error) {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}

	allocOpts := append(chromedp.DefaultExecAllocatorOptions[:], chromedp.ExecPath(opts.ExecPath))
	if !opts.Headless {
		allocOpts = append(allocOpts, chromedp.Flag("headless", false))
	}
	if opts.NoSandbox {
		allocOpts = append(allocOpts, chromedp.NoSandbox)
	}
	if opts.UserAgent != "" {
		allocOpts = append(allocOpts, chromedp.UserAgent(opts.UserAgent))
	}

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(context.Background(), allocOpts...)
	tabCtx, cancelTab := chromedp.NewContext(allocCtx,
		chromedp.WithLogf(log.Sugar().Debugf),
		chromedp.WithErrorf(log.Sugar().Debugf),
	)

	c := &Chrome{
		ctx:         tabCtx,
		cancelTab:   cancelTab,
		cancelAlloc: cancelAlloc,
		log:         log,
	}

	// The first Run allocates the browser; it must use the tab context
	// itself so the process is not tied to a caller deadline.
	if err := c.run(ctx); err != nil {
		c.Close()
		return nil, fmt.Errorf("%w: starting %s: %v", ErrDriverNotFound, opts.ExecPath, err)
	}
	log.Debug("browser started", zap.String("exec_path", opts.ExecPath), zap.Bool("headless", opts.Headless))
	return c, nil
}

// Navigate loads url and waits for the page load event.
func (c *Chrome) Navigate(ctx context.Context, url string) error {
	return c.run(ctx, chromedp.Navigate(url))
}

// Click waits for the first element matching the CSS selector to become
// visible and clicks it.
func (c *Chrome) Click(ctx context.Context, selector string) error {
	return c.run(ctx, chromedp.Click(selector, chromedp.ByQuery))
}

// Submit focuses the input matching selector, types text and presses Enter.
func (c *Chrome) Submit(ctx context.Context, selector, text string) error {
	return c.run(ctx,
		chromedp.WaitVisible(selector, chromedp.ByQuery),
		chromedp.Click(selector, chromedp.ByQuery),
		chromedp.SendKeys(selector, text+kb.Enter, chromedp.ByQuery),
	)
}

// WaitFor blocks until an element matching the CSS selector is in the DOM.
// Comma-separated selector groups match any of their members.
func (c *Chrome) WaitFor(ctx context.Context, selector string) error {
	return c.run(ctx, chromedp.WaitReady(selector, chromedp.ByQuery))
}

// HTML returns the current outer HTML of the document.
func (c *Chrome) HTML(ctx context.Context) (string, error) {
	var html string
	if err := c.run(ctx, chromedp.OuterHTML("html", &html, chromedp.ByQuery)); err != nil {
		return "", err
	}
	return html, nil
}

// Close closes the tab and terminates the browser process. Safe to call
// more than once.
func (c *Chrome) Close() error {
	c.closeOnce.Do(func() {
		c.cancelTab()
		c.cancelAlloc()
		c.log.Debug("browser closed")
	})
	return nil
}

// run executes actions on the tab. Cancellation of ctx aborts the actions
// without closing the tab, and its cause (e.g. context.DeadlineExceeded)
// is returned in place of the chromedp error.
func (c *Chrome) run(ctx context.Context, actions ...chromedp.Action) error {
	if len(actions) == 0 {
		// Allocation must run on the tab context so the browser outlives ctx.
		done := make(chan error, 1)
		go func() { done <- chromedp.Run(c.ctx) }()
		select {
		case err := <-done:
			return err
		case <-ctx.Done():
			return context.Cause(ctx)
		}
	}

	runCtx, cancel := context.WithCancelCause(c.ctx)
	defer cancel(nil)
	stop := context.AfterFunc(ctx, func() { cancel(context.Cause(ctx)) })
	defer stop()

	if err := chromedp.Run(runCtx, actions...); err != nil {
		if cause := context.Cause(runCtx); cause != nil {
			return cause
		}
		return err
	}
	return nil
}
