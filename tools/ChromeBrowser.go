package tools

import (
	"context"
	"time"

	"github.com/chromedp/chromedp"
	"github.com/rs/zerolog/log"
)

type Browser struct {
	ctx    context.Context
	cancel context.CancelFunc
}

// Constructor. The browser lives until parent is cancelled or Close is called.
func NewBrowser(parent context.Context, headless bool) (*Browser, error) {
	opts := SweepFlags(headless)

	allocCtx, allocCancel := chromedp.NewExecAllocator(parent, opts...)
	logger := log.With().Str("component", "chrome").Logger()
	ctx, cancel := chromedp.NewContext(allocCtx, chromedp.WithErrorf(logger.Printf))

	// Start the browser with an empty tab
	err := chromedp.Run(ctx)
	if err != nil {
		cancel()
		allocCancel()
		return nil, err
	}

	return &Browser{
		ctx: ctx,
		cancel: func() {
			cancel()
			allocCancel()
		},
	}, nil
}

// GetContext returns the chromedp context
func (b *Browser) GetContext() context.Context {
	return b.ctx
}

// GetContextWithTimeout returns a chromedp context bounded by timeout that
// is also cancelled when caller is done
func (b *Browser) GetContextWithTimeout(caller context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	timeoutCtx, cancel := context.WithTimeout(b.ctx, timeout)
	stop := context.AfterFunc(caller, cancel)

	return timeoutCtx, func() {
		stop()
		cancel()
	}
}

// Close closes the browser
func (b *Browser) Close() {
	b.cancel()
}
