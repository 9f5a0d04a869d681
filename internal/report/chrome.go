package report

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
)

// Letter paper with 0.39in margins on every side.
const (
	paperWidth  = 8.5
	paperHeight = 11.0
	marginInch  = 0.39
)

const footerTemplate = `<div style="font-size:8px;width:100%;text-align:center;"><span class="pageNumber"></span> / <span class="totalPages"></span></div>`

type ChromeOptions struct {
	ExecPath  string
	NoSandbox bool
	Timeout   time.Duration
}

// ChromeRenderer prints HTML to PDF in a shared headless Chrome. Each render
// opens its own tab. Safe for concurrent use.
type ChromeRenderer struct {
	opts          ChromeOptions
	allocCancel   context.CancelFunc
	browserCtx    context.Context
	browserCancel context.CancelFunc

	mu     sync.Mutex
	closed bool
}

// NewChromeRenderer starts the browser so a missing binary fails at startup.
func NewChromeRenderer(opts ChromeOptions) (*ChromeRenderer, error) {
	allocOpts := append(
		chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.Flag("disable-extensions", true),
		chromedp.Flag("no-first-run", true),
	)
	if opts.ExecPath != "" {
		allocOpts = append(allocOpts, chromedp.ExecPath(opts.ExecPath))
	}
	if opts.NoSandbox {
		allocOpts = append(allocOpts, chromedp.NoSandbox)
	}

	allocCtx, allocCancel := chromedp.NewExecAllocator(context.Background(), allocOpts...)
	browserCtx, browserCancel := chromedp.NewContext(allocCtx)
	if err := chromedp.Run(browserCtx); err != nil {
		browserCancel()
		allocCancel()
		return nil, fmt.Errorf("report: starting browser: %w", err)
	}
	return &ChromeRenderer{
		opts:          opts,
		allocCancel:   allocCancel,
		browserCtx:    browserCtx,
		browserCancel: browserCancel,
	}, nil
}

func (r *ChromeRenderer) RenderHTML(ctx context.Context, html string) ([]byte, error) {
	r.mu.Lock()
	closed := r.closed
	r.mu.Unlock()
	if closed {
		return nil, fmt.Errorf("%w: renderer closed", ErrRender)
	}

	f, err := os.CreateTemp("", "vizreport-*.html")
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRender, err)
	}
	name := f.Name()
	defer os.Remove(name)
	if _, err := f.WriteString(html); err != nil {
		f.Close()
		return nil, fmt.Errorf("%w: %w", ErrRender, err)
	}
	if err := f.Close(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRender, err)
	}
	abs, err := filepath.Abs(name)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRender, err)
	}

	if r.opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.opts.Timeout)
		defer cancel()
	}

	tabCtx, tabCancel := chromedp.NewContext(r.browserCtx)
	defer tabCancel()
	// tie the tab to the caller's deadline
	stop := context.AfterFunc(ctx, tabCancel)
	defer stop()

	var buf []byte
	if err := chromedp.Run(tabCtx,
		chromedp.Navigate("file://"+abs),
		chromedp.WaitReady("body", chromedp.ByQuery),
		chromedp.ActionFunc(func(ctx context.Context) error {
			var err error
			buf, _, err = page.PrintToPDF().
				WithPaperWidth(paperWidth).
				WithPaperHeight(paperHeight).
				WithMarginTop(marginInch).
				WithMarginRight(marginInch).
				WithMarginBottom(marginInch).
				WithMarginLeft(marginInch).
				WithPrintBackground(true).
				WithLandscape(false).
				WithDisplayHeaderFooter(true).
				WithHeaderTemplate(`<div></div>`).
				WithFooterTemplate(footerTemplate).
				Do(ctx)
			return err
		}),
	); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRender, err)
	}
	return buf, nil
}

// Close stops the browser. Close is idempotent.
func (r *ChromeRenderer) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return nil
	}
	r.closed = true
	r.browserCancel()
	r.allocCancel()
	return nil
}
