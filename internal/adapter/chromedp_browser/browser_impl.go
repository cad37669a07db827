package chromedp_browser

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/chromedp/cdproto/emulation"
	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
	"github.com/user/travel-deals-service/internal/repository"
	"github.com/user/travel-deals-service/pkg/logger"
)

const (
	refAttribute = "data-scrape-ref"
	clickTimeout = 10 * time.Second
)

// hideAutomationScript runs before any page script on every new document.
const hideAutomationScript = `
Object.defineProperty(navigator, 'webdriver', { get: () => undefined });
Object.defineProperty(navigator, 'plugins', { get: () => [1, 2, 3, 4, 5] });
Object.defineProperty(navigator, 'languages', { get: () => ['en-US', 'en'] });
`

type Options struct {
	Headless        bool
	UserAgent       string
	PageLoadTimeout time.Duration
}

// ChromedpBrowser launches one Chrome process per session.
type ChromedpBrowser struct {
	allocCtx    context.Context
	allocCancel context.CancelFunc
	timeout     time.Duration
}

// NewChromedpBrowser prepares an allocator with automation markers stripped from the launch flags.
func NewChromedpBrowser(opts Options) *ChromedpBrowser {
	allocCtx, cancel := chromedp.NewExecAllocator(context.Background(), StealthOptions(opts.Headless, opts.UserAgent)...)
	return &ChromedpBrowser{
		allocCtx:    allocCtx,
		allocCancel: cancel,
		timeout:     opts.PageLoadTimeout,
	}
}

// StealthOptions returns launch options that look like a regular desktop browser.
func StealthOptions(headless bool, userAgent string) []chromedp.ExecAllocatorOption {
	opts := []chromedp.ExecAllocatorOption{
		chromedp.NoFirstRun,
		chromedp.NoDefaultBrowserCheck,
		chromedp.Flag("disable-blink-features", "AutomationControlled"),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.WindowSize(1920, 1080),
	}
	if userAgent != "" {
		opts = append(opts, chromedp.UserAgent(userAgent))
	}
	if headless {
		opts = append(opts, chromedp.Flag("headless", "new"))
	}
	return opts
}

// Open starts a browser bound to url. Nothing is requested until Load.
func (b *ChromedpBrowser) Open(ctx context.Context, url string) (repository.BrowserSession, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", repository.ErrSession, err)
	}
	tabCtx, cancel := chromedp.NewContext(b.allocCtx, chromedp.WithLogf(logger.Debugf))

	// Run with no actions launches the browser process.
	if err := chromedp.Run(tabCtx); err != nil {
		cancel()
		return nil, fmt.Errorf("%w: launch browser: %v", repository.ErrSession, err)
	}
	slog.Info("Browser session opened", "url", url)

	return &Session{
		tabCtx:  tabCtx,
		cancel:  cancel,
		url:     url,
		timeout: b.timeout,
	}, nil
}

// Close releases the allocator shared by all sessions.
func (b *ChromedpBrowser) Close() {
	b.allocCancel()
}

// Session is one Chrome tab.
type Session struct {
	tabCtx  context.Context
	cancel  context.CancelFunc
	url     string
	timeout time.Duration
}

// run executes actions on the tab, aborting if the caller's ctx ends first.
func (s *Session) run(ctx context.Context, timeout time.Duration, actions ...chromedp.Action) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	var (
		runCtx context.Context
		cancel context.CancelFunc
	)
	if timeout > 0 {
		runCtx, cancel = context.WithTimeout(s.tabCtx, timeout)
	} else {
		runCtx, cancel = context.WithCancel(s.tabCtx)
	}
	defer cancel()
	stop := context.AfterFunc(ctx, cancel)
	defer stop()
	return chromedp.Run(runCtx, actions...)
}

func (s *Session) SetIdentity(ctx context.Context, userAgent string) error {
	err := s.run(ctx, 0,
		emulation.SetUserAgentOverride(userAgent),
		chromedp.ActionFunc(func(ctx context.Context) error {
			_, err := page.AddScriptToEvaluateOnNewDocument(hideAutomationScript).Do(ctx)
			return err
		}),
	)
	if err != nil {
		return fmt.Errorf("%w: set identity: %v", repository.ErrSession, err)
	}
	return nil
}

func (s *Session) Load(ctx context.Context) error {
	start := time.Now()
	if err := s.run(ctx, s.timeout, chromedp.Navigate(s.url)); err != nil {
		return fmt.Errorf("%w: navigate %s: %v", repository.ErrSession, s.url, err)
	}
	slog.Info("Page loaded", "url", s.url, "duration_ms", time.Since(start).Milliseconds())
	return nil
}

func (s *Session) Evaluate(ctx context.Context, script string) error {
	if err := s.run(ctx, 0, chromedp.Evaluate(script, nil)); err != nil {
		return fmt.Errorf("%w: evaluate: %v", repository.ErrSession, err)
	}
	return nil
}

type jsElement struct {
	ID        string `json:"id"`
	Text      string `json:"text"`
	AriaLabel string `json:"ariaLabel"`
	Title     string `json:"title"`
}

// findScript tags each match with a stable reference attribute so later
// clicks can address the same element. Selectors the engine rejects yield no matches.
func findScript(selector string) string {
	quoted, _ := json.Marshal(selector)
	return fmt.Sprintf(`(() => {
	let nodes;
	try { nodes = document.querySelectorAll(%s); } catch (e) { return []; }
	window.__scrapeRefSeq = window.__scrapeRefSeq || 0;
	return Array.from(nodes).map(el => {
		let id = el.getAttribute(%q);
		if (!id) {
			id = 'r' + (++window.__scrapeRefSeq);
			el.setAttribute(%q, id);
		}
		return {
			id: id,
			text: (el.innerText || '').trim(),
			ariaLabel: el.getAttribute('aria-label') || '',
			title: el.getAttribute('title') || '',
		};
	});
})()`, quoted, refAttribute, refAttribute)
}

func (s *Session) FindElements(ctx context.Context, selector string) ([]repository.ElementRef, error) {
	var found []jsElement
	if err := s.run(ctx, 0, chromedp.Evaluate(findScript(selector), &found)); err != nil {
		return nil, fmt.Errorf("%w: find %s: %v", repository.ErrSession, selector, err)
	}
	refs := make([]repository.ElementRef, 0, len(found))
	for _, f := range found {
		refs = append(refs, repository.ElementRef{ID: f.ID, Text: f.Text, AriaLabel: f.AriaLabel, Title: f.Title})
	}
	return refs, nil
}

func refSelector(el repository.ElementRef) string {
	return fmt.Sprintf(`[%s=%q]`, refAttribute, el.ID)
}

func (s *Session) Click(ctx context.Context, el repository.ElementRef) error {
	if err := s.run(ctx, clickTimeout, chromedp.Click(refSelector(el), chromedp.ByQuery)); err != nil {
		return fmt.Errorf("%w: click %s: %v", repository.ErrSession, el.ID, err)
	}
	return nil
}

func (s *Session) ClickScript(ctx context.Context, el repository.ElementRef) error {
	quoted, _ := json.Marshal(refSelector(el))
	script := fmt.Sprintf(`(() => {
	const el = document.querySelector(%s);
	if (!el) { return false; }
	el.click();
	return true;
})()`, quoted)

	var clicked bool
	if err := s.run(ctx, clickTimeout, chromedp.Evaluate(script, &clicked)); err != nil {
		return fmt.Errorf("%w: script click %s: %v", repository.ErrSession, el.ID, err)
	}
	if !clicked {
		return fmt.Errorf("%w: script click %s: element detached", repository.ErrSession, el.ID)
	}
	return nil
}

func (s *Session) HTML(ctx context.Context) (string, error) {
	var html string
	if err := s.run(ctx, 0, chromedp.OuterHTML("html", &html, chromedp.ByQuery)); err != nil {
		return "", fmt.Errorf("%w: read markup: %v", repository.ErrSession, err)
	}
	return html, nil
}

// Close shuts the tab and its browser process.
func (s *Session) Close() error {
	err := chromedp.Cancel(s.tabCtx)
	s.cancel()
	if err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("%w: close: %v", repository.ErrSession, err)
	}
	return nil
}
