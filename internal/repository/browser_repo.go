package repository

import "context"

// ElementRef identifies an element located in a live page along with the
// attribute text the price extractor reads from it.
type ElementRef struct {
	ID        string
	Text      string
	AriaLabel string
	Title     string
}

// Browser opens rendered-page sessions.
type Browser interface {
	// Open starts a session bound to url. The page is not requested until Load,
	// so identity overrides apply to the first request.
	Open(ctx context.Context, url string) (BrowserSession, error)
}

// BrowserSession is a single live page. Close must be called on every exit path.
type BrowserSession interface {
	// SetIdentity overrides the user agent and hides automation markers.
	SetIdentity(ctx context.Context, userAgent string) error
	Load(ctx context.Context) error
	Evaluate(ctx context.Context, script string) error
	// FindElements returns the elements currently matching selector; no match is an empty slice.
	FindElements(ctx context.Context, selector string) ([]ElementRef, error)
	Click(ctx context.Context, el ElementRef) error
	// ClickScript clicks through a script, for elements covered by overlays.
	ClickScript(ctx context.Context, el ElementRef) error
	HTML(ctx context.Context) (string, error)
	Close() error
}
