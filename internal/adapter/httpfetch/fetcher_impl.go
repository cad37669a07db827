package httpfetch

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	cloudflarebp "github.com/DaRealFreak/cloudflare-bp-go"
	"github.com/go-resty/resty/v2"
	"github.com/user/travel-deals-service/internal/repository"
)

type Options struct {
	UserAgent string
	Timeout   time.Duration
	// AntiBot wraps the transport with Cloudflare fingerprint mitigation.
	AntiBot bool
}

// Fetcher is a resty-backed PageFetcher.
type Fetcher struct {
	client *resty.Client
}

func NewFetcher(opts Options) *Fetcher {
	client := resty.New()
	if opts.AntiBot {
		client.GetClient().Transport = cloudflarebp.AddCloudFlareByPass(client.GetClient().Transport)
	}
	client.SetHeader("user-agent", opts.UserAgent)
	client.SetHeader("accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	client.SetHeader("accept-language", "en-US,en;q=0.9")
	if opts.Timeout > 0 {
		client.SetTimeout(opts.Timeout)
	}
	return &Fetcher{client: client}
}

// Fetch performs a single GET and returns the body of a 2xx response.
func (f *Fetcher) Fetch(ctx context.Context, url string) ([]byte, error) {
	start := time.Now()
	res, err := f.client.R().SetContext(ctx).Get(url)
	if err != nil {
		return nil, fmt.Errorf("%w: get %s: %v", repository.ErrFetch, url, err)
	}
	if !res.IsSuccess() {
		return nil, fmt.Errorf("%w: get %s: unexpected status %d", repository.ErrFetch, url, res.StatusCode())
	}
	slog.Debug("Fetched page", "url", url, "status", res.StatusCode(), "bytes", len(res.Body()), "duration_ms", time.Since(start).Milliseconds())
	return res.Body(), nil
}
