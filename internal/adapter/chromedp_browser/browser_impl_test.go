package chromedp_browser

import (
	"context"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/user/travel-deals-service/internal/repository"
)

func TestStealthOptions(t *testing.T) {
	assert.Len(t, StealthOptions(false, ""), 7)
	assert.Len(t, StealthOptions(true, "agent"), 9)
}

func TestFindScriptQuotesSelector(t *testing.T) {
	script := findScript(`div[aria-label*="$"]`)
	assert.Contains(t, script, `document.querySelectorAll("div[aria-label*=\"$\"]")`)
	assert.Contains(t, script, `"data-scrape-ref"`)
}

func TestRefSelector(t *testing.T) {
	assert.Equal(t, `[data-scrape-ref="r12"]`, refSelector(repository.ElementRef{ID: "r12"}))
}

// Runs against a real Chrome when CHROME_TESTS=1.
func TestSessionAgainstLocalPage(t *testing.T) {
	if os.Getenv("CHROME_TESTS") != "1" {
		t.Skip("set CHROME_TESTS=1 to run browser tests")
	}
	b := NewChromedpBrowser(Options{Headless: true, PageLoadTimeout: 30 * time.Second})
	defer b.Close()

	ctx := context.Background()
	page := "data:text/html," + strings.ReplaceAll(`<button onclick="document.title='clicked'">Date grid</button><div aria-label="1 Oct to 5 Oct, $120">$120</div>`, " ", "%20")
	s, err := b.Open(ctx, page)
	require.NoError(t, err)
	defer s.Close()

	require.NoError(t, s.SetIdentity(ctx, "test-agent"))
	require.NoError(t, s.Load(ctx))

	buttons, err := s.FindElements(ctx, "button")
	require.NoError(t, err)
	require.Len(t, buttons, 1)
	assert.Equal(t, "Date grid", buttons[0].Text)
	require.NoError(t, s.ClickScript(ctx, buttons[0]))

	cells, err := s.FindElements(ctx, `div[aria-label*="$"]`)
	require.NoError(t, err)
	require.Len(t, cells, 1)
	assert.Equal(t, "1 Oct to 5 Oct, $120", cells[0].AriaLabel)

	bad, err := s.FindElements(ctx, `button:has(span:contains("Date grid"))`)
	require.NoError(t, err)
	assert.Empty(t, bad)

	html, err := s.HTML(ctx)
	require.NoError(t, err)
	assert.Contains(t, html, "clicked")
}
