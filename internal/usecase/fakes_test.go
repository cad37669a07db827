package usecase

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/user/travel-deals-service/internal/entity"
	"github.com/user/travel-deals-service/internal/repository"
)

type fakeFetcher struct {
	mu    sync.Mutex
	pages map[string]string
	errs  map[string]error
	calls []string
	times []time.Time
}

func (f *fakeFetcher) Fetch(_ context.Context, url string) ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, url)
	f.times = append(f.times, time.Now())
	if err, ok := f.errs[url]; ok {
		return nil, err
	}
	page, ok := f.pages[url]
	if !ok {
		return nil, errors.New("unexpected url " + url)
	}
	return []byte(page), nil
}

type fakeBrowser struct {
	session *fakeSession
	openErr error
	opened  []string
}

func (b *fakeBrowser) Open(_ context.Context, url string) (repository.BrowserSession, error) {
	b.opened = append(b.opened, url)
	if b.openErr != nil {
		return nil, b.openErr
	}
	return b.session, nil
}

// fakeSession serves canned elements per selector. Price selectors only answer
// once pricesAfter scroll passes have run.
type fakeSession struct {
	toggles     map[string][]repository.ElementRef
	prices      map[string][]repository.ElementRef
	findErrs    map[string]error
	pricesAfter int

	identityErr    error
	loadErr        error
	evaluateErr    error
	clickErr       error
	clickScriptErr error
	html           string

	userAgent    string
	evaluations  int
	clicks       int
	scriptClicks int
	findCalls    []string
	closed       int
}

func (s *fakeSession) SetIdentity(_ context.Context, userAgent string) error {
	s.userAgent = userAgent
	return s.identityErr
}

func (s *fakeSession) Load(context.Context) error { return s.loadErr }

func (s *fakeSession) Evaluate(context.Context, string) error {
	if s.evaluateErr != nil {
		return s.evaluateErr
	}
	s.evaluations++
	return nil
}

func (s *fakeSession) FindElements(_ context.Context, selector string) ([]repository.ElementRef, error) {
	s.findCalls = append(s.findCalls, selector)
	if err, ok := s.findErrs[selector]; ok {
		return nil, err
	}
	if els, ok := s.toggles[selector]; ok {
		return els, nil
	}
	if s.evaluations >= s.pricesAfter {
		return s.prices[selector], nil
	}
	return nil, nil
}

func (s *fakeSession) Click(context.Context, repository.ElementRef) error {
	s.clicks++
	return s.clickErr
}

func (s *fakeSession) ClickScript(context.Context, repository.ElementRef) error {
	s.scriptClicks++
	return s.clickScriptErr
}

func (s *fakeSession) HTML(context.Context) (string, error) { return s.html, nil }

func (s *fakeSession) Close() error {
	s.closed++
	return nil
}

type fakeGenerator struct {
	mu      sync.Mutex
	outputs []string
	err     error
	prompts []string
}

func (g *fakeGenerator) Generate(_ context.Context, prompt string) (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.prompts = append(g.prompts, prompt)
	if g.err != nil {
		return "", g.err
	}
	if len(g.outputs) == 0 {
		return "", nil
	}
	out := g.outputs[0]
	g.outputs = g.outputs[1:]
	return out, nil
}

type fakeOffers struct {
	flightQueries []entity.FlightQuery
	hotelQueries  []entity.HotelQuery
	flightErr     error
}

func (o *fakeOffers) SearchFlights(_ context.Context, q entity.FlightQuery) ([]entity.FlightOffer, error) {
	o.flightQueries = append(o.flightQueries, q)
	if o.flightErr != nil {
		return nil, o.flightErr
	}
	return []entity.FlightOffer{{Airline: "American", Price: 199, ArrivalCode: q.Destination}}, nil
}

func (o *fakeOffers) SearchHotels(_ context.Context, q entity.HotelQuery) ([]entity.HotelOffer, error) {
	o.hotelQueries = append(o.hotelQueries, q)
	return []entity.HotelOffer{{Name: "Hotel " + q.City, PricePerNight: 100}}, nil
}

type fakeDealScraper struct {
	report *entity.DealsReport
	err    error
	calls  int
}

func (d *fakeDealScraper) Scrape(context.Context, string) (*entity.DealsReport, error) {
	d.calls++
	return d.report, d.err
}
