package repository

import "errors"

var (
	ErrFetch            = errors.New("page fetch failed")
	ErrParse            = errors.New("page parse failed")
	ErrLocatorExhausted = errors.New("no locator strategy matched")
	ErrSession          = errors.New("browser session failed")
	ErrGeneration       = errors.New("text generation failed")
	ErrCacheMiss        = errors.New("cache miss")
)
