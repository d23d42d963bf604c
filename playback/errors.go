package playback

import (
	"errors"
	"fmt"
)

var (
	// ErrAutoplayBlocked is reported when the host refuses to start playback.
	ErrAutoplayBlocked = errors.New("autoplay blocked")

	// ErrMediaFailed is matched by every MediaError.
	ErrMediaFailed = errors.New("media failed")
)

// MediaError is a load, decode or network failure of the current track.
type MediaError struct {
	URL string
	Err error
}

func (e *MediaError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("media %q failed", e.URL)
	}
	return fmt.Sprintf("media %q: %v", e.URL, e.Err)
}

func (e *MediaError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrMediaFailed}
	}
	return []error{ErrMediaFailed, e.Err}
}
