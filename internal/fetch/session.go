// Package fetch implements the two fetch strategies: lightweight static HTML
// retrieval and full browser automation with page interaction.
package fetch

import (
	"context"
	"time"
)

// Session is one isolated browser page: its own browser process, browsing
// context, and tab. A session is created for exactly one URL and destroyed
// within the scope of that fetch; it is never shared.
type Session interface {
	Navigate(ctx context.Context, url string) error
	WaitVisible(ctx context.Context, selector string) error
	Click(ctx context.Context, selector string) error
	Sleep(ctx context.Context, d time.Duration) error
	ScrollBy(ctx context.Context, pixels int) error
	HTML(ctx context.Context) (string, error)
	Close() error
}

// SessionFactory produces fresh isolated sessions. Implementations must not
// share browser state between the sessions they hand out.
type SessionFactory interface {
	NewSession(ctx context.Context) (Session, error)
}
