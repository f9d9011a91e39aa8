package services

import (
	"context"

	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"
)

// Fetcher is a store that can be loaded from its remote collection.
type Fetcher interface {
	Collection() string
	Len() int
	Fetch(ctx context.Context)
}

// Loader fetches dependency stores on demand. Concurrent callers asking for
// the same collection share a single fetch.
type Loader struct {
	group singleflight.Group
	log   zerolog.Logger
}

func NewLoader(log zerolog.Logger) *Loader {
	return &Loader{log: log}
}

// EnsureLoaded fetches f when it holds no items. It does not report whether
// the fetch succeeded; callers read the store state afterwards.
func (l *Loader) EnsureLoaded(ctx context.Context, f Fetcher) {
	if f.Len() > 0 {
		return
	}

	_, _, shared := l.group.Do(f.Collection(), func() (any, error) {
		if f.Len() > 0 {
			return nil, nil
		}
		l.log.Debug().Str("collection", f.Collection()).Msg("loading dependency")
		f.Fetch(ctx)
		return nil, nil
	})
	if shared {
		l.log.Debug().Str("collection", f.Collection()).Msg("joined in-flight load")
	}
}
