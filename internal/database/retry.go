package database

import (
	"context"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/rs/zerolog"
)

const (
	connectRetries         = 4
	connectInitialInterval = 250 * time.Millisecond
	connectMaxInterval     = 4 * time.Second
)

// pingWithRetry retries ping with exponential backoff while a backing
// service is still starting. It gives up when ctx is done.
func pingWithRetry(ctx context.Context, log zerolog.Logger, service string, ping func(context.Context) error) error {
	exp := backoff.NewExponentialBackOff()
	exp.InitialInterval = connectInitialInterval
	exp.Multiplier = 2
	exp.MaxInterval = connectMaxInterval
	exp.Reset()

	attempt := 0
	return backoff.Retry(func() error {
		attempt++
		err := ping(ctx)
		if err != nil {
			log.Warn().Err(err).Str("service", service).Int("attempt", attempt).Msg("ping failed")
		}
		return err
	}, backoff.WithContext(backoff.WithMaxRetries(exp, connectRetries), ctx))
}
