// Package ledger records settled hands
package ledger

import (
	"context"
	"errors"
	"pokerroom-server/internal/metrics"
	"pokerroom-server/pkg/table"
	"time"

	"github.com/sirupsen/logrus"
)

// ErrNotFound is returned when a hand has not been recorded
var ErrNotFound = errors.New("hand not found")

// Service stores hand results
type Service interface {
	RecordHand(ctx context.Context, result table.HandResult) error
	Hand(ctx context.Context, handID string) (*table.HandResult, error)
	Close() error
}

// New returns a Postgres backed service, or a service that discards every
// hand when dsn is empty
func New(dsn string) (Service, error) {
	if dsn == "" {
		return noopService{}, nil
	}

	db, err := Open(dsn)
	if err != nil {
		return nil, err
	}

	return NewPostgres(db), nil
}

type noopService struct{}

func (noopService) RecordHand(context.Context, table.HandResult) error {
	return nil
}

func (noopService) Hand(context.Context, string) (*table.HandResult, error) {
	return nil, ErrNotFound
}

func (noopService) Close() error {
	return nil
}

// Hook returns a table hook that records every hand in the background
// Failures are logged and counted, they never reach the table.
func Hook(logger logrus.FieldLogger, svc Service, timeout time.Duration) table.HandEndHook {
	return func(result table.HandResult) {
		go func() {
			ctx, cancel := context.WithTimeout(context.Background(), timeout)
			defer cancel()

			if err := svc.RecordHand(ctx, result); err != nil {
				metrics.Metrics.LedgerError()
				logger.WithError(err).WithFields(logrus.Fields{
					"room": result.RoomID,
					"hand": result.HandID,
				}).Error("could not record hand")
			}
		}()
	}
}
