package fireapi

import (
	"context"
	"errors"

	"golang.org/x/sync/errgroup"
)

// snapshotConcurrency bounds the parallel requests issued by Snapshot.
const snapshotConcurrency = 4

// Snapshot aggregates the read-only endpoints of a server in one view.
// Backups and Timings are nil when the account lacks the '24fire+'
// subscription those endpoints require.
type Snapshot struct {
	Config  Envelope
	Status  Envelope
	Backups Envelope
	Timings Envelope
}

// Snapshot fetches configuration, status, backups and monitoring timings
// concurrently. Subscription-tier denials on the optional endpoints are
// tolerated; any other failure aborts the whole snapshot.
func (c *Client) Snapshot(ctx context.Context) (*Snapshot, error) {
	var snap Snapshot

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(snapshotConcurrency)

	g.Go(func() error {
		envelope, err := c.GetConfig(ctx)
		if err != nil {
			return err
		}
		snap.Config = envelope
		return nil
	})

	g.Go(func() error {
		envelope, err := c.GetStatus(ctx)
		if err != nil {
			return err
		}
		snap.Status = envelope
		return nil
	})

	g.Go(func() error {
		envelope, err := c.ListBackups(ctx)
		if err != nil {
			return ignoreSubscriptionDenied(err)
		}
		snap.Backups = envelope
		return nil
	})

	g.Go(func() error {
		envelope, err := c.MonitoringTimings(ctx)
		if err != nil {
			return ignoreSubscriptionDenied(err)
		}
		snap.Timings = envelope
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &snap, nil
}

// ignoreSubscriptionDenied swallows 403 subscription denials so optional
// endpoints degrade to a nil section instead of failing the snapshot.
func ignoreSubscriptionDenied(err error) error {
	var authErr *AuthError
	if errors.As(err, &authErr) && authErr.SubscriptionRequired() {
		return nil
	}
	return err
}
