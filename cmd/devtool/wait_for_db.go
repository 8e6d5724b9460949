package main

import (
	"context"
	"flag"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
)

const (
	waitDefaultTimeout = time.Minute
	waitMinBackoff     = 250 * time.Millisecond
	waitMaxBackoff     = 5 * time.Second
)

type WaitForDBCommand struct{}

func (c *WaitForDBCommand) Name() string { return "wait-for-db" }

func (c *WaitForDBCommand) Description() string {
	return "Block until Postgres accepts connections [-timeout 1m]"
}

func (c *WaitForDBCommand) Run(args []string) error {
	fs := flag.NewFlagSet(c.Name(), flag.ContinueOnError)
	timeout := fs.Duration("timeout", waitDefaultTimeout, "give up after this long")
	if err := fs.Parse(args); err != nil {
		return err
	}

	section("Waiting for database")

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	attempts, err := waitFor(ctx, pingDB, waitMinBackoff, waitMaxBackoff)
	if err != nil {
		return fmt.Errorf("database not ready after %d attempts: %w", attempts, err)
	}
	success("Database ready after %d attempt(s)", attempts)
	return nil
}

func pingDB(ctx context.Context) error {
	conn, err := pgx.Connect(ctx, databaseURL())
	if err != nil {
		return err
	}
	defer conn.Close(context.Background())
	return conn.Ping(ctx)
}

// waitFor calls probe until it succeeds or ctx ends, doubling the pause
// between attempts up to ceiling. It returns the number of attempts made and,
// on failure, the last probe error.
func waitFor(ctx context.Context, probe func(context.Context) error, floor, ceiling time.Duration) (int, error) {
	delay := floor
	for attempt := 1; ; attempt++ {
		err := probe(ctx)
		if err == nil {
			return attempt, nil
		}
		note("attempt %d: %v", attempt, err)

		select {
		case <-ctx.Done():
			return attempt, err
		case <-time.After(delay):
		}
		delay *= 2
		if delay > ceiling {
			delay = ceiling
		}
	}
}
