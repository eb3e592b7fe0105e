package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"text/tabwriter"

	"github.com/dmitrijs2005/finkeeper/internal/client/models"
)

// Status prints every sync record that still needs attention plus a
// per-state summary.
func (a *App) Status(ctx context.Context) error {
	cats, err := a.categories.Records(ctx)
	if err != nil {
		return err
	}
	txs, err := a.transactions.Records(ctx)
	if err != nil {
		return err
	}
	recs := append(cats, txs...)

	counts := map[models.SyncState]int{}
	w := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
	header := false
	for _, r := range recs {
		counts[r.State]++
		if r.State == models.SyncSynced {
			continue
		}
		if !header {
			fmt.Fprintln(w, "KIND\tID\tOP\tSTATE\tATTEMPTS\tNEXT\tLAST ERROR")
			header = true
		}
		next := "-"
		if r.State == models.SyncFailed {
			next = r.NextAttemptAt.Local().Format("15:04:05")
		}
		fmt.Fprintf(w, "%s\t%d\t%s\t%s\t%d\t%s\t%s\n", r.Kind, r.LocalID, r.Op, r.State, r.Attempts, next, r.LastError)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	fmt.Fprintf(a.out, "mode: %s, pending: %d, synced: %d, failed: %d, abandoned: %d\n",
		a.Mode(), counts[models.SyncPending], counts[models.SyncSynced], counts[models.SyncFailed], counts[models.SyncAbandoned])
	return nil
}

// Retry requeues records that failed or were abandoned. With no arguments
// every abandoned record is requeued; "retry <kind> <id>" targets one record.
func (a *App) Retry(ctx context.Context, args []string) error {
	if len(args) == 0 {
		n1, err := a.categories.RetryAbandoned(ctx)
		if err != nil {
			return err
		}
		n2, err := a.transactions.RetryAbandoned(ctx)
		if err != nil {
			return err
		}
		fmt.Fprintf(a.out, "Requeued %d record(s)\n", n1+n2)
		return nil
	}

	if len(args) != 2 {
		return errors.New("usage: retry [category|transaction <id>]")
	}
	id, err := strconv.ParseInt(args[1], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid id %q", args[1])
	}

	switch models.Kind(args[0]) {
	case models.KindCategory:
		err = a.categories.Retry(ctx, id)
	case models.KindTransaction:
		err = a.transactions.Retry(ctx, id)
	default:
		return fmt.Errorf("unknown kind %q", args[0])
	}
	if err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Requeued")
	return nil
}

// Sync runs one propagation pass right away.
func (a *App) Sync(ctx context.Context) error {
	res, err := a.syncer.ProcessDue(ctx)
	if err != nil {
		return err
	}
	if res.Paused {
		fmt.Fprintln(a.out, "Not logged in, changes stay queued")
		return nil
	}
	fmt.Fprintf(a.out, "Attempted: %d, succeeded: %d, failed: %d, abandoned: %d\n",
		res.Attempted, res.Succeeded, res.Failed, res.Abandoned)
	return nil
}

// Pull refreshes both entity types from the server.
func (a *App) Pull(ctx context.Context) error {
	cs, err := a.categories.Pull(ctx)
	if err != nil {
		return fmt.Errorf("pull categories: %w", err)
	}
	ts, err := a.transactions.Pull(ctx)
	if err != nil {
		return fmt.Errorf("pull transactions: %w", err)
	}
	fmt.Fprintf(a.out, "Categories: %d applied, %d removed, %d kept local\n", cs.Applied, cs.Removed, cs.Skipped)
	fmt.Fprintf(a.out, "Transactions: %d applied, %d removed, %d kept local\n", ts.Applied, ts.Removed, ts.Skipped)
	return nil
}

// Backup uploads a snapshot of the local store to S3.
func (a *App) Backup(ctx context.Context) error {
	key, err := a.backup.Upload(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Backup uploaded:", key)
	return nil
}
