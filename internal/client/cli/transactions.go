package cli

import (
	"context"
	"fmt"
	"strconv"
	"text/tabwriter"
	"time"

	"github.com/dmitrijs2005/finkeeper/internal/client/models"
	"github.com/shopspring/decimal"
)

const dateLayout = "2006-01-02"

// today is a test seam for the default transaction date.
var today = func() time.Time { return time.Now().UTC().Truncate(24 * time.Hour) }

// ListTransactions prints the local transactions with their sync state.
func (a *App) ListTransactions(ctx context.Context) error {
	txs, err := a.transactions.List(ctx)
	if err != nil {
		return err
	}
	states, err := syncStates(ctx, a.transactions.Records)
	if err != nil {
		return err
	}

	if len(txs) == 0 {
		fmt.Fprintln(a.out, "No transactions")
		return nil
	}

	w := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tDATE\tAMOUNT\tCATEGORY\tNOTE\tSYNC")
	for _, t := range txs {
		fmt.Fprintf(w, "%d\t%s\t%s\t%d\t%s\t%s\n",
			t.ID, t.OccurredAt.Format(dateLayout), t.Amount.StringFixed(2), t.CategoryID, t.Note, states[t.ID])
	}
	return w.Flush()
}

// AddTransaction asks for amount, category, date and note and stores a new
// transaction.
func (a *App) AddTransaction(ctx context.Context) error {
	id, err := nextID(ctx, a.transactions.List, a.transactions.Records)
	if err != nil {
		return err
	}

	t := models.Transaction{ID: id}
	if err := a.promptTransaction(ctx, &t); err != nil {
		return err
	}

	if err := a.transactions.Add(ctx, t); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Transaction %d added\n", t.ID)
	return nil
}

// EditTransaction prompts for new values with the current ones as defaults.
func (a *App) EditTransaction(ctx context.Context, args []string) error {
	id, err := idArg(a.reader, args, a.out)
	if err != nil {
		return err
	}

	t, err := a.transactions.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := a.promptTransaction(ctx, t); err != nil {
		return err
	}

	if err := a.transactions.Update(ctx, *t); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Transaction %d updated\n", t.ID)
	return nil
}

// DeleteTransaction removes a transaction locally and queues the remote
// delete.
func (a *App) DeleteTransaction(ctx context.Context, args []string) error {
	id, err := idArg(a.reader, args, a.out)
	if err != nil {
		return err
	}

	if err := a.transactions.RemoveByID(ctx, id); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Transaction %d deleted\n", id)
	return nil
}

func (a *App) promptTransaction(ctx context.Context, t *models.Transaction) error {
	editing := !t.OccurredAt.IsZero()

	def := ""
	if editing {
		def = t.Amount.String()
	}
	raw, err := GetWithDefault(a.reader, "Amount", def, a.out)
	if err != nil {
		return err
	}
	amount, err := decimal.NewFromString(raw)
	if err != nil {
		return &models.ValidationError{Field: "amount", Reason: fmt.Sprintf("%q is not a number", raw)}
	}

	def = ""
	if editing {
		def = strconv.FormatInt(t.CategoryID, 10)
	}
	raw, err = GetWithDefault(a.reader, "Category ID (0 for none)", def, a.out)
	if err != nil {
		return err
	}
	var categoryID int64
	if raw != "" {
		categoryID, err = strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return &models.ValidationError{Field: "category_id", Reason: fmt.Sprintf("%q is not a number", raw)}
		}
	}
	if categoryID > 0 {
		if _, err := a.categories.Get(ctx, categoryID); err != nil {
			return err
		}
	}

	def = today().Format(dateLayout)
	if editing {
		def = t.OccurredAt.Format(dateLayout)
	}
	raw, err = GetWithDefault(a.reader, "Date (YYYY-MM-DD)", def, a.out)
	if err != nil {
		return err
	}
	occurred, err := time.Parse(dateLayout, raw)
	if err != nil {
		return &models.ValidationError{Field: "occurred_at", Reason: fmt.Sprintf("%q is not YYYY-MM-DD", raw)}
	}

	note, err := GetWithDefault(a.reader, "Note", t.Note, a.out)
	if err != nil {
		return err
	}

	t.Amount = amount
	t.CategoryID = categoryID
	t.OccurredAt = occurred
	t.Note = note
	return nil
}
