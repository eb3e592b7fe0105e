package cli

import (
	"context"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/dmitrijs2005/finkeeper/internal/client/models"
	"github.com/dmitrijs2005/finkeeper/internal/client/services"
)

// ListCategories prints the local categories with their sync state.
func (a *App) ListCategories(ctx context.Context) error {
	cats, err := a.categories.List(ctx)
	if err != nil {
		return err
	}
	states, err := syncStates(ctx, a.categories.Records)
	if err != nil {
		return err
	}

	if len(cats) == 0 {
		fmt.Fprintln(a.out, "No categories")
		return nil
	}

	w := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tCOLOR\tTYPE\tSYNC")
	for _, c := range cats {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\n", c.ID, c.Name, c.Color, c.Type, states[c.ID])
	}
	return w.Flush()
}

// AddCategory asks for name, color and type and stores a new category.
func (a *App) AddCategory(ctx context.Context) error {
	id, err := nextID(ctx, a.categories.List, a.categories.Records)
	if err != nil {
		return err
	}

	c := models.Category{ID: id}
	if err := a.promptCategory(&c); err != nil {
		return err
	}

	if err := a.categories.Add(ctx, c); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Category %d added\n", c.ID)
	return nil
}

// EditCategory prompts for new values with the current ones as defaults.
func (a *App) EditCategory(ctx context.Context, args []string) error {
	id, err := idArg(a.reader, args, a.out)
	if err != nil {
		return err
	}

	c, err := a.categories.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := a.promptCategory(c); err != nil {
		return err
	}

	if err := a.categories.Update(ctx, *c); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Category %d updated\n", c.ID)
	return nil
}

// DeleteCategory removes a category locally and queues the remote delete.
func (a *App) DeleteCategory(ctx context.Context, args []string) error {
	id, err := idArg(a.reader, args, a.out)
	if err != nil {
		return err
	}

	if err := a.categories.RemoveByID(ctx, id); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Category %d deleted\n", id)
	return nil
}

func (a *App) promptCategory(c *models.Category) error {
	name, err := GetWithDefault(a.reader, "Name", c.Name, a.out)
	if err != nil {
		return err
	}
	color, err := GetWithDefault(a.reader, "Color (#RRGGBB)", c.Color, a.out)
	if err != nil {
		return err
	}

	names := make([]string, 0, 3)
	for _, t := range models.CategoryTypes() {
		names = append(names, t.String())
	}
	def := ""
	if c.Name != "" {
		def = c.Type.String()
	}
	typ, err := GetWithDefault(a.reader, "Type ("+strings.Join(names, "/")+")", def, a.out)
	if err != nil {
		return err
	}
	t, err := models.ParseCategoryType(typ)
	if err != nil {
		return err
	}

	c.Name = name
	c.Color = strings.ToUpper(color)
	c.Type = t
	return nil
}

// nextID picks the next free local id. Ids of records still waiting for a
// remote delete are not reused.
func nextID[T services.Entity](ctx context.Context, list func(context.Context) ([]T, error),
	records func(context.Context) ([]models.SyncRecord, error)) (int64, error) {

	items, err := list(ctx)
	if err != nil {
		return 0, err
	}
	recs, err := records(ctx)
	if err != nil {
		return 0, err
	}

	var max int64
	for _, it := range items {
		if it.Key() > max {
			max = it.Key()
		}
	}
	for _, r := range recs {
		if r.LocalID > max {
			max = r.LocalID
		}
	}
	return max + 1, nil
}

func syncStates(ctx context.Context, records func(context.Context) ([]models.SyncRecord, error)) (map[int64]models.SyncState, error) {
	recs, err := records(ctx)
	if err != nil {
		return nil, err
	}
	out := make(map[int64]models.SyncState, len(recs))
	for _, r := range recs {
		out[r.LocalID] = r.State
	}
	return out, nil
}
