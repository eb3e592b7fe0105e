// Package categories is the local store for categories.
//
// GetAll returns rows in insertion order: the table keeps SQLite's rowid
// separate from the caller-supplied id, and an upsert of an existing id keeps
// its rowid. Every failure is a *models.StorageError.
//
//	store := categories.NewSQLiteStore(handle.Reader())
//	_ = store.Put(ctx, &models.Category{ID: 1, Name: "Food", Color: "#FF0000"})
//	all, _ := store.GetAll(ctx)
//	_ = store.Remove(ctx, 1)
package categories
