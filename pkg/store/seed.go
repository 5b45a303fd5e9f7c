package store

import (
	"context"

	"github.com/google/uuid"
)

// DefaultCatalog returns a small set of public-domain books for development
// and demo setups without a populated catalog.
func DefaultCatalog() []*Book {
	return []*Book{
		{
			Title:     "The Odyssey",
			Author:    "Homer",
			PageCount: 541,
			Publisher: "Public Domain",
			Synopsis:  "Odysseus spends ten years trying to get home from Troy.",
		},
		{
			Title:     "Pride and Prejudice",
			Author:    "Jane Austen",
			PageCount: 432,
			Publisher: "Public Domain",
			Synopsis:  "Elizabeth Bennet navigates manners, upbringing, and marriage.",
		},
		{
			Title:     "Moby-Dick",
			Author:    "Herman Melville",
			PageCount: 635,
			Publisher: "Public Domain",
			Synopsis:  "Captain Ahab hunts the white whale that took his leg.",
		},
		{
			Title:     "Frankenstein",
			Author:    "Mary Shelley",
			PageCount: 280,
			Publisher: "Public Domain",
			Synopsis:  "Victor Frankenstein brings a creature to life and abandons it.",
		},
		{
			Title:     "The Count of Monte Cristo",
			Author:    "Alexandre Dumas",
			PageCount: 1276,
			Publisher: "Public Domain",
			Synopsis:  "Edmond Dantes escapes prison and methodically repays his betrayers.",
		},
	}
}

// SeedBooks inserts the default catalog, assigning fresh ids
func SeedBooks(ctx context.Context, books BookStore) error {
	for _, book := range DefaultCatalog() {
		book.ID = uuid.NewString()
		if err := books.Insert(ctx, book); err != nil {
			return err
		}
	}
	return nil
}
