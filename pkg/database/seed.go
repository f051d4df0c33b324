package database

import (
	"context"
	"time"

	"biblioteca/pkg/models"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

type seedBook struct {
	Title     string
	ISBN      string
	Published models.Date
}

var seedCatalog = []struct {
	Author string
	Books  []seedBook
}{
	{"George Orwell", []seedBook{
		{"1984", "978-0451524935", models.NewDate(1949, time.June, 8)},
		{"Animal Farm", "978-0451526342", models.NewDate(1945, time.August, 17)},
	}},
	{"Isaac Asimov", []seedBook{
		{"I, Robot", "978-0553382563", models.NewDate(1950, time.December, 2)},
		{"Foundation", "978-0553293357", models.NewDate(1951, time.June, 1)},
	}},
}

// Seed inserts a small demo catalog. Rows that already exist, matched by author
// name or ISBN, are left untouched, so Seed can run on every start.
func Seed(ctx context.Context, db *gorm.DB) error {
	return WithTransaction(ctx, db, func(tx *gorm.DB) error {
		for _, entry := range seedCatalog {
			author := models.Author{FullName: entry.Author}
			if err := tx.Where(models.Author{FullName: entry.Author}).FirstOrCreate(&author).Error; err != nil {
				return ClassifyError(err)
			}

			for _, b := range entry.Books {
				published := b.Published
				book := models.Book{Title: b.Title, AuthorID: author.ID, ISBN: b.ISBN, DatePublished: &published}
				res := tx.Where(models.Book{ISBN: b.ISBN}).FirstOrCreate(&book)
				if res.Error != nil {
					return ClassifyError(res.Error)
				}
				if res.RowsAffected > 0 {
					log.Info().Str("title", b.Title).Str("author", entry.Author).Msg("Seeded book")
				}
			}
		}
		return nil
	})
}
