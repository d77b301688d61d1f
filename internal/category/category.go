// Package category maps product names to catalog categories.
package category

import (
	"bytes"
	_ "embed"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/Vishwavardhanidumpeti/Smart-Inventory-Management-system/internal/domain"
)

//go:embed categories.csv
var defaultTable []byte

// Lookup resolves the category of a product by its name. Unknown names
// return domain.ErrCategoryNotFound.
type Lookup interface {
	Category(name string) (string, error)
}

// Entry is one row of a category table.
type Entry struct {
	Name     string
	Category string
}

// StaticLookup is an in-memory, case-insensitive category table.
type StaticLookup struct {
	byName  map[string]Entry
	entries []Entry
}

// Default returns the built-in table.
func Default() (*StaticLookup, error) {
	return Parse(bytes.NewReader(defaultTable))
}

// Load reads a table from path, or returns the built-in table when path is empty.
func Load(path string) (*StaticLookup, error) {
	if path == "" {
		return Default()
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open category table: %w", err)
	}
	defer f.Close()
	return Parse(f)
}

// Parse reads a two-column CSV (name, category). A leading header row is
// optional. Later rows win when a name repeats.
func Parse(r io.Reader) (*StaticLookup, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = 2
	reader.TrimLeadingSpace = true

	l := &StaticLookup{byName: make(map[string]Entry)}
	for line := 1; ; line++ {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("parse category table: %w", err)
		}
		name, cat := strings.TrimSpace(row[0]), strings.TrimSpace(row[1])
		if line == 1 && strings.EqualFold(name, "name") && strings.EqualFold(cat, "category") {
			continue
		}
		if name == "" || cat == "" {
			return nil, fmt.Errorf("parse category table: line %d: empty name or category", line)
		}
		key := normalize(name)
		if _, seen := l.byName[key]; !seen {
			l.entries = append(l.entries, Entry{Name: name, Category: cat})
		} else {
			for i := range l.entries {
				if normalize(l.entries[i].Name) == key {
					l.entries[i] = Entry{Name: name, Category: cat}
				}
			}
		}
		l.byName[key] = Entry{Name: name, Category: cat}
	}
	return l, nil
}

// Category implements Lookup.
func (l *StaticLookup) Category(name string) (string, error) {
	e, ok := l.byName[normalize(name)]
	if !ok {
		return "", domain.ErrCategoryNotFound
	}
	return e.Category, nil
}

// Entries returns the table rows in file order.
func (l *StaticLookup) Entries() []Entry {
	out := make([]Entry, len(l.entries))
	copy(out, l.entries)
	return out
}

func (l *StaticLookup) Len() int {
	return len(l.entries)
}

func normalize(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// Verify compares every product's stored category with the lookup. Products
// the lookup does not know are counted as uncategorized.
func Verify(products []domain.Product, lookup Lookup) domain.CategoryReport {
	report := domain.CategoryReport{
		Total:      len(products),
		Mismatched: []domain.CategoryMismatch{},
		Stats:      []domain.CategoryCount{},
	}

	counts := make(map[string]int)
	for _, p := range products {
		counts[p.CategoryOrDefault()]++

		expected, err := lookup.Category(p.Name)
		switch {
		case err != nil:
			report.Uncategorized++
		case p.Category != expected:
			report.Mismatched = append(report.Mismatched, domain.CategoryMismatch{
				ID:       p.ID,
				Name:     p.Name,
				Current:  p.Category,
				Expected: expected,
			})
		default:
			report.Correct++
		}
	}

	for c, n := range counts {
		report.Stats = append(report.Stats, domain.CategoryCount{Category: c, Count: n})
	}
	sort.Slice(report.Stats, func(i, j int) bool {
		return report.Stats[i].Category < report.Stats[j].Category
	})
	return report
}

// Fixes returns the products whose category must be rewritten to match the
// lookup, with the category already corrected, and the counts to report.
func Fixes(products []domain.Product, lookup Lookup) ([]domain.Product, domain.CategoryFixResult) {
	var (
		changed []domain.Product
		result  domain.CategoryFixResult
	)
	for _, p := range products {
		expected, err := lookup.Category(p.Name)
		if err != nil {
			result.NotFound++
			continue
		}
		if p.Category != expected {
			p.Category = expected
			changed = append(changed, p)
			result.Fixed++
		}
	}
	return changed, result
}
