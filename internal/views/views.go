package views

import (
	"sort"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"secondbrain/internal/models"
)

// SortOption orders a derived view.
type SortOption string

const (
	SortNewest SortOption = "newest"
	SortOldest SortOption = "oldest"
	SortTitle  SortOption = "title"
	SortType   SortOption = "type"
	SortViews  SortOption = "views"
)

// ViewFilters is the immutable filter/sort state for one derivation. The
// zero value means "no search, all types, newest first".
type ViewFilters struct {
	SearchTerm    string
	ContentType   string // models.TypeFilterAll or a concrete content type
	FavoritesOnly bool
	BookmarksOnly bool
	SortBy        SortOption
}

var titleCollator = collate.New(language.English, collate.Loose)

// DeriveView filters and orders a user's items for display. It is pure: the
// input slice is never mutated, identical inputs produce identical output,
// and the result is always a subset of items.
func DeriveView(items []models.Item, f ViewFilters) []models.Item {
	out := make([]models.Item, 0, len(items))
	for _, it := range items {
		if matches(it, f) {
			out = append(out, it)
		}
	}
	sortItems(out, f.SortBy)
	return out
}

func matches(it models.Item, f ViewFilters) bool {
	if f.ContentType != "" && f.ContentType != models.TypeFilterAll && string(it.Type) != f.ContentType {
		return false
	}
	if f.FavoritesOnly && !it.IsFavorite {
		return false
	}
	if f.BookmarksOnly && !it.IsBookmarked {
		return false
	}
	if f.SearchTerm == "" {
		return true
	}
	term := strings.ToLower(f.SearchTerm)
	if strings.Contains(strings.ToLower(it.Title), term) ||
		strings.Contains(strings.ToLower(it.Description), term) {
		return true
	}
	for _, tag := range it.Tags {
		if strings.Contains(strings.ToLower(tag), term) {
			return true
		}
	}
	return false
}

func sortItems(items []models.Item, by SortOption) {
	switch by {
	case SortOldest:
		sort.SliceStable(items, func(i, j int) bool {
			return items[i].CreatedAt < items[j].CreatedAt
		})
	case SortTitle:
		sort.SliceStable(items, func(i, j int) bool {
			if c := titleCollator.CompareString(items[i].Title, items[j].Title); c != 0 {
				return c < 0
			}
			return items[i].CreatedAt > items[j].CreatedAt
		})
	case SortType:
		sort.SliceStable(items, func(i, j int) bool {
			if items[i].Type != items[j].Type {
				return items[i].Type < items[j].Type
			}
			return items[i].CreatedAt > items[j].CreatedAt
		})
	case SortViews:
		sort.SliceStable(items, func(i, j int) bool {
			if items[i].ViewCount != items[j].ViewCount {
				return items[i].ViewCount > items[j].ViewCount
			}
			return items[i].CreatedAt > items[j].CreatedAt
		})
	default: // SortNewest
		sort.SliceStable(items, func(i, j int) bool {
			return items[i].CreatedAt > items[j].CreatedAt
		})
	}
}

// AllTags collects the distinct tags across the full item collection in
// first-appearance order. Tag strings are compared and returned exactly as
// stored.
func AllTags(items []models.Item) []string {
	seen := make(map[string]struct{})
	var tags []string
	for _, it := range items {
		for _, tag := range it.Tags {
			if _, ok := seen[tag]; ok {
				continue
			}
			seen[tag] = struct{}{}
			tags = append(tags, tag)
		}
	}
	return tags
}
