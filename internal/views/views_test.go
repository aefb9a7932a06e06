package views

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"secondbrain/internal/models"
)

func itemAt(title string, t models.ContentType, minutesAgo int) models.Item {
	return models.Item{
		ID:        primitive.NewObjectID(),
		Title:     title,
		Type:      t,
		CreatedAt: primitive.NewDateTimeFromTime(time.Now().Add(-time.Duration(minutesAgo) * time.Minute)),
	}
}

func sampleItems() []models.Item {
	catVideo := itemAt("Cat Video", models.ContentTypeYouTube, 10)
	catVideo.IsFavorite = true
	catVideo.Tags = []string{"cats", "funny"}

	goArticle := itemAt("Go Concurrency Patterns", models.ContentTypeWebsite, 30)
	goArticle.Description = "Pipelines and cancellation"
	goArticle.Tags = []string{"golang", "concurrency"}
	goArticle.IsBookmarked = true
	goArticle.ViewCount = 12

	tweet := itemAt("Release announcement", models.ContentTypeTwitter, 5)
	tweet.IsFavorite = true
	tweet.Tags = []string{"golang"}
	tweet.ViewCount = 3

	reel := itemAt("Climbing reel", models.ContentTypeInstagram, 60)
	reel.Tags = []string{"climbing"}

	return []models.Item{catVideo, goArticle, tweet, reel}
}

func titles(items []models.Item) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.Title
	}
	return out
}

func TestDeriveViewDefaultIsNewestFirst(t *testing.T) {
	items := sampleItems()

	got := DeriveView(items, ViewFilters{})

	assert.Equal(t, []string{"Release announcement", "Cat Video", "Go Concurrency Patterns", "Climbing reel"}, titles(got))
}

func TestDeriveViewDoesNotMutateInput(t *testing.T) {
	items := sampleItems()
	original := titles(items)

	DeriveView(items, ViewFilters{SortBy: SortOldest})
	DeriveView(items, ViewFilters{SearchTerm: "golang"})

	assert.Equal(t, original, titles(items))
}

func TestDeriveViewIsDeterministic(t *testing.T) {
	items := sampleItems()
	f := ViewFilters{ContentType: string(models.ContentTypeYouTube), SortBy: SortTitle}

	first := DeriveView(items, f)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, DeriveView(items, f))
	}
}

func TestDeriveViewResultIsSubset(t *testing.T) {
	items := sampleItems()
	byID := make(map[primitive.ObjectID]models.Item, len(items))
	for _, it := range items {
		byID[it.ID] = it
	}

	got := DeriveView(items, ViewFilters{SearchTerm: "go", FavoritesOnly: true})
	for _, it := range got {
		orig, ok := byID[it.ID]
		assert.True(t, ok)
		assert.Equal(t, orig, it)
	}
	assert.LessOrEqual(t, len(got), len(items))
}

func TestDeriveViewFavoritesOnly(t *testing.T) {
	got := DeriveView(sampleItems(), ViewFilters{FavoritesOnly: true})

	assert.Len(t, got, 2)
	for _, it := range got {
		assert.True(t, it.IsFavorite)
	}
	assert.Contains(t, titles(got), "Cat Video")
}

func TestDeriveViewBookmarksOnly(t *testing.T) {
	got := DeriveView(sampleItems(), ViewFilters{BookmarksOnly: true})

	assert.Equal(t, []string{"Go Concurrency Patterns"}, titles(got))
}

func TestDeriveViewTypeFilter(t *testing.T) {
	items := sampleItems()

	got := DeriveView(items, ViewFilters{ContentType: string(models.ContentTypeTwitter)})
	assert.Equal(t, []string{"Release announcement"}, titles(got))

	all := DeriveView(items, ViewFilters{ContentType: models.TypeFilterAll})
	assert.Len(t, all, len(items))
}

func TestDeriveViewSearchIsCaseInsensitiveAcrossFields(t *testing.T) {
	items := sampleItems()

	byTitle := DeriveView(items, ViewFilters{SearchTerm: "CAT video"})
	assert.Equal(t, []string{"Cat Video"}, titles(byTitle))

	byDescription := DeriveView(items, ViewFilters{SearchTerm: "cancellation"})
	assert.Equal(t, []string{"Go Concurrency Patterns"}, titles(byDescription))

	byTag := DeriveView(items, ViewFilters{SearchTerm: "GoLang"})
	assert.ElementsMatch(t, []string{"Go Concurrency Patterns", "Release announcement"}, titles(byTag))
}

func TestDeriveViewSearchNoMatchIsEmpty(t *testing.T) {
	got := DeriveView(sampleItems(), ViewFilters{SearchTerm: "quantum"})
	assert.Empty(t, got)
}

func TestDeriveViewOldestReversesNewest(t *testing.T) {
	items := sampleItems()

	newest := DeriveView(items, ViewFilters{SortBy: SortNewest})
	oldest := DeriveView(items, ViewFilters{SortBy: SortOldest})

	for i := range newest {
		assert.Equal(t, newest[i].ID, oldest[len(oldest)-1-i].ID)
	}
}

func TestDeriveViewSortByTitle(t *testing.T) {
	got := DeriveView(sampleItems(), ViewFilters{SortBy: SortTitle})

	assert.Equal(t, []string{"Cat Video", "Climbing reel", "Go Concurrency Patterns", "Release announcement"}, titles(got))
}

func TestDeriveViewSortByViewsDescending(t *testing.T) {
	got := DeriveView(sampleItems(), ViewFilters{SortBy: SortViews})

	var counts []int64
	for _, it := range got {
		counts = append(counts, it.ViewCount)
	}
	assert.Equal(t, []int64{12, 3, 0, 0}, counts)
}

func TestDeriveViewSortByViewsTiesBreakOnNewest(t *testing.T) {
	got := DeriveView(sampleItems(), ViewFilters{SortBy: SortViews})

	// Cat Video (10m ago) is newer than Climbing reel (60m ago), both at zero views.
	assert.Equal(t, []string{"Go Concurrency Patterns", "Release announcement", "Cat Video", "Climbing reel"}, titles(got))
}

func TestDeriveViewCombinedFilters(t *testing.T) {
	got := DeriveView(sampleItems(), ViewFilters{
		SearchTerm:    "golang",
		FavoritesOnly: true,
	})

	assert.Equal(t, []string{"Release announcement"}, titles(got))
}

func TestDeriveViewEmptyInput(t *testing.T) {
	got := DeriveView(nil, ViewFilters{SearchTerm: "anything", SortBy: SortTitle})
	assert.Empty(t, got)
}

func TestAllTagsFirstAppearanceOrder(t *testing.T) {
	got := AllTags(sampleItems())

	assert.Equal(t, []string{"cats", "funny", "golang", "concurrency", "climbing"}, got)
}

func TestAllTagsKeepsDistinctSpellings(t *testing.T) {
	a := itemAt("a", models.ContentTypeWebsite, 1)
	a.Tags = []string{"Go", "go"}
	b := itemAt("b", models.ContentTypeWebsite, 2)
	b.Tags = []string{"go", "GO"}

	got := AllTags([]models.Item{a, b})

	assert.Equal(t, []string{"Go", "go", "GO"}, got)
}

func TestAllTagsEmpty(t *testing.T) {
	assert.Empty(t, AllTags(nil))
	assert.Empty(t, AllTags([]models.Item{itemAt("untagged", models.ContentTypeWebsite, 1)}))
}
