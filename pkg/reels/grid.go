// Package reels holds the reel grid's view logic: which state to render,
// summary stats, applying the filter bar and gating deletes.
package reels

import (
	"sort"

	"marketplace-web/models"
	"marketplace-web/pkg/filters"
)

type State string

const (
	StateLoading State = "loading"
	StateEmpty   State = "empty"
	StateReady   State = "ready"
)

func GridState(videos []models.Video, loading bool) State {
	switch {
	case loading:
		return StateLoading
	case len(videos) == 0:
		return StateEmpty
	default:
		return StateReady
	}
}

type Summary struct {
	TotalReels int
	TotalViews int64
	TotalLikes int64
}

// ShowStats is false for an empty grid.
func (s Summary) ShowStats() bool {
	return s.TotalReels > 0
}

func Summarize(videos []models.Video) Summary {
	s := Summary{TotalReels: len(videos)}
	for _, v := range videos {
		s.TotalViews += v.Views
		s.TotalLikes += v.Likes
	}
	return s
}

// Filter category ids and option labels understood by Apply.
const (
	CategorySort     = "sort"
	CategoryDuration = "duration"

	SortMostRecent = "Most Recent"
	SortMostViewed = "Most Viewed"
	SortMostLiked  = "Most Liked"

	DurationUnder30 = "Under 30s"
	DurationHalfMin = "30s-1m"
	DurationOver1m  = "Over 1m"
)

// DefaultCategories is the filter bar offered above the grid.
func DefaultCategories() []filters.Category {
	return []filters.Category{
		{ID: CategorySort, Label: "Sort By", Options: []string{"All", SortMostRecent, SortMostViewed, SortMostLiked}},
		{ID: CategoryDuration, Label: "Duration", Options: []string{"All", DurationUnder30, DurationHalfMin, DurationOver1m}},
	}
}

// Apply narrows and orders videos by the selection. Options it does not know,
// including the "All" options, leave the input untouched. The input slice is
// never modified.
func Apply(videos []models.Video, sel filters.Selection) []models.Video {
	out := make([]models.Video, 0, len(videos))
	for _, v := range videos {
		if matchesDuration(v.DurationSeconds, sel[CategoryDuration]) {
			out = append(out, v)
		}
	}

	var less func(a, b models.Video) bool
	switch sel[CategorySort] {
	case SortMostRecent:
		less = func(a, b models.Video) bool { return a.CreatedAt.After(b.CreatedAt) }
	case SortMostViewed:
		less = func(a, b models.Video) bool { return a.Views > b.Views }
	case SortMostLiked:
		less = func(a, b models.Video) bool { return a.Likes > b.Likes }
	}
	if less != nil {
		sort.SliceStable(out, func(i, j int) bool { return less(out[i], out[j]) })
	}
	return out
}

func matchesDuration(seconds int, option string) bool {
	switch option {
	case DurationUnder30:
		return seconds < 30
	case DurationHalfMin:
		return seconds >= 30 && seconds <= 60
	case DurationOver1m:
		return seconds > 60
	default:
		return true
	}
}
