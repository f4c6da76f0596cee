package blog

import (
	"strings"

	"github.com/mosunmola/midnight-hub/models"
)

// Filter holds the three independent feed criteria. An empty field means
// no filtering on that axis; there are no magic "All" sentinels.
type Filter struct {
	Category string
	Mood     string
	Search   string
}

// FeedPage is the derived view the feed UI renders. Featured is the
// highlighted first result, present only when neither a category filter
// nor a search is active; Posts is the grid below it. NoMatches tells the
// caller to show its empty-state with a reset-filters action.
type FeedPage struct {
	Featured  *models.Post  `json:"featured,omitempty"`
	Posts     []models.Post `json:"posts"`
	NoMatches bool          `json:"noMatches"`
}

// QueryFeed derives the feed from a collection snapshot. Only published
// posts are considered, all three filters compose as an intersection,
// and the collection's order (newest first) is preserved; the query
// never re-sorts.
func QueryFeed(posts []models.Post, filter Filter) FeedPage {
	matched := make([]models.Post, 0, len(posts))
	for _, p := range posts {
		if matchesFilter(p, filter) {
			matched = append(matched, p)
		}
	}

	if len(matched) == 0 {
		return FeedPage{Posts: matched, NoMatches: true}
	}

	// the featured split only applies to the unfiltered view; an active
	// category filter or search shows every match in the grid
	if filter.Category == "" && filter.Search == "" {
		featured := matched[0]
		return FeedPage{Featured: &featured, Posts: matched[1:]}
	}

	return FeedPage{Posts: matched}
}

func matchesFilter(p models.Post, filter Filter) bool {
	if p.Status != models.StatusPublished {
		return false
	}
	if filter.Category != "" && p.Category != filter.Category {
		return false
	}
	if filter.Mood != "" && p.Mood != filter.Mood {
		return false
	}
	if filter.Search == "" {
		return true
	}

	needle := strings.ToLower(filter.Search)
	return strings.Contains(strings.ToLower(p.Title), needle) ||
		strings.Contains(strings.ToLower(p.Excerpt), needle) ||
		strings.Contains(strings.ToLower(p.Content), needle) ||
		strings.Contains(strings.ToLower(p.Category), needle)
}
