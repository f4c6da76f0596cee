package models

import (
	"time"
)

// Post statuses
const (
	StatusDraft     = "draft"
	StatusScheduled = "scheduled"
	StatusPublished = "published"
)

// Post represents a single blog entry
type Post struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Excerpt     string `json:"excerpt"`
	Content     string `json:"content"`
	Author      string `json:"author"`
	Date        string `json:"date"`
	ReadingTime string `json:"readingTime"`
	Category    string `json:"category"`
	Mood        string `json:"mood"`
	ImageURL    string `json:"imageUrl"`
	// Status is one of draft, scheduled, published
	Status string `json:"status"`
	// ScheduledAt is an RFC3339 timestamp; only meaningful while the post
	// is scheduled, kept as a historical field after promotion
	ScheduledAt string `json:"scheduledAt,omitempty"`
	Likes       int    `json:"likes"`
	Dislikes    int    `json:"dislikes"`
	RatingSum   int    `json:"ratingSum"`
	RatingCount int    `json:"ratingCount"`
}

// AverageRating returns the mean rating, 0 when nobody has rated yet.
// The average is derived on read and never stored.
func (p Post) AverageRating() float64 {
	if p.RatingCount == 0 {
		return 0
	}
	return float64(p.RatingSum) / float64(p.RatingCount)
}

// CounterDelta is a partial update restricted to the reaction and rating
// counters; nil fields are left untouched
type CounterDelta struct {
	Likes       *int `json:"likes,omitempty"`
	Dislikes    *int `json:"dislikes,omitempty"`
	RatingSum   *int `json:"ratingSum,omitempty"`
	RatingCount *int `json:"ratingCount,omitempty"`
}

// Comment is a reader comment attached to a post
type Comment struct {
	ID     string `json:"id"`
	PostID string `json:"postId"`
	Author string `json:"author"`
	Text   string `json:"text"`
	Date   string `json:"date"`
}

// ManifestoItem is one tenet shown on the landing page
type ManifestoItem struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
}

// SiteSettings holds the site branding
type SiteSettings struct {
	SiteName    string `json:"siteName"`
	Tagline     string `json:"tagline"`
	AccentColor string `json:"accentColor"`
	LogoURL     string `json:"logoUrl"`
}

// Ritual is a single entry in the author's writing rituals list
type Ritual struct {
	Title string `json:"title"`
	Desc  string `json:"desc"`
	Icon  string `json:"icon"`
}

// AuthorProfile holds the author page content. Post.Author is a snapshot
// taken at save time; editing the profile does not rewrite old posts.
type AuthorProfile struct {
	Name     string   `json:"name"`
	Title    string   `json:"title"`
	Bio      string   `json:"bio"`
	ImageURL string   `json:"imageUrl"`
	Rituals  []Ritual `json:"rituals"`
}

// Event kinds emitted by the repository
const (
	EventPostSaved        = "post_saved"
	EventPostDeleted      = "post_deleted"
	EventPostsPromoted    = "posts_promoted"
	EventCommentAdded     = "comment_added"
	EventManifestoUpdated = "manifesto_updated"
	EventSettingsUpdated  = "settings_updated"
	EventProfileUpdated   = "profile_updated"
)

// Event is a lifecycle notification. Message is a ready-made human
// readable line; Kind and PostTitle carry enough structure for a caller
// that wants its own wording.
type Event struct {
	Kind      string    `json:"kind"`
	PostID    string    `json:"postId,omitempty"`
	PostTitle string    `json:"postTitle,omitempty"`
	Message   string    `json:"message"`
	At        time.Time `json:"at"`
}
