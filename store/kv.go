package store

// KV is the persistence contract the blog engine depends on: a flat
// key-value byte store scoped to one site. Implementations must be safe
// for use from multiple goroutines.
type KV interface {
	// Get returns the value for key. The bool reports whether the key
	// exists; a missing key is not an error.
	Get(key string) ([]byte, bool, error)

	// Set stores value under key, replacing any previous value.
	Set(key string, value []byte) error

	// Remove deletes key. Removing a missing key is a no-op.
	Remove(key string) error
}

// Fixed keys used by the engine. Multi-key updates are not atomic; the
// in-memory state stays authoritative when a write fails.
const (
	KeyPosts     = "posts"
	KeyManifesto = "manifesto"
	KeySettings  = "settings"
	KeyProfile   = "profile"
	KeyDreamNote = "dream_note"
)

// CommentsKey returns the key holding the comment list for a post.
func CommentsKey(postID string) string {
	return "comments:" + postID
}

// VoteKey returns the key holding one voter's like/dislike state for a post.
func VoteKey(postID, voterID string) string {
	return "vote:" + postID + ":" + voterID
}

// RatingKey returns the key holding one voter's rating for a post.
func RatingKey(postID, voterID string) string {
	return "rating:" + postID + ":" + voterID
}
