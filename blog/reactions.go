package blog

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/mosunmola/midnight-hub/models"
	"github.com/mosunmola/midnight-hub/store"
)

// Reactions
const (
	ReactionLike    = "like"
	ReactionDislike = "dislike"
)

var (
	// ErrInvalidReaction is returned for a reaction other than like/dislike
	ErrInvalidReaction = errors.New("reaction must be like or dislike")
	// ErrInvalidRating is returned for a rating outside [1,5]
	ErrInvalidRating = errors.New("rating must be an integer from 1 to 5")
)

// React applies one voter's like or dislike to a post. Toggling the same
// reaction twice clears it; switching moves the count from one counter
// to the other. Counters never go below zero. The voter's current choice
// is persisted per post so the toggle survives restarts.
func (r *Repository) React(postID, voterID, reaction string) (models.Post, error) {
	if reaction != ReactionLike && reaction != ReactionDislike {
		return models.Post{}, ErrInvalidReaction
	}

	voteKey := store.VoteKey(postID, voterID)
	prev := ""
	if raw, ok, err := r.kv.Get(voteKey); err != nil {
		r.log.WithError(err).WithField("post_id", postID).Error("Failed to read previous vote")
	} else if ok {
		prev = string(raw)
	}

	r.mutex.Lock()

	idx := r.indexLocked(postID)
	if idx < 0 {
		r.mutex.Unlock()
		return models.Post{}, ErrNotFound
	}

	p := &r.posts[idx]
	if prev == reaction {
		// same reaction again clears it
		adjustReaction(p, reaction, -1)
	} else {
		if prev != "" {
			adjustReaction(p, prev, -1)
		}
		adjustReaction(p, reaction, +1)
	}

	out := *p
	persistErr := r.persistLocked()
	r.mutex.Unlock()

	var voteErr error
	if prev == reaction {
		voteErr = r.kv.Remove(voteKey)
	} else {
		voteErr = r.kv.Set(voteKey, []byte(reaction))
	}
	if voteErr != nil {
		r.log.WithError(voteErr).WithField("post_id", postID).Error("Failed to record vote")
	}

	return out, persistErr
}

// Reaction returns the voter's current like/dislike choice for a post,
// empty when they have none.
func (r *Repository) Reaction(postID, voterID string) (string, error) {
	raw, ok, err := r.kv.Get(store.VoteKey(postID, voterID))
	if err != nil {
		return "", fmt.Errorf("failed to read vote: %w", err)
	}
	if !ok {
		return "", nil
	}
	return string(raw), nil
}

// Rate records one voter's 1-5 rating. A first rating adds to both the
// sum and the count; a changed rating adjusts the sum only; repeating
// the same value is a no-op.
func (r *Repository) Rate(postID, voterID string, value int) (models.Post, error) {
	if value < 1 || value > 5 {
		return models.Post{}, ErrInvalidRating
	}

	ratingKey := store.RatingKey(postID, voterID)
	prev, hasPrev := 0, false
	if raw, ok, err := r.kv.Get(ratingKey); err != nil {
		r.log.WithError(err).WithField("post_id", postID).Error("Failed to read previous rating")
	} else if ok {
		if n, convErr := strconv.Atoi(string(raw)); convErr == nil {
			prev, hasPrev = n, true
		}
	}

	r.mutex.Lock()

	idx := r.indexLocked(postID)
	if idx < 0 {
		r.mutex.Unlock()
		return models.Post{}, ErrNotFound
	}

	p := &r.posts[idx]
	if hasPrev && prev == value {
		out := *p
		r.mutex.Unlock()
		return out, nil
	}

	if hasPrev {
		p.RatingSum = clampZero(p.RatingSum - prev + value)
	} else {
		p.RatingSum += value
		p.RatingCount++
	}

	out := *p
	persistErr := r.persistLocked()
	r.mutex.Unlock()

	if err := r.kv.Set(ratingKey, []byte(strconv.Itoa(value))); err != nil {
		r.log.WithError(err).WithField("post_id", postID).Error("Failed to record rating")
	}

	return out, persistErr
}

// Rating returns the voter's current rating for a post, 0 when they have
// not rated it.
func (r *Repository) Rating(postID, voterID string) (int, error) {
	raw, ok, err := r.kv.Get(store.RatingKey(postID, voterID))
	if err != nil {
		return 0, fmt.Errorf("failed to read rating: %w", err)
	}
	if !ok {
		return 0, nil
	}
	n, convErr := strconv.Atoi(string(raw))
	if convErr != nil {
		return 0, nil
	}
	return n, nil
}

func adjustReaction(p *models.Post, reaction string, delta int) {
	switch reaction {
	case ReactionLike:
		p.Likes = clampZero(p.Likes + delta)
	case ReactionDislike:
		p.Dislikes = clampZero(p.Dislikes + delta)
	}
}
