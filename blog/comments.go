package blog

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/mosunmola/midnight-hub/models"
	"github.com/mosunmola/midnight-hub/store"
)

const defaultCommentAuthor = "A quiet visitor"

// Comments returns a post's comment list, newest first. A post with no
// comments yields an empty list, not an error.
func (r *Repository) Comments(postID string) ([]models.Comment, error) {
	raw, ok, err := r.kv.Get(store.CommentsKey(postID))
	if err != nil {
		return nil, fmt.Errorf("failed to load comments: %w", err)
	}
	if !ok {
		return []models.Comment{}, nil
	}

	var comments []models.Comment
	if err := json.Unmarshal(raw, &comments); err != nil {
		return nil, fmt.Errorf("failed to decode comments: %w", err)
	}
	return comments, nil
}

// AddComment prepends a comment to a post's list. The post must exist.
func (r *Repository) AddComment(postID, author, text string) (models.Comment, error) {
	if _, ok := r.Get(postID); !ok {
		return models.Comment{}, ErrNotFound
	}

	if strings.TrimSpace(author) == "" {
		author = defaultCommentAuthor
	}

	comment := models.Comment{
		ID:     uuid.NewString(),
		PostID: postID,
		Author: author,
		Text:   text,
		Date:   r.now().Format(displayDateFormat),
	}

	comments, err := r.Comments(postID)
	if err != nil {
		return models.Comment{}, err
	}

	comments = append([]models.Comment{comment}, comments...)
	if err := r.saveComments(postID, comments); err != nil {
		return models.Comment{}, err
	}

	r.notify(models.Event{
		Kind:    models.EventCommentAdded,
		PostID:  postID,
		Message: "Someone shared a new whisper.",
	})

	return comment, nil
}

// RemoveComment deletes a single comment from a post's list. A missing
// comment is a no-op.
func (r *Repository) RemoveComment(postID, commentID string) error {
	comments, err := r.Comments(postID)
	if err != nil {
		return err
	}

	filtered := comments[:0]
	for _, c := range comments {
		if c.ID != commentID {
			filtered = append(filtered, c)
		}
	}

	if len(filtered) == len(comments) {
		return nil
	}
	return r.saveComments(postID, filtered)
}

func (r *Repository) saveComments(postID string, comments []models.Comment) error {
	raw, err := json.Marshal(comments)
	if err != nil {
		return fmt.Errorf("failed to encode comments: %w", err)
	}
	if err := r.kv.Set(store.CommentsKey(postID), raw); err != nil {
		return fmt.Errorf("failed to persist comments: %w", err)
	}
	return nil
}
