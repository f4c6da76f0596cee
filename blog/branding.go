package blog

import (
	"encoding/json"
	"fmt"

	"github.com/mosunmola/midnight-hub/models"
	"github.com/mosunmola/midnight-hub/store"
)

// Manifesto returns the manifesto items, falling back to the defaults
// when nothing has been saved yet.
func (r *Repository) Manifesto() ([]models.ManifestoItem, error) {
	var items []models.ManifestoItem
	ok, err := r.loadRecord(store.KeyManifesto, &items)
	if err != nil {
		return nil, err
	}
	if !ok {
		return DefaultManifesto(), nil
	}
	return items, nil
}

// SetManifesto replaces the manifesto wholesale
func (r *Repository) SetManifesto(items []models.ManifestoItem) error {
	if err := r.saveRecord(store.KeyManifesto, items); err != nil {
		return err
	}
	r.notify(models.Event{
		Kind:    models.EventManifestoUpdated,
		Message: "The Midnight Manifesto has been updated.",
	})
	return nil
}

// Settings returns the site branding, falling back to defaults
func (r *Repository) Settings() (models.SiteSettings, error) {
	var settings models.SiteSettings
	ok, err := r.loadRecord(store.KeySettings, &settings)
	if err != nil {
		return models.SiteSettings{}, err
	}
	if !ok {
		return DefaultSettings(), nil
	}
	return settings, nil
}

// SetSettings replaces the site branding wholesale
func (r *Repository) SetSettings(settings models.SiteSettings) error {
	if err := r.saveRecord(store.KeySettings, settings); err != nil {
		return err
	}
	r.notify(models.Event{
		Kind:    models.EventSettingsUpdated,
		Message: "The site's face has been reshaped.",
	})
	return nil
}

// Profile returns the author profile, falling back to defaults
func (r *Repository) Profile() (models.AuthorProfile, error) {
	var profile models.AuthorProfile
	ok, err := r.loadRecord(store.KeyProfile, &profile)
	if err != nil {
		return models.AuthorProfile{}, err
	}
	if !ok {
		return DefaultProfile(), nil
	}
	return profile, nil
}

// SetProfile replaces the author profile wholesale. Posts keep the
// author name they were saved with; this never rewrites history.
func (r *Repository) SetProfile(profile models.AuthorProfile) error {
	if err := r.saveRecord(store.KeyProfile, profile); err != nil {
		return err
	}
	r.notify(models.Event{
		Kind:    models.EventProfileUpdated,
		Message: "The author's portrait has been retouched.",
	})
	return nil
}

// DreamNote returns the dream journal note, empty when never written
func (r *Repository) DreamNote() (string, error) {
	raw, ok, err := r.kv.Get(store.KeyDreamNote)
	if err != nil {
		return "", fmt.Errorf("failed to load dream note: %w", err)
	}
	if !ok {
		return "", nil
	}
	return string(raw), nil
}

// SetDreamNote replaces the dream journal note
func (r *Repository) SetDreamNote(text string) error {
	if err := r.kv.Set(store.KeyDreamNote, []byte(text)); err != nil {
		return fmt.Errorf("failed to persist dream note: %w", err)
	}
	return nil
}

func (r *Repository) loadRecord(key string, out interface{}) (bool, error) {
	raw, ok, err := r.kv.Get(key)
	if err != nil {
		return false, fmt.Errorf("failed to load %s: %w", key, err)
	}
	if !ok {
		return false, nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return false, fmt.Errorf("failed to decode %s: %w", key, err)
	}
	return true, nil
}

func (r *Repository) saveRecord(key string, value interface{}) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", key, err)
	}
	if err := r.kv.Set(key, raw); err != nil {
		return fmt.Errorf("failed to persist %s: %w", key, err)
	}
	return nil
}
