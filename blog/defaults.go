package blog

import (
	"github.com/mosunmola/midnight-hub/models"
)

// StarterPosts is the collection seeded on first boot so the hub isn't
// empty before the author writes anything.
func StarterPosts() []models.Post {
	return []models.Post{
		{
			ID:          "1",
			Title:       "The Art of Late Night Whispers",
			Excerpt:     "Finding clarity in the silence that only arrives after midnight.",
			Content:     "When the world falls silent, the mind begins to speak. There is a specific kind of magic that happens between 2 AM and 4 AM, when the hustle of modern life is put on pause and the only sound is the rhythmic humming of the refrigerator or the distant wind in the trees.",
			Author:      "Mosunmola, Esq",
			Date:        "Oct 24, 2023 • 02:15 AM",
			ReadingTime: "5 min",
			Category:    "Reflections",
			Mood:        "Quiet",
			ImageURL:    "https://images.unsplash.com/photo-1519681393784-d120267933ba?auto=format&fit=crop&q=80&w=800",
			Status:      models.StatusPublished,
		},
		{
			ID:          "2",
			Title:       "Why Soft Lighting Changes Everything",
			Excerpt:     "How the warm glow of a desk lamp can transform your creative process.",
			Content:     "Atmosphere is the unsung hero of productivity. We often focus on tools, forgetting the environment that houses them.",
			Author:      "Mosunmola, Esq",
			Date:        "Nov 12, 2023 • 11:45 PM",
			ReadingTime: "3 min",
			Category:    "Lifestyle",
			Mood:        "Inspired",
			ImageURL:    "https://images.unsplash.com/photo-1505691723518-36a5ac3be353?auto=format&fit=crop&q=80&w=800",
			Status:      models.StatusPublished,
		},
		{
			ID:          "3",
			Title:       "Finding Grace in the Stillness",
			Excerpt:     "How quiet moments of prayer and reflection strengthen the soul.",
			Content:     "There is a profound spiritual connection that happens in the quiet. When we remove the distractions of the day, we open our hearts to a deeper understanding of our faith.",
			Author:      "Mosunmola, Esq",
			Date:        "Dec 05, 2023 • 05:30 AM",
			ReadingTime: "8 min",
			Category:    "Faith",
			Mood:        "Restless",
			ImageURL:    "https://images.unsplash.com/photo-1470252649378-9c29740c9fa8?auto=format&fit=crop&q=80&w=800",
			Status:      models.StatusPublished,
		},
	}
}

// DefaultManifesto is the landing-page manifesto before the admin edits it
func DefaultManifesto() []models.ManifestoItem {
	return []models.ManifestoItem{
		{
			ID:          "1",
			Title:       "Deliberate Slowness",
			Description: "In an age of instant gratification, we choose the long-form thought. We believe ideas need room to breathe and age like fine parchment.",
			Icon:        "🌙",
		},
		{
			ID:          "2",
			Title:       "Atmospheric Clarity",
			Description: "The environment dictates the output. We celebrate the desk lamp, the rain on the glass, and the profound focus of isolation.",
			Icon:        "🕯️",
		},
		{
			ID:          "3",
			Title:       "Honest Reflections",
			Description: "No algorithms, no bait. Just whispers from one restless mind to another, shared in the safety of the quiet hours.",
			Icon:        "🖋️",
		},
	}
}

// DefaultSettings is the site branding before the admin edits it
func DefaultSettings() models.SiteSettings {
	return models.SiteSettings{
		SiteName:    "Ready ToWrite Hub",
		Tagline:     "A collection of quiet insights for the restless mind.",
		AccentColor: "#6366f1",
		LogoURL:     "",
	}
}

// DefaultProfile is the author page before the admin edits it
func DefaultProfile() models.AuthorProfile {
	return models.AuthorProfile{
		Name:  "Mosunmola, Esq",
		Title: "Writer of the Quiet Hours",
		Bio:   "Legal mind by day, restless writer by night. Collecting the thoughts that only surface when the world sleeps.",
		Rituals: []models.Ritual{
			{Title: "The 2 AM Desk Lamp", Desc: "Writing only begins when the last streetlight flickers.", Icon: "🕯️"},
			{Title: "Warm Tea, Cold Logic", Desc: "Chamomile for the nerves, case law for the mind.", Icon: "🍵"},
			{Title: "Ink Before Pixels", Desc: "Every draft starts in a paper notebook.", Icon: "🖋️"},
		},
	}
}
