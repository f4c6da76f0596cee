package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"

	"github.com/mosunmola/midnight-hub/blog"
	"github.com/mosunmola/midnight-hub/models"
	"github.com/mosunmola/midnight-hub/utils"
)

// Server exposes the blog engine over an HTTP JSON API for the SPA
type Server struct {
	repo   *blog.Repository
	events *blog.EventLog
	config *utils.Config
	log    *logrus.Logger
	echo   *echo.Echo
}

// NewServer wires up the echo instance with middleware and routes
func NewServer(repo *blog.Repository, events *blog.EventLog, config *utils.Config, log *logrus.Logger) *Server {
	s := &Server{
		repo:   repo,
		events: events,
		config: config,
		log:    log,
		echo:   echo.New(),
	}

	s.echo.HideBanner = true

	// middleware
	s.echo.Use(middleware.Logger())
	s.echo.Use(middleware.Recover())
	s.echo.Use(s.rateLimiter())

	s.registerRoutes()
	return s
}

// Start runs the server until ctx is cancelled, then shuts down gracefully
func (s *Server) Start(ctx context.Context) {
	go func() {
		serverAddr := fmt.Sprintf(":%d", s.config.Server.Port)
		s.log.WithField("port", s.config.Server.Port).Info("Starting API server")
		if err := s.echo.Start(serverAddr); err != nil && err != http.ErrServerClosed {
			s.log.WithError(err).Fatal("API server failed")
		}
	}()

	<-ctx.Done()
	s.log.Info("Shutting down API server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := s.echo.Shutdown(shutdownCtx); err != nil {
		s.log.WithError(err).Error("API server shutdown failed")
	}
}

func (s *Server) rateLimiter() echo.MiddlewareFunc {
	requestsPerSecond := float64(s.config.Server.MaxRequestsPerMinute) / 60.0

	rateLimit := rate.Limit(requestsPerSecond * 0.95) // use 95% of the rate limit to be safe

	burst := int(requestsPerSecond)
	if burst < 1 {
		burst = 1
	}

	rateLimiterConfig := middleware.RateLimiterConfig{
		Skipper: middleware.DefaultSkipper,
		Store: middleware.NewRateLimiterMemoryStoreWithConfig(
			middleware.RateLimiterMemoryStoreConfig{
				Rate:      rateLimit,
				Burst:     burst,
				ExpiresIn: 3 * time.Minute,
			},
		),
		IdentifierExtractor: func(ctx echo.Context) (string, error) {
			return ctx.RealIP(), nil
		},
		ErrorHandler: func(ctx echo.Context, err error) error {
			return ctx.JSON(http.StatusTooManyRequests, map[string]string{
				"error": "Rate limit exceeded, please try again later",
			})
		},
		DenyHandler: func(ctx echo.Context, identifier string, err error) error {
			return ctx.JSON(http.StatusTooManyRequests, map[string]string{
				"error": "Rate limit exceeded, please try again later",
			})
		},
	}

	return middleware.RateLimiterWithConfig(rateLimiterConfig)
}

func (s *Server) registerRoutes() {
	e := s.echo

	// health check endpoint; useful for k8s liveliness probes
	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "OK")
	})

	e.GET("/api/feed", s.getFeed)
	e.GET("/api/posts/:id", s.getPost)
	e.POST("/api/posts/:id/reactions", s.postReaction)
	e.POST("/api/posts/:id/rating", s.postRating)
	e.GET("/api/posts/:id/comments", s.getComments)
	e.POST("/api/posts/:id/comments", s.postComment)
	e.GET("/api/manifesto", s.getManifesto)
	e.GET("/api/settings", s.getSettings)
	e.GET("/api/profile", s.getProfile)
	e.GET("/api/notifications", s.getNotifications)
	e.GET("/api/moon", s.getMoon)
	e.GET("/api/dream", s.getDreamNote)
	e.PUT("/api/dream", s.putDreamNote)

	admin := e.Group("/api/admin", Auth(s.config.Blog.AdminToken))
	admin.GET("/posts", s.adminListPosts)
	admin.POST("/posts", s.adminSavePost)
	admin.DELETE("/posts/:id", s.adminDeletePost)
	admin.DELETE("/posts/:id/comments/:commentId", s.adminDeleteComment)
	admin.PUT("/manifesto", s.adminPutManifesto)
	admin.PUT("/settings", s.adminPutSettings)
	admin.PUT("/profile", s.adminPutProfile)
}

type feedResponse struct {
	blog.FeedPage
	Categories []string `json:"categories"`
	Moods      []string `json:"moods"`
}

func (s *Server) getFeed(c echo.Context) error {
	filter := blog.Filter{
		Category: c.QueryParam("category"),
		Mood:     c.QueryParam("mood"),
		Search:   c.QueryParam("q"),
	}

	page := blog.QueryFeed(s.repo.List(), filter)
	return c.JSON(http.StatusOK, feedResponse{
		FeedPage:   page,
		Categories: s.config.Blog.Categories,
		Moods:      s.config.Blog.Moods,
	})
}

type postResponse struct {
	models.Post
	AverageRating float64 `json:"averageRating"`
}

func (s *Server) getPost(c echo.Context) error {
	post, ok := s.repo.Get(c.Param("id"))
	if !ok {
		return c.JSON(http.StatusNotFound, map[string]string{
			"error": "No such post",
		})
	}
	return c.JSON(http.StatusOK, postResponse{Post: post, AverageRating: post.AverageRating()})
}

type reactionRequest struct {
	VoterID  string `json:"voterId"`
	Reaction string `json:"reaction"`
}

func (s *Server) postReaction(c echo.Context) error {
	var req reactionRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request body"})
	}
	if req.VoterID == "" {
		req.VoterID = c.Request().Header.Get("X-Voter-ID")
	}
	if req.VoterID == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "voterId is required"})
	}

	post, err := s.repo.React(c.Param("id"), req.VoterID, req.Reaction)
	switch {
	case errors.Is(err, blog.ErrNotFound):
		return c.JSON(http.StatusNotFound, map[string]string{"error": "No such post"})
	case errors.Is(err, blog.ErrInvalidReaction):
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	case err != nil:
		// the edit is kept in memory; the store write is what failed
		s.log.WithError(err).Error("Reaction persisted in memory only")
	}

	return c.JSON(http.StatusOK, postResponse{Post: post, AverageRating: post.AverageRating()})
}

type ratingRequest struct {
	VoterID string `json:"voterId"`
	Value   int    `json:"value"`
}

func (s *Server) postRating(c echo.Context) error {
	var req ratingRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request body"})
	}
	if req.VoterID == "" {
		req.VoterID = c.Request().Header.Get("X-Voter-ID")
	}
	if req.VoterID == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "voterId is required"})
	}

	post, err := s.repo.Rate(c.Param("id"), req.VoterID, req.Value)
	switch {
	case errors.Is(err, blog.ErrNotFound):
		return c.JSON(http.StatusNotFound, map[string]string{"error": "No such post"})
	case errors.Is(err, blog.ErrInvalidRating):
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	case err != nil:
		s.log.WithError(err).Error("Rating persisted in memory only")
	}

	return c.JSON(http.StatusOK, postResponse{Post: post, AverageRating: post.AverageRating()})
}

func (s *Server) getComments(c echo.Context) error {
	comments, err := s.repo.Comments(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to load comments"})
	}
	return c.JSON(http.StatusOK, comments)
}

type commentRequest struct {
	Author string `json:"author"`
	Text   string `json:"text"`
}

func (s *Server) postComment(c echo.Context) error {
	var req commentRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request body"})
	}

	comment, err := s.repo.AddComment(c.Param("id"), req.Author, req.Text)
	if errors.Is(err, blog.ErrNotFound) {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "No such post"})
	}
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to save comment"})
	}

	return c.JSON(http.StatusCreated, comment)
}

func (s *Server) getManifesto(c echo.Context) error {
	items, err := s.repo.Manifesto()
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to load manifesto"})
	}
	return c.JSON(http.StatusOK, items)
}

func (s *Server) getSettings(c echo.Context) error {
	settings, err := s.repo.Settings()
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to load settings"})
	}
	return c.JSON(http.StatusOK, settings)
}

func (s *Server) getProfile(c echo.Context) error {
	profile, err := s.repo.Profile()
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to load profile"})
	}
	return c.JSON(http.StatusOK, profile)
}

func (s *Server) getNotifications(c echo.Context) error {
	limit := 20
	if raw := c.QueryParam("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			limit = n
		}
	}
	return c.JSON(http.StatusOK, s.events.Recent(limit))
}

func (s *Server) getMoon(c echo.Context) error {
	return c.JSON(http.StatusOK, utils.CurrentMoonPhase(time.Now()))
}

func (s *Server) getDreamNote(c echo.Context) error {
	note, err := s.repo.DreamNote()
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to load dream note"})
	}
	return c.JSON(http.StatusOK, map[string]string{"text": note})
}

type dreamRequest struct {
	Text string `json:"text"`
}

func (s *Server) putDreamNote(c echo.Context) error {
	var req dreamRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request body"})
	}
	if err := s.repo.SetDreamNote(req.Text); err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to save dream note"})
	}
	return c.NoContent(http.StatusNoContent)
}

func (s *Server) adminListPosts(c echo.Context) error {
	return c.JSON(http.StatusOK, s.repo.List())
}

func (s *Server) adminSavePost(c echo.Context) error {
	var post models.Post
	if err := c.Bind(&post); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request body"})
	}

	saved, err := s.repo.CreateOrUpdate(post)
	if err != nil {
		// memory holds the edit; tell the caller the mirror write failed
		s.log.WithError(err).Error("Post persisted in memory only")
		return c.JSON(http.StatusInternalServerError, map[string]interface{}{
			"error": "Post saved in memory but not persisted; retry the save",
			"post":  saved,
		})
	}

	return c.JSON(http.StatusOK, saved)
}

func (s *Server) adminDeletePost(c echo.Context) error {
	if err := s.repo.Delete(c.Param("id")); err != nil {
		s.log.WithError(err).Error("Post deletion not fully persisted")
		return c.JSON(http.StatusInternalServerError, map[string]string{
			"error": "Deletion applied in memory but not persisted; retry",
		})
	}
	return c.NoContent(http.StatusNoContent)
}

func (s *Server) adminDeleteComment(c echo.Context) error {
	if err := s.repo.RemoveComment(c.Param("id"), c.Param("commentId")); err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to remove comment"})
	}
	return c.NoContent(http.StatusNoContent)
}

func (s *Server) adminPutManifesto(c echo.Context) error {
	var items []models.ManifestoItem
	if err := c.Bind(&items); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request body"})
	}
	if err := s.repo.SetManifesto(items); err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to save manifesto"})
	}
	return c.NoContent(http.StatusNoContent)
}

func (s *Server) adminPutSettings(c echo.Context) error {
	var settings models.SiteSettings
	if err := c.Bind(&settings); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request body"})
	}
	if err := s.repo.SetSettings(settings); err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to save settings"})
	}
	return c.NoContent(http.StatusNoContent)
}

func (s *Server) adminPutProfile(c echo.Context) error {
	var profile models.AuthorProfile
	if err := c.Bind(&profile); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request body"})
	}
	if err := s.repo.SetProfile(profile); err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to save profile"})
	}
	return c.NoContent(http.StatusNoContent)
}
