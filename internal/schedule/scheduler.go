package schedule

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	gonanoid "github.com/matoous/go-nanoid/v2"

	"github.com/hverbeek/artflow/internal/models"
)

// ErrPostNotFound is returned when a terminal transition is requested for an
// id that is not in the live scheduled set.
var ErrPostNotFound = errors.New("scheduled post not found")

// document is the persisted schedule file. Posts live in a map for lookup;
// order preserves insertion order for stable listings. History is append-only,
// oldest first on disk.
type document struct {
	ScheduledPosts map[string]*models.ScheduledPost `json:"scheduled_posts"`
	Order          []string                         `json:"order"`
	History        []models.HistoryRecord           `json:"history"`
}

// Scheduler owns the schedule document for the lifetime of the process. Every
// mutation rewrites the whole file before returning, so sequential callers
// always observe a durable, consistent view. It is not safe for multiple
// processes to share one schedule file.
type Scheduler struct {
	mu   sync.Mutex
	path string
	data document
}

func New(path string) (*Scheduler, error) {
	s := &Scheduler{
		path: path,
		data: document{ScheduledPosts: make(map[string]*models.ScheduledPost)},
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return s, nil
		}
		slog.Info(err.Error())
		return nil, fmt.Errorf("failed to read schedule file: %w", err)
	}

	if err := json.Unmarshal(raw, &s.data); err != nil {
		slog.Info(err.Error())
		return nil, fmt.Errorf("failed to parse schedule file: %w", err)
	}
	if s.data.ScheduledPosts == nil {
		s.data.ScheduledPosts = make(map[string]*models.ScheduledPost)
	}
	return s, nil
}

// AddPost inserts a new scheduled post and persists immediately. The returned
// id is unique for the lifetime of the schedule file.
func (s *Scheduler) AddPost(contentID, metadataPath, platform string, scheduledTime time.Time) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id, err := gonanoid.New()
	if err != nil {
		return "", err
	}

	post := &models.ScheduledPost{
		ID:            id,
		ContentID:     contentID,
		MetadataPath:  metadataPath,
		Platform:      platform,
		ScheduledTime: scheduledTime,
		Status:        models.PostStatusScheduled,
		CreatedAt:     time.Now(),
	}

	s.data.ScheduledPosts[id] = post
	s.data.Order = append(s.data.Order, id)

	if err := s.save(); err != nil {
		delete(s.data.ScheduledPosts, id)
		s.data.Order = s.data.Order[:len(s.data.Order)-1]
		return "", err
	}
	return id, nil
}

// GetPending returns scheduled posts that are due now, in insertion order.
func (s *Scheduler) GetPending() []*models.ScheduledPost {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	var pending []*models.ScheduledPost
	for _, id := range s.data.Order {
		post, ok := s.data.ScheduledPosts[id]
		if !ok {
			continue
		}
		if post.Status == models.PostStatusScheduled && !post.ScheduledTime.After(now) {
			pending = append(pending, post)
		}
	}
	return pending
}

// GetUpcoming returns scheduled posts not yet due, in insertion order.
// GetPending and GetUpcoming partition the live scheduled set exactly.
func (s *Scheduler) GetUpcoming() []*models.ScheduledPost {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	var upcoming []*models.ScheduledPost
	for _, id := range s.data.Order {
		post, ok := s.data.ScheduledPosts[id]
		if !ok {
			continue
		}
		if post.Status == models.PostStatusScheduled && post.ScheduledTime.After(now) {
			upcoming = append(upcoming, post)
		}
	}
	return upcoming
}

// Get returns the live post with the given id, or nil if it is not scheduled.
func (s *Scheduler) Get(id string) *models.ScheduledPost {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.data.ScheduledPosts[id]
}

// CancelPost removes a still-scheduled post from the live set. It reports
// false for unknown ids; cancellation is not recorded in history.
func (s *Scheduler) CancelPost(id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	post, ok := s.data.ScheduledPosts[id]
	if !ok {
		return false, nil
	}

	index := s.removeLive(id)
	if err := s.save(); err != nil {
		s.restoreLive(post, index)
		return false, err
	}
	return true, nil
}

// MarkPosted transitions a post to its terminal posted state, records the
// outcome in history, and persists.
func (s *Scheduler) MarkPosted(id, postURL string) error {
	return s.resolve(id, models.PostStatusPosted, postURL, "")
}

// MarkFailed transitions a post to its terminal failed state, records the
// outcome in history, and persists.
func (s *Scheduler) MarkFailed(id, errorMessage string) error {
	return s.resolve(id, models.PostStatusFailed, "", errorMessage)
}

func (s *Scheduler) resolve(id, status, postURL, errorMessage string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	post, ok := s.data.ScheduledPosts[id]
	if !ok {
		return fmt.Errorf("%w: %s", ErrPostNotFound, id)
	}

	now := time.Now()
	record := models.HistoryRecord{
		ID:         post.ID,
		ContentID:  post.ContentID,
		Platform:   post.Platform,
		Status:     status,
		PostURL:    postURL,
		Error:      errorMessage,
		ResolvedAt: now,
	}

	index := s.removeLive(id)
	s.data.History = append(s.data.History, record)

	if err := s.save(); err != nil {
		s.data.History = s.data.History[:len(s.data.History)-1]
		s.restoreLive(post, index)
		return err
	}
	return nil
}

// GetHistory returns up to limit terminal records, most recent first. A limit
// of zero or less returns the full history; growth is only bounded at read
// time by the caller's limit.
func (s *Scheduler) GetHistory(limit int) []models.HistoryRecord {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := len(s.data.History)
	if limit <= 0 || limit > n {
		limit = n
	}

	records := make([]models.HistoryRecord, 0, limit)
	for i := n - 1; i >= n-limit; i-- {
		records = append(records, s.data.History[i])
	}
	return records
}

// removeLive drops the post from the live set and returns its position in
// Order so a failed save can restore it in place.
func (s *Scheduler) removeLive(id string) int {
	delete(s.data.ScheduledPosts, id)
	for i, existing := range s.data.Order {
		if existing == id {
			s.data.Order = append(s.data.Order[:i], s.data.Order[i+1:]...)
			return i
		}
	}
	return len(s.data.Order)
}

func (s *Scheduler) restoreLive(post *models.ScheduledPost, index int) {
	s.data.ScheduledPosts[post.ID] = post
	if index > len(s.data.Order) {
		index = len(s.data.Order)
	}
	s.data.Order = append(s.data.Order[:index], append([]string{post.ID}, s.data.Order[index:]...)...)
}

// save rewrites the whole document through a temp file so a failed write never
// leaves a half-written schedule behind. Callers roll back the in-memory
// mutation when save fails.
func (s *Scheduler) save() error {
	raw, err := json.MarshalIndent(s.data, "", "  ")
	if err != nil {
		slog.Info(err.Error())
		return fmt.Errorf("failed to encode schedule: %w", err)
	}

	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, ".schedule-*.json")
	if err != nil {
		slog.Info(err.Error())
		return fmt.Errorf("failed to create temp schedule file: %w", err)
	}

	if _, err := tmp.Write(raw); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		slog.Info(err.Error())
		return fmt.Errorf("failed to write schedule: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		slog.Info(err.Error())
		return fmt.Errorf("failed to write schedule: %w", err)
	}

	if err := os.Rename(tmp.Name(), s.path); err != nil {
		os.Remove(tmp.Name())
		slog.Info(err.Error())
		return fmt.Errorf("failed to replace schedule file: %w", err)
	}
	return nil
}
