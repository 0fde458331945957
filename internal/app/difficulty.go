package app

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/shrimpsizemoose/trekker/logger"
	"github.com/sony/gobreaker"

	"github.com/shrimpsizemoose/pluggbulle/internal/metrics"
	"github.com/shrimpsizemoose/pluggbulle/internal/models"
)

// DifficultyClassifier returns one of high, medium or low for an activity.
type DifficultyClassifier interface {
	Classify(ctx context.Context, activity models.Activity) (string, error)
}

type classifyRequest struct {
	Title        string `json:"title"`
	Description  string `json:"description"`
	ActivityType string `json:"activity_type"`
}

type classifyResponse struct {
	Difficulty string `json:"difficulty"`
}

type HTTPClassifier struct {
	url    string
	client *http.Client
}

func NewHTTPClassifier(url string, timeout time.Duration) *HTTPClassifier {
	return &HTTPClassifier{
		url:    url,
		client: &http.Client{Timeout: timeout},
	}
}

func (c *HTTPClassifier) Classify(ctx context.Context, activity models.Activity) (string, error) {
	body, err := json.Marshal(classifyRequest{
		Title:        activity.Title,
		Description:  activity.Description,
		ActivityType: string(activity.ActivityType),
	})
	if err != nil {
		return "", fmt.Errorf("failed to encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("classifier request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("classifier returned status %d", resp.StatusCode)
	}

	var out classifyResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("failed to decode classifier response: %w", err)
	}
	if !models.ValidDifficulty(out.Difficulty) {
		return "", fmt.Errorf("classifier returned unknown difficulty %q", out.Difficulty)
	}
	return out.Difficulty, nil
}

// BreakerClassifier stops calling a failing classifier for a cooldown after
// enough consecutive failures.
type BreakerClassifier struct {
	next DifficultyClassifier
	cb   *gobreaker.CircuitBreaker
}

func NewBreakerClassifier(next DifficultyClassifier, failures int, cooldown time.Duration) *BreakerClassifier {
	return &BreakerClassifier{
		next: next,
		cb: gobreaker.NewCircuitBreaker(gobreaker.Settings{
			Name:        "difficulty",
			MaxRequests: 1,
			Timeout:     cooldown,
			ReadyToTrip: func(counts gobreaker.Counts) bool {
				return counts.ConsecutiveFailures >= uint32(failures)
			},
			OnStateChange: func(name string, from, to gobreaker.State) {
				logger.Info.Printf("Circuit %s: %s -> %s", name, from, to)
			},
		}),
	}
}

func (b *BreakerClassifier) Classify(ctx context.Context, activity models.Activity) (string, error) {
	out, err := b.cb.Execute(func() (interface{}, error) {
		return b.next.Classify(ctx, activity)
	})
	if err != nil {
		return "", err
	}
	return out.(string), nil
}

// NewClassifierFromConfig returns nil when hints are disabled.
func NewClassifierFromConfig(config *Config) DifficultyClassifier {
	if !config.Difficulty.Enabled {
		return nil
	}
	timeout := time.Duration(config.Difficulty.TimeoutMS) * time.Millisecond
	cooldown := time.Duration(config.Difficulty.BreakerCooldownSeconds) * time.Second
	return NewBreakerClassifier(
		NewHTTPClassifier(config.Difficulty.URL, timeout),
		config.Difficulty.BreakerFailures,
		cooldown,
	)
}

func breakerOpen(err error) bool {
	return errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests)
}

// classifyMissing fills absent difficulty hints on open activities and
// persists what it learns, at most maxClassify calls per snapshot. Failures
// leave the hint empty.
func (s *Service) classifyMissing(ctx context.Context, activities []models.Activity) {
	if s.Difficulty == nil {
		return
	}
	calls := 0
	for i := range activities {
		a := &activities[i]
		if a.IsCompleted() || (a.AIDifficulty.Valid && models.ValidDifficulty(a.AIDifficulty.String)) {
			continue
		}
		if s.maxClassify > 0 && calls >= s.maxClassify {
			return
		}
		calls++

		level, err := s.Difficulty.Classify(ctx, *a)
		if breakerOpen(err) {
			metrics.DifficultyRequestsTotal.WithLabelValues("skipped").Inc()
			return
		}
		if err != nil {
			logger.Debug.Printf("difficulty for activity %s unavailable: %v", a.ID, err)
			metrics.DifficultyRequestsTotal.WithLabelValues("failed").Inc()
			continue
		}
		metrics.DifficultyRequestsTotal.WithLabelValues("ok").Inc()
		a.AIDifficulty.SetValid(level)

		if err := s.Store.SetActivityDifficulty(a.Student, a.ID, level); err != nil {
			logger.Error.Printf("failed to persist difficulty for activity %s: %v", a.ID, err)
		}
	}
}
