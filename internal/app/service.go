package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/volatiletech/null/v8"

	"github.com/shrimpsizemoose/pluggbulle/internal/metrics"
	"github.com/shrimpsizemoose/pluggbulle/internal/models"
	"github.com/shrimpsizemoose/pluggbulle/internal/scoring"
	"github.com/shrimpsizemoose/pluggbulle/internal/store"
)

type Service struct {
	Config     *Config
	Store      store.StudyStore
	Auth       *Auth
	Cache      *DashboardCache
	Difficulty DifficultyClassifier

	loc         *time.Location
	now         func() time.Time
	maxClassify int
}

func NewService(configPath string) (*Service, error) {
	config, err := LoadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	store, err := NewStore(config.Database.DSN, config.Database.MigrationsDir)
	if err != nil {
		return nil, fmt.Errorf("failed to init store: %w", err)
	}

	auth, err := NewAuth(config)
	if err != nil {
		return nil, fmt.Errorf("failed to init auth: %w", err)
	}

	cache, err := NewDashboardCacheFromConfig(config)
	if err != nil {
		return nil, fmt.Errorf("failed to init cache: %w", err)
	}

	return NewServiceWith(config, store, auth, cache), nil
}

// NewServiceWith assembles a service from already built parts. The difficulty
// classifier comes from config.
func NewServiceWith(config *Config, st store.StudyStore, auth *Auth, cache *DashboardCache) *Service {
	loc, err := config.Location()
	if err != nil {
		loc = time.UTC
	}
	if auth == nil {
		auth = &Auth{tokenHeader: config.Auth.TokenHeader}
	}
	return &Service{
		Config:      config,
		Store:       st,
		Auth:        auth,
		Cache:       cache,
		Difficulty:  NewClassifierFromConfig(config),
		loc:         loc,
		now:         time.Now,
		maxClassify: config.Difficulty.MaxPerSnapshot,
	}
}

// SetClock replaces the wall clock, mostly for tests.
func (s *Service) SetClock(now func() time.Time) {
	s.now = now
}

func (s *Service) Now() time.Time {
	return s.now().In(s.loc)
}

func (s *Service) ValidateAuthAndStudent(r *http.Request, student string) error {
	if !s.Config.Server.EnableAuth {
		return nil
	}

	authHeader := r.Header.Get(s.Auth.tokenHeader)
	if !strings.HasPrefix(authHeader, "Bearer ") {
		return fmt.Errorf("invalid authorization header format: %w", ErrUnauthorized)
	}
	token := strings.TrimPrefix(authHeader, "Bearer ")

	return s.Auth.ValidateToken(r.Context(), student, token)
}

func (s *Service) ValidateHeaders(headers map[string][]string) bool {
	for _, required := range s.Config.API.RequiredHeaders {
		value := headers[http.CanonicalHeaderKey(required.Name)]
		if len(value) == 0 || !strings.EqualFold(value[0], required.Value) {
			return false
		}
	}
	return true
}

func invalid(err error) error {
	return fmt.Errorf("%w: %v", ErrInvalid, err)
}

func (s *Service) Profile(student string) (models.Profile, error) {
	p, err := s.Store.GetProfile(student)
	if err != nil {
		return models.Profile{}, err
	}
	if p == nil {
		return models.DefaultProfile(student), nil
	}
	return *p, nil
}

func (s *Service) UpdateProfile(profile models.Profile) error {
	if err := profile.Validate(); err != nil {
		return invalid(err)
	}
	if err := s.Store.UpsertProfile(profile); err != nil {
		return err
	}
	metrics.IngestedTotal.WithLabelValues("profile", "upsert").Inc()
	return nil
}

func (s *Service) Snapshot(ctx context.Context, student string) (scoring.Snapshot, error) {
	profile, err := s.Profile(student)
	if err != nil {
		return scoring.Snapshot{}, fmt.Errorf("failed to load profile: %w", err)
	}
	subjects, err := s.Store.ListSubjects(student)
	if err != nil {
		return scoring.Snapshot{}, err
	}
	activities, err := s.Store.ListActivities(student)
	if err != nil {
		return scoring.Snapshot{}, err
	}
	attendance, err := s.Store.ListAttendance(student)
	if err != nil {
		return scoring.Snapshot{}, err
	}

	s.classifyMissing(ctx, activities)

	return scoring.Snapshot{
		Profile:    profile,
		Subjects:   subjects,
		Activities: activities,
		Attendance: attendance,
	}, nil
}

func (s *Service) targets(snap scoring.Snapshot) scoring.Targets {
	return scoring.TargetsFor(snap.Profile, s.Config.Scoring)
}

func (s *Service) Dashboard(ctx context.Context, student string) (scoring.Dashboard, error) {
	snap, err := s.Snapshot(ctx, student)
	if err != nil {
		return scoring.Dashboard{}, err
	}
	now := s.Now()

	var key string
	if s.Cache != nil {
		if key, err = s.Cache.Key(snap, s.Config.Scoring, now); err != nil {
			key = ""
		} else if cached, ok := s.Cache.Get(ctx, key); ok {
			return *cached, nil
		}
	}

	d := scoring.BuildDashboard(snap, s.Config.Scoring, now)
	metrics.AcademicScoreHistogram.Observe(float64(d.Score.Total))
	for _, r := range d.Risk.Subjects {
		metrics.RiskLevelTotal.WithLabelValues(string(r.Level)).Inc()
	}

	if s.Cache != nil && key != "" {
		s.Cache.Put(ctx, key, d)
	}
	return d, nil
}

func (s *Service) Score(ctx context.Context, student string) (scoring.Academic, error) {
	snap, err := s.Snapshot(ctx, student)
	if err != nil {
		return scoring.Academic{}, err
	}
	score := scoring.AcademicScore(snap.Activities, snap.Attendance, s.targets(snap), s.Now())
	metrics.AcademicScoreHistogram.Observe(float64(score.Total))
	return score, nil
}

func (s *Service) Risk(ctx context.Context, student string) (scoring.RiskSummary, error) {
	snap, err := s.Snapshot(ctx, student)
	if err != nil {
		return scoring.RiskSummary{}, err
	}
	summary := scoring.RiskReport(snap.Subjects, snap.Activities, snap.Attendance, s.targets(snap), s.Now())
	for _, r := range summary.Subjects {
		metrics.RiskLevelTotal.WithLabelValues(string(r.Level)).Inc()
	}
	return summary, nil
}

func (s *Service) Priorities(ctx context.Context, student string) ([]scoring.Ranked, error) {
	snap, err := s.Snapshot(ctx, student)
	if err != nil {
		return nil, err
	}
	return scoring.RankPending(snap.PriorityContext(s.Now())), nil
}

func (s *Service) Weekly(ctx context.Context, student string) (scoring.Weekly, error) {
	snap, err := s.Snapshot(ctx, student)
	if err != nil {
		return scoring.Weekly{}, err
	}
	return scoring.WeeklyReport(snap.Subjects, snap.Activities, snap.Attendance, s.Now()), nil
}

func (s *Service) GradeNeeded(ctx context.Context, student, subjectID string) (scoring.GradeNeededResult, error) {
	snap, err := s.Snapshot(ctx, student)
	if err != nil {
		return scoring.GradeNeededResult{}, err
	}
	if findSubject(snap.Subjects, subjectID) == nil {
		return scoring.GradeNeededResult{}, fmt.Errorf("subject %s: %w", subjectID, store.ErrNotFound)
	}
	return scoring.SubjectGradeNeeded(snap.Activities, subjectID, s.targets(snap).Grade), nil
}

func findSubject(subjects []models.Subject, id string) *models.Subject {
	for i := range subjects {
		if subjects[i].ID == id {
			return &subjects[i]
		}
	}
	return nil
}

func (s *Service) requireSubject(student, subjectID string) error {
	subjects, err := s.Store.ListSubjects(student)
	if err != nil {
		return err
	}
	if findSubject(subjects, subjectID) == nil {
		return invalid(fmt.Errorf("unknown subject %s", subjectID))
	}
	return nil
}

// AddSubject stores a subject and reports any clash it creates with the
// student's existing timetable.
func (s *Service) AddSubject(subject *models.Subject) ([]scoring.Conflict, error) {
	if err := subject.Validate(); err != nil {
		return nil, invalid(err)
	}
	if err := s.Store.CreateSubject(subject); err != nil {
		return nil, err
	}
	metrics.IngestedTotal.WithLabelValues("subject", "create").Inc()

	subjects, err := s.Store.ListSubjects(subject.Student)
	if err != nil {
		return nil, err
	}
	var clashes []scoring.Conflict
	for _, c := range scoring.ScheduleConflicts(subjects) {
		if c.First.SubjectID == subject.ID || c.Second.SubjectID == subject.ID {
			clashes = append(clashes, c)
		}
	}
	return clashes, nil
}

func (s *Service) DeleteSubject(student, id string) error {
	if err := s.Store.DeleteSubject(student, id); err != nil {
		return err
	}
	metrics.IngestedTotal.WithLabelValues("subject", "delete").Inc()
	return nil
}

func (s *Service) AddActivity(ctx context.Context, activity *models.Activity) error {
	if activity.Status == "" {
		activity.Status = models.StatusPending
	}
	if err := activity.Validate(); err != nil {
		return invalid(err)
	}
	if err := s.requireSubject(activity.Student, activity.SubjectID); err != nil {
		return err
	}
	if err := s.Store.CreateActivity(activity); err != nil {
		return err
	}
	metrics.IngestedTotal.WithLabelValues("activity", "create").Inc()

	one := []models.Activity{*activity}
	s.classifyMissing(ctx, one)
	activity.AIDifficulty = one[0].AIDifficulty
	return nil
}

func (s *Service) SetActivityStatus(student, id string, status models.Status) error {
	if !models.ValidStatus(status) {
		return invalid(fmt.Errorf("bad status %q", status))
	}
	if err := s.Store.UpdateActivityStatus(student, id, status); err != nil {
		return err
	}
	metrics.IngestedTotal.WithLabelValues("activity", "status").Inc()
	return nil
}

func (s *Service) SetActivityGrade(student, id string, grade null.Float64) error {
	if grade.Valid && (grade.Float64 < 0 || grade.Float64 > 10) {
		return invalid(fmt.Errorf("grade %.2f out of range [0,10]", grade.Float64))
	}
	if err := s.Store.UpdateActivityGrade(student, id, grade); err != nil {
		return err
	}
	metrics.IngestedTotal.WithLabelValues("activity", "grade").Inc()
	return nil
}

func (s *Service) SetActivityDifficulty(student, id, level string) error {
	if !models.ValidDifficulty(level) {
		return invalid(fmt.Errorf("bad difficulty %q", level))
	}
	if err := s.Store.SetActivityDifficulty(student, id, level); err != nil {
		return err
	}
	metrics.IngestedTotal.WithLabelValues("activity", "difficulty").Inc()
	return nil
}

func (s *Service) DeleteActivity(student, id string) error {
	if err := s.Store.DeleteActivity(student, id); err != nil {
		return err
	}
	metrics.IngestedTotal.WithLabelValues("activity", "delete").Inc()
	return nil
}

func (s *Service) RecordAttendance(record *models.AttendanceRecord) error {
	if err := record.Validate(); err != nil {
		return invalid(err)
	}
	if err := s.requireSubject(record.Student, record.SubjectID); err != nil {
		return err
	}
	if err := s.Store.CreateAttendance(record); err != nil {
		return err
	}
	metrics.IngestedTotal.WithLabelValues("attendance", "create").Inc()
	return nil
}

// IsNotFound reports whether err came from a missing row.
func IsNotFound(err error) bool {
	return errors.Is(err, store.ErrNotFound)
}

func (s *Service) Close() error {
	var errs []error

	if err := s.Store.Close(); err != nil {
		errs = append(errs, fmt.Errorf("store: %w", err))
	}
	if err := s.Auth.Close(); err != nil {
		errs = append(errs, fmt.Errorf("auth: %w", err))
	}
	if err := s.Cache.Close(); err != nil {
		errs = append(errs, fmt.Errorf("cache: %w", err))
	}

	if len(errs) > 0 {
		return fmt.Errorf("errors while closing: %v", errs)
	}
	return nil
}
