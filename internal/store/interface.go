package store

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/volatiletech/null/v8"

	"github.com/shrimpsizemoose/pluggbulle/internal/models"
)

type StudyStore interface {
	Close() error
	ApplyMigrations(dir string) error

	CreateSubject(subject *models.Subject) error
	ListSubjects(student string) ([]models.Subject, error)
	DeleteSubject(student, id string) error

	CreateActivity(activity *models.Activity) error
	GetActivity(student, id string) (*models.Activity, error)
	ListActivities(student string) ([]models.Activity, error)
	UpdateActivityStatus(student, id string, status models.Status) error
	UpdateActivityGrade(student, id string, grade null.Float64) error
	SetActivityDifficulty(student, id, difficulty string) error
	DeleteActivity(student, id string) error

	CreateAttendance(record *models.AttendanceRecord) error
	ListAttendance(student string) ([]models.AttendanceRecord, error)

	GetProfile(student string) (*models.Profile, error)
	UpsertProfile(profile models.Profile) error
	ListStudents() ([]string, error)
}

// BaseStore provides common functionality for different DB implementations
type BaseStore struct {
	DB        *sqlx.DB
	Converter func(string) string
}

func (s *BaseStore) Close() error {
	if s.DB != nil {
		return s.DB.Close()
	}
	return nil
}

// ApplyMigrations applies SQL migrations from a directory in name order,
// translating dialect if needed
func (s *BaseStore) ApplyMigrations(dir string, translateSQL func(string) string) error {
	files, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("failed to read migrations directory: %w", err)
	}
	sort.Slice(files, func(i, j int) bool { return files[i].Name() < files[j].Name() })

	for _, file := range files {
		if !strings.HasSuffix(file.Name(), ".sql") {
			continue
		}

		content, err := os.ReadFile(filepath.Join(dir, file.Name()))
		if err != nil {
			return fmt.Errorf("failed to read migration %s: %w", file.Name(), err)
		}

		sql := string(content)
		if translateSQL != nil {
			sql = translateSQL(sql)
		}

		if _, err := s.DB.Exec(sql); err != nil {
			return fmt.Errorf("failed to apply migration %s: %w", file.Name(), err)
		}
	}

	return nil
}

func expectOne(res sql.Result, what string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check %s: %w", what, err)
	}
	if n == 0 {
		return fmt.Errorf("%s: %w", what, ErrNotFound)
	}
	return nil
}

func (s *BaseStore) CreateSubject(subject *models.Subject) error {
	if subject.ID == "" {
		subject.ID = uuid.New().String()
	}

	tx, err := s.DB.Beginx()
	if err != nil {
		return fmt.Errorf("failed to begin tx: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.NamedExec(`
		INSERT INTO subjects (id, student, name, color, workload)
		VALUES (:id, :student, :name, :color, :workload)
	`, subject); err != nil {
		return fmt.Errorf("failed to create subject: %w", err)
	}

	for i := range subject.Schedules {
		subject.Schedules[i].SubjectID = subject.ID
		if _, err := tx.NamedExec(`
			INSERT INTO subject_schedules (subject_id, day, start_time, end_time)
			VALUES (:subject_id, :day, :start_time, :end_time)
		`, subject.Schedules[i]); err != nil {
			return fmt.Errorf("failed to create schedule: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit subject: %w", err)
	}
	return nil
}

func (s *BaseStore) ListSubjects(student string) ([]models.Subject, error) {
	subjects := []models.Subject{}
	err := s.DB.Select(&subjects, s.Converter(`
		SELECT id, student, name, color, workload
		FROM subjects
		WHERE student = ?
		ORDER BY name, id
	`), student)
	if err != nil {
		return nil, fmt.Errorf("failed to list subjects: %w", err)
	}

	var schedules []models.Schedule
	err = s.DB.Select(&schedules, s.Converter(`
		SELECT sc.subject_id, sc.day, sc.start_time, sc.end_time
		FROM subject_schedules sc
		JOIN subjects s ON s.id = sc.subject_id
		WHERE s.student = ?
		ORDER BY sc.day, sc.start_time
	`), student)
	if err != nil {
		return nil, fmt.Errorf("failed to list schedules: %w", err)
	}

	idx := make(map[string]int, len(subjects))
	for i := range subjects {
		subjects[i].Schedules = []models.Schedule{}
		idx[subjects[i].ID] = i
	}
	for _, sc := range schedules {
		if i, ok := idx[sc.SubjectID]; ok {
			subjects[i].Schedules = append(subjects[i].Schedules, sc)
		}
	}
	return subjects, nil
}

func (s *BaseStore) DeleteSubject(student, id string) error {
	res, err := s.DB.Exec(s.Converter(`DELETE FROM subjects WHERE student = ? AND id = ?`), student, id)
	if err != nil {
		return fmt.Errorf("failed to delete subject: %w", err)
	}
	return expectOne(res, "subject "+id)
}

const activityColumns = `id, student, subject_id, title, description, deadline, status,
		activity_type, grade, weight, ai_difficulty`

func (s *BaseStore) CreateActivity(activity *models.Activity) error {
	if activity.ID == "" {
		activity.ID = uuid.New().String()
	}
	_, err := s.DB.NamedExec(`
		INSERT INTO activities (`+activityColumns+`)
		VALUES (:id, :student, :subject_id, :title, :description, :deadline, :status,
			:activity_type, :grade, :weight, :ai_difficulty)
	`, activity)
	if err != nil {
		return fmt.Errorf("failed to create activity: %w", err)
	}
	return nil
}

func (s *BaseStore) GetActivity(student, id string) (*models.Activity, error) {
	var activity models.Activity
	err := s.DB.Get(&activity, s.Converter(`
		SELECT `+activityColumns+`
		FROM activities
		WHERE student = ? AND id = ?
	`), student, id)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get activity: %w", err)
	}
	return &activity, nil
}

func (s *BaseStore) ListActivities(student string) ([]models.Activity, error) {
	activities := []models.Activity{}
	err := s.DB.Select(&activities, s.Converter(`
		SELECT `+activityColumns+`
		FROM activities
		WHERE student = ?
		ORDER BY deadline, id
	`), student)
	if err != nil {
		return nil, fmt.Errorf("failed to list activities: %w", err)
	}
	return activities, nil
}

func (s *BaseStore) UpdateActivityStatus(student, id string, status models.Status) error {
	res, err := s.DB.Exec(s.Converter(`
		UPDATE activities SET status = ? WHERE student = ? AND id = ?
	`), string(status), student, id)
	if err != nil {
		return fmt.Errorf("failed to update activity status: %w", err)
	}
	return expectOne(res, "activity "+id)
}

func (s *BaseStore) UpdateActivityGrade(student, id string, grade null.Float64) error {
	res, err := s.DB.Exec(s.Converter(`
		UPDATE activities SET grade = ? WHERE student = ? AND id = ?
	`), grade, student, id)
	if err != nil {
		return fmt.Errorf("failed to update activity grade: %w", err)
	}
	return expectOne(res, "activity "+id)
}

func (s *BaseStore) SetActivityDifficulty(student, id, difficulty string) error {
	res, err := s.DB.Exec(s.Converter(`
		UPDATE activities SET ai_difficulty = ? WHERE student = ? AND id = ?
	`), difficulty, student, id)
	if err != nil {
		return fmt.Errorf("failed to set activity difficulty: %w", err)
	}
	return expectOne(res, "activity "+id)
}

func (s *BaseStore) DeleteActivity(student, id string) error {
	res, err := s.DB.Exec(s.Converter(`DELETE FROM activities WHERE student = ? AND id = ?`), student, id)
	if err != nil {
		return fmt.Errorf("failed to delete activity: %w", err)
	}
	return expectOne(res, "activity "+id)
}

func (s *BaseStore) CreateAttendance(record *models.AttendanceRecord) error {
	if record.ID == "" {
		record.ID = uuid.New().String()
	}
	_, err := s.DB.NamedExec(`
		INSERT INTO attendance (id, student, subject_id, date, present)
		VALUES (:id, :student, :subject_id, :date, :present)
	`, record)
	if err != nil {
		return fmt.Errorf("failed to create attendance record: %w", err)
	}
	return nil
}

func (s *BaseStore) ListAttendance(student string) ([]models.AttendanceRecord, error) {
	records := []models.AttendanceRecord{}
	err := s.DB.Select(&records, s.Converter(`
		SELECT id, student, subject_id, date, present
		FROM attendance
		WHERE student = ?
		ORDER BY date, id
	`), student)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance: %w", err)
	}
	return records, nil
}

func (s *BaseStore) GetProfile(student string) (*models.Profile, error) {
	var profile models.Profile
	err := s.DB.Get(&profile, s.Converter(`
		SELECT student, target_grade, target_attendance, weekly_hours_goal, academic_status
		FROM profiles
		WHERE student = ?
	`), student)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}
	return &profile, nil
}

func (s *BaseStore) UpsertProfile(profile models.Profile) error {
	_, err := s.DB.NamedExec(`
		INSERT INTO profiles (student, target_grade, target_attendance, weekly_hours_goal, academic_status)
		VALUES (:student, :target_grade, :target_attendance, :weekly_hours_goal, :academic_status)
		ON CONFLICT(student) DO UPDATE SET
		target_grade = :target_grade,
		target_attendance = :target_attendance,
		weekly_hours_goal = :weekly_hours_goal,
		academic_status = :academic_status
	`, profile)
	if err != nil {
		return fmt.Errorf("failed to upsert profile: %w", err)
	}
	return nil
}

func (s *BaseStore) ListStudents() ([]string, error) {
	students := []string{}
	err := s.DB.Select(&students, `
		SELECT student FROM profiles
		UNION
		SELECT student FROM subjects
		ORDER BY 1
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list students: %w", err)
	}
	return students, nil
}
