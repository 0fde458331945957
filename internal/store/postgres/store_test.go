package postgres

import (
	"context"
	"flag"
	"log"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"github.com/volatiletech/null/v8"

	"github.com/shrimpsizemoose/pluggbulle/internal/models"
)

// setupTestDB starts a throwaway Postgres container and applies migrations
func setupTestDB(t *testing.T) (*PostgresStore, func()) {
	ctx := context.Background()

	container, err := postgres.Run(
		ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("test"),
		postgres.WithPassword("test"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second)),
	)
	require.NoError(t, err)

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	s, err := NewPostgresStore(dsn, "../../../migrations")
	require.NoError(t, err, "Failed to create store")

	cleanup := func() {
		s.Close()
		container.Terminate(ctx)
	}

	return s, cleanup
}

func TestMain(m *testing.M) {
	flag.Parse()
	if testing.Short() {
		log.Println("Skipping Postgres integration tests. Use -short=false to run them.")
		os.Exit(0)
	}
	log.Println("Starting Postgres store tests...")
	code := m.Run()
	log.Println("Finished Postgres store tests")
	os.Exit(code)
}

func TestNumberedPlaceholders(t *testing.T) {
	assert.Equal(t,
		"UPDATE activities SET status = $1 WHERE student = $2 AND id = $3",
		numberedPlaceholders("UPDATE activities SET status = ? WHERE student = ? AND id = ?"),
	)
}

func TestSnapshotRoundTrip(t *testing.T) {
	s, cleanup := setupTestDB(t)
	defer cleanup()

	subject := &models.Subject{
		Student:   "jane.doe",
		Name:      "Mathematics",
		Schedules: []models.Schedule{{Day: 1, StartTime: "08:00", EndTime: "10:00"}},
	}
	require.NoError(t, s.CreateSubject(subject))

	activity := &models.Activity{
		Student:      "jane.doe",
		SubjectID:    subject.ID,
		Title:        "Quiz",
		Deadline:     "2024-04-10",
		Status:       models.StatusCompleted,
		ActivityType: models.TypeExercise,
		Grade:        null.Float64From(6.5),
	}
	require.NoError(t, s.CreateActivity(activity))
	require.NoError(t, s.CreateAttendance(&models.AttendanceRecord{
		Student: "jane.doe", SubjectID: subject.ID, Date: "2024-04-08", Present: true,
	}))
	require.NoError(t, s.UpsertProfile(models.DefaultProfile("jane.doe")))

	t.Run("subjects", func(t *testing.T) {
		subjects, err := s.ListSubjects("jane.doe")
		require.NoError(t, err)
		require.Len(t, subjects, 1)
		assert.Len(t, subjects[0].Schedules, 1)
	})

	t.Run("activities", func(t *testing.T) {
		activities, err := s.ListActivities("jane.doe")
		require.NoError(t, err)
		require.Len(t, activities, 1)
		assert.Equal(t, 6.5, activities[0].Grade.Float64)
		assert.False(t, activities[0].Weight.Valid)
	})

	t.Run("attendance", func(t *testing.T) {
		records, err := s.ListAttendance("jane.doe")
		require.NoError(t, err)
		require.Len(t, records, 1)
		assert.True(t, records[0].Present)
	})

	t.Run("profile", func(t *testing.T) {
		p, err := s.GetProfile("jane.doe")
		require.NoError(t, err)
		require.NotNil(t, p)
		assert.Equal(t, 7.0, p.TargetGrade)
	})

	t.Run("status update", func(t *testing.T) {
		require.NoError(t, s.UpdateActivityStatus("jane.doe", activity.ID, models.StatusPending))
		got, err := s.GetActivity("jane.doe", activity.ID)
		require.NoError(t, err)
		assert.Equal(t, models.StatusPending, got.Status)
	})
}
