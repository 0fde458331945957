// Package storetest holds a testify mock of store.StudyStore.
package storetest

import (
	"github.com/stretchr/testify/mock"
	"github.com/volatiletech/null/v8"

	"github.com/shrimpsizemoose/pluggbulle/internal/models"
)

type MockStore struct {
	mock.Mock
}

func (m *MockStore) Close() error {
	return nil
}

func (m *MockStore) ApplyMigrations(dir string) error {
	return nil
}

func (m *MockStore) CreateSubject(subject *models.Subject) error {
	args := m.Called(subject)
	return args.Error(0)
}

func (m *MockStore) ListSubjects(student string) ([]models.Subject, error) {
	args := m.Called(student)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Subject), args.Error(1)
}

func (m *MockStore) DeleteSubject(student, id string) error {
	return m.Called(student, id).Error(0)
}

func (m *MockStore) CreateActivity(activity *models.Activity) error {
	return m.Called(activity).Error(0)
}

func (m *MockStore) GetActivity(student, id string) (*models.Activity, error) {
	args := m.Called(student, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Activity), args.Error(1)
}

func (m *MockStore) ListActivities(student string) ([]models.Activity, error) {
	args := m.Called(student)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Activity), args.Error(1)
}

func (m *MockStore) UpdateActivityStatus(student, id string, status models.Status) error {
	return m.Called(student, id, status).Error(0)
}

func (m *MockStore) UpdateActivityGrade(student, id string, grade null.Float64) error {
	return m.Called(student, id, grade).Error(0)
}

func (m *MockStore) SetActivityDifficulty(student, id, difficulty string) error {
	return m.Called(student, id, difficulty).Error(0)
}

func (m *MockStore) DeleteActivity(student, id string) error {
	return m.Called(student, id).Error(0)
}

func (m *MockStore) CreateAttendance(record *models.AttendanceRecord) error {
	return m.Called(record).Error(0)
}

func (m *MockStore) ListAttendance(student string) ([]models.AttendanceRecord, error) {
	args := m.Called(student)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.AttendanceRecord), args.Error(1)
}

func (m *MockStore) GetProfile(student string) (*models.Profile, error) {
	args := m.Called(student)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Profile), args.Error(1)
}

func (m *MockStore) UpsertProfile(profile models.Profile) error {
	return m.Called(profile).Error(0)
}

func (m *MockStore) ListStudents() ([]string, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

// ExpectSnapshot primes the four reads a snapshot load performs.
func (m *MockStore) ExpectSnapshot(student string, profile *models.Profile, subjects []models.Subject, activities []models.Activity, attendance []models.AttendanceRecord) {
	m.On("GetProfile", student).Return(profile, nil)
	m.On("ListSubjects", student).Return(subjects, nil)
	m.On("ListActivities", student).Return(activities, nil)
	m.On("ListAttendance", student).Return(attendance, nil)
}
