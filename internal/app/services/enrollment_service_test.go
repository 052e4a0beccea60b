package services

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lucasferr/cursada/internal/app/models"
	"github.com/lucasferr/cursada/internal/pkg/apperrors"
)

// fakeEnrollmentStore is an in-memory EnrollmentStore with the same
// at-most-once behavior as the unique constraint.
type fakeEnrollmentStore struct {
	mu      sync.Mutex
	nextID  int64
	rows    map[edge]*models.Enrollment
	failErr error
}

func newFakeEnrollmentStore() *fakeEnrollmentStore {
	return &fakeEnrollmentStore{nextID: 1, rows: map[edge]*models.Enrollment{}}
}

func (f *fakeEnrollmentStore) Create(_ context.Context, userID, courseID int64, enrolledAt time.Time) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failErr != nil {
		return 0, f.failErr
	}
	key := edge{userID, courseID}
	if _, ok := f.rows[key]; ok {
		return 0, apperrors.ErrAlreadyEnrolled
	}
	id := f.nextID
	f.nextID++
	f.rows[key] = &models.Enrollment{ID: id, UserID: userID, CourseID: courseID, EnrolledAt: enrolledAt}
	return id, nil
}

func (f *fakeEnrollmentStore) Exists(_ context.Context, userID, courseID int64) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failErr != nil {
		return false, f.failErr
	}
	_, ok := f.rows[edge{userID, courseID}]
	return ok, nil
}

func (f *fakeEnrollmentStore) UpdateGrade(_ context.Context, userID, courseID int64, grade *float64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	row, ok := f.rows[edge{userID, courseID}]
	if !ok {
		return apperrors.ErrNotEnrolled
	}
	row.Grade = grade
	return nil
}

func (f *fakeEnrollmentStore) GradeOf(_ context.Context, userID, courseID int64) (*float64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	row, ok := f.rows[edge{userID, courseID}]
	if !ok {
		return nil, apperrors.ErrNotEnrolled
	}
	return row.Grade, nil
}

func (f *fakeEnrollmentStore) Delete(_ context.Context, id int64) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for key, row := range f.rows {
		if row.ID == id {
			delete(f.rows, key)
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeEnrollmentStore) ListWithDetail(_ context.Context) ([]*models.Enrollment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var result []*models.Enrollment
	for _, row := range f.rows {
		result = append(result, row)
	}
	return result, nil
}

func (f *fakeEnrollmentStore) StudentsOfCourse(_ context.Context, courseID int64) ([]*models.Enrollment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var result []*models.Enrollment
	for _, row := range f.rows {
		if row.CourseID == courseID {
			result = append(result, row)
		}
	}
	return result, nil
}

func (f *fakeEnrollmentStore) CoursesOfStudent(_ context.Context, userID int64) ([]*models.Enrollment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var result []*models.Enrollment
	for _, row := range f.rows {
		if row.UserID == userID {
			result = append(result, row)
		}
	}
	return result, nil
}

// staleExistsStore reports no enrollment regardless of the underlying rows,
// mimicking a read that races a concurrent insert.
type staleExistsStore struct {
	*fakeEnrollmentStore
}

func (s *staleExistsStore) Exists(context.Context, int64, int64) (bool, error) {
	return false, nil
}

type fakeInstructorChecker struct {
	teaching map[edge]bool
}

func (f *fakeInstructorChecker) IsInstructorOf(_ context.Context, userID, courseID int64) (bool, error) {
	return f.teaching[edge{userID, courseID}], nil
}

type fakeUserGetter struct {
	users map[int64]*models.User
}

func (f *fakeUserGetter) GetByID(_ context.Context, id int64) (*models.User, error) {
	user, ok := f.users[id]
	if !ok {
		return nil, apperrors.ErrUserNotFound
	}
	return user, nil
}

type fakePrereqChecker struct {
	missing map[int64][]string
	err     error
}

func (f *fakePrereqChecker) UnmetPrerequisites(_ context.Context, _, courseID int64) ([]string, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.missing[courseID], nil
}

// fakeEmailService records sends and signals each confirmation so tests can
// wait for the async goroutine.
type fakeEmailService struct {
	mu            sync.Mutex
	confirmations []string
	sent          chan struct{}
}

func newFakeEmailService() *fakeEmailService {
	return &fakeEmailService{sent: make(chan struct{}, 8)}
}

func (f *fakeEmailService) SendWelcomeEmail(toEmail, toName string) error {
	return nil
}

func (f *fakeEmailService) SendEnrollmentConfirmation(toEmail, toName, courseName, courseURL string) error {
	f.mu.Lock()
	f.confirmations = append(f.confirmations, toEmail)
	f.mu.Unlock()
	f.sent <- struct{}{}
	return nil
}

func (f *fakeEmailService) waitForConfirmation(t *testing.T) {
	t.Helper()
	select {
	case <-f.sent:
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for confirmation email")
	}
}

type enrollmentFixture struct {
	svc         EnrollmentService
	store       *fakeEnrollmentStore
	prereqs     *fakePrereqChecker
	emails      *fakeEmailService
	instructors *fakeInstructorChecker
}

func newEnrollmentFixture() *enrollmentFixture {
	store := newFakeEnrollmentStore()
	prereqs := &fakePrereqChecker{missing: map[int64][]string{}}
	emails := newFakeEmailService()
	instructors := &fakeInstructorChecker{teaching: map[edge]bool{}}
	users := &fakeUserGetter{users: map[int64]*models.User{
		10: {ID: 10, Email: "ana@example.com", FirstName: "Ana", LastName: "Suarez", RoleType: models.RoleStudent},
		20: {ID: 20, Email: "prof@example.com", FirstName: "Pablo", LastName: "Ruiz", RoleType: models.RoleInstructor},
	}}

	svc := NewEnrollmentService(
		store,
		&fakeCourseGetter{courses: testCourses()},
		users,
		instructors,
		prereqs,
		emails,
		"http://localhost:8080",
		func() time.Time { return time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC) },
	)

	return &enrollmentFixture{svc: svc, store: store, prereqs: prereqs, emails: emails, instructors: instructors}
}

func student(id int64) models.CallerContext {
	return models.CallerContext{UserID: id, Role: models.RoleStudent}
}

func TestEnroll(t *testing.T) {
	ctx := context.Background()

	t.Run("enrolls and sends confirmation", func(t *testing.T) {
		fx := newEnrollmentFixture()

		id, err := fx.svc.Enroll(ctx, student(10), 1)

		require.NoError(t, err)
		assert.NotZero(t, id)
		fx.emails.waitForConfirmation(t)
		assert.Equal(t, []string{"ana@example.com"}, fx.emails.confirmations)
	})

	t.Run("unknown course", func(t *testing.T) {
		fx := newEnrollmentFixture()

		_, err := fx.svc.Enroll(ctx, student(10), 99)

		assert.ErrorIs(t, err, apperrors.ErrCourseNotFound)
	})

	t.Run("unpublished course", func(t *testing.T) {
		fx := newEnrollmentFixture()

		_, err := fx.svc.Enroll(ctx, student(10), 4)

		assert.ErrorIs(t, err, apperrors.ErrCourseNotPublished)
	})

	t.Run("double enrollment", func(t *testing.T) {
		fx := newEnrollmentFixture()

		_, err := fx.svc.Enroll(ctx, student(10), 1)
		require.NoError(t, err)

		_, err = fx.svc.Enroll(ctx, student(10), 1)
		assert.ErrorIs(t, err, apperrors.ErrAlreadyEnrolled)
	})

	t.Run("insert conflict surfaces as already enrolled when the pre-check misses", func(t *testing.T) {
		// A concurrent enrollment can land between the existence check and
		// the insert; the unique constraint is the authoritative guard.
		store := newFakeEnrollmentStore()
		_, err := store.Create(ctx, 10, 1, time.Now())
		require.NoError(t, err)

		svc := NewEnrollmentService(
			&staleExistsStore{fakeEnrollmentStore: store},
			&fakeCourseGetter{courses: testCourses()},
			&fakeUserGetter{users: map[int64]*models.User{
				10: {ID: 10, Email: "ana@example.com", FirstName: "Ana", LastName: "Suarez", RoleType: models.RoleStudent},
			}},
			&fakeInstructorChecker{teaching: map[edge]bool{}},
			&fakePrereqChecker{missing: map[int64][]string{}},
			newFakeEmailService(),
			"http://localhost:8080",
			time.Now,
		)

		_, err = svc.Enroll(ctx, student(10), 1)
		assert.ErrorIs(t, err, apperrors.ErrAlreadyEnrolled)
		assert.Len(t, store.rows, 1)
	})

	t.Run("instructor of the course cannot enroll", func(t *testing.T) {
		fx := newEnrollmentFixture()
		fx.instructors.teaching[edge{20, 1}] = true

		_, err := fx.svc.Enroll(ctx, models.CallerContext{UserID: 20, Role: models.RoleInstructor}, 1)

		assert.ErrorIs(t, err, apperrors.ErrAlreadyInstructor)
	})

	t.Run("admin cannot enroll", func(t *testing.T) {
		fx := newEnrollmentFixture()

		_, err := fx.svc.Enroll(ctx, models.CallerContext{UserID: 1, Role: models.RoleAdmin}, 1)

		assert.ErrorIs(t, err, apperrors.ErrAdminCannotEnroll)
	})

	t.Run("unmet prerequisites list every missing course", func(t *testing.T) {
		fx := newEnrollmentFixture()
		fx.prereqs.missing[3] = []string{"Algebra I", "Algebra II"}

		_, err := fx.svc.Enroll(ctx, student(10), 3)

		require.ErrorIs(t, err, apperrors.ErrPrerequisitesUnmet)
		var unmet *apperrors.UnmetPrerequisitesError
		require.ErrorAs(t, err, &unmet)
		assert.Equal(t, []string{"Algebra I", "Algebra II"}, unmet.Missing)
		assert.Empty(t, fx.store.rows)
	})

	t.Run("prerequisite check failure blocks enrollment", func(t *testing.T) {
		fx := newEnrollmentFixture()
		fx.prereqs.err = storageFailure(errors.New("connection reset"))

		_, err := fx.svc.Enroll(ctx, student(10), 1)

		assert.ErrorIs(t, err, apperrors.ErrStorageUnavailable)
		assert.Empty(t, fx.store.rows)
	})
}

func TestUnenroll(t *testing.T) {
	ctx := context.Background()
	fx := newEnrollmentFixture()

	id, err := fx.svc.Enroll(ctx, student(10), 1)
	require.NoError(t, err)

	require.NoError(t, fx.svc.Unenroll(ctx, id))
	assert.Empty(t, fx.store.rows)

	err = fx.svc.Unenroll(ctx, id)
	assert.ErrorIs(t, err, apperrors.ErrNotEnrolled)
}

func TestRecordGrade(t *testing.T) {
	ctx := context.Background()

	t.Run("records and reads back a grade", func(t *testing.T) {
		fx := newEnrollmentFixture()
		_, err := fx.svc.Enroll(ctx, student(10), 1)
		require.NoError(t, err)

		grade := 7.25
		require.NoError(t, fx.svc.RecordGrade(ctx, 10, 1, &grade))

		got, err := fx.svc.GradeOf(ctx, 10, 1)
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, 7.25, *got)
	})

	t.Run("clears a grade", func(t *testing.T) {
		fx := newEnrollmentFixture()
		_, err := fx.svc.Enroll(ctx, student(10), 1)
		require.NoError(t, err)

		grade := 4.0
		require.NoError(t, fx.svc.RecordGrade(ctx, 10, 1, &grade))
		require.NoError(t, fx.svc.RecordGrade(ctx, 10, 1, nil))

		got, err := fx.svc.GradeOf(ctx, 10, 1)
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("overwrites an existing grade", func(t *testing.T) {
		fx := newEnrollmentFixture()
		_, err := fx.svc.Enroll(ctx, student(10), 1)
		require.NoError(t, err)

		first, second := 3.0, 8.5
		require.NoError(t, fx.svc.RecordGrade(ctx, 10, 1, &first))
		require.NoError(t, fx.svc.RecordGrade(ctx, 10, 1, &second))

		got, err := fx.svc.GradeOf(ctx, 10, 1)
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, 8.5, *got)
	})

	t.Run("grading a non-enrollment fails", func(t *testing.T) {
		fx := newEnrollmentFixture()

		grade := 6.0
		err := fx.svc.RecordGrade(ctx, 10, 1, &grade)
		assert.ErrorIs(t, err, apperrors.ErrNotEnrolled)

		_, err = fx.svc.GradeOf(ctx, 10, 1)
		assert.ErrorIs(t, err, apperrors.ErrNotEnrolled)
	})
}
