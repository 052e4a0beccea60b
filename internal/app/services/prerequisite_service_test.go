package services

import (
	"context"
	"errors"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lucasferr/cursada/internal/app/models"
	"github.com/lucasferr/cursada/internal/pkg/apperrors"
)

type edge struct {
	courseID, requiredCourseID int64
}

// fakePrereqStore is an in-memory PrerequisiteStore.
type fakePrereqStore struct {
	edges   map[edge]bool
	courses map[int64]*models.Course
	failErr error
}

func newFakePrereqStore(courses map[int64]*models.Course) *fakePrereqStore {
	return &fakePrereqStore{edges: map[edge]bool{}, courses: courses}
}

func (f *fakePrereqStore) Insert(_ context.Context, courseID, requiredCourseID int64) (bool, error) {
	if f.failErr != nil {
		return false, f.failErr
	}
	e := edge{courseID, requiredCourseID}
	if f.edges[e] {
		return true, nil
	}
	f.edges[e] = true
	return false, nil
}

func (f *fakePrereqStore) Delete(_ context.Context, courseID, requiredCourseID int64) (bool, error) {
	if f.failErr != nil {
		return false, f.failErr
	}
	e := edge{courseID, requiredCourseID}
	if !f.edges[e] {
		return false, nil
	}
	delete(f.edges, e)
	return true, nil
}

func (f *fakePrereqStore) RequiredFor(_ context.Context, courseID int64) ([]*models.Course, error) {
	if f.failErr != nil {
		return nil, f.failErr
	}
	var result []*models.Course
	for e := range f.edges {
		if e.courseID == courseID {
			result = append(result, f.courses[e.requiredCourseID])
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result, nil
}

func (f *fakePrereqStore) RequiredIDs(_ context.Context, courseID int64) ([]int64, error) {
	if f.failErr != nil {
		return nil, f.failErr
	}
	var ids []int64
	for e := range f.edges {
		if e.courseID == courseID {
			ids = append(ids, e.requiredCourseID)
		}
	}
	return ids, nil
}

func (f *fakePrereqStore) Requiring(_ context.Context, courseID int64) ([]*models.Course, error) {
	var result []*models.Course
	for e := range f.edges {
		if e.requiredCourseID == courseID {
			result = append(result, f.courses[e.courseID])
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result, nil
}

func (f *fakePrereqStore) CoursesWithPrerequisites(_ context.Context) ([]*models.Course, error) {
	seen := map[int64]bool{}
	var result []*models.Course
	for e := range f.edges {
		if !seen[e.courseID] {
			seen[e.courseID] = true
			result = append(result, f.courses[e.courseID])
		}
	}
	return result, nil
}

// fakePassingStore records grades per (user, course) and applies the
// threshold the same way the SQL does: ungraded never passes.
type fakePassingStore struct {
	grades map[edge]*float64
}

func newFakePassingStore() *fakePassingStore {
	return &fakePassingStore{grades: map[edge]*float64{}}
}

func (f *fakePassingStore) setGrade(userID, courseID int64, grade float64) {
	f.grades[edge{userID, courseID}] = &grade
}

func (f *fakePassingStore) HasPassed(_ context.Context, userID, courseID int64, threshold float64) (bool, error) {
	grade, ok := f.grades[edge{userID, courseID}]
	if !ok || grade == nil {
		return false, nil
	}
	return *grade >= threshold, nil
}

type fakeCourseGetter struct {
	courses map[int64]*models.Course
}

func (f *fakeCourseGetter) GetByID(_ context.Context, id int64) (*models.Course, error) {
	course, ok := f.courses[id]
	if !ok {
		return nil, apperrors.ErrCourseNotFound
	}
	return course, nil
}

func testCourses() map[int64]*models.Course {
	return map[int64]*models.Course{
		1: {ID: 1, Name: "Algebra I", Published: true},
		2: {ID: 2, Name: "Algebra II", Published: true},
		3: {ID: 3, Name: "Calculus", Published: true},
		4: {ID: 4, Name: "Topology", Published: false},
	}
}

func newTestPrereqService(courses map[int64]*models.Course) (PrerequisiteService, *fakePrereqStore, *fakePassingStore) {
	store := newFakePrereqStore(courses)
	passing := newFakePassingStore()
	svc := NewPrerequisiteService(store, passing, &fakeCourseGetter{courses: courses}, 5.5)
	return svc, store, passing
}

func TestAddPrerequisite(t *testing.T) {
	ctx := context.Background()

	t.Run("creates a new edge", func(t *testing.T) {
		svc, store, _ := newTestPrereqService(testCourses())

		alreadyExisted, err := svc.AddPrerequisite(ctx, 2, 1)

		require.NoError(t, err)
		assert.False(t, alreadyExisted)
		assert.True(t, store.edges[edge{2, 1}])
	})

	t.Run("duplicate edge succeeds idempotently", func(t *testing.T) {
		svc, store, _ := newTestPrereqService(testCourses())

		_, err := svc.AddPrerequisite(ctx, 2, 1)
		require.NoError(t, err)

		alreadyExisted, err := svc.AddPrerequisite(ctx, 2, 1)

		require.NoError(t, err)
		assert.True(t, alreadyExisted)
		assert.Len(t, store.edges, 1)
	})

	t.Run("rejects self edge", func(t *testing.T) {
		svc, store, _ := newTestPrereqService(testCourses())

		_, err := svc.AddPrerequisite(ctx, 1, 1)

		assert.ErrorIs(t, err, apperrors.ErrSelfPrerequisite)
		assert.Empty(t, store.edges)
	})

	t.Run("rejects unknown course", func(t *testing.T) {
		svc, _, _ := newTestPrereqService(testCourses())

		_, err := svc.AddPrerequisite(ctx, 99, 1)
		assert.ErrorIs(t, err, apperrors.ErrCourseNotFound)

		_, err = svc.AddPrerequisite(ctx, 1, 99)
		assert.ErrorIs(t, err, apperrors.ErrCourseNotFound)
	})

	t.Run("rejects two-node cycle", func(t *testing.T) {
		svc, _, _ := newTestPrereqService(testCourses())

		_, err := svc.AddPrerequisite(ctx, 2, 1)
		require.NoError(t, err)

		_, err = svc.AddPrerequisite(ctx, 1, 2)
		assert.ErrorIs(t, err, apperrors.ErrPrerequisiteCycle)
	})

	t.Run("rejects transitive cycle", func(t *testing.T) {
		svc, _, _ := newTestPrereqService(testCourses())

		_, err := svc.AddPrerequisite(ctx, 2, 1)
		require.NoError(t, err)
		_, err = svc.AddPrerequisite(ctx, 3, 2)
		require.NoError(t, err)

		// 1 -> 3 would close 1 -> 3 -> 2 -> 1
		_, err = svc.AddPrerequisite(ctx, 1, 3)
		assert.ErrorIs(t, err, apperrors.ErrPrerequisiteCycle)
	})

	t.Run("wraps store failures", func(t *testing.T) {
		svc, store, _ := newTestPrereqService(testCourses())
		store.failErr = errors.New("connection reset")

		_, err := svc.AddPrerequisite(ctx, 2, 1)

		assert.ErrorIs(t, err, apperrors.ErrStorageUnavailable)
	})
}

func TestRemovePrerequisite(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestPrereqService(testCourses())

	_, err := svc.AddPrerequisite(ctx, 2, 1)
	require.NoError(t, err)

	removed, err := svc.RemovePrerequisite(ctx, 2, 1)
	require.NoError(t, err)
	assert.True(t, removed)

	removed, err = svc.RemovePrerequisite(ctx, 2, 1)
	require.NoError(t, err)
	assert.False(t, removed)
}

func TestUnmetPrerequisites(t *testing.T) {
	ctx := context.Background()
	const studentID = int64(10)

	setup := func(t *testing.T) (PrerequisiteService, *fakePassingStore) {
		svc, _, passing := newTestPrereqService(testCourses())
		_, err := svc.AddPrerequisite(ctx, 3, 1)
		require.NoError(t, err)
		_, err = svc.AddPrerequisite(ctx, 3, 2)
		require.NoError(t, err)
		return svc, passing
	}

	t.Run("no prerequisites means empty result", func(t *testing.T) {
		svc, _, _ := newTestPrereqService(testCourses())

		missing, err := svc.UnmetPrerequisites(ctx, studentID, 1)

		require.NoError(t, err)
		assert.Empty(t, missing)
	})

	t.Run("reports every unpassed requirement", func(t *testing.T) {
		svc, _ := setup(t)

		missing, err := svc.UnmetPrerequisites(ctx, studentID, 3)

		require.NoError(t, err)
		assert.Equal(t, []string{"Algebra I", "Algebra II"}, missing)
	})

	t.Run("passing one requirement removes it", func(t *testing.T) {
		svc, passing := setup(t)
		passing.setGrade(studentID, 1, 8.0)

		missing, err := svc.UnmetPrerequisites(ctx, studentID, 3)

		require.NoError(t, err)
		assert.Equal(t, []string{"Algebra II"}, missing)
	})

	t.Run("threshold is inclusive", func(t *testing.T) {
		svc, passing := setup(t)
		passing.setGrade(studentID, 1, 5.5)
		passing.setGrade(studentID, 2, 5.49)

		missing, err := svc.UnmetPrerequisites(ctx, studentID, 3)

		require.NoError(t, err)
		assert.Equal(t, []string{"Algebra II"}, missing)
	})

	t.Run("enrolled but ungraded does not pass", func(t *testing.T) {
		svc, passing := setup(t)
		passing.grades[edge{studentID, 1}] = nil
		passing.setGrade(studentID, 2, 9.0)

		missing, err := svc.UnmetPrerequisites(ctx, studentID, 3)

		require.NoError(t, err)
		assert.Equal(t, []string{"Algebra I"}, missing)
	})
}

func TestCoursesRequiringThis(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestPrereqService(testCourses())

	_, err := svc.AddPrerequisite(ctx, 2, 1)
	require.NoError(t, err)
	_, err = svc.AddPrerequisite(ctx, 3, 1)
	require.NoError(t, err)

	requiring, err := svc.CoursesRequiringThis(ctx, 1)
	require.NoError(t, err)
	require.Len(t, requiring, 2)
	assert.Equal(t, "Algebra II", requiring[0].Name)
	assert.Equal(t, "Calculus", requiring[1].Name)
}
