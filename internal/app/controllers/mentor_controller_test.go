package controllers_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/lmsadmin/internal/app/models"
	"github.com/yigit/lmsadmin/internal/pkg/apperrors"
)

func mina() *models.Mentor {
	return &models.Mentor{
		ID:        7,
		UserID:    70,
		CourseIDs: []int64{1, 2},
		User:      &models.User{ID: 70, Email: "mina@lms.test", FirstName: "Mina", LastName: "Mentor", IsActive: true},
	}
}

func TestAddCourseToMentor_Endpoint(t *testing.T) {
	ts := newTestServer(t)
	admin := ts.token(t, 1, models.RoleAdmin)
	var gotIDs []int64
	ts.mentors.add = func(mentorID int64, courseIDs []int64) (*models.Mentor, error) {
		if mentorID != 7 {
			return nil, apperrors.NewNotFoundError(apperrors.ErrMentorNotFound, "Mentor id does not exist")
		}
		gotIDs = courseIDs
		return mina(), nil
	}

	rec := ts.do(http.MethodPut, "/course-mentor/7/", admin, map[string]interface{}{"course": []int64{3, 4}})
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "New course added to Mina Mentor's course list", decode(t, rec))
	assert.Equal(t, []int64{3, 4}, gotIDs)

	rec = ts.do(http.MethodPut, "/course-mentor/8/", admin, map[string]interface{}{"course": []int64{3}})
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Mentor id does not exist", decode(t, rec))

	rec = ts.do(http.MethodPut, "/course-mentor/7/", admin, map[string]interface{}{"course": []int64{}})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, decode(t, rec), "course")

	rec = ts.do(http.MethodPut, "/course-mentor/7/", admin, map[string]interface{}{"course": []int64{3, 0}})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, decode(t, rec), "course[1]")
}

func TestAddCourseToMentor_Duplicate(t *testing.T) {
	ts := newTestServer(t)
	ts.mentors.add = func(int64, []int64) (*models.Mentor, error) {
		return nil, apperrors.NewDuplicateError(apperrors.ErrCourseAlreadyAssigned, "This course is already added")
	}

	rec := ts.do(http.MethodPut, "/course-mentor/7/", ts.token(t, 1, models.RoleAdmin), map[string]interface{}{"course": []int64{1}})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "This course is already added", decode(t, rec))
}

func TestRemoveCourseFromMentor_Endpoint(t *testing.T) {
	ts := newTestServer(t)
	admin := ts.token(t, 1, models.RoleAdmin)
	ts.mentors.remove = func(mentorID, courseID int64) (*models.Course, error) {
		if courseID == 9 {
			return nil, apperrors.NewNotFoundError(apperrors.ErrCourseNotAssigned, "Geometry is not in Mina Mentor's course list")
		}
		return &models.Course{ID: courseID, CourseName: "Algebra"}, nil
	}

	rec := ts.do(http.MethodDelete, "/course-mentor/7/1/", admin, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Algebra is removed", decode(t, rec))

	rec = ts.do(http.MethodDelete, "/course-mentor/7/9/", admin, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Geometry is not in Mina Mentor's course list", decode(t, rec))
}

func TestListMentors_Endpoint(t *testing.T) {
	ts := newTestServer(t)
	admin := ts.token(t, 1, models.RoleAdmin)
	empty := true
	ts.mentors.list = func() ([]*models.Mentor, error) {
		if empty {
			return nil, apperrors.NewNotFoundError(apperrors.ErrMentorNotFound, "No records found")
		}
		return []*models.Mentor{mina()}, nil
	}

	rec := ts.do(http.MethodGet, "/all-mentors/", admin, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "No records found", decode(t, rec))

	empty = false
	rec = ts.do(http.MethodGet, "/all-mentors/", admin, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []interface{}{
		map[string]interface{}{"id": float64(7), "mentor": float64(70), "course": []interface{}{float64(1), float64(2)}},
	}, decode(t, rec))
}

func TestGetMentorDetail_Endpoint(t *testing.T) {
	ts := newTestServer(t)
	admin := ts.token(t, 1, models.RoleAdmin)
	ts.mentors.detail = func(mentorID int64) (*models.Mentor, error) {
		if mentorID != 7 {
			return nil, apperrors.NewNotFoundError(apperrors.ErrMentorNotFound, "Mentor with id 8 does not exist")
		}
		return mina(), nil
	}

	rec := ts.do(http.MethodGet, "/mentor-details/7/", admin, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	detail, ok := decode(t, rec).(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, float64(7), detail["id"])
	assert.Equal(t, float64(70), detail["mentor"])
	assert.Equal(t, "mina@lms.test", detail["email"])
	assert.Equal(t, "Mina Mentor", detail["full_name"])

	rec = ts.do(http.MethodGet, "/mentor-details/8/", admin, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Mentor with id 8 does not exist", decode(t, rec))
}
