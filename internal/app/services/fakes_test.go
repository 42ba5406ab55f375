package services

import (
	"context"
	"errors"
	"slices"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/yigit/lmsadmin/internal/app/models"
	"github.com/yigit/lmsadmin/internal/pkg/apperrors"
)

// memDB is an in-memory stand-in for the relational schema, shared by the fake repositories
type memDB struct {
	mu       sync.Mutex
	nextID   int64
	users    map[int64]*models.User
	courses  map[int64]*models.Course
	mentors  map[int64]*models.Mentor
	students map[int64]*models.Student
	mappings map[int64]*models.StudentCourseMentor

	// failAssign forces AssignCourses to fail with a non domain error
	failAssign error
}

func newMemDB() *memDB {
	return &memDB{
		users:    map[int64]*models.User{},
		courses:  map[int64]*models.Course{},
		mentors:  map[int64]*models.Mentor{},
		students: map[int64]*models.Student{},
		mappings: map[int64]*models.StudentCourseMentor{},
	}
}

func (db *memDB) id() int64 {
	db.nextID++
	return db.nextID
}

func (db *memDB) addUser(first, last string, role models.RoleType) *models.User {
	db.mu.Lock()
	defer db.mu.Unlock()
	u := &models.User{
		ID:        db.id(),
		Email:     strings.ToLower(first) + "@lms.test",
		FirstName: first,
		LastName:  last,
		RoleType:  role,
		IsActive:  true,
	}
	db.users[u.ID] = u
	return u
}

func (db *memDB) addMentor(first, last string) *models.Mentor {
	u := db.addUser(first, last, models.RoleMentor)
	db.mu.Lock()
	defer db.mu.Unlock()
	m := &models.Mentor{ID: db.id(), UserID: u.ID}
	db.mentors[m.ID] = m
	return m
}

func (db *memDB) addStudent(first, last string) *models.Student {
	u := db.addUser(first, last, models.RoleStudent)
	db.mu.Lock()
	defer db.mu.Unlock()
	s := &models.Student{ID: db.id(), UserID: u.ID}
	db.students[s.ID] = s
	return s
}

func (db *memDB) addCourse(name string) *models.Course {
	db.mu.Lock()
	defer db.mu.Unlock()
	c := &models.Course{ID: db.id(), CourseName: name}
	db.courses[c.ID] = c
	return c
}

func (db *memDB) bucket(mentorID int64) []int64 {
	db.mu.Lock()
	defer db.mu.Unlock()
	return append([]int64{}, db.mentors[mentorID].CourseIDs...)
}

// fakeCourseRepo implements repositories.ICourseRepository
type fakeCourseRepo struct{ db *memDB }

func (r *fakeCourseRepo) nameTaken(name string, except int64) bool {
	for _, c := range r.db.courses {
		if c.CourseName == name && c.ID != except {
			return true
		}
	}
	return false
}

func (r *fakeCourseRepo) Create(_ context.Context, name string) (*models.Course, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if r.nameTaken(name, 0) {
		return nil, apperrors.ErrCourseAlreadyExists
	}
	c := &models.Course{ID: r.db.id(), CourseName: name, CreatedAt: time.Now(), UpdatedAt: time.Now()}
	r.db.courses[c.ID] = c
	cp := *c
	return &cp, nil
}

func (r *fakeCourseRepo) GetByID(_ context.Context, id int64) (*models.Course, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	c, ok := r.db.courses[id]
	if !ok {
		return nil, apperrors.ErrCourseNotFound
	}
	cp := *c
	return &cp, nil
}

func (r *fakeCourseRepo) GetAll(_ context.Context) ([]*models.Course, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	out := []*models.Course{}
	for _, c := range r.db.courses {
		cp := *c
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *fakeCourseRepo) Update(_ context.Context, id int64, name string) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	c, ok := r.db.courses[id]
	if !ok {
		return apperrors.ErrCourseNotFound
	}
	if r.nameTaken(name, id) {
		return apperrors.ErrCourseAlreadyExists
	}
	c.CourseName = name
	return nil
}

func (r *fakeCourseRepo) Delete(_ context.Context, id int64) (*models.Course, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	c, ok := r.db.courses[id]
	if !ok {
		return nil, apperrors.ErrCourseNotFound
	}
	delete(r.db.courses, id)
	for _, m := range r.db.mentors {
		m.CourseIDs = removeID(m.CourseIDs, id)
	}
	for recID, rec := range r.db.mappings {
		if rec.CourseID == id {
			delete(r.db.mappings, recID)
		}
	}
	return c, nil
}

func removeID(ids []int64, id int64) []int64 {
	out := ids[:0]
	for _, v := range ids {
		if v != id {
			out = append(out, v)
		}
	}
	return out
}

// fakeMentorRepo implements repositories.IMentorRepository
type fakeMentorRepo struct{ db *memDB }

func (r *fakeMentorRepo) load(m *models.Mentor) *models.Mentor {
	cp := *m
	cp.CourseIDs = append([]int64{}, m.CourseIDs...)
	sort.Slice(cp.CourseIDs, func(i, j int) bool { return cp.CourseIDs[i] < cp.CourseIDs[j] })
	if u, ok := r.db.users[m.UserID]; ok {
		uc := *u
		cp.User = &uc
	}
	return &cp
}

func (r *fakeMentorRepo) GetByID(_ context.Context, id int64) (*models.Mentor, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	m, ok := r.db.mentors[id]
	if !ok {
		return nil, apperrors.ErrMentorNotFound
	}
	return r.load(m), nil
}

func (r *fakeMentorRepo) GetAll(_ context.Context) ([]*models.Mentor, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	out := []*models.Mentor{}
	for _, m := range r.db.mentors {
		out = append(out, r.load(m))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// AssignCourses applies the whole list or nothing, like the transactional repository
func (r *fakeMentorRepo) AssignCourses(_ context.Context, mentorID int64, courseIDs []int64) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if r.db.failAssign != nil {
		return r.db.failAssign
	}
	m, ok := r.db.mentors[mentorID]
	if !ok {
		return apperrors.ErrMentorNotFound
	}
	staged := append([]int64{}, m.CourseIDs...)
	for _, id := range courseIDs {
		if _, ok := r.db.courses[id]; !ok {
			return apperrors.ErrCourseNotFound
		}
		for _, have := range staged {
			if have == id {
				return apperrors.ErrCourseAlreadyAssigned
			}
		}
		staged = append(staged, id)
	}
	m.CourseIDs = staged
	return nil
}

func (r *fakeMentorRepo) RemoveCourse(_ context.Context, mentorID, courseID int64) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	m, ok := r.db.mentors[mentorID]
	if !ok || !slices.Contains(m.CourseIDs, courseID) {
		return apperrors.ErrCourseNotAssigned
	}
	m.CourseIDs = removeID(m.CourseIDs, courseID)
	return nil
}

func (r *fakeMentorRepo) HasCourse(_ context.Context, mentorID, courseID int64) (bool, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	m, ok := r.db.mentors[mentorID]
	return ok && slices.Contains(m.CourseIDs, courseID), nil
}

// fakeStudentRepo implements repositories.IStudentRepository
type fakeStudentRepo struct{ db *memDB }

func (r *fakeStudentRepo) GetByID(_ context.Context, id int64) (*models.Student, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	s, ok := r.db.students[id]
	if !ok {
		return nil, apperrors.ErrStudentNotFound
	}
	cp := *s
	return &cp, nil
}

// fakeMappingRepo implements repositories.IStudentCourseMentorRepository
type fakeMappingRepo struct{ db *memDB }

func (r *fakeMappingRepo) GetAll(_ context.Context) ([]*models.StudentCourseMentorView, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	out := []*models.StudentCourseMentorView{}
	for _, rec := range r.db.mappings {
		v := &models.StudentCourseMentorView{StudentCourseMentor: *rec}
		if s, ok := r.db.students[rec.StudentID]; ok {
			v.StudentName = r.db.users[s.UserID].FullName()
			v.StudentEmail = r.db.users[s.UserID].Email
		}
		if c, ok := r.db.courses[rec.CourseID]; ok {
			v.CourseName = c.CourseName
		}
		if m, ok := r.db.mentors[rec.MentorID]; ok {
			v.MentorName = r.db.users[m.UserID].FullName()
			v.MentorEmail = r.db.users[m.UserID].Email
		}
		out = append(out, v)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *fakeMappingRepo) GetByID(_ context.Context, id int64) (*models.StudentCourseMentor, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	rec, ok := r.db.mappings[id]
	if !ok {
		return nil, apperrors.ErrMappingNotFound
	}
	cp := *rec
	return &cp, nil
}

func (r *fakeMappingRepo) Create(_ context.Context, rec *models.StudentCourseMentor) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	rec.ID = r.db.id()
	rec.CreatedAt = time.Now()
	rec.UpdatedAt = rec.CreatedAt
	cp := *rec
	r.db.mappings[rec.ID] = &cp
	return nil
}

func (r *fakeMappingRepo) Update(_ context.Context, rec *models.StudentCourseMentor) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if _, ok := r.db.mappings[rec.ID]; !ok {
		return apperrors.ErrMappingNotFound
	}
	rec.UpdatedAt = time.Now()
	cp := *rec
	r.db.mappings[rec.ID] = &cp
	return nil
}

// fakeUserRepo implements repositories.IUserRepository
type fakeUserRepo struct {
	db         *memDB
	lastLogins []int64
}

func (r *fakeUserRepo) GetByID(_ context.Context, id int64) (*models.User, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	u, ok := r.db.users[id]
	if !ok {
		return nil, apperrors.ErrUserNotFound
	}
	cp := *u
	return &cp, nil
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*models.User, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	for _, u := range r.db.users {
		if strings.EqualFold(u.Email, email) {
			cp := *u
			return &cp, nil
		}
	}
	return nil, apperrors.ErrUserNotFound
}

func (r *fakeUserRepo) CreateWithProfile(_ context.Context, user *models.User) (int64, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	for _, u := range r.db.users {
		if strings.EqualFold(u.Email, user.Email) {
			return 0, apperrors.ErrEmailAlreadyExists
		}
	}
	user.ID = r.db.id()
	cp := *user
	r.db.users[user.ID] = &cp

	var profileID int64
	switch user.RoleType {
	case models.RoleMentor:
		profileID = r.db.id()
		r.db.mentors[profileID] = &models.Mentor{ID: profileID, UserID: user.ID}
	case models.RoleStudent:
		profileID = r.db.id()
		r.db.students[profileID] = &models.Student{ID: profileID, UserID: user.ID}
	}
	return profileID, nil
}

func (r *fakeUserRepo) UpdateLastLogin(_ context.Context, userID int64) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if _, ok := r.db.users[userID]; !ok {
		return errors.New("no such user")
	}
	r.lastLogins = append(r.lastLogins, userID)
	return nil
}
