package controllers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"github.com/yigit/lmsadmin/internal/app/controllers"
	"github.com/yigit/lmsadmin/internal/app/models"
	"github.com/yigit/lmsadmin/internal/app/models/dto"
	"github.com/yigit/lmsadmin/internal/app/routes"
	"github.com/yigit/lmsadmin/internal/app/services"
	"github.com/yigit/lmsadmin/internal/middleware"
	"github.com/yigit/lmsadmin/internal/pkg/apperrors"
	"github.com/yigit/lmsadmin/internal/pkg/auth"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// roleAuthorizer trusts the role carried by the principal
type roleAuthorizer struct{}

func (roleAuthorizer) Authorize(_ context.Context, p auth.Principal, roles ...models.RoleType) error {
	if !p.HasRole(roles...) {
		return apperrors.ErrPermissionDenied
	}
	return nil
}

// stubCourseService implements services.CourseService with overridable funcs
type stubCourseService struct {
	add    func(name string) (*models.Course, error)
	list   func() ([]*models.Course, error)
	update func(id int64, name string) (*models.Course, error)
	del    func(id int64) (*models.Course, error)
}

func (s *stubCourseService) AddCourse(_ context.Context, name string) (*models.Course, error) {
	return s.add(name)
}
func (s *stubCourseService) ListCourses(context.Context) ([]*models.Course, error) { return s.list() }
func (s *stubCourseService) UpdateCourse(_ context.Context, id int64, name string) (*models.Course, error) {
	return s.update(id, name)
}
func (s *stubCourseService) DeleteCourse(_ context.Context, id int64) (*models.Course, error) {
	return s.del(id)
}

type stubMentorService struct {
	add    func(mentorID int64, courseIDs []int64) (*models.Mentor, error)
	remove func(mentorID, courseID int64) (*models.Course, error)
	list   func() ([]*models.Mentor, error)
	detail func(mentorID int64) (*models.Mentor, error)
}

func (s *stubMentorService) AddCoursesToMentor(_ context.Context, mentorID int64, courseIDs []int64) (*models.Mentor, error) {
	return s.add(mentorID, courseIDs)
}
func (s *stubMentorService) RemoveCourseFromMentor(_ context.Context, mentorID, courseID int64) (*models.Course, error) {
	return s.remove(mentorID, courseID)
}
func (s *stubMentorService) ListMentors(context.Context) ([]*models.Mentor, error) { return s.list() }
func (s *stubMentorService) GetMentorDetail(_ context.Context, mentorID int64) (*models.Mentor, error) {
	return s.detail(mentorID)
}

type stubMappingService struct {
	list   func() ([]*models.StudentCourseMentorView, error)
	create func(actorID int64, req *dto.StudentCourseMentorRequest) (*models.StudentCourseMentor, error)
	update func(actorID, recordID int64, req *dto.StudentCourseMentorUpdateRequest) (*models.StudentCourseMentor, error)
}

func (s *stubMappingService) ListMappings(context.Context) ([]*models.StudentCourseMentorView, error) {
	return s.list()
}
func (s *stubMappingService) CreateMapping(_ context.Context, actorID int64, req *dto.StudentCourseMentorRequest) (*models.StudentCourseMentor, error) {
	return s.create(actorID, req)
}
func (s *stubMappingService) UpdateMapping(_ context.Context, actorID, recordID int64, req *dto.StudentCourseMentorUpdateRequest) (*models.StudentCourseMentor, error) {
	return s.update(actorID, recordID, req)
}

// stubUserRepo backs the real AuthService
type stubUserRepo struct {
	users map[string]*models.User
}

func (r *stubUserRepo) GetByID(_ context.Context, id int64) (*models.User, error) {
	for _, u := range r.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, apperrors.ErrUserNotFound
}

func (r *stubUserRepo) GetByEmail(_ context.Context, email string) (*models.User, error) {
	if u, ok := r.users[email]; ok {
		return u, nil
	}
	return nil, apperrors.ErrUserNotFound
}

func (r *stubUserRepo) CreateWithProfile(_ context.Context, u *models.User) (int64, error) {
	if _, ok := r.users[u.Email]; ok {
		return 0, apperrors.ErrEmailAlreadyExists
	}
	u.ID = int64(len(r.users) + 100)
	r.users[u.Email] = u
	if u.RoleType == models.RoleAdmin {
		return 0, nil
	}
	return u.ID + 1000, nil
}

func (r *stubUserRepo) UpdateLastLogin(context.Context, int64) error { return nil }

type testServer struct {
	router   *gin.Engine
	jwt      *auth.JWTService
	courses  *stubCourseService
	mentors  *stubMentorService
	mappings *stubMappingService
	users    *stubUserRepo
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	jwtService := auth.NewJWTService(auth.JWTConfig{SecretKey: "router-test-secret", AccessTokenExp: time.Hour, TokenIssuer: "lmsadmin"})
	sessions := auth.NewSessionManager(auth.SessionConfig{Name: "lms_session", Secret: "0123456789abcdef0123456789abcdef", MaxAge: 3600})
	revocation := auth.NewMemoryRevocationStore()

	hashed, err := auth.HashPasswordWithCost("admin-pass-1", 4)
	require.NoError(t, err)
	users := &stubUserRepo{users: map[string]*models.User{
		"admin@lms.test": {ID: 1, Email: "admin@lms.test", Password: hashed, FirstName: "Ada", LastName: "Admin", RoleType: models.RoleAdmin, IsActive: true},
	}}

	ts := &testServer{
		router:   gin.New(),
		jwt:      jwtService,
		courses:  &stubCourseService{},
		mentors:  &stubMentorService{},
		mappings: &stubMappingService{},
		users:    users,
	}

	authService := services.NewAuthService(users, jwtService, revocation, zerolog.Nop())
	authMiddleware := middleware.NewAuthMiddleware(jwtService, sessions, revocation, roleAuthorizer{})
	routes.SetupRouter(ts.router, routes.Controllers{
		Auth:                controllers.NewAuthController(authService, sessions, zerolog.Nop()),
		Course:              controllers.NewCourseController(ts.courses),
		Mentor:              controllers.NewMentorController(ts.mentors),
		StudentCourseMentor: controllers.NewStudentCourseMentorController(ts.mappings),
	}, authMiddleware, true)
	return ts
}

func (ts *testServer) token(t *testing.T, id int64, role models.RoleType) string {
	t.Helper()
	token, _, err := ts.jwt.GenerateAccessToken(&models.User{ID: id, Email: "caller@lms.test", RoleType: role})
	require.NoError(t, err)
	return token
}

func (ts *testServer) do(method, path, token string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	ts.router.ServeHTTP(rec, req)
	return rec
}

// decode returns the value of the "response" field
func decode(t *testing.T, rec *httptest.ResponseRecorder) interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body), rec.Body.String())
	require.Len(t, body, 1, rec.Body.String())
	resp, ok := body["response"]
	require.True(t, ok, rec.Body.String())
	return resp
}
