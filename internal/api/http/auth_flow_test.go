package http_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	jwt "github.com/golang-jwt/jwt/v5"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	httptransport "github.com/spec-kit/shift-scheduler/internal/api/http"
	"github.com/spec-kit/shift-scheduler/internal/api/http/handlers"
	"github.com/spec-kit/shift-scheduler/internal/auth"
	"github.com/spec-kit/shift-scheduler/internal/config"
	"github.com/spec-kit/shift-scheduler/internal/domain"
	"github.com/spec-kit/shift-scheduler/internal/observability"
	"github.com/spec-kit/shift-scheduler/internal/persistence"
	"github.com/spec-kit/shift-scheduler/internal/service"
	"github.com/spec-kit/shift-scheduler/internal/view"
	apperrors "github.com/spec-kit/shift-scheduler/pkg/util"
)

type memUserRepo struct {
	mu     sync.Mutex
	users  map[string]*domain.User
	nextID int64
}

func (r *memUserRepo) Create(_ context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[user.Username]; ok {
		return apperrors.NewDuplicateUsername()
	}
	r.nextID++
	user.ID = r.nextID
	user.CreatedAt = time.Now()
	stored := *user
	r.users[user.Username] = &stored
	return nil
}

func (r *memUserRepo) GetByID(_ context.Context, id int64) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, user := range r.users {
		if user.ID == id {
			copied := *user
			return &copied, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *memUserRepo) GetByUsername(_ context.Context, username string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[username]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := *user
	return &copied, nil
}

type memEmployeeRepo struct {
	mu        sync.Mutex
	employees map[int64]*domain.Employee
	nextID    int64
}

func (r *memEmployeeRepo) Create(_ context.Context, employee *domain.Employee) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.employees == nil {
		r.employees = make(map[int64]*domain.Employee)
	}
	r.nextID++
	employee.ID = r.nextID
	stored := *employee
	r.employees[employee.ID] = &stored
	return nil
}

func (r *memEmployeeRepo) Update(_ context.Context, employee *domain.Employee) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.employees[employee.ID]; !ok {
		return pgx.ErrNoRows
	}
	stored := *employee
	r.employees[employee.ID] = &stored
	return nil
}

func (r *memEmployeeRepo) GetByID(_ context.Context, id int64) (*domain.Employee, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	employee, ok := r.employees[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := *employee
	return &copied, nil
}

func (r *memEmployeeRepo) List(_ context.Context) ([]domain.Employee, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.Employee
	for id := int64(1); id <= r.nextID; id++ {
		if employee, ok := r.employees[id]; ok {
			out = append(out, *employee)
		}
	}
	return out, nil
}

type memShiftRepo struct {
	mu     sync.Mutex
	shifts map[int64]*domain.Shift
	nextID int64
}

func (r *memShiftRepo) Create(_ context.Context, shift *domain.Shift) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.shifts == nil {
		r.shifts = make(map[int64]*domain.Shift)
	}
	r.nextID++
	shift.ID = r.nextID
	stored := *shift
	r.shifts[shift.ID] = &stored
	return nil
}

func (r *memShiftRepo) Update(_ context.Context, shift *domain.Shift) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.shifts[shift.ID]; !ok {
		return pgx.ErrNoRows
	}
	stored := *shift
	r.shifts[shift.ID] = &stored
	return nil
}

func (r *memShiftRepo) GetByID(_ context.Context, id int64) (*domain.Shift, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	shift, ok := r.shifts[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := *shift
	return &copied, nil
}

func (r *memShiftRepo) List(_ context.Context) ([]domain.Shift, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.Shift
	for id := int64(1); id <= r.nextID; id++ {
		if shift, ok := r.shifts[id]; ok {
			out = append(out, *shift)
		}
	}
	return out, nil
}

type memRotationRepo struct {
	mu        sync.Mutex
	rotations []domain.Rotation
	events    []domain.RotationEvent
	nextID    int64
}

func (r *memRotationRepo) Create(_ context.Context, rotation *domain.Rotation) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	rotation.ID = r.nextID
	r.rotations = append(r.rotations, *rotation)
	return nil
}

func (r *memRotationRepo) ListEvents(_ context.Context) ([]domain.RotationEvent, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]domain.RotationEvent{}, r.events...), nil
}

func newTestApp(t *testing.T, rotations *memRotationRepo) *fiber.App {
	t.Helper()

	views, err := view.New()
	require.NoError(t, err)

	cfg := config.Config{
		Auth: config.AuthConfig{
			JWTSecret:       "test-secret",
			TokenTTLMinutes: 60,
			BcryptCost:      bcrypt.MinCost,
		},
	}

	authService := service.NewAuthService(cfg, service.AuthDependencies{
		UserRepo: &memUserRepo{users: make(map[string]*domain.User)},
	})
	scheduleService := service.NewScheduleService(service.ScheduleDependencies{
		EmployeeRepo: &memEmployeeRepo{},
		ShiftRepo:    &memShiftRepo{},
		RotationRepo: rotations,
	})

	app := fiber.New()
	httptransport.RegisterMiddlewares(app, zap.NewNop(), observability.NewMetrics(), 0)
	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:    handlers.NewHealthHandler("test", "dev", &persistence.Postgres{}, &persistence.Redis{}),
		Auth:      handlers.NewAuthHandler(authService, views),
		Employees: handlers.NewEmployeesHandler(scheduleService, views),
		Shifts:    handlers.NewShiftsHandler(scheduleService, views),
		Rotations: handlers.NewRotationsHandler(scheduleService, views),
		Guard:     auth.NewGuard(authService.TokenManager()),
	})
	return app
}

func formRequest(method, path string, form url.Values) *http.Request {
	req := httptest.NewRequest(method, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

func readBody(t *testing.T, resp *http.Response) string {
	t.Helper()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return string(body)
}

func sessionCookie(resp *http.Response) *http.Cookie {
	for _, cookie := range resp.Cookies() {
		if cookie.Name == auth.CookieName {
			return cookie
		}
	}
	return nil
}

func TestAuthenticationFlow(t *testing.T) {
	app := newTestApp(t, &memRotationRepo{})

	// Register.
	resp, err := app.Test(formRequest(http.MethodPost, "/register", url.Values{
		"username": {"alice"}, "password": {"pw1"},
	}))
	require.NoError(t, err)
	assert.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, "/login", resp.Header.Get("Location"))

	// Duplicate registration conflicts regardless of password.
	resp, err = app.Test(formRequest(http.MethodPost, "/register", url.Values{
		"username": {"alice"}, "password": {"pw2"},
	}))
	require.NoError(t, err)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Equal(t, "User already exists", readBody(t, resp))

	// Login sets the token cookie and redirects to the protected page.
	resp, err = app.Test(formRequest(http.MethodPost, "/login", url.Values{
		"username": {"alice"}, "password": {"pw1"},
	}))
	require.NoError(t, err)
	assert.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, "/protected", resp.Header.Get("Location"))
	cookie := sessionCookie(resp)
	require.NotNil(t, cookie)
	require.NotEmpty(t, cookie.Value)

	// Protected page reflects the authenticated user id.
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.AddCookie(&http.Cookie{Name: auth.CookieName, Value: cookie.Value})
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, readBody(t, resp), "user 1")

	// Logout clears the cookie.
	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/logout", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, "/login", resp.Header.Get("Location"))
	cleared := sessionCookie(resp)
	require.NotNil(t, cleared)
	assert.True(t, cleared.Expires.Before(time.Now()), "logout must expire the cookie")

	// Without a cookie the protected page redirects to login.
	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/protected", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, "/login", resp.Header.Get("Location"))
}

func TestLoginFailuresAreUniform(t *testing.T) {
	app := newTestApp(t, &memRotationRepo{})

	resp, err := app.Test(formRequest(http.MethodPost, "/register", url.Values{
		"username": {"alice"}, "password": {"pw1"},
	}))
	require.NoError(t, err)
	require.Equal(t, http.StatusFound, resp.StatusCode)

	wrongPassword, err := app.Test(formRequest(http.MethodPost, "/login", url.Values{
		"username": {"alice"}, "password": {"wrong"},
	}))
	require.NoError(t, err)
	unknownUser, err := app.Test(formRequest(http.MethodPost, "/login", url.Values{
		"username": {"bob"}, "password": {"anything"},
	}))
	require.NoError(t, err)

	assert.Equal(t, http.StatusUnauthorized, wrongPassword.StatusCode)
	assert.Equal(t, http.StatusUnauthorized, unknownUser.StatusCode)
	wrongPasswordBody := readBody(t, wrongPassword)
	unknownUserBody := readBody(t, unknownUser)
	assert.Equal(t, wrongPasswordBody, unknownUserBody)
	assert.Equal(t, "Invalid credentials", unknownUserBody)
	assert.Nil(t, sessionCookie(wrongPassword))
	assert.Nil(t, sessionCookie(unknownUser))
}

func TestExpiredTokenRedirectsLikeInvalid(t *testing.T) {
	app := newTestApp(t, &memRotationRepo{})

	// An expired token and a forged token must be indistinguishable to the client.
	expiredClaims := &auth.Claims{
		UserID: 1,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
		},
	}
	expired, err := jwt.NewWithClaims(jwt.SigningMethodHS256, expiredClaims).SignedString([]byte("test-secret"))
	require.NoError(t, err)

	forged, _, err := auth.NewTokenManager("other-secret", 60).Issue(1)
	require.NoError(t, err)

	for _, value := range []string{expired, forged} {
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.AddCookie(&http.Cookie{Name: auth.CookieName, Value: value})
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusFound, resp.StatusCode)
		assert.Equal(t, "/login", resp.Header.Get("Location"))
	}
}

func TestEmployeeCrud(t *testing.T) {
	app := newTestApp(t, &memRotationRepo{})

	resp, err := app.Test(formRequest(http.MethodPost, "/createEmployee", url.Values{
		"Name": {"Alice"}, "PositionPercent": {"80"},
	}))
	require.NoError(t, err)
	assert.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, "/", resp.Header.Get("Location"))

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/viewEmployees", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, readBody(t, resp), "Alice")

	resp, err = app.Test(formRequest(http.MethodPost, "/updateEmployee/1", url.Values{
		"Name": {"Alice B"}, "PositionPercent": {"100"},
	}))
	require.NoError(t, err)
	assert.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, "/viewEmployees", resp.Header.Get("Location"))

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/editEmployee/1", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, readBody(t, resp), "Alice B")

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/editEmployee/99", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestShiftCrud(t *testing.T) {
	app := newTestApp(t, &memRotationRepo{})

	resp, err := app.Test(formRequest(http.MethodPost, "/createShift", url.Values{
		"Name": {"Night"}, "StartTime": {"22:00"}, "EndTime": {"07:00"}, "Length": {"9"},
	}))
	require.NoError(t, err)
	assert.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, "/viewShifts", resp.Header.Get("Location"))

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/viewShifts", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	body := readBody(t, resp)
	assert.Contains(t, body, "Night")
	assert.Contains(t, body, "22:00")
}

func TestRotationFeed(t *testing.T) {
	rotations := &memRotationRepo{events: []domain.RotationEvent{
		{
			Date:         time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC),
			EmployeeName: "Alice",
			ShiftName:    "Night",
		},
	}}
	app := newTestApp(t, rotations)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/rotations", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `[{"title":"Alice (Night)","start":"2025-03-10"}]`, readBody(t, resp))
}

func TestRotationFeedEmpty(t *testing.T) {
	app := newTestApp(t, &memRotationRepo{})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/rotations", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `[]`, readBody(t, resp))
}

func TestAssignRotation(t *testing.T) {
	rotations := &memRotationRepo{}
	app := newTestApp(t, rotations)

	resp, err := app.Test(formRequest(http.MethodPost, "/createRotation", url.Values{
		"Date": {"2025-03-10"}, "EmployeeID": {"1"}, "ShiftID": {"2"},
	}))
	require.NoError(t, err)
	assert.Equal(t, http.StatusFound, resp.StatusCode)
	require.Len(t, rotations.rotations, 1)
	assert.Equal(t, int64(1), rotations.rotations[0].EmployeeID)
	assert.Equal(t, int64(2), rotations.rotations[0].ShiftID)

	resp, err = app.Test(formRequest(http.MethodPost, "/createRotation", url.Values{
		"Date": {"10/03/2025"}, "EmployeeID": {"1"}, "ShiftID": {"2"},
	}))
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}
