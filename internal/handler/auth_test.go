package handler

import (
    "encoding/json"
    "net/http"
    "testing"
    "time"

    "github.com/DATA-DOG/go-sqlmock"
    "github.com/stretchr/testify/assert"
    "github.com/stretchr/testify/require"

    "github.com/wildriver/resort-booking/internal/middleware"
    "github.com/wildriver/resort-booking/internal/utils"
)

var userCols = []string{"id", "name", "email", "password_hash", "role", "created_at", "updated_at"}

func userRow(t *testing.T, id int64, email, password, role string) *sqlmock.Rows {
	t.Helper()
	hash, err := utils.HashPassword(password, 4)
	require.NoError(t, err)
	now := time.Now().UTC()
	return sqlmock.NewRows(userCols).AddRow(id, "Jordan Guest", email, hash, role, now, now)
}

func TestRegisterIssuesToken(t *testing.T) {
	_, _, users, _, mock := newMockRepos(t)
	h := NewAuthHandler(testConfig(), users)

	mock.ExpectExec(`INSERT INTO users`).
		WithArgs("Jordan Guest", "jordan@example.com", sqlmock.AnyArg(), "user").
		WillReturnResult(sqlmock.NewResult(7, 1))

	body := `{"name":"Jordan Guest","email":"Jordan@Example.com","password":"s3cret"}`
	rec := doJSON(t, h.Register, http.MethodPost, "/v1/auth/register", body, nil, nil)

	require.Equal(t, http.StatusCreated, rec.Code)
	var got struct {
		Token string `json:"token"`
		User  struct {
			ID    uint64 `json:"id"`
			Email string `json:"email"`
			Role  string `json:"role"`
		} `json:"user"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.NotEmpty(t, got.Token)
	assert.Equal(t, uint64(7), got.User.ID)
	assert.Equal(t, "jordan@example.com", got.User.Email)
	// Self-registration never yields an admin.
	assert.Equal(t, "user", got.User.Role)

	id, err := utils.ParseAccessToken(testSecret, got.Token)
	require.NoError(t, err)
	assert.Equal(t, uint64(7), id.UserID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRegisterDuplicateEmail(t *testing.T) {
	_, _, users, _, mock := newMockRepos(t)
	h := NewAuthHandler(testConfig(), users)

	mock.ExpectExec(`INSERT INTO users`).
		WithArgs("Jordan Guest", "jordan@example.com", sqlmock.AnyArg(), "user").
		WillReturnError(&mysqlError{msg: "Error 1062 (23000): Duplicate entry"})

	body := `{"name":"Jordan Guest","email":"jordan@example.com","password":"s3cret"}`
	rec := doJSON(t, h.Register, http.MethodPost, "/v1/auth/register", body, nil, nil)

	assert.Equal(t, http.StatusConflict, rec.Code)
	require.NoError(t, mock.ExpectationsWereMet())
}

type mysqlError struct{ msg string }

func (e *mysqlError) Error() string { return e.msg }

func TestLoginSuccess(t *testing.T) {
	_, _, users, _, mock := newMockRepos(t)
	h := NewAuthHandler(testConfig(), users)

	mock.ExpectQuery(`SELECT .+ FROM users WHERE email=\?`).
		WithArgs("jordan@example.com").
		WillReturnRows(userRow(t, 7, "jordan@example.com", "s3cret", "user"))

	body := `{"email":"jordan@example.com","password":"s3cret"}`
	rec := doJSON(t, h.Login, http.MethodPost, "/v1/auth/login", body, nil, nil)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"token"`)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestLoginWrongPassword(t *testing.T) {
	_, _, users, _, mock := newMockRepos(t)
	h := NewAuthHandler(testConfig(), users)

	mock.ExpectQuery(`SELECT .+ FROM users WHERE email=\?`).
		WithArgs("jordan@example.com").
		WillReturnRows(userRow(t, 7, "jordan@example.com", "s3cret", "user"))

	body := `{"email":"jordan@example.com","password":"wrong"}`
	rec := doJSON(t, h.Login, http.MethodPost, "/v1/auth/login", body, nil, nil)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestLoginUnknownEmail(t *testing.T) {
	_, _, users, _, mock := newMockRepos(t)
	h := NewAuthHandler(testConfig(), users)

	mock.ExpectQuery(`SELECT .+ FROM users WHERE email=\?`).
		WithArgs("nobody@example.com").
		WillReturnRows(sqlmock.NewRows(userCols))

	body := `{"email":"nobody@example.com","password":"s3cret"}`
	rec := doJSON(t, h.Login, http.MethodPost, "/v1/auth/login", body, nil, nil)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestMeReturnsProfile(t *testing.T) {
	_, _, users, _, mock := newMockRepos(t)
	h := NewAuthHandler(testConfig(), users)

	mock.ExpectQuery(`SELECT .+ FROM users WHERE id=\?`).
		WithArgs(uint64(7)).
		WillReturnRows(userRow(t, 7, "jordan@example.com", "s3cret", "user"))

	tok, err := utils.NewAccessToken(testSecret, 7, "jordan@example.com", "user", 1)
	require.NoError(t, err)

	rec := doJSON(t, h.Me, http.MethodGet, "/v1/me", "",
		map[string]string{"Authorization": "Bearer " + tok.Token}, nil,
		middleware.JWTAuth(testSecret))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "jordan@example.com")
	// Password hashes never leave the API.
	assert.NotContains(t, rec.Body.String(), "password")
	require.NoError(t, mock.ExpectationsWereMet())
}
