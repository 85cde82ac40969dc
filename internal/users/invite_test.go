package users

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/hfpartners/case-api/internal/logger"
	"github.com/hfpartners/case-api/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func setupTest(t *testing.T) (*gorm.DB, *mux.Router) {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Invitation{}))

	h := NewHandler(db, logger.NewNop())
	r := mux.NewRouter()
	r.HandleFunc("/users", h.ListUsers).Methods("GET")
	r.HandleFunc("/users/invite", h.Invite).Methods("POST")
	r.HandleFunc("/users/{id}", h.UpdateUser).Methods("PATCH")
	r.HandleFunc("/register", h.Register).Methods("POST")
	return db, r
}

func doJSON(t *testing.T, r *mux.Router, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestInviteCreatesInvitation(t *testing.T) {
	db, r := setupTest(t)

	w := doJSON(t, r, http.MethodPost, "/users/invite", map[string]string{"email": "new@example.com"})
	require.Equal(t, http.StatusOK, w.Code)

	var inv models.Invitation
	require.NoError(t, db.Where("email = ?", "new@example.com").First(&inv).Error)
	assert.NotEmpty(t, inv.Token)
	assert.Equal(t, models.RoleAdvisor, inv.Role)
	assert.WithinDuration(t, time.Now().Add(InviteTTL), inv.Expires, time.Minute)
}

func TestInviteRequiresEmail(t *testing.T) {
	_, r := setupTest(t)
	w := doJSON(t, r, http.MethodPost, "/users/invite", map[string]string{})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestInviteExistingUser(t *testing.T) {
	db, r := setupTest(t)
	require.NoError(t, db.Create(&models.User{Name: "Taken", Email: "taken@example.com"}).Error)

	w := doJSON(t, r, http.MethodPost, "/users/invite", map[string]string{"email": "taken@example.com"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestReinviteRefreshesToken(t *testing.T) {
	db, r := setupTest(t)

	require.Equal(t, http.StatusOK, doJSON(t, r, http.MethodPost, "/users/invite", map[string]string{"email": "new@example.com"}).Code)
	var first models.Invitation
	require.NoError(t, db.Where("email = ?", "new@example.com").First(&first).Error)

	require.Equal(t, http.StatusOK, doJSON(t, r, http.MethodPost, "/users/invite", map[string]string{"email": "new@example.com"}).Code)
	var second models.Invitation
	require.NoError(t, db.Where("email = ?", "new@example.com").First(&second).Error)

	assert.Equal(t, first.ID, second.ID)
	assert.NotEqual(t, first.Token, second.Token)
}

func TestRegisterConsumesInvitation(t *testing.T) {
	db, r := setupTest(t)
	inv := models.Invitation{
		Email:   "invited@example.com",
		Token:   "tok-123",
		Role:    models.RoleAdmin,
		Expires: time.Now().Add(time.Hour),
	}
	require.NoError(t, db.Create(&inv).Error)

	w := doJSON(t, r, http.MethodPost, "/register", map[string]string{
		"token":    "tok-123",
		"name":     "New Admin",
		"password": "hunter22",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var u models.User
	require.NoError(t, db.Where("email = ?", "invited@example.com").First(&u).Error)
	assert.Equal(t, models.RoleAdmin, u.Role)
	assert.Equal(t, models.StatusActive, u.Status)
	assert.True(t, CheckPassword(u.Password, "hunter22"))

	// The invitation is single use.
	err := db.Where("token = ?", "tok-123").First(&models.Invitation{}).Error
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestRegisterExpiredInvitation(t *testing.T) {
	db, r := setupTest(t)
	inv := models.Invitation{
		Email:   "late@example.com",
		Token:   "tok-old",
		Role:    models.RoleAdvisor,
		Expires: time.Now().Add(-time.Hour),
	}
	require.NoError(t, db.Create(&inv).Error)

	w := doJSON(t, r, http.MethodPost, "/register", map[string]string{
		"token":    "tok-old",
		"name":     "Late",
		"password": "pw",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUpdateUserRoleAndStatus(t *testing.T) {
	db, r := setupTest(t)
	u := models.User{Name: "Adv", Email: "adv@example.com", Role: models.RoleAdvisor, Status: models.StatusActive}
	require.NoError(t, db.Create(&u).Error)

	w := doJSON(t, r, http.MethodPatch, fmt.Sprintf("/users/%d", u.ID), map[string]string{"role": models.RoleAdmin})
	require.Equal(t, http.StatusOK, w.Code)

	var stored models.User
	require.NoError(t, db.First(&stored, u.ID).Error)
	assert.Equal(t, models.RoleAdmin, stored.Role)
	assert.Equal(t, models.StatusActive, stored.Status)
}
