package clients

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

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
	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Client{}, &models.Case{}))

	h := NewHandler(db, logger.NewNop())
	r := mux.NewRouter()
	r.HandleFunc("/clients", h.CreateClient).Methods("POST")
	r.HandleFunc("/clients", h.ListClients).Methods("GET")
	r.HandleFunc("/clients/{id}", h.GetClient).Methods("GET")
	r.HandleFunc("/clients/{id}", h.UpdateClient).Methods("PATCH")
	r.HandleFunc("/clients/{id}", h.DeleteClient).Methods("DELETE")
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

func TestCreateClientRequiresName(t *testing.T) {
	_, r := setupTest(t)
	w := doJSON(t, r, http.MethodPost, "/clients", map[string]string{"email": "x@example.com"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestClientCRUD(t *testing.T) {
	db, r := setupTest(t)

	w := doJSON(t, r, http.MethodPost, "/clients", map[string]string{
		"name":  "Pat Smith",
		"name2": "Sam Smith",
		"email": "pat@example.com",
		"phone": "07700 900000",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var created models.Client
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	require.NotZero(t, created.ID)

	w = doJSON(t, r, http.MethodPatch, fmt.Sprintf("/clients/%d", created.ID), map[string]string{
		"name":  "Pat Smith",
		"notes": "prefers email",
	})
	require.Equal(t, http.StatusOK, w.Code)

	var stored models.Client
	require.NoError(t, db.First(&stored, created.ID).Error)
	assert.Equal(t, "prefers email", stored.Notes)

	w = doJSON(t, r, http.MethodDelete, fmt.Sprintf("/clients/%d", created.ID), nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, r, http.MethodGet, fmt.Sprintf("/clients/%d", created.ID), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestUpdateClientKeepsOmittedFields(t *testing.T) {
	db, r := setupTest(t)
	client := models.Client{
		Name:  "Pat Smith",
		Email: "pat@example.com",
		Notes: "VIP",
	}
	require.NoError(t, db.Create(&client).Error)

	w := doJSON(t, r, http.MethodPatch, fmt.Sprintf("/clients/%d", client.ID), map[string]string{
		"phone": "0700",
	})
	require.Equal(t, http.StatusOK, w.Code)

	var stored models.Client
	require.NoError(t, db.First(&stored, client.ID).Error)
	assert.Equal(t, "0700", stored.Phone)
	assert.Equal(t, "Pat Smith", stored.Name)
	assert.Equal(t, "pat@example.com", stored.Email)
	assert.Equal(t, "VIP", stored.Notes)
}

func TestUpdateClientCanBlankAField(t *testing.T) {
	db, r := setupTest(t)
	client := models.Client{Name: "Pat Smith", Notes: "stale"}
	require.NoError(t, db.Create(&client).Error)

	w := doJSON(t, r, http.MethodPatch, fmt.Sprintf("/clients/%d", client.ID), map[string]string{
		"notes": "",
	})
	require.Equal(t, http.StatusOK, w.Code)

	var stored models.Client
	require.NoError(t, db.First(&stored, client.ID).Error)
	assert.Empty(t, stored.Notes)
	assert.Equal(t, "Pat Smith", stored.Name)
}

func TestGetClientIncludesCases(t *testing.T) {
	db, r := setupTest(t)
	client := models.Client{Name: "With Cases"}
	require.NoError(t, db.Create(&client).Error)
	advisor := models.User{Name: "Adv", Email: "adv@example.com"}
	require.NoError(t, db.Create(&advisor).Error)
	c := models.Case{Title: "Case", Status: "Contact", ClientID: client.ID, AdvisorID: advisor.ID}
	require.NoError(t, db.Create(&c).Error)

	w := doJSON(t, r, http.MethodGet, fmt.Sprintf("/clients/%d", client.ID), nil)
	require.Equal(t, http.StatusOK, w.Code)

	var got models.Client
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	require.Len(t, got.Cases, 1)
	assert.Equal(t, "Case", got.Cases[0].Title)
}
