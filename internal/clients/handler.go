package clients

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/mux"
	"github.com/hfpartners/case-api/internal/httputil"
	"github.com/hfpartners/case-api/internal/logger"
	"github.com/hfpartners/case-api/internal/models"
	"gorm.io/gorm"
)

type Handler struct {
	DB         *gorm.DB
	Repository Repository
	Log        *logger.Logger
}

func NewHandler(db *gorm.DB, log *logger.Logger) *Handler {
	return &Handler{
		DB:         db,
		Repository: NewRepository(),
		Log:        log,
	}
}

type clientRequest struct {
	Name    string `json:"name"`
	Name2   string `json:"name2"`
	Name3   string `json:"name3"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
	Notes   string `json:"notes"`
}

// CreateClient handles POST /clients.
func (h *Handler) CreateClient(w http.ResponseWriter, r *http.Request) {
	var req clientRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.Error(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	if strings.TrimSpace(req.Name) == "" {
		httputil.Error(w, http.StatusBadRequest, "name is required")
		return
	}

	c := models.Client{
		Name:    req.Name,
		Name2:   req.Name2,
		Name3:   req.Name3,
		Email:   req.Email,
		Phone:   req.Phone,
		Address: req.Address,
		Notes:   req.Notes,
	}
	if err := h.Repository.Create(h.DB, &c); err != nil {
		h.Log.Error("client creation failed", "err", err)
		httputil.Error(w, http.StatusInternalServerError, "failed to create client")
		return
	}
	httputil.JSON(w, http.StatusCreated, c)
}

// ListClients handles GET /clients.
func (h *Handler) ListClients(w http.ResponseWriter, r *http.Request) {
	list, err := h.Repository.List(h.DB)
	if err != nil {
		h.Log.Error("client listing failed", "err", err)
		httputil.Error(w, http.StatusInternalServerError, "failed to fetch clients")
		return
	}
	httputil.JSON(w, http.StatusOK, list)
}

// GetClient handles GET /clients/{id}: the client with their cases.
func (h *Handler) GetClient(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		httputil.Error(w, http.StatusBadRequest, "invalid client id")
		return
	}

	c, err := h.Repository.GetByID(h.DB, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		httputil.Error(w, http.StatusNotFound, "client not found")
		return
	}
	if err != nil {
		h.Log.Error("client fetch failed", "clientId", id, "err", err)
		httputil.Error(w, http.StatusInternalServerError, "failed to fetch client")
		return
	}
	httputil.JSON(w, http.StatusOK, c)
}

// updateClientRequest is the partial patch body: nil means "not supplied"
// and leaves the stored value untouched.
type updateClientRequest struct {
	Name    *string `json:"name"`
	Name2   *string `json:"name2"`
	Name3   *string `json:"name3"`
	Email   *string `json:"email"`
	Phone   *string `json:"phone"`
	Address *string `json:"address"`
	Notes   *string `json:"notes"`
}

// UpdateClient handles PATCH /clients/{id}. Partial update: only supplied
// fields change.
func (h *Handler) UpdateClient(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		httputil.Error(w, http.StatusBadRequest, "invalid client id")
		return
	}

	var req updateClientRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.Error(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	updated, err := h.Repository.Update(h.DB, id, Patch{
		Name:    req.Name,
		Name2:   req.Name2,
		Name3:   req.Name3,
		Email:   req.Email,
		Phone:   req.Phone,
		Address: req.Address,
		Notes:   req.Notes,
	})
	if errors.Is(err, gorm.ErrRecordNotFound) {
		httputil.Error(w, http.StatusNotFound, "client not found")
		return
	}
	if err != nil {
		h.Log.Error("client update failed", "clientId", id, "err", err)
		httputil.Error(w, http.StatusInternalServerError, "failed to update client")
		return
	}
	httputil.JSON(w, http.StatusOK, updated)
}

// DeleteClient handles DELETE /clients/{id}.
func (h *Handler) DeleteClient(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		httputil.Error(w, http.StatusBadRequest, "invalid client id")
		return
	}

	if err := h.Repository.Delete(h.DB, id); err != nil {
		h.Log.Error("client delete failed", "clientId", id, "err", err)
		httputil.Error(w, http.StatusInternalServerError, "failed to delete client")
		return
	}
	httputil.JSON(w, http.StatusOK, map[string]string{"message": "client deleted"})
}

func pathID(r *http.Request) (uint, error) {
	id, err := strconv.ParseUint(mux.Vars(r)["id"], 10, 32)
	return uint(id), err
}
