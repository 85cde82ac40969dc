package users

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/hfpartners/case-api/internal/httputil"
	"github.com/hfpartners/case-api/internal/logger"
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

// userView is the safe subset exposed over the API.
type userView struct {
	ID     uint   `json:"id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Role   string `json:"role"`
	Status string `json:"status"`
}

// ListUsers handles GET /users, newest accounts first.
func (h *Handler) ListUsers(w http.ResponseWriter, r *http.Request) {
	list, err := h.Repository.List(h.DB)
	if err != nil {
		h.Log.Error("user listing failed", "err", err)
		httputil.Error(w, http.StatusInternalServerError, "failed to fetch users")
		return
	}

	out := make([]userView, 0, len(list))
	for _, u := range list {
		out = append(out, userView{ID: u.ID, Name: u.Name, Email: u.Email, Role: u.Role, Status: u.Status})
	}
	httputil.JSON(w, http.StatusOK, out)
}

type updateUserRequest struct {
	Role   *string `json:"role"`
	Status *string `json:"status"`
}

// UpdateUser handles PATCH /users/{id}: role and status only.
func (h *Handler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		httputil.Error(w, http.StatusBadRequest, "invalid user id")
		return
	}

	var req updateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.Error(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	u, err := h.Repository.GetByID(h.DB, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		httputil.Error(w, http.StatusNotFound, "user not found")
		return
	}
	if err != nil {
		h.Log.Error("user fetch failed", "userId", id, "err", err)
		httputil.Error(w, http.StatusInternalServerError, "failed to update user")
		return
	}

	if req.Role != nil {
		u.Role = *req.Role
	}
	if req.Status != nil {
		u.Status = *req.Status
	}
	if err := h.Repository.Update(h.DB, u); err != nil {
		h.Log.Error("user update failed", "userId", id, "err", err)
		httputil.Error(w, http.StatusInternalServerError, "failed to update user")
		return
	}
	httputil.JSON(w, http.StatusOK, userView{ID: u.ID, Name: u.Name, Email: u.Email, Role: u.Role, Status: u.Status})
}

// DeleteUser handles DELETE /users/{id}.
func (h *Handler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		httputil.Error(w, http.StatusBadRequest, "invalid user id")
		return
	}

	if err := h.Repository.Delete(h.DB, id); err != nil {
		h.Log.Error("user delete failed", "userId", id, "err", err)
		httputil.Error(w, http.StatusInternalServerError, "failed to delete user")
		return
	}
	httputil.JSON(w, http.StatusOK, map[string]string{"message": "user deleted"})
}

func pathID(r *http.Request) (uint, error) {
	id, err := strconv.ParseUint(mux.Vars(r)["id"], 10, 32)
	return uint(id), err
}
