package activity

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/mux"
	"github.com/hfpartners/case-api/internal/auth"
	"github.com/hfpartners/case-api/internal/httputil"
	"github.com/hfpartners/case-api/internal/logger"
	"github.com/hfpartners/case-api/internal/models"
	"gorm.io/gorm"
)

type userFinder interface {
	FirstUser(db *gorm.DB) (*models.User, error)
}

type Handler struct {
	DB         *gorm.DB
	Repository Repository
	Users      userFinder
	Log        *logger.Logger
}

func NewHandler(db *gorm.DB, users userFinder, log *logger.Logger) *Handler {
	return &Handler{
		DB:         db,
		Repository: NewRepository(),
		Users:      users,
		Log:        log,
	}
}

type createCommentRequest struct {
	Content string `json:"content"`
}

// CreateComment handles POST /cases/{id}/comments. Comments are append-only:
// there is no edit or delete.
func (h *Handler) CreateComment(w http.ResponseWriter, r *http.Request) {
	caseID, err := strconv.ParseUint(mux.Vars(r)["id"], 10, 32)
	if err != nil {
		httputil.Error(w, http.StatusBadRequest, "invalid case id")
		return
	}

	var req createCommentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.Error(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	if strings.TrimSpace(req.Content) == "" {
		httputil.Error(w, http.StatusBadRequest, "content is required")
		return
	}

	var exists models.Case
	if err := h.DB.Select("id").First(&exists, uint(caseID)).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httputil.Error(w, http.StatusNotFound, "case not found")
			return
		}
		h.Log.Error("case lookup failed", "caseId", caseID, "err", err)
		httputil.Error(w, http.StatusInternalServerError, "failed to create comment")
		return
	}

	var userID *uint
	if v, ok := r.Context().Value(auth.CtxUserID).(uint); ok && v != 0 {
		userID = &v
	} else if u, err := h.Users.FirstUser(h.DB); err == nil {
		id := u.ID
		userID = &id
	}

	a := models.Activity{
		CaseID:  uint(caseID),
		UserID:  userID,
		Kind:    models.ActivityComment,
		Content: req.Content,
	}
	if err := h.Repository.Create(h.DB, &a); err != nil {
		h.Log.Error("comment creation failed", "caseId", caseID, "err", err)
		httputil.Error(w, http.StatusInternalServerError, "failed to create comment")
		return
	}

	// Reload with the author attached for immediate display.
	created, err := h.Repository.GetByID(h.DB, a.ID)
	if err != nil {
		created = &a
	}
	httputil.JSON(w, http.StatusCreated, created)
}
