package cases

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/hfpartners/case-api/internal/auth"
	"github.com/hfpartners/case-api/internal/httputil"
	"github.com/hfpartners/case-api/internal/logger"
	"github.com/hfpartners/case-api/internal/models"
	"gorm.io/gorm"
)

// userFinder resolves the permissive fallback actor when a request carries
// no authenticated identity.
type userFinder interface {
	FirstUser(db *gorm.DB) (*models.User, error)
}

// Handler exposes the case workflow over HTTP.
type Handler struct {
	DB     *gorm.DB
	Engine *Engine
	Users  userFinder
	Policy UrgencyPolicy
	Log    *logger.Logger
}

func NewHandler(db *gorm.DB, engine *Engine, users userFinder, log *logger.Logger) *Handler {
	return &Handler{
		DB:     db,
		Engine: engine,
		Users:  users,
		Policy: WorkingDayPolicy{},
		Log:    log,
	}
}

// actorID returns the authenticated user id, or the first user in the store
// when anonymous fallback allowed the request through without one. Nil means
// no actor could be resolved at all.
func (h *Handler) actorID(r *http.Request) *uint {
	if v, ok := r.Context().Value(auth.CtxUserID).(uint); ok && v != 0 {
		return &v
	}
	u, err := h.Users.FirstUser(h.DB)
	if err != nil {
		return nil
	}
	id := u.ID
	return &id
}

// CreateCase handles POST /cases.
func (h *Handler) CreateCase(w http.ResponseWriter, r *http.Request) {
	var req createCaseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.Error(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	advisorID := req.AdvisorID
	if advisorID == 0 {
		actor := h.actorID(r)
		if actor == nil {
			httputil.Error(w, http.StatusUnauthorized, "no users found")
			return
		}
		advisorID = *actor
	}

	in := CreateInput{
		Title:     req.Title,
		Status:    req.Status,
		Value:     req.Value,
		ClientID:  req.ClientID,
		AdvisorID: advisorID,
	}
	if req.NewClient != nil {
		in.NewClient = &NewClientInput{
			Name:  req.NewClient.Name,
			Name2: req.NewClient.Name2,
			Name3: req.NewClient.Name3,
			Email: req.NewClient.Email,
			Phone: req.NewClient.Phone,
		}
	}

	created, err := h.Engine.Create(h.DB, in)
	if errors.Is(err, ErrValidation) {
		httputil.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	if err != nil {
		h.Log.Error("case creation failed", "err", err)
		httputil.Error(w, http.StatusInternalServerError, "failed to create case")
		return
	}
	httputil.JSON(w, http.StatusCreated, created)
}

// ListCases handles GET /cases: every case, most recently updated first,
// with client and advisor attached.
func (h *Handler) ListCases(w http.ResponseWriter, r *http.Request) {
	list, err := h.Engine.Repo.List(h.DB)
	if err != nil {
		h.Log.Error("case listing failed", "err", err)
		httputil.Error(w, http.StatusInternalServerError, "failed to fetch cases")
		return
	}
	httputil.JSON(w, http.StatusOK, toViews(list, h.Policy, time.Now()))
}

// GetCase handles GET /cases/{id}: the case with its activities, newest
// first.
func (h *Handler) GetCase(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		httputil.Error(w, http.StatusBadRequest, "invalid case id")
		return
	}

	c, err := h.Engine.Repo.GetByID(h.DB, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		httputil.Error(w, http.StatusNotFound, "case not found")
		return
	}
	if err != nil {
		h.Log.Error("case fetch failed", "caseId", id, "err", err)
		httputil.Error(w, http.StatusInternalServerError, "failed to fetch case")
		return
	}
	httputil.JSON(w, http.StatusOK, toView(*c, h.Policy, time.Now()))
}

// UpdateCase handles PATCH /cases/{id}: the status transition operator.
func (h *Handler) UpdateCase(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		httputil.Error(w, http.StatusBadRequest, "invalid case id")
		return
	}

	var req updateCaseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.Error(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	patch, err := req.toPatch()
	if err != nil {
		httputil.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	updated, err := h.Engine.Transition(h.DB, id, patch, h.actorID(r))
	switch {
	case errors.Is(err, ErrNotFound):
		httputil.Error(w, http.StatusNotFound, "case not found")
		return
	case errors.Is(err, ErrValidation):
		httputil.Error(w, http.StatusBadRequest, err.Error())
		return
	case err != nil:
		h.Log.Error("case update failed", "caseId", id, "err", err)
		httputil.Error(w, http.StatusInternalServerError, "failed to update case")
		return
	}
	httputil.JSON(w, http.StatusOK, updated)
}

// DeleteCase handles DELETE /cases/{id}. Hard delete; activities go with the
// case. The deleted record is returned.
func (h *Handler) DeleteCase(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		httputil.Error(w, http.StatusBadRequest, "invalid case id")
		return
	}

	c, err := h.Engine.Repo.GetByID(h.DB, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		httputil.Error(w, http.StatusNotFound, "case not found")
		return
	}
	if err != nil {
		h.Log.Error("case fetch failed", "caseId", id, "err", err)
		httputil.Error(w, http.StatusInternalServerError, "failed to delete case")
		return
	}

	if err := h.Engine.Repo.Delete(h.DB, id); err != nil {
		h.Log.Error("case delete failed", "caseId", id, "err", err)
		httputil.Error(w, http.StatusInternalServerError, "failed to delete case")
		return
	}
	httputil.JSON(w, http.StatusOK, c)
}

// Board handles GET /board: every configured column in pipeline order, each
// sorted for display. ?column=X narrows the response to one column.
func (h *Handler) Board(w http.ResponseWriter, r *http.Request) {
	list, err := h.Engine.Repo.List(h.DB)
	if err != nil {
		h.Log.Error("board listing failed", "err", err)
		httputil.Error(w, http.StatusInternalServerError, "failed to fetch cases")
		return
	}

	now := time.Now()
	columns := h.Engine.Stages
	if c := r.URL.Query().Get("column"); c != "" {
		columns = []string{c}
	}

	out := make([]BoardColumn, 0, len(columns))
	for _, col := range columns {
		out = append(out, BoardColumn{
			Column: col,
			Cases:  toViews(Column(list, col, now), h.Policy, now),
		})
	}
	httputil.JSON(w, http.StatusOK, out)
}

func pathID(r *http.Request) (uint, error) {
	id, err := strconv.ParseUint(mux.Vars(r)["id"], 10, 32)
	return uint(id), err
}
