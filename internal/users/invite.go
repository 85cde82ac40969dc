package users

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/hfpartners/case-api/internal/httputil"
	"github.com/hfpartners/case-api/internal/models"
	"gorm.io/gorm"
)

// InviteTTL is how long an invitation token stays valid.
const InviteTTL = 24 * time.Hour

type inviteRequest struct {
	Email string `json:"email"`
	Role  string `json:"role"`
}

type inviteResponse struct {
	Message string `json:"message"`
	Link    string `json:"link"`
}

// Invite handles POST /users/invite. Re-inviting an email refreshes the
// existing invitation's token and expiry. Delivery is a mock: the link is
// logged, not mailed.
func (h *Handler) Invite(w http.ResponseWriter, r *http.Request) {
	var req inviteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.Error(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	if strings.TrimSpace(req.Email) == "" {
		httputil.Error(w, http.StatusBadRequest, "email is required")
		return
	}

	if _, err := h.Repository.FindByEmail(h.DB, req.Email); err == nil {
		httputil.Error(w, http.StatusBadRequest, "user already exists")
		return
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		h.Log.Error("user lookup failed", "email", req.Email, "err", err)
		httputil.Error(w, http.StatusInternalServerError, "failed to create invitation")
		return
	}

	role := req.Role
	if role == "" {
		role = models.RoleAdvisor
	}

	inv, err := h.Repository.FindInvitationByEmail(h.DB, req.Email)
	message := "Invitation sent"
	switch {
	case err == nil:
		message = "Invitation resent"
	case errors.Is(err, gorm.ErrRecordNotFound):
		inv = &models.Invitation{Email: req.Email}
	default:
		h.Log.Error("invitation lookup failed", "email", req.Email, "err", err)
		httputil.Error(w, http.StatusInternalServerError, "failed to create invitation")
		return
	}

	inv.Token = uuid.NewString()
	inv.Role = role
	inv.Expires = time.Now().Add(InviteTTL)

	if err := h.Repository.SaveInvitation(h.DB, inv); err != nil {
		h.Log.Error("invitation save failed", "email", req.Email, "err", err)
		httputil.Error(w, http.StatusInternalServerError, "failed to create invitation")
		return
	}

	link := fmt.Sprintf("%s/register?token=%s", os.Getenv("APP_URL"), inv.Token)
	h.Log.Info("mock invite email", "to", req.Email, "link", link)
	httputil.JSON(w, http.StatusOK, inviteResponse{Message: message, Link: link})
}

type registerRequest struct {
	Token    string `json:"token"`
	Name     string `json:"name"`
	Password string `json:"password"`
}

// Register handles POST /register: consumes a valid invitation and creates
// an active account.
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.Error(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	if req.Token == "" || strings.TrimSpace(req.Name) == "" || req.Password == "" {
		httputil.Error(w, http.StatusBadRequest, "token, name and password are required")
		return
	}

	inv, err := h.Repository.FindInvitationByToken(h.DB, req.Token)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		httputil.Error(w, http.StatusBadRequest, "invalid invitation token")
		return
	}
	if err != nil {
		h.Log.Error("invitation lookup failed", "err", err)
		httputil.Error(w, http.StatusInternalServerError, "failed to register")
		return
	}
	if time.Now().After(inv.Expires) {
		httputil.Error(w, http.StatusBadRequest, "invitation expired")
		return
	}

	hash, err := HashPassword(req.Password)
	if err != nil {
		h.Log.Error("password hashing failed", "err", err)
		httputil.Error(w, http.StatusInternalServerError, "failed to register")
		return
	}

	u := models.User{
		Name:     req.Name,
		Email:    inv.Email,
		Password: hash,
		Role:     inv.Role,
		Status:   models.StatusActive,
	}
	if err := h.Repository.Create(h.DB, &u); err != nil {
		h.Log.Error("user creation failed", "email", inv.Email, "err", err)
		httputil.Error(w, http.StatusInternalServerError, "failed to register")
		return
	}
	if err := h.Repository.DeleteInvitation(h.DB, inv.ID); err != nil {
		h.Log.Warn("invitation cleanup failed", "invitationId", inv.ID, "err", err)
	}

	httputil.JSON(w, http.StatusCreated, userView{ID: u.ID, Name: u.Name, Email: u.Email, Role: u.Role, Status: u.Status})
}
