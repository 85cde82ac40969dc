package auth

import (
	"encoding/json"
	"net/http"

	"github.com/hfpartners/case-api/internal/httputil"
	"github.com/hfpartners/case-api/internal/models"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token string      `json:"token"`
	User  models.User `json:"user"`
}

// LoginHandler handles POST /login.
func LoginHandler(db *gorm.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req loginRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			httputil.Error(w, http.StatusBadRequest, "invalid JSON")
			return
		}

		var user models.User
		if err := db.Where("email = ?", req.Email).First(&user).Error; err != nil {
			httputil.Error(w, http.StatusUnauthorized, "invalid credentials")
			return
		}
		if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)) != nil {
			httputil.Error(w, http.StatusUnauthorized, "invalid credentials")
			return
		}

		token, err := GenerateAccessToken(user.ID, user.Role == models.RoleAdmin)
		if err != nil {
			httputil.Error(w, http.StatusInternalServerError, "failed to issue token")
			return
		}
		httputil.JSON(w, http.StatusOK, loginResponse{Token: token, User: user})
	}
}
