package auth

import (
	"JobBoard-backend/internal/model"
	"net/http"

	"github.com/gin-gonic/gin"
)

// EmployerGoogleLoginHandler exchanges a Google code and logs in or registers an employer.
// @Summary Handles Google login authentication for employer role
// @Description Checks and creates user in the database, generates an access token
// @Tags Auth
// @Accept json
// @Produce json
// @Param Code body code true "Authentication code from google"
// @Success 200 {object} model.AuthResponse "Login success"
// @Success 201 {object} model.AuthResponse "Register success"
// @Failure 400 {object} utilities.ErrorResponse "Fail to receive token or fetch user info, or registered with another role"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /auth/google/employer [post]
func (h *OauthLoginHandler) EmployerGoogleLoginHandler(c *gin.Context) {

	uInfo, err := h.getUserInfo(c)
	if err != nil {
		return
	}

	h.loginOrRegisterUser(model.RoleEmployer, uInfo, c)
}

// ApplicantGoogleLoginHandler exchanges a Google code and logs in or registers an applicant.
// @Summary Handles Google login authentication for applicant role
// @Description Checks and creates user in the database, generates an access token
// @Tags Auth
// @Accept json
// @Produce json
// @Param Code body code true "Authentication code from google"
// @Success 200 {object} model.AuthResponse "Login success"
// @Success 201 {object} model.AuthResponse "Register success"
// @Failure 400 {object} utilities.ErrorResponse "Fail to receive token or fetch user info, or registered with another role"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /auth/google/applicant [post]
func (h *OauthLoginHandler) ApplicantGoogleLoginHandler(c *gin.Context) {

	uInfo, err := h.getUserInfo(c)
	if err != nil {
		return
	}

	h.loginOrRegisterUser(model.RoleApplicant, uInfo, c)
}

// Callback function retrieves a query parameter named "code" from the request and returns it
// in a JSON response.
// @Summary Retrieves a query parameter named "code" from the request and returns it in a JSON response
// @Tags Auth
// @Produce json
// @Param Code query string false "Authentication code from google"
// @Success 200 {object} code
// @Router /auth/google/callback [get]
func (h *OauthLoginHandler) Callback(c *gin.Context) {
	aCode := c.Query("code")
	c.JSON(http.StatusOK, code{
		Code: aCode,
	})
}
