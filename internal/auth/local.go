// Package auth contains handler relate to log in and create user account
package auth

import (
	"JobBoard-backend/internal/model"
	"JobBoard-backend/internal/policy"
	"JobBoard-backend/internal/utilities"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
)

// LocalAuthHandler serves username and password registration and login
type LocalAuthHandler struct {
	Policy *policy.Policy
}

// NewLocalAuthHandler creates a new instance of LocalAuthHandler with the provided policy.
func NewLocalAuthHandler(p *policy.Policy) *LocalAuthHandler {
	return &LocalAuthHandler{
		Policy: p,
	}
}

type registerInfo struct {
	Username  string `json:"username" binding:"required"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email" binding:"omitempty,email"`
	Password  string `json:"password" binding:"required"`
	UserType  string `json:"user_type" binding:"required"`
}

type loginInfo struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// RegisterHandler creates a user together with its employer or applicant profile
// @Summary Register a user as employer or applicant
// @Description Username must not already exist; the user and profile are created atomically
// @Tags Auth
// @Accept json
// @Produce json
// @Param Info body registerInfo true "user_type is EMPLOYER or APPLICANT"
// @Success 201 {object} model.AuthResponse "User, profile and access token"
// @Failure 400 {object} utilities.ErrorResponse "Missing field, invalid user_type or username taken"
// @Failure 500 {object} utilities.ErrorResponse "Database or password hashing error"
// @Router /register [post]
func (lh *LocalAuthHandler) RegisterHandler(c *gin.Context) {
	var info registerInfo

	if err := c.ShouldBindJSON(&info); err != nil {
		LogAuthAttempt("warning", "Local", "Fail", info.Username, "invalid register body")
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{
			Error: utilities.FormatValidationError(err),
		})
		return
	}

	reg, err := lh.Policy.Register(c.Request.Context(), policy.RegisterInput{
		Username:  info.Username,
		FirstName: info.FirstName,
		LastName:  info.LastName,
		Email:     info.Email,
		Password:  info.Password,
		Role:      info.UserType,
	})
	if err != nil {
		LogAuthAttempt("warning", "Local", "Fail", info.Username, err.Error())
		utilities.RespondError(c, err)
		return
	}

	accessToken, _, err := GenerateStandardToken(reg.User.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to generate access token: %s", err.Error()),
		})
		return
	}

	LogAuthAttempt("info", "Local", "Success", info.Username, "registered")
	c.JSON(http.StatusCreated, model.AuthResponse{
		User:        reg.User,
		Profile:     reg.Profile,
		AccessToken: accessToken,
	})
}

// LoginHandler function handles local login by receiving username and password
// @Summary Handles local login by receiving username and password
// @Description Username must exist and password match
// @Tags Auth
// @Accept json
// @Produce json
// @Param Info body loginInfo true "Credentials for login"
// @Success 200 {object} model.AuthResponse "User, profile and access token"
// @Failure 400 {object} utilities.ErrorResponse "Username or password not provided"
// @Failure 401 {object} utilities.ErrorResponse "Username not exist or password incorrect"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /auth/login [post]
func (lh *LocalAuthHandler) LoginHandler(c *gin.Context) {
	var info loginInfo

	if err := c.ShouldBindJSON(&info); err != nil {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{
			Error: "Username or password is not provided",
		})
		return
	}

	user, err := lh.Policy.Authenticate(c.Request.Context(), info.Username, info.Password)
	if err != nil {
		LogAuthAttempt("warning", "Local", "Fail", info.Username, err.Error())
		utilities.RespondError(c, err)
		return
	}

	respondWithToken(c, lh.Policy, user, http.StatusOK)
	LogAuthAttempt("info", "Local", "Success", info.Username, "")
}

// respondWithToken answers with the user, its resolved profile and a fresh access token
func respondWithToken(c *gin.Context, p *policy.Policy, user model.User, status int) {
	identity, err := p.ResolveRole(c.Request.Context(), &user)
	if err != nil {
		utilities.RespondError(c, err)
		return
	}

	accessToken, _, err := GenerateStandardToken(user.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to generate access token: %s", err.Error()),
		})
		return
	}

	resp := model.AuthResponse{User: user, Profile: identity.Profile()}
	resp.SetAccessToken(accessToken)
	c.JSON(status, resp)
}
