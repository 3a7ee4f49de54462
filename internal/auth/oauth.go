package auth

import (
	"JobBoard-backend/internal/model"
	"JobBoard-backend/internal/policy"
	"JobBoard-backend/internal/utilities"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

// GoogleUserInfoEndpoint is where the exchanged token is used to read the profile
const GoogleUserInfoEndpoint = "https://www.googleapis.com/oauth2/v3/userinfo"

// OauthLoginHandler struct holds the policy and OAuth2 configuration for handling OAuth login.
type OauthLoginHandler struct {
	Policy           *policy.Policy
	OauthConfig      *oauth2.Config
	UserInfoEndpoint string
}

type code struct {
	Code string `json:"code" binding:"required"`
}

// NewGoogleOauthConfig builds the Google OAuth2 client configuration
func NewGoogleOauthConfig(clientID, clientSecret, redirectURL string) *oauth2.Config {
	return &oauth2.Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		Scopes: []string{
			"https://www.googleapis.com/auth/userinfo.email",
			"https://www.googleapis.com/auth/userinfo.profile",
			"openid",
		},
		Endpoint:    google.Endpoint,
		RedirectURL: redirectURL,
	}
}

// NewOauthLoginHandler creates a new instance of OauthLoginHandler with the provided policy and OAuth2 configuration.
func NewOauthLoginHandler(p *policy.Policy, oauthConfig *oauth2.Config, userInfoEndpoint string) *OauthLoginHandler {
	return &OauthLoginHandler{
		Policy:           p,
		OauthConfig:      oauthConfig,
		UserInfoEndpoint: userInfoEndpoint,
	}
}

func (h *OauthLoginHandler) getUserInfo(c *gin.Context) (model.GoogleUserInfo, error) {

	var code code
	var uInfo model.GoogleUserInfo

	// check does body has code
	if err := c.ShouldBindJSON(&code); err != nil {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{
			Error: fmt.Sprintf("No authorization code provided: %v", err.Error()),
		})
		return uInfo, err
	}

	ctx := c.Request.Context()

	// Exchange code with google and get userinfo
	token, err := h.OauthConfig.Exchange(ctx, code.Code)
	if err != nil {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to receive token: %v", err.Error()),
		})
		return uInfo, err
	}

	client := h.OauthConfig.Client(ctx, token)
	resp, err := client.Get(h.UserInfoEndpoint)
	if err != nil {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to fetch user information: %v", err.Error()),
		})
		return uInfo, err
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			log.WithError(err).Warn("failed to close userinfo response body")
		}
	}()

	if resp.StatusCode != http.StatusOK {
		bodyBytes, _ := io.ReadAll(resp.Body)
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to fetch user information: status=%d body=%s", resp.StatusCode, string(bodyBytes)),
		})
		return uInfo, fmt.Errorf("userinfo endpoint returned status %d", resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(&uInfo); err != nil {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to decode user info: %v", err.Error()),
		})
		return uInfo, err
	}
	if uInfo.GID == "" {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{
			Error: "Google account id missing from user info",
		})
		return uInfo, fmt.Errorf("empty google id")
	}
	return uInfo, nil
}

// loginOrRegisterUser logs in the user linked to the Google account, or registers it under role
func (h *OauthLoginHandler) loginOrRegisterUser(role string, uinfo model.GoogleUserInfo, c *gin.Context) {
	ctx := c.Request.Context()

	existing, err := h.Policy.FindByGoogleID(ctx, uinfo.GID)
	if err != nil {
		utilities.RespondError(c, err)
		return
	}

	if existing != nil {
		if existing.Role != role {
			LogAuthAttempt("warning", "Google", "Fail", uinfo.Email, "role mismatch")
			c.JSON(http.StatusBadRequest, utilities.ErrorResponse{
				Error: "You already registered as a different user type",
			})
			return
		}
		LogAuthAttempt("info", "Google", "Success", uinfo.Email, "")
		respondWithToken(c, h.Policy, *existing, http.StatusOK)
		return
	}

	in := policy.RegisterInput{
		FirstName: uinfo.FirstName,
		LastName:  uinfo.LastName,
		Email:     uinfo.Email,
		Role:      role,
		GoogleID:  uinfo.GID,
	}
	var reg policy.Registration
	for _, username := range googleUsernames(uinfo) {
		in.Username = username
		reg, err = h.Policy.Register(ctx, in)
		if !errors.Is(err, policy.ErrUsernameTaken) {
			break
		}
	}
	if err != nil {
		LogAuthAttempt("warning", "Google", "Fail", uinfo.Email, err.Error())
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

	LogAuthAttempt("info", "Google", "Success", uinfo.Email, "registered")
	c.JSON(http.StatusCreated, model.AuthResponse{
		User:        reg.User,
		Profile:     reg.Profile,
		AccessToken: accessToken,
	})
}

// googleUsernames lists the usernames to try for a new Google account, in order.
// The last one is derived from the account id, which no other Google account shares.
func googleUsernames(uinfo model.GoogleUserInfo) []string {
	byID := "google_" + uinfo.GID
	if uinfo.Email == "" {
		return []string{byID}
	}
	return []string{strings.ToLower(uinfo.Email), byID}
}
