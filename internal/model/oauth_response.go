// Package model contain gorm model for recording data to database
package model

// GoogleUserInfo is the subset of Google's userinfo response used for login
type GoogleUserInfo struct {
	GID       string `json:"sub"`
	FirstName string `json:"given_name"`
	LastName  string `json:"family_name"`
	Email     string `json:"email"`
}

// AccessToken struct holds the access token data
type AccessToken struct {
	Token string `json:"token"`
}

// AuthResponse struct holds the response data for login or registration.
// Profile is either Employer or Applicant depending on user role.
type AuthResponse struct {
	User        User        `json:"user"`
	Profile     interface{} `json:"profile"`
	AccessToken string      `json:"access_token"`
}

// SetAccessToken sets the access token in the AuthResponse
func (r *AuthResponse) SetAccessToken(accessToken string) {
	r.AccessToken = accessToken
}

// ProfileResponse pairs a user with its employer or applicant profile
type ProfileResponse struct {
	User    User        `json:"user"`
	Profile interface{} `json:"profile"`
}
