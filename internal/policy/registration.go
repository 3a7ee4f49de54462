package policy

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"JobBoard-backend/internal/apperror"
	"JobBoard-backend/internal/database"
	"JobBoard-backend/internal/model"
	"JobBoard-backend/internal/utilities"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const usernameTakenMessage = "Username already exists"

// ErrUsernameTaken is wrapped by the validation error Register returns for a duplicate username
var ErrUsernameTaken = fmt.Errorf("%w: username taken", apperror.ErrValidation)

// RegisterInput is everything needed to create a user and its role profile.
// Password may be empty only for users signing in with Google.
type RegisterInput struct {
	Username  string
	FirstName string
	LastName  string
	Email     string
	Password  string
	Role      string
	GoogleID  string
}

// Registration is a freshly created user and its profile
type Registration struct {
	User    model.User
	Profile interface{}
}

// Register creates the User and exactly one Employer or Applicant in one transaction.
// Any failure leaves no User behind.
func (p *Policy) Register(ctx context.Context, in RegisterInput) (Registration, error) {
	var reg Registration

	in.Username = strings.TrimSpace(in.Username)
	in.Role = strings.ToUpper(strings.TrimSpace(in.Role))

	switch {
	case in.Username == "":
		return reg, apperror.Validation("username is required")
	case in.Password == "" && in.GoogleID == "":
		return reg, apperror.Validation("password is required")
	case in.Role != model.RoleEmployer && in.Role != model.RoleApplicant:
		return reg, apperror.Validation(fmt.Sprintf("user_type must be %s or %s", model.RoleEmployer, model.RoleApplicant))
	}

	var hashed string
	if in.Password != "" {
		var err error
		hashed, err = utilities.HashPassword(in.Password)
		if err != nil {
			return reg, fmt.Errorf("failed to hash password: %w", err)
		}
	}

	err := p.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var taken int64
		if err := tx.Model(&model.User{}).Where("username = ?", in.Username).Count(&taken).Error; err != nil {
			return err
		}
		if taken > 0 {
			return apperror.New(http.StatusBadRequest, usernameTakenMessage, ErrUsernameTaken)
		}

		user := model.User{
			Username: in.Username,
			EditableUserInfo: model.EditableUserInfo{
				FirstName: in.FirstName,
				LastName:  in.LastName,
				Email:     in.Email,
			},
			Password: hashed,
			GoogleID: in.GoogleID,
			Role:     in.Role,
		}
		if err := tx.Create(&user).Error; err != nil {
			return err
		}

		var profile interface{}
		if in.Role == model.RoleEmployer {
			profile = &model.Employer{UserID: user.ID}
		} else {
			profile = &model.Applicant{UserID: user.ID}
		}
		if err := tx.Omit(clause.Associations).Create(profile).Error; err != nil {
			return err
		}

		reg = Registration{User: user, Profile: profile}
		return nil
	})

	var appErr *apperror.AppError
	switch {
	case err == nil:
		return reg, nil
	case errors.As(err, &appErr):
		return Registration{}, err
	case database.IsUniqueViolation(err):
		return Registration{}, apperror.New(http.StatusBadRequest, usernameTakenMessage, ErrUsernameTaken)
	default:
		return Registration{}, fmt.Errorf("failed to register user: %w", err)
	}
}

// Authenticate checks a username and password pair
func (p *Policy) Authenticate(ctx context.Context, username string, password string) (model.User, error) {
	var user model.User
	err := p.DB.WithContext(ctx).Where("username = ?", username).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return user, apperror.Unauthorized("Username or password is incorrect")
	}
	if err != nil {
		return user, fmt.Errorf("database error: %w", err)
	}

	if user.Password == "" || !utilities.VerifyPassword(password, user.Password) {
		return model.User{}, apperror.Unauthorized("Username or password is incorrect")
	}
	return user, nil
}

// FindByGoogleID returns the user linked to a Google account, or nil when none is
func (p *Policy) FindByGoogleID(ctx context.Context, gid string) (*model.User, error) {
	var user model.User
	err := p.DB.WithContext(ctx).Where("google_id = ?", gid).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("database error: %w", err)
	}
	return &user, nil
}
