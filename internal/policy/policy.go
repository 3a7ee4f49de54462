// Package policy decides who may see and change jobs and applications.
// Every read goes through the shared scopes so list, detail and update agree on visibility.
package policy

import (
	"context"
	"errors"
	"time"

	"JobBoard-backend/internal/database"
	"JobBoard-backend/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Policy holds the store and the clock used for deadline checks
type Policy struct {
	DB  *database.DBinstanceStruct
	Now func() time.Time
}

// NewPolicy creates a Policy reading the wall clock
func NewPolicy(db *database.DBinstanceStruct) *Policy {
	return &Policy{
		DB:  db,
		Now: time.Now,
	}
}

func (p *Policy) today() model.Date {
	return model.NewDate(p.Now())
}

// Identity is the resolved caller of a request
type Identity struct {
	User      *model.User
	Role      string
	Employer  *model.Employer
	Applicant *model.Applicant
}

// Anonymous is the identity of a caller without credentials
func Anonymous() Identity {
	return Identity{Role: model.RoleNone}
}

// IsAuthenticated reports whether a user is behind the identity
func (i Identity) IsAuthenticated() bool {
	return i.User != nil
}

// Profile returns the employer or applicant profile, or nil for NONE
func (i Identity) Profile() interface{} {
	switch {
	case i.Employer != nil:
		return i.Employer
	case i.Applicant != nil:
		return i.Applicant
	}
	return nil
}

// ResolveRole maps a user to EMPLOYER, APPLICANT or NONE.
// The stored role selects which profile is looked up; a missing profile yields NONE.
func (p *Policy) ResolveRole(ctx context.Context, user *model.User) (Identity, error) {
	if user == nil {
		return Anonymous(), nil
	}

	id := Identity{User: user, Role: model.RoleNone}

	switch user.Role {
	case model.RoleEmployer:
		employer, err := p.findEmployer(ctx, user.ID)
		if err != nil {
			return id, err
		}
		if employer != nil {
			id.Role = model.RoleEmployer
			id.Employer = employer
		}
	case model.RoleApplicant:
		applicant, err := p.findApplicant(ctx, user.ID)
		if err != nil {
			return id, err
		}
		if applicant != nil {
			id.Role = model.RoleApplicant
			id.Applicant = applicant
		}
	}

	return id, nil
}

func (p *Policy) findEmployer(ctx context.Context, userID uuid.UUID) (*model.Employer, error) {
	var employer model.Employer
	err := p.DB.WithContext(ctx).Where("user_id = ?", userID).First(&employer).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &employer, nil
}

func (p *Policy) findApplicant(ctx context.Context, userID uuid.UUID) (*model.Applicant, error) {
	var applicant model.Applicant
	err := p.DB.WithContext(ctx).Where("user_id = ?", userID).First(&applicant).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &applicant, nil
}
