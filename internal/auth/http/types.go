package http

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"

	"github.com/gatekeephq/gatekeep/internal/auth/domain"
)

// ErrorResponse is the uniform error body for every failed request.
type ErrorResponse struct {
	Error            string `json:"error"`
	ErrorDescription string `json:"error_description,omitempty"`
}

type LoginRequest struct {
	Email      string `json:"email"`
	Password   string `json:"password"`
	RememberMe bool   `json:"remember_me"`
}

func (r LoginRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Email, validation.Required, is.Email),
		validation.Field(&r.Password, validation.Required),
	)
}

type SignupRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Metadata string `json:"metadata"`
}

func (r SignupRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Email, validation.Required, is.Email),
		validation.Field(&r.Password, validation.Required, validation.Length(8, 128)),
	)
}

// UpdateAccountRequest carries a partial account update. Absent fields
// mean "leave unchanged"; for Permissions an explicit empty array
// clears the grant while omitting the field keeps it.
type UpdateAccountRequest struct {
	Password    string `json:"password"`
	Active      *bool  `json:"active"`
	Pending     *bool  `json:"pending"`
	Permissions []int  `json:"permissions"`
}

func (r UpdateAccountRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Password, validation.Length(8, 128)),
	)
}

type MetadataRequest struct {
	Metadata string `json:"metadata"`
}

type InviteRequest struct {
	Email       string `json:"email"`
	Permissions []int  `json:"permissions"`
}

func (r InviteRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Email, validation.Required, is.Email),
	)
}

type InviteUpdateRequest struct {
	Permissions []int `json:"permissions"`
}

type NodeCreateRequest struct {
	ID          string `json:"id"`
	DefaultText string `json:"default_text"`
}

func (r NodeCreateRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.ID, validation.Required, validation.Length(1, 256)),
	)
}

type NodeUpdateRequest struct {
	DefaultText string `json:"default_text"`
}

// AccountResponse is the safe account projection. The password hash
// never leaves the service.
type AccountResponse struct {
	Email       string    `json:"email"`
	Active      bool      `json:"active"`
	Pending     bool      `json:"pending"`
	Permissions []int     `json:"permissions"`
	Metadata    string    `json:"metadata"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func toAccountResponse(a domain.Account) AccountResponse {
	permissions := a.Permissions
	if permissions == nil {
		permissions = []int{}
	}
	return AccountResponse{
		Email:       a.Email,
		Active:      a.Active,
		Pending:     a.Pending,
		Permissions: permissions,
		Metadata:    a.Metadata,
		CreatedAt:   a.CreatedAt,
		UpdatedAt:   a.UpdatedAt,
	}
}

type SessionResponse struct {
	Account   AccountResponse `json:"account"`
	ExpiresAt time.Time       `json:"expires_at"`
}

type InviteResponse struct {
	Email       string    `json:"email"`
	Permissions []int     `json:"permissions"`
	CreatedBy   string    `json:"created_by"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func toInviteResponse(i domain.Invite) InviteResponse {
	permissions := i.Permissions
	if permissions == nil {
		permissions = []int{}
	}
	return InviteResponse{
		Email:       i.Email,
		Permissions: permissions,
		CreatedBy:   i.CreatedBy,
		CreatedAt:   i.CreatedAt,
		UpdatedAt:   i.UpdatedAt,
	}
}

type NodeResponse struct {
	ID          string    `json:"id"`
	DefaultText string    `json:"default_text"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func toNodeResponse(n domain.Node) NodeResponse {
	return NodeResponse{
		ID:          n.ID,
		DefaultText: n.DefaultText,
		CreatedAt:   n.CreatedAt,
		UpdatedAt:   n.UpdatedAt,
	}
}

type PermissionsResponse struct {
	Permissions []domain.Permission `json:"permissions"`
}

type HealthResponse struct {
	Status  string        `json:"status"`
	Uptime  string        `json:"uptime"`
	Version string        `json:"version"`
	Checks  *HealthChecks `json:"checks,omitempty"`
}

type HealthChecks struct {
	Database string `json:"database"`
}
