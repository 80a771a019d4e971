package models

import (
	"time"

	"github.com/appfrabric/roilux/internal/core/domain"

	"gorm.io/gorm"
)

// ============================================================
// Accounts
// ============================================================

// Account represents admin_users table
type Account struct {
	ID           uint        `gorm:"primaryKey" json:"id"`
	Username     string      `gorm:"uniqueIndex;size:50;not null" json:"username"`
	Email        string      `gorm:"uniqueIndex;size:255;not null" json:"email"`
	PasswordHash string      `gorm:"size:255;not null" json:"password_hash"`
	Role         domain.Role `gorm:"size:20;not null;default:'processor'" json:"role"`
	TokenVersion int         `gorm:"not null;default:0" json:"token_version"`
	CreatedAt    time.Time   `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time   `gorm:"autoUpdateTime" json:"updated_at"`
	LastLogin    *time.Time  `json:"last_login"`
}

func (Account) TableName() string {
	return "admin_users"
}

// IsAdmin reports whether the account holds the admin role
func (a *Account) IsAdmin() bool {
	return a.Role == domain.RoleAdmin
}

// AccountResponse DTO
type AccountResponse struct {
	ID        uint        `json:"id"`
	Username  string      `json:"username"`
	Email     string      `json:"email"`
	Role      domain.Role `json:"role"`
	CreatedAt time.Time   `json:"created_at"`
	LastLogin *time.Time  `json:"last_login"`
}

func (a *Account) ToResponse() *AccountResponse {
	return &AccountResponse{
		ID:        a.ID,
		Username:  a.Username,
		Email:     a.Email,
		Role:      a.Role,
		CreatedAt: a.CreatedAt,
		LastLogin: a.LastLogin,
	}
}

// AccountSummary is the public directory entry
type AccountSummary struct {
	ID       uint        `json:"id"`
	Username string      `json:"username"`
	Email    string      `json:"email"`
	Role     domain.Role `json:"role"`
}

func (a *Account) ToSummary() *AccountSummary {
	return &AccountSummary{
		ID:       a.ID,
		Username: a.Username,
		Email:    a.Email,
		Role:     a.Role,
	}
}

// ============================================================
// Requests (contact messages, virtual tours)
// ============================================================

// RequestMeta holds the fields shared by every reviewable request
type RequestMeta struct {
	ID        uint                 `gorm:"primaryKey" json:"id"`
	Status    domain.RequestStatus `gorm:"size:20;not null;default:'pending';index" json:"status"`
	Language  string               `gorm:"size:5;not null;default:'en'" json:"language"`
	CreatedAt time.Time            `gorm:"index" json:"created_at"`
	UpdatedAt time.Time            `json:"updated_at"`
}

// Meta gives generic code access to the shared request fields
func (m *RequestMeta) Meta() *RequestMeta {
	return m
}

// ContactMessage represents contact_messages table
type ContactMessage struct {
	RequestMeta
	Name    string `gorm:"size:100;not null" json:"name"`
	Email   string `gorm:"size:255;not null" json:"email"`
	Company string `gorm:"size:255" json:"company,omitempty"`
	Phone   string `gorm:"size:50" json:"phone,omitempty"`
	Subject string `gorm:"size:255;not null" json:"subject"`
	Message string `gorm:"type:text;not null" json:"message"`
}

func (ContactMessage) TableName() string {
	return "contact_messages"
}

// TourRequest represents virtual_tours table
type TourRequest struct {
	RequestMeta
	Name          string `gorm:"size:100;not null" json:"name"`
	Email         string `gorm:"size:255;not null" json:"email"`
	Company       string `gorm:"size:255" json:"company,omitempty"`
	Phone         string `gorm:"size:50" json:"phone,omitempty"`
	PreferredDate string `gorm:"size:50;not null" json:"preferred_date"`
	PreferredTime string `gorm:"size:50;not null" json:"preferred_time"`
	Message       string `gorm:"type:text" json:"message,omitempty"`
}

func (TourRequest) TableName() string {
	return "virtual_tours"
}

// Request is satisfied by pointers to ContactMessage and TourRequest
type Request[T any] interface {
	*T
	Meta() *RequestMeta
}

// AutoMigrate creates or updates the MySQL schema
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&Account{},
		&ContactMessage{},
		&TourRequest{},
	)
}
