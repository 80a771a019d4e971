package domain

// Role represents an account role in the system
type Role string

const (
	RoleAdmin     Role = "admin"
	RoleProcessor Role = "processor"
)

// Valid reports whether r is a known role
func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleProcessor
}

// PrimordialAccountID is the seed admin that can never be deleted
const PrimordialAccountID uint = 1

// RequestStatus is the review state of a submitted request
type RequestStatus string

const (
	StatusPending  RequestStatus = "pending"
	StatusArchived RequestStatus = "archived"
)

// Language of a submission, as chosen in the SPA language switcher
const (
	LanguageEnglish = "en"
	LanguageFrench  = "fr"
)

// RequestKind names a request collection (used for logs and metrics)
type RequestKind string

const (
	KindContact RequestKind = "contact"
	KindTour    RequestKind = "tour"
)
