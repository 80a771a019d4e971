package services

import (
	"context"
	"strings"

	"github.com/appfrabric/roilux/internal/adapters/persistence/models"
	"github.com/appfrabric/roilux/internal/adapters/persistence/repositories"
	"github.com/appfrabric/roilux/internal/core/domain"
	"github.com/appfrabric/roilux/internal/pkg/metrics"

	"go.uber.org/zap"
)

// IntakeService accepts public submissions
type IntakeService struct {
	contacts repositories.ContactRepository
	tours    repositories.TourRepository
	log      *zap.SugaredLogger
}

// NewIntakeService creates a new intake service
func NewIntakeService(contacts repositories.ContactRepository, tours repositories.TourRepository, log *zap.SugaredLogger) *IntakeService {
	return &IntakeService{
		contacts: contacts,
		tours:    tours,
		log:      log,
	}
}

// ContactInput is a contact form submission
type ContactInput struct {
	Name     string `json:"name" validate:"required,max=100"`
	Email    string `json:"email" validate:"required,mailbox,max=255"`
	Company  string `json:"company" validate:"max=255"`
	Phone    string `json:"phone" validate:"max=50"`
	Subject  string `json:"subject" validate:"required,max=255"`
	Message  string `json:"message" validate:"required,max=5000"`
	Language string `json:"language" validate:"omitempty,oneof=en fr"`
}

// TourInput is a virtual tour booking.  The SPA posts camelCase date and
// time fields; both spellings are accepted.
type TourInput struct {
	Name          string `json:"name" validate:"required,max=100"`
	Email         string `json:"email" validate:"required,mailbox,max=255"`
	Company       string `json:"company" validate:"max=255"`
	Phone         string `json:"phone" validate:"max=50"`
	PreferredDate string `json:"preferred_date" validate:"required,max=50"`
	PreferredTime string `json:"preferred_time" validate:"required,max=50"`
	Message       string `json:"message" validate:"max=5000"`
	Language      string `json:"language" validate:"omitempty,oneof=en fr"`

	PreferredDateAlt string `json:"preferredDate" validate:"-"`
	PreferredTimeAlt string `json:"preferredTime" validate:"-"`
}

func (in *ContactInput) normalize() {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.TrimSpace(in.Email)
	in.Company = strings.TrimSpace(in.Company)
	in.Phone = strings.TrimSpace(in.Phone)
	in.Subject = strings.TrimSpace(in.Subject)
	in.Message = strings.TrimSpace(in.Message)
	in.Language = strings.ToLower(strings.TrimSpace(in.Language))
}

func (in *TourInput) normalize() {
	if strings.TrimSpace(in.PreferredDate) == "" {
		in.PreferredDate = in.PreferredDateAlt
	}
	if strings.TrimSpace(in.PreferredTime) == "" {
		in.PreferredTime = in.PreferredTimeAlt
	}
	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.TrimSpace(in.Email)
	in.Company = strings.TrimSpace(in.Company)
	in.Phone = strings.TrimSpace(in.Phone)
	in.PreferredDate = strings.TrimSpace(in.PreferredDate)
	in.PreferredTime = strings.TrimSpace(in.PreferredTime)
	in.Message = strings.TrimSpace(in.Message)
	in.Language = strings.ToLower(strings.TrimSpace(in.Language))
}

// SubmitContact validates and stores a contact message as pending
func (s *IntakeService) SubmitContact(ctx context.Context, input *ContactInput) (*models.ContactMessage, error) {
	input.normalize()
	if err := validateInput(input); err != nil {
		metrics.SubmissionsTotal.WithLabelValues(string(domain.KindContact), "invalid").Inc()
		return nil, err
	}

	msg := &models.ContactMessage{
		RequestMeta: newRequestMeta(input.Language),
		Name:        input.Name,
		Email:       input.Email,
		Company:     input.Company,
		Phone:       input.Phone,
		Subject:     input.Subject,
		Message:     input.Message,
	}
	err := s.contacts.Create(ctx, msg)
	metrics.SubmissionsTotal.WithLabelValues(string(domain.KindContact), metrics.Result(err)).Inc()
	if err != nil {
		return nil, err
	}

	s.log.Infow("📩 Contact message received", "id", msg.ID, "email", msg.Email, "language", msg.Language)
	return msg, nil
}

// SubmitTour validates and stores a virtual tour request as pending
func (s *IntakeService) SubmitTour(ctx context.Context, input *TourInput) (*models.TourRequest, error) {
	input.normalize()
	if err := validateInput(input); err != nil {
		metrics.SubmissionsTotal.WithLabelValues(string(domain.KindTour), "invalid").Inc()
		return nil, err
	}

	tour := &models.TourRequest{
		RequestMeta:   newRequestMeta(input.Language),
		Name:          input.Name,
		Email:         input.Email,
		Company:       input.Company,
		Phone:         input.Phone,
		PreferredDate: input.PreferredDate,
		PreferredTime: input.PreferredTime,
		Message:       input.Message,
	}
	err := s.tours.Create(ctx, tour)
	metrics.SubmissionsTotal.WithLabelValues(string(domain.KindTour), metrics.Result(err)).Inc()
	if err != nil {
		return nil, err
	}

	s.log.Infow("📅 Virtual tour requested", "id", tour.ID, "email", tour.Email, "date", tour.PreferredDate)
	return tour, nil
}

func newRequestMeta(language string) models.RequestMeta {
	if language == "" {
		language = domain.LanguageEnglish
	}
	return models.RequestMeta{
		Status:   domain.StatusPending,
		Language: language,
	}
}
