package services

import (
	"context"

	"github.com/appfrabric/roilux/internal/adapters/persistence/models"
	"github.com/appfrabric/roilux/internal/adapters/persistence/repositories"
	"github.com/appfrabric/roilux/internal/core/domain"
	"github.com/appfrabric/roilux/internal/pkg/metrics"
	"github.com/appfrabric/roilux/internal/pkg/pagination"

	"go.uber.org/zap"
)

// ReviewService lists, archives and deletes one request collection.
// Every operation needs an authenticated staff account; delete is admin only.
type ReviewService[T any] struct {
	repo repositories.RequestRepository[T]
	kind domain.RequestKind
	log  *zap.SugaredLogger
}

type (
	ContactReviewService = ReviewService[models.ContactMessage]
	TourReviewService    = ReviewService[models.TourRequest]
)

// NewContactReviewService creates the review service for contact messages
func NewContactReviewService(repo repositories.ContactRepository, log *zap.SugaredLogger) *ContactReviewService {
	return &ContactReviewService{repo: repo, kind: domain.KindContact, log: log}
}

// NewTourReviewService creates the review service for virtual tours
func NewTourReviewService(repo repositories.TourRepository, log *zap.SugaredLogger) *TourReviewService {
	return &TourReviewService{repo: repo, kind: domain.KindTour, log: log}
}

// List returns one page, newest first
func (s *ReviewService[T]) List(ctx context.Context, actor *models.Account, params *pagination.Params) (*pagination.Page[*T], error) {
	if err := requireStaff(actor); err != nil {
		return nil, err
	}

	items, total, err := s.repo.List(ctx, params.Offset, params.Limit)
	if err != nil {
		return nil, err
	}
	return pagination.NewPage(items, params, total), nil
}

// Archive marks a request archived.  Archiving twice is not an error.
func (s *ReviewService[T]) Archive(ctx context.Context, actor *models.Account, id uint) (*T, error) {
	if err := requireStaff(actor); err != nil {
		return nil, err
	}

	err := s.repo.SetStatus(ctx, id, domain.StatusArchived)
	s.record("archive", err)
	if err != nil {
		return nil, err
	}

	s.log.Infow("Request archived", "kind", s.kind, "id", id, "by", actor.Username)
	return s.repo.GetByID(ctx, id)
}

// Delete permanently removes a request
func (s *ReviewService[T]) Delete(ctx context.Context, actor *models.Account, id uint) error {
	if err := requireStaff(actor); err != nil {
		return err
	}
	if !actor.IsAdmin() {
		s.record("delete", domain.ErrForbidden)
		return domain.ErrForbidden
	}

	err := s.repo.Delete(ctx, id)
	s.record("delete", err)
	if err != nil {
		return err
	}

	s.log.Infow("🗑️ Request deleted", "kind", s.kind, "id", id, "by", actor.Username)
	return nil
}

func (s *ReviewService[T]) record(action string, err error) {
	metrics.ReviewActionsTotal.WithLabelValues(string(s.kind), action, metrics.Result(err)).Inc()
}

func requireStaff(actor *models.Account) error {
	if actor == nil {
		return domain.ErrUnauthorized
	}
	if !actor.Role.Valid() {
		return domain.ErrForbidden
	}
	return nil
}
