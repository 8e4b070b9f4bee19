package shortlist

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"varanbook/internal/database"
	"varanbook/internal/domain"
	"varanbook/internal/repository"
	"varanbook/internal/services"
)

type Service struct {
	shortlists *repository.ShortlistRepository
	profiles   *repository.ProfileRepository
	queue      services.NotificationQueue
}

func NewService(shortlists *repository.ShortlistRepository, profiles *repository.ProfileRepository, queue services.NotificationQueue) *Service {
	return &Service{shortlists: shortlists, profiles: profiles, queue: queue}
}

// inTenant binds the actor's tenant for the whole operation so every
// statement runs under the row-security policies on PostgreSQL.
func (s *Service) inTenant(ctx context.Context, actor *domain.User, fn func(shortlists *repository.ShortlistRepository, profiles *repository.ProfileRepository) error) error {
	return database.TenantTransaction(ctx, s.shortlists.DB(), actor.TenantID, func(tx *gorm.DB) error {
		return fn(repository.NewShortlistRepository(tx), repository.NewProfileRepository(tx))
	})
}

// Create expresses interest in another profile of the same tenant.
// Cross-tenant targets read as absent; the target must be published.
func (s *Service) Create(ctx context.Context, actor *domain.User, req CreateShortlistRequest) (*domain.Shortlist, error) {
	targetID, err := uuid.Parse(req.ToProfileID)
	if err != nil {
		return nil, ErrTargetNotFound
	}

	var (
		entry        *domain.Shortlist
		targetUserID uuid.UUID
	)
	err = s.inTenant(ctx, actor, func(shortlists *repository.ShortlistRepository, profiles *repository.ProfileRepository) error {
		own, err := ownProfile(ctx, profiles, actor)
		if err != nil {
			return err
		}
		if targetID == own.ID {
			return ErrSelfShortlist
		}

		target, err := profiles.GetByID(ctx, targetID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrTargetNotFound
			}
			return err
		}
		if target.TenantID != own.TenantID {
			return ErrTargetNotFound
		}
		if target.Status != domain.ProfileActive {
			return ErrTargetNotActive
		}

		exists, err := shortlists.ExistsPair(ctx, own.ID, target.ID)
		if err != nil {
			return err
		}
		if exists {
			return ErrDuplicate
		}

		entry = &domain.Shortlist{
			TenantID:      own.TenantID,
			FromProfileID: own.ID,
			ToProfileID:   target.ID,
			Status:        domain.Shortlisted,
			Note:          req.Note,
		}
		targetUserID = target.UserID
		return shortlists.Create(ctx, entry)
	})
	if err != nil {
		return nil, err
	}

	// Notify after commit; an enqueue failure must not undo the entry.
	services.EnqueueIgnoreError(s.queue, services.NotificationJob{
		TenantID: entry.TenantID,
		UserID:   targetUserID,
		Kind:     "shortlist_received",
		Params:   map[string]string{"from_profile_id": entry.FromProfileID.String()},
	})

	return entry, nil
}

func (s *Service) ListSent(ctx context.Context, actor *domain.User, req ListRequest) (*ListResponse, error) {
	var (
		items []domain.Shortlist
		total int64
	)
	err := s.inTenant(ctx, actor, func(shortlists *repository.ShortlistRepository, profiles *repository.ProfileRepository) error {
		own, err := ownProfile(ctx, profiles, actor)
		if err != nil {
			return err
		}
		items, total, err = shortlists.ListSent(ctx, own.ID, (req.Page-1)*req.PageSize, req.PageSize)
		return err
	})
	if err != nil {
		return nil, err
	}
	return &ListResponse{Items: items, Total: total, Page: req.Page, PageSize: req.PageSize}, nil
}

func (s *Service) ListReceived(ctx context.Context, actor *domain.User, req ListRequest) (*ListResponse, error) {
	var (
		items []domain.Shortlist
		total int64
	)
	err := s.inTenant(ctx, actor, func(shortlists *repository.ShortlistRepository, profiles *repository.ProfileRepository) error {
		own, err := ownProfile(ctx, profiles, actor)
		if err != nil {
			return err
		}
		items, total, err = shortlists.ListReceived(ctx, own.ID, (req.Page-1)*req.PageSize, req.PageSize)
		return err
	})
	if err != nil {
		return nil, err
	}
	return &ListResponse{Items: items, Total: total, Page: req.Page, PageSize: req.PageSize}, nil
}

// Respond lets the recipient accept or reject a pending entry.
func (s *Service) Respond(ctx context.Context, actor *domain.User, id uuid.UUID, accept bool) (*domain.Shortlist, error) {
	var (
		entry        *domain.Shortlist
		senderUserID *uuid.UUID
	)
	err := s.inTenant(ctx, actor, func(shortlists *repository.ShortlistRepository, profiles *repository.ProfileRepository) error {
		own, err := ownProfile(ctx, profiles, actor)
		if err != nil {
			return err
		}
		entry, err = get(ctx, shortlists, own, id)
		if err != nil {
			return err
		}
		if entry.ToProfileID != own.ID {
			return ErrNotRecipient
		}
		if entry.Status != domain.Shortlisted {
			return ErrAlreadyDecided
		}

		status := domain.ShortlistRejected
		if accept {
			status = domain.ShortlistAccepted
		}
		if err := shortlists.UpdateStatus(ctx, entry.ID, status); err != nil {
			return err
		}
		entry.Status = status

		if sender, err := profiles.GetByID(ctx, entry.FromProfileID); err == nil {
			senderUserID = &sender.UserID
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if senderUserID != nil {
		services.EnqueueIgnoreError(s.queue, services.NotificationJob{
			TenantID: entry.TenantID,
			UserID:   *senderUserID,
			Kind:     "shortlist_" + string(entry.Status),
			Params:   map[string]string{"shortlist_id": entry.ID.String()},
		})
	}

	return entry, nil
}

// Withdraw removes a pending entry; only the sender may do so.
func (s *Service) Withdraw(ctx context.Context, actor *domain.User, id uuid.UUID) error {
	return s.inTenant(ctx, actor, func(shortlists *repository.ShortlistRepository, profiles *repository.ProfileRepository) error {
		own, err := ownProfile(ctx, profiles, actor)
		if err != nil {
			return err
		}
		entry, err := get(ctx, shortlists, own, id)
		if err != nil {
			return err
		}
		if entry.FromProfileID != own.ID {
			return ErrNotSender
		}
		return shortlists.Delete(ctx, entry.ID)
	})
}

func ownProfile(ctx context.Context, profiles *repository.ProfileRepository, actor *domain.User) (*domain.Profile, error) {
	own, err := profiles.GetByUserID(ctx, actor.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNoProfile
		}
		return nil, err
	}
	return own, nil
}

// get loads an entry and hides cross-tenant rows behind not-found.
func get(ctx context.Context, shortlists *repository.ShortlistRepository, own *domain.Profile, id uuid.UUID) (*domain.Shortlist, error) {
	entry, err := shortlists.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrShortlistNotFound
		}
		return nil, err
	}
	if entry.TenantID != own.TenantID {
		return nil, ErrShortlistNotFound
	}
	return entry, nil
}
