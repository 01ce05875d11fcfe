package notice

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	// errors
	ErrNotFound = errors.New("notice not found")
	ErrNotOwner = errors.New("only the author may modify this notice")
)

const defaultPriority = 2 // medium

type (
	Repository interface {
		CreateNotice(ctx context.Context, n Notice) (Notice, error)
		QueryAllNotices(ctx context.Context) ([]Notice, error)
		GetNoticeByID(ctx context.Context, id string) (Notice, error)
		UpdateNotice(ctx context.Context, n Notice) (Notice, error)
		DeleteNotice(ctx context.Context, id string) error
	}

	Service struct {
		repo Repository
	}
)

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (svc *Service) Create(ctx context.Context, nn NewNotice, authorID string) (Notice, error) {
	now := time.Now().UTC()
	if nn.Priority == 0 {
		nn.Priority = defaultPriority
	}
	n := Notice{
		ID:        uuid.New().String(),
		Title:     nn.Title,
		Content:   nn.Content,
		StartDate: nn.StartDate,
		EndDate:   nn.EndDate,
		Audience:  nn.Audience,
		Priority:  nn.Priority,
		CreatedBy: authorID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	return svc.repo.CreateNotice(ctx, n)
}

func (svc *Service) QueryAll(ctx context.Context) ([]Notice, error) {
	return svc.repo.QueryAllNotices(ctx)
}

func (svc *Service) GetByID(ctx context.Context, id string) (Notice, error) {
	return svc.repo.GetNoticeByID(ctx, id)
}

// Update applies un to the notice iff actorID authored it.
func (svc *Service) Update(ctx context.Context, id string, un UpdateNotice, actorID string) (Notice, error) {
	n, err := svc.repo.GetNoticeByID(ctx, id)
	if err != nil {
		return Notice{}, err
	}
	if n.CreatedBy != actorID {
		return Notice{}, ErrNotOwner
	}
	n = un.apply(n)
	n.UpdatedAt = time.Now().UTC()
	return svc.repo.UpdateNotice(ctx, n)
}

// Delete removes the notice iff actorID authored it.
func (svc *Service) Delete(ctx context.Context, id, actorID string) error {
	n, err := svc.repo.GetNoticeByID(ctx, id)
	if err != nil {
		return err
	}
	if n.CreatedBy != actorID {
		return ErrNotOwner
	}
	return svc.repo.DeleteNotice(ctx, id)
}
