package service

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"

	"shortmovie-about/internal/apperrors"
	"shortmovie-about/internal/domain/models"
	"shortmovie-about/internal/lib/logger/sl"
)

type MemberService struct {
	log        *slog.Logger
	memberRepo MemberProvider
}

type MemberProvider interface {
	ListMembers(ctx context.Context) ([]models.Member, error)
	GetMember(ctx context.Context, id uint) (*models.Member, error)
}

func NewMemberService(
	log *slog.Logger,
	memberRepo MemberProvider) *MemberService {
	return &MemberService{
		log:        log,
		memberRepo: memberRepo,
	}
}

func (s *MemberService) ListMembers(ctx context.Context) ([]models.Member, error) {
	const op = "service.member.ListMembers"

	log := s.log.With(slog.String("op", op))

	members, err := s.memberRepo.ListMembers(ctx)
	if err != nil {
		log.Error("failed to list members", sl.Err(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if members == nil {
		members = []models.Member{}
	}

	log.Debug("members listed", slog.Int("member_count", len(members)))

	return members, nil
}

// GetMember resolves a path id such as "3". Anything that is not a
// positive integer is reported as apperrors.ErrInvalidMemberID.
func (s *MemberService) GetMember(ctx context.Context, rawID string) (*models.Member, error) {
	const op = "service.member.GetMember"

	log := s.log.With(
		slog.String("op", op),
		slog.String("member_id", rawID),
	)

	id, err := strconv.ParseUint(rawID, 10, 32)
	if err != nil || id == 0 {
		log.Warn("invalid member id")
		return nil, fmt.Errorf("%s: %w", op, apperrors.ErrInvalidMemberID)
	}

	member, err := s.memberRepo.GetMember(ctx, uint(id))
	if err != nil {
		log.Error("failed to get member", sl.Err(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return member, nil
}
