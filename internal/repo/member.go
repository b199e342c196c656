package repo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"shortmovie-about/internal/apperrors"
	"shortmovie-about/internal/domain/models"
)

const memberColumns = `id, full_name, nim, age, job, location, instagram_account,
	link_to_instagram, quote, image_path, created_at, updated_at`

type MemberRepo struct {
	storage *sqlx.DB
}

func NewMemberRepo(storage *sqlx.DB) *MemberRepo {
	return &MemberRepo{storage: storage}
}

func (r *MemberRepo) ListMembers(ctx context.Context) ([]models.Member, error) {
	const op = "repo.member.ListMembers"

	query := `SELECT ` + memberColumns + ` FROM members ORDER BY id`

	members := make([]models.Member, 0)
	if err := r.storage.SelectContext(ctx, &members, query); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return members, nil
}

func (r *MemberRepo) GetMember(ctx context.Context, id uint) (*models.Member, error) {
	const op = "repo.member.GetMember"

	query := `SELECT ` + memberColumns + ` FROM members WHERE id = $1`

	var member models.Member
	err := r.storage.GetContext(ctx, &member, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, apperrors.ErrMemberNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &member, nil
}
