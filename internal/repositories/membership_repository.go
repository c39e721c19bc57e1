package repositories

import (
	"context"

	"github.com/jmoiron/sqlx"
)

// MembershipRepository answers whether a user may see and write a group's posts.
// Membership itself is managed elsewhere; this service only reads it.
type MembershipRepository interface {
	IsMember(ctx context.Context, groupID int64, userID int64) (bool, error)
}

// MembershipRepo is a sqlx implementation of MembershipRepository.
type MembershipRepo struct {
	db *sqlx.DB
}

// NewMembershipRepo constructs a MembershipRepo.
func NewMembershipRepo(db *sqlx.DB) *MembershipRepo {
	return &MembershipRepo{db: db}
}

// IsMember checks membership.
func (r *MembershipRepo) IsMember(ctx context.Context, groupID int64, userID int64) (bool, error) {
	var exists bool
	err := r.db.GetContext(ctx, &exists, `SELECT EXISTS(SELECT 1 FROM group_members WHERE group_id=$1 AND user_id=$2)`, groupID, userID)
	return exists, err
}
