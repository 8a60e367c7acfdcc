package service

import (
	"campus-im/internal/model"
	"campus-im/internal/repository"
	"campus-im/pkg/logger"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// The user-deletion cascade. The store has no native trigger mechanism, so
// the two phases are sequenced explicitly around the row deletion, all
// inside the caller's transaction:
//
//	phase 1 (row still present): stamp deleted_sender/deleted_recipient on
//	messages by matching the live foreign keys, then sever those keys and
//	drop the dependent rows (friendships, reactions, sessions, memberships)
//	and null admin_id on administered groups.
//
//	phase 2 (row gone): every group left without an admin gets a remaining
//	member promoted, or is deleted when nobody is left.
//
// Phase 1 must complete before the user row goes away because it matches on
// sender_id/recipient_id equal to the disappearing id; phase 2 must run
// after, because it keys off the nulled admin_id state.
type cascadeRunner struct {
	tx   *gorm.DB
	pick func(n int) int // index draw over a group's member list
}

// beforeUserDelete is phase 1.
func (c *cascadeRunner) beforeUserDelete(userID uuid.UUID) error {
	messages := repository.NewMessageRepository(c.tx)

	if err := messages.MarkSenderDeleted(userID); err != nil {
		return err
	}
	if err := messages.MarkRecipientDeleted(userID); err != nil {
		return err
	}
	if err := messages.SeverUserLinks(userID); err != nil {
		return err
	}

	if err := repository.NewFriendshipRepository(c.tx).DeleteAllForUser(userID); err != nil {
		return err
	}
	if err := repository.NewReactionRepository(c.tx).DeleteAllForUser(userID); err != nil {
		return err
	}
	if err := repository.NewSessionRepository(c.tx).DeleteAllForUser(userID); err != nil {
		return err
	}
	if err := repository.NewGroupRepository(c.tx).RemoveMemberships(userID); err != nil {
		return err
	}
	// Notifications stay; the housekeeping job prunes orphans.

	return repository.NewGroupRepository(c.tx).ClearAdminFor(userID)
}

// afterUserDelete is phase 2.
func (c *cascadeRunner) afterUserDelete() error {
	groups := repository.NewGroupRepository(c.tx)

	adminless, err := groups.FindAdminless()
	if err != nil {
		return err
	}

	for _, g := range adminless {
		if err := c.settleGroupAdmin(g); err != nil {
			return err
		}
	}
	return nil
}

// settleGroupAdmin restores the one-admin invariant for a single group:
// promote a remaining member, or delete the group when none remain. The
// member draw is uniformly random; which member wins is unspecified and
// repeated runs may pick differently.
func (c *cascadeRunner) settleGroupAdmin(g *model.Group) error {
	groups := repository.NewGroupRepository(c.tx)

	members, err := groups.ListMembers(g.ID)
	if err != nil {
		return err
	}

	if len(members) == 0 {
		logger.Info("deleting empty group",
			zap.String("group_id", g.ID.String()),
		)
		return groups.Delete(g.ID)
	}

	successor := members[c.pick(len(members))]
	if err := groups.SetAdmin(g.ID, &successor.UserID); err != nil {
		return err
	}
	if err := groups.SetMemberRole(g.ID, successor.UserID, model.RoleAdmin); err != nil {
		return err
	}

	logger.Info("promoted group admin",
		zap.String("group_id", g.ID.String()),
		zap.String("admin_id", successor.UserID.String()),
	)
	return nil
}
