package service

import (
	"context"

	"visithub-backend/internal/domain"
	"visithub-backend/internal/repository"
)

type teamAuthorizer struct {
	teamRepo repository.TeamRepository
}

// NewTeamAuthorizer builds the Authorizer used by the gate: admins hold a
// universal override, everyone else must belong to the visit's team.
func NewTeamAuthorizer(teamRepo repository.TeamRepository) Authorizer {
	return &teamAuthorizer{teamRepo: teamRepo}
}

func (a *teamAuthorizer) IsPrivileged(actor domain.Actor) bool {
	return actor.IsAdmin
}

func (a *teamAuthorizer) IsMember(ctx context.Context, actor domain.Actor, teamID int32) (bool, error) {
	return a.teamRepo.IsMember(ctx, teamID, actor.ID)
}
