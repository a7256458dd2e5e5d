package queries

import (
	"context"
	"strings"

	"curia/contexts/governance/membership-service/domain/entities"
	"curia/contexts/governance/membership-service/ports"
)

type MemberQueryUseCase struct {
	Members ports.MemberRepository
}

func (uc MemberQueryUseCase) GetMember(ctx context.Context, accountID string) (entities.Member, error) {
	return uc.Members.GetMember(ctx, strings.TrimSpace(accountID))
}
