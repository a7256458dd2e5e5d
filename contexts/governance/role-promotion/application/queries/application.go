package queries

import (
	"context"

	"curia/contexts/governance/role-promotion/domain/entities"
	"curia/contexts/governance/role-promotion/ports"
)

type ApplicationQueryUseCase struct {
	Applications ports.ApplicationRepository
}

func (uc ApplicationQueryUseCase) GetApplication(ctx context.Context, applicationID uint64) (entities.Application, error) {
	return uc.Applications.GetApplication(ctx, applicationID)
}
