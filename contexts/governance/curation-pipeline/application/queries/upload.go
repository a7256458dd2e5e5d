package queries

import (
	"context"

	"curia/contexts/governance/curation-pipeline/domain/entities"
	"curia/contexts/governance/curation-pipeline/ports"
)

type UploadQueryUseCase struct {
	Uploads ports.UploadRepository
}

func (uc UploadQueryUseCase) GetUpload(ctx context.Context, uploadID uint64) (entities.Upload, error) {
	return uc.Uploads.GetUpload(ctx, uploadID)
}

func (uc UploadQueryUseCase) GetReview(ctx context.Context, uploadID uint64) (entities.ExpertReview, error) {
	return uc.Uploads.GetReview(ctx, uploadID)
}

func (uc UploadQueryUseCase) ListApprovedTokens(ctx context.Context) ([]uint64, error) {
	return uc.Uploads.ListApprovedTokens(ctx)
}
