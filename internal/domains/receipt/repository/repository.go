package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"

	"roomdesk/infras/otel"
	"roomdesk/infras/postgres"
	"roomdesk/internal/domains/receipt/model"
	gDto "roomdesk/shared/dto"
	gRepo "roomdesk/shared/repository"
)

type Receipt interface {
	Insert(ctx context.Context, model model.Receipt) error
	GetByCode(ctx context.Context, userID, code string) (model.Receipt, error)
	GetAll(ctx context.Context, userID string, params gDto.QueryParams) ([]model.Receipt, error)
	Count(ctx context.Context, userID string) (int, error)
}

type repositoryImpl struct {
	gRepo.Repository[model.Receipt]
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Receipt {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Receipt](model.EntityName, model.TableName, model.FieldID, db, otel),
		otel:       otel,
	}
}

func (r *repositoryImpl) GetByCode(ctx context.Context, userID, code string) (model.Receipt, error) {
	return r.Get(ctx, gRepo.Where{ //nolint:wrapcheck
		model.FieldUserID:           userID,
		model.FieldConfirmationCode: code,
	})
}

func (r *repositoryImpl) GetAll(ctx context.Context, userID string, params gDto.QueryParams) ([]model.Receipt, error) {
	return r.Repository.GetAll(ctx, params, gRepo.Where{model.FieldUserID: userID}, model.FieldCreatedAt) //nolint:wrapcheck
}

func (r *repositoryImpl) Count(ctx context.Context, userID string) (int, error) {
	return r.Repository.Count(ctx, gRepo.Where{model.FieldUserID: userID}) //nolint:wrapcheck
}
