package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks -mock_names=Receipt=MockReceiptService

import (
	"context"
	"fmt"

	"roomdesk/config"
	"roomdesk/infras/otel"
	"roomdesk/internal/domains/receipt/model"
	"roomdesk/internal/domains/receipt/model/dto"
	"roomdesk/internal/domains/receipt/repository"
	"roomdesk/shared"
	"roomdesk/shared/cache"
	"roomdesk/shared/constant"
	gDto "roomdesk/shared/dto"
	"roomdesk/shared/failure"

	"github.com/rs/zerolog/log"
)

const (
	cacheGetReceipt = "receipt:get"
)

type Receipt interface {
	Record(ctx context.Context, receipt model.Receipt) error
	GetAll(ctx context.Context, userID string, req gDto.QueryParams) (dto.GetReceiptsResponse, error)
	Get(ctx context.Context, userID, code string) (dto.ReceiptResponse, error)
}

type serviceImpl struct {
	repo  repository.Receipt
	cfg   *config.Config
	cache cache.RedisCache
	otel  otel.Otel
}

func New(repo repository.Receipt, cfg *config.Config, cache cache.RedisCache, otel otel.Otel) Receipt {
	return &serviceImpl{
		repo:  repo,
		cfg:   cfg,
		cache: cache,
		otel:  otel,
	}
}

func (s *serviceImpl) Record(ctx context.Context, receipt model.Receipt) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Record")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if err = s.repo.Insert(ctx, receipt); err != nil {
		log.Error().Err(err).Str("code", receipt.ConfirmationCode).Msg("failed to record receipt")

		return fmt.Errorf("failed to record receipt: %w", err)
	}

	return nil
}

func (s *serviceImpl) GetAll(ctx context.Context, userID string, req gDto.QueryParams) (res dto.GetReceiptsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	total, err := s.repo.Count(ctx, userID)
	if err != nil {
		log.Error().Err(err).Msg("failed to count receipts")

		return res, fmt.Errorf("failed to count receipts: %w", err)
	}

	models, err := s.repo.GetAll(ctx, userID, req)
	if err != nil {
		log.Error().Err(err).Msg("failed to get receipts")

		return res, fmt.Errorf("failed to get receipts: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, userID, code string) (res dto.ReceiptResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	cacheKey := shared.BuildCacheKey(cacheGetReceipt, userID, code)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for receipt")

		return res, nil
	}

	receipt, err := s.repo.GetByCode(ctx, userID, code)
	if err != nil {
		log.Error().Err(err).Msg("failed to get receipt")

		return res, fmt.Errorf("failed to get receipt: %w", err)
	}

	if receipt.ID == constant.Empty {
		return res, failure.NotFound("receipt not found") // nolint:wrapcheck
	}

	res.FromModel(receipt)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save receipt to cache")
		}
	}()

	return res, nil
}
