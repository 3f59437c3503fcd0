package caseopen

import (
	"context"
	"errors"
	"sync"

	"vaultory_backend/internal/config"
	"vaultory_backend/internal/model"
	"vaultory_backend/internal/repository"
	"vaultory_backend/internal/service"

	"github.com/avito-tech/go-transaction-manager/trm/v2"
)

var (
	ErrCaseNotFound     = errors.New("case not found")
	ErrCaseInactive     = errors.New("case is not active")
	ErrNotEnoughBalance = errors.New("not enough balance")
	ErrOpeningNotFound  = errors.New("opening not found")
	ErrAlreadyFinalized = errors.New("opening already finalized")
	ErrUnknownAction    = errors.New("unknown outcome action")
)

// DropBroadcaster - получатель событий ленты дропов (websocket-хаб)
type DropBroadcaster interface {
	BroadcastDrop(drop model.LiveDrop)
}

type serv struct {
	caseRepo      repository.CaseRepository
	userRepo      repository.UserRepository
	openingRepo   repository.OpeningRepository
	inventoryRepo repository.InventoryRepository
	counterRepo   repository.CounterRepository
	dropsRepo     repository.DropsRepository
	txManager     trm.Manager
	rouletteCfg   config.RouletteConfig
	broadcaster   DropBroadcaster
	rng           Rand

	// Засев счетчика из БД выполняется один раз на процесс
	seedOnce sync.Once
}

// NewCaseService создает сервис открытия кейсов.
// broadcaster может быть nil - тогда лента дропов пишется только в Redis
func NewCaseService(
	caseRepo repository.CaseRepository,
	userRepo repository.UserRepository,
	openingRepo repository.OpeningRepository,
	inventoryRepo repository.InventoryRepository,
	counterRepo repository.CounterRepository,
	dropsRepo repository.DropsRepository,
	txManager trm.Manager,
	rouletteCfg config.RouletteConfig,
	broadcaster DropBroadcaster,
) service.CaseService {
	return &serv{
		caseRepo:      caseRepo,
		userRepo:      userRepo,
		openingRepo:   openingRepo,
		inventoryRepo: inventoryRepo,
		counterRepo:   counterRepo,
		dropsRepo:     dropsRepo,
		txManager:     txManager,
		rouletteCfg:   rouletteCfg,
		broadcaster:   broadcaster,
		rng:           DefaultRand,
	}
}

func (s *serv) ListCases(ctx context.Context) ([]model.Case, error) {
	return s.caseRepo.ListCases(ctx, true)
}

func (s *serv) GetCaseItems(ctx context.Context, caseID int) ([]model.CaseItem, error) {
	return s.caseRepo.GetCaseItems(ctx, caseID)
}

func (s *serv) RecentDrops(ctx context.Context, limit int) ([]model.LiveDrop, error) {
	return s.dropsRepo.Recent(ctx, limit)
}
