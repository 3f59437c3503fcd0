package app

import (
	"context"

	adminAPI "vaultory_backend/internal/api/admin"
	authAPI "vaultory_backend/internal/api/auth"
	casesAPI "vaultory_backend/internal/api/cases"
	inventoryAPI "vaultory_backend/internal/api/inventory"
	storeAPI "vaultory_backend/internal/api/store"
	"vaultory_backend/internal/config"
	"vaultory_backend/internal/config/env"
	"vaultory_backend/internal/jobs"
	"vaultory_backend/internal/middleware"
	"vaultory_backend/internal/notify"
	"vaultory_backend/internal/repository"
	"vaultory_backend/internal/repository/auth_repo"
	"vaultory_backend/internal/repository/cart_repo"
	"vaultory_backend/internal/repository/case_repo"
	"vaultory_backend/internal/repository/catalog_repo"
	"vaultory_backend/internal/repository/counter_repo"
	"vaultory_backend/internal/repository/drops_repo"
	"vaultory_backend/internal/repository/inventory_repo"
	"vaultory_backend/internal/repository/opening_repo"
	"vaultory_backend/internal/repository/order_repo"
	"vaultory_backend/internal/repository/user_repo"
	"vaultory_backend/internal/repository/withdrawal_repo"
	"vaultory_backend/internal/service"
	adminServ "vaultory_backend/internal/service/admin"
	authServ "vaultory_backend/internal/service/auth"
	"vaultory_backend/internal/service/cart"
	"vaultory_backend/internal/service/caseopen"
	"vaultory_backend/internal/service/catalog"
	inventoryServ "vaultory_backend/internal/service/inventory"
	"vaultory_backend/internal/ws"

	trmpgx "github.com/avito-tech/go-transaction-manager/drivers/pgxv5/v2"
	"github.com/avito-tech/go-transaction-manager/trm/v2"
	"github.com/avito-tech/go-transaction-manager/trm/v2/manager"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"
)

type ServiceProvider struct {
	// TXManager
	txManager trm.Manager

	// Database
	pgConfig config.PGConfig
	dbClient *pgxpool.Pool

	// Redis: счетчик открытий и лента дропов
	redisConfig config.RedisConfig
	redisClient *redis.Client

	// Auth bits
	jwtConfig config.JWTConfig
	tgConfig  config.TelegramConfig
	authRepo  repository.AuthRepository
	authServ  service.AuthService
	authHand  *authAPI.Handler

	// User bits
	userRepo repository.UserRepository

	// Case bits
	rouletteCfg  config.RouletteConfig
	caseRepo     repository.CaseRepository
	openingRepo  repository.OpeningRepository
	counterRepo  repository.CounterRepository
	dropsRepo    repository.DropsRepository
	caseServ     service.CaseService
	casesHand    *casesAPI.Handler
	dropsHub     *ws.Hub
	rouletteHand *ws.RouletteHandler

	// Store bits
	catalogRepo repository.CatalogRepository
	cartRepo    repository.CartRepository
	orderRepo   repository.OrderRepository
	catalogServ service.CatalogService
	cartServ    service.CartService
	storeHand   *storeAPI.Handler

	// Inventory bits
	inventoryRepo  repository.InventoryRepository
	withdrawalRepo repository.WithdrawalRepository
	inventoryServ  service.InventoryService
	inventoryHand  *inventoryAPI.Handler
	notifier       *notify.TelegramNotifier

	// Admin bits
	adminServ service.AdminService
	adminHand *adminAPI.Handler

	// Background jobs
	scheduler *jobs.Scheduler

	// Router and HTTP config
	httpCfg config.HTTPConfig
	router  chi.Router
}

func newServiceProvider() *ServiceProvider {
	return &ServiceProvider{}
}

func (sp *ServiceProvider) PgConfig() config.PGConfig {
	if sp.pgConfig == nil {
		cfg, err := env.NewPGConfig()
		if err != nil {
			panic("failed to get database config: " + err.Error())
		}
		sp.pgConfig = cfg
	}
	return sp.pgConfig
}

func (sp *ServiceProvider) DBClient(ctx context.Context) *pgxpool.Pool {
	if sp.dbClient == nil {
		dbc, err := pgxpool.New(ctx, sp.PgConfig().DSN())
		if err != nil {
			panic("failed to create db pool: " + err.Error())
		}
		err = dbc.Ping(ctx)
		if err != nil {
			panic("failed to ping db: " + err.Error())
		}
		sp.dbClient = dbc
	}
	return sp.dbClient
}

func (sp *ServiceProvider) RedisConfig() config.RedisConfig {
	if sp.redisConfig == nil {
		cfg, err := env.NewRedisConfig()
		if err != nil {
			panic("failed to get redis config: " + err.Error())
		}
		sp.redisConfig = cfg
	}
	return sp.redisConfig
}

func (sp *ServiceProvider) RedisClient(ctx context.Context) *redis.Client {
	if sp.redisClient == nil {
		rdb := redis.NewClient(&redis.Options{
			Addr:     sp.RedisConfig().Addr(),
			Password: sp.RedisConfig().Password(),
			DB:       sp.RedisConfig().DB(),
		})
		if err := rdb.Ping(ctx).Err(); err != nil {
			panic("failed to ping redis: " + err.Error())
		}
		sp.redisClient = rdb
	}
	return sp.redisClient
}

func (sp *ServiceProvider) TXManager(ctx context.Context) trm.Manager {
	if sp.txManager == nil {
		m, err := manager.New(trmpgx.NewDefaultFactory(sp.DBClient(ctx)))
		if err != nil {
			panic("failed to create tx manager: " + err.Error())
		}
		sp.txManager = m
	}
	return sp.txManager
}

func (sp *ServiceProvider) JWTConfig() config.JWTConfig {
	if sp.jwtConfig == nil {
		cfg, err := env.NewJWTConfig()
		if err != nil {
			panic("failed to get jwt config: " + err.Error())
		}
		sp.jwtConfig = cfg
	}
	return sp.jwtConfig
}

func (sp *ServiceProvider) TelegramConfig() config.TelegramConfig {
	if sp.tgConfig == nil {
		cfg, err := env.NewTelegramConfig()
		if err != nil {
			panic("failed to get telegram config: " + err.Error())
		}
		sp.tgConfig = cfg
	}
	return sp.tgConfig
}

func (sp *ServiceProvider) RouletteCfg() config.RouletteConfig {
	if sp.rouletteCfg == nil {
		cfg, err := env.NewRouletteConfigFromYAML("config.yaml")
		if err != nil {
			panic("failed to get roulette config: " + err.Error())
		}
		sp.rouletteCfg = cfg
	}
	return sp.rouletteCfg
}

func (sp *ServiceProvider) AuthRepo(ctx context.Context) repository.AuthRepository {
	if sp.authRepo == nil {
		sp.authRepo = auth_repo.NewAuthRepository(sp.DBClient(ctx))
	}
	return sp.authRepo
}

func (sp *ServiceProvider) UserRepo(ctx context.Context) repository.UserRepository {
	if sp.userRepo == nil {
		sp.userRepo = user_repo.NewUserRepository(sp.DBClient(ctx))
	}
	return sp.userRepo
}

func (sp *ServiceProvider) AuthService(ctx context.Context) service.AuthService {
	if sp.authServ == nil {
		sp.authServ = authServ.NewAuthService(
			sp.UserRepo(ctx),
			sp.AuthRepo(ctx),
			sp.JWTConfig(),
			sp.TelegramConfig(),
		)
	}
	return sp.authServ
}

func (sp *ServiceProvider) AuthHandler(ctx context.Context) *authAPI.Handler {
	if sp.authHand == nil {
		sp.authHand = authAPI.NewHandler(authAPI.HandlerDeps{Serv: sp.AuthService(ctx)})
	}
	return sp.authHand
}

func (sp *ServiceProvider) CaseRepo(ctx context.Context) repository.CaseRepository {
	if sp.caseRepo == nil {
		sp.caseRepo = case_repo.NewCaseRepository(sp.DBClient(ctx))
	}
	return sp.caseRepo
}

func (sp *ServiceProvider) OpeningRepo(ctx context.Context) repository.OpeningRepository {
	if sp.openingRepo == nil {
		sp.openingRepo = opening_repo.NewOpeningRepository(sp.DBClient(ctx))
	}
	return sp.openingRepo
}

func (sp *ServiceProvider) CounterRepo(ctx context.Context) repository.CounterRepository {
	if sp.counterRepo == nil {
		sp.counterRepo = counter_repo.NewCounterRepository(sp.RedisClient(ctx))
	}
	return sp.counterRepo
}

func (sp *ServiceProvider) DropsRepo(ctx context.Context) repository.DropsRepository {
	if sp.dropsRepo == nil {
		sp.dropsRepo = drops_repo.NewDropsRepository(sp.RedisClient(ctx))
	}
	return sp.dropsRepo
}

func (sp *ServiceProvider) DropsHub() *ws.Hub {
	if sp.dropsHub == nil {
		sp.dropsHub = ws.NewHub()
	}
	return sp.dropsHub
}

func (sp *ServiceProvider) CaseService(ctx context.Context) service.CaseService {
	if sp.caseServ == nil {
		sp.caseServ = caseopen.NewCaseService(
			sp.CaseRepo(ctx),
			sp.UserRepo(ctx),
			sp.OpeningRepo(ctx),
			sp.InventoryRepo(ctx),
			sp.CounterRepo(ctx),
			sp.DropsRepo(ctx),
			sp.TXManager(ctx),
			sp.RouletteCfg(),
			sp.DropsHub(),
		)
	}
	return sp.caseServ
}

func (sp *ServiceProvider) CasesHandler(ctx context.Context) *casesAPI.Handler {
	if sp.casesHand == nil {
		sp.casesHand = casesAPI.NewHandler(casesAPI.HandlerDeps{Serv: sp.CaseService(ctx)})
	}
	return sp.casesHand
}

func (sp *ServiceProvider) RouletteHandler(ctx context.Context) *ws.RouletteHandler {
	if sp.rouletteHand == nil {
		sp.rouletteHand = ws.NewRouletteHandler(sp.CaseService(ctx), sp.RouletteCfg(), sp.JWTConfig())
	}
	return sp.rouletteHand
}

func (sp *ServiceProvider) CatalogRepo(ctx context.Context) repository.CatalogRepository {
	if sp.catalogRepo == nil {
		sp.catalogRepo = catalog_repo.NewCatalogRepository(sp.DBClient(ctx))
	}
	return sp.catalogRepo
}

func (sp *ServiceProvider) CartRepo(ctx context.Context) repository.CartRepository {
	if sp.cartRepo == nil {
		sp.cartRepo = cart_repo.NewCartRepository(sp.DBClient(ctx))
	}
	return sp.cartRepo
}

func (sp *ServiceProvider) OrderRepo(ctx context.Context) repository.OrderRepository {
	if sp.orderRepo == nil {
		sp.orderRepo = order_repo.NewOrderRepository(sp.DBClient(ctx))
	}
	return sp.orderRepo
}

func (sp *ServiceProvider) CatalogService(ctx context.Context) service.CatalogService {
	if sp.catalogServ == nil {
		sp.catalogServ = catalog.NewCatalogService(sp.CatalogRepo(ctx))
	}
	return sp.catalogServ
}

func (sp *ServiceProvider) CartService(ctx context.Context) service.CartService {
	if sp.cartServ == nil {
		sp.cartServ = cart.NewCartService(
			sp.CartRepo(ctx),
			sp.OrderRepo(ctx),
			sp.UserRepo(ctx),
			sp.InventoryRepo(ctx),
			sp.TXManager(ctx),
		)
	}
	return sp.cartServ
}

func (sp *ServiceProvider) StoreHandler(ctx context.Context) *storeAPI.Handler {
	if sp.storeHand == nil {
		sp.storeHand = storeAPI.NewHandler(storeAPI.HandlerDeps{
			CatalogServ: sp.CatalogService(ctx),
			CartServ:    sp.CartService(ctx),
		})
	}
	return sp.storeHand
}

func (sp *ServiceProvider) InventoryRepo(ctx context.Context) repository.InventoryRepository {
	if sp.inventoryRepo == nil {
		sp.inventoryRepo = inventory_repo.NewInventoryRepository(sp.DBClient(ctx))
	}
	return sp.inventoryRepo
}

func (sp *ServiceProvider) WithdrawalRepo(ctx context.Context) repository.WithdrawalRepository {
	if sp.withdrawalRepo == nil {
		sp.withdrawalRepo = withdrawal_repo.NewWithdrawalRepository(sp.DBClient(ctx))
	}
	return sp.withdrawalRepo
}

// Notifier - телеграм-уведомления админам. Без бота сервис
// работает, заявки просто не уведомляются
func (sp *ServiceProvider) Notifier() inventoryServ.WithdrawalNotifier {
	if sp.notifier == nil {
		n, err := notify.NewTelegramNotifier(sp.TelegramConfig())
		if err != nil {
			log.WithError(err).Warn("телеграм-уведомления отключены")
			return nil
		}
		sp.notifier = n
	}
	return sp.notifier
}

func (sp *ServiceProvider) InventoryService(ctx context.Context) service.InventoryService {
	if sp.inventoryServ == nil {
		sp.inventoryServ = inventoryServ.NewInventoryService(
			sp.InventoryRepo(ctx),
			sp.WithdrawalRepo(ctx),
			sp.UserRepo(ctx),
			sp.TXManager(ctx),
			sp.Notifier(),
		)
	}
	return sp.inventoryServ
}

func (sp *ServiceProvider) InventoryHandler(ctx context.Context) *inventoryAPI.Handler {
	if sp.inventoryHand == nil {
		sp.inventoryHand = inventoryAPI.NewHandler(inventoryAPI.HandlerDeps{Serv: sp.InventoryService(ctx)})
	}
	return sp.inventoryHand
}

func (sp *ServiceProvider) AdminService(ctx context.Context) service.AdminService {
	if sp.adminServ == nil {
		sp.adminServ = adminServ.NewAdminService(
			sp.CatalogRepo(ctx),
			sp.CaseRepo(ctx),
			sp.WithdrawalRepo(ctx),
			sp.UserRepo(ctx),
		)
	}
	return sp.adminServ
}

func (sp *ServiceProvider) AdminHandler(ctx context.Context) *adminAPI.Handler {
	if sp.adminHand == nil {
		sp.adminHand = adminAPI.NewHandler(adminAPI.HandlerDeps{Serv: sp.AdminService(ctx)})
	}
	return sp.adminHand
}

func (sp *ServiceProvider) Scheduler(ctx context.Context) *jobs.Scheduler {
	if sp.scheduler == nil {
		sp.scheduler = jobs.NewScheduler(sp.CaseService(ctx), sp.AuthRepo(ctx))
	}
	return sp.scheduler
}

func (sp *ServiceProvider) HTTPCfg() config.HTTPConfig {
	if sp.httpCfg == nil {
		cfg, err := env.NewHTTPConfig()
		if err != nil {
			panic("failed to get http config: " + err.Error())
		}
		sp.httpCfg = cfg
	}
	return sp.httpCfg
}

func (sp *ServiceProvider) Router(ctx context.Context) chi.Router {
	if sp.router == nil {
		r := chi.NewRouter()

		// CORS middleware
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins:   []string{"*"},
			AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
			ExposedHeaders:   []string{"Link"},
			AllowCredentials: true,
			MaxAge:           60 * 15,
		}))

		authMW := middleware.Auth(sp.JWTConfig())

		// Auth endpoints
		authHandler := sp.AuthHandler(ctx)
		r.Route("/auth", func(rr chi.Router) {
			rr.Post("/telegram", authHandler.TelegramLogin)
			rr.Post("/admin-login", authHandler.AdminLogin)
			rr.Post("/refresh", authHandler.Refresh)
			rr.Post("/logout", authHandler.Logout)
			rr.With(authMW).Get("/me", authHandler.Me)
		})

		// Store endpoints
		storeHandler := sp.StoreHandler(ctx)
		r.Route("/store", func(rr chi.Router) {
			rr.Get("/games", storeHandler.ListGames)
			rr.Get("/games/{gameID}/categories", storeHandler.ListCategories)
			rr.Get("/products", storeHandler.ListProducts)
			rr.Get("/products/{productID}", storeHandler.GetProduct)

			rr.Group(func(rrr chi.Router) {
				rrr.Use(authMW)
				rrr.Get("/cart", storeHandler.GetCart)
				rrr.Post("/cart", storeHandler.AddToCart)
				rrr.Put("/cart/{productID}", storeHandler.SetQuantity)
				rrr.Delete("/cart/{productID}", storeHandler.RemoveFromCart)
				rrr.Post("/checkout", storeHandler.Checkout)
			})
		})

		// Case endpoints
		casesHandler := sp.CasesHandler(ctx)
		r.Route("/cases", func(rr chi.Router) {
			rr.Get("/", casesHandler.ListCases)
			rr.Get("/{caseID}/items", casesHandler.GetCaseItems)
			rr.Get("/drops", casesHandler.RecentDrops)
			rr.With(authMW).Post("/openings/{openingID}/finalize", casesHandler.Finalize)
		})

		// Inventory endpoints
		inventoryHandler := sp.InventoryHandler(ctx)
		r.Route("/inventory", func(rr chi.Router) {
			rr.Use(authMW)
			rr.Get("/", inventoryHandler.List)
			rr.Post("/{itemID}/sell", inventoryHandler.Sell)
			rr.Post("/{itemID}/withdraw", inventoryHandler.Withdraw)
			rr.Get("/withdrawals", inventoryHandler.ListWithdrawals)
		})

		// Admin endpoints
		adminHandler := sp.AdminHandler(ctx)
		r.Route("/admin", func(rr chi.Router) {
			rr.Use(authMW)
			rr.Use(middleware.AdminOnly)
			rr.Post("/games", adminHandler.CreateGame)
			rr.Post("/categories", adminHandler.CreateCategory)
			rr.Post("/products", adminHandler.CreateProduct)
			rr.Put("/products/{productID}", adminHandler.UpdateProduct)
			rr.Delete("/products/{productID}", adminHandler.DeleteProduct)
			rr.Post("/cases", adminHandler.CreateCase)
			rr.Put("/cases/{caseID}", adminHandler.UpdateCase)
			rr.Post("/case-items", adminHandler.CreateCaseItem)
			rr.Put("/case-items/{itemID}", adminHandler.UpdateCaseItem)
			rr.Delete("/case-items/{itemID}", adminHandler.DeleteCaseItem)
			rr.Get("/withdrawals", adminHandler.ListWithdrawals)
			rr.Patch("/withdrawals/{requestID}", adminHandler.UpdateWithdrawalStatus)
			rr.Patch("/users/{userID}/balance", adminHandler.AdjustBalance)
		})

		// Websocket endpoints
		r.Get("/ws/drops", sp.DropsHub().HandleDrops)
		r.Get("/ws/roulette", sp.RouletteHandler(ctx).Handle)

		sp.router = r
	}

	return sp.router
}
