package caseopen

import (
	"context"
	"testing"
	"time"

	"github.com/avito-tech/go-transaction-manager/trm/v2"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vaultory_backend/internal/model"
	"vaultory_backend/internal/service"
)

// Фейки репозиториев в памяти. Транзакционность здесь не проверяется -
// fakeTxManager просто выполняет функцию

type fakeTxManager struct{}

func (fakeTxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func (fakeTxManager) DoWithSettings(ctx context.Context, _ trm.Settings, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fakeCaseRepo struct {
	cases map[int]*model.Case
	items map[int][]model.CaseItem
}

func (f *fakeCaseRepo) GetCase(_ context.Context, id int) (*model.Case, error) {
	c, ok := f.cases[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return c, nil
}

func (f *fakeCaseRepo) ListCases(_ context.Context, _ bool) ([]model.Case, error) { return nil, nil }

func (f *fakeCaseRepo) GetCaseItems(_ context.Context, caseID int) ([]model.CaseItem, error) {
	return f.items[caseID], nil
}

func (f *fakeCaseRepo) GetCaseItem(_ context.Context, id int) (*model.CaseItem, error) {
	for _, items := range f.items {
		for i := range items {
			if items[i].ID == id {
				return &items[i], nil
			}
		}
	}
	return nil, pgx.ErrNoRows
}

func (f *fakeCaseRepo) CreateCase(_ context.Context, _ *model.Case) (int, error) { return 0, nil }
func (f *fakeCaseRepo) UpdateCase(_ context.Context, _ *model.Case) error { return nil }
func (f *fakeCaseRepo) CreateCaseItem(_ context.Context, _ *model.CaseItem) (int, error) {
	return 0, nil
}
func (f *fakeCaseRepo) UpdateCaseItem(_ context.Context, _ *model.CaseItem) error { return nil }
func (f *fakeCaseRepo) DeleteCaseItem(_ context.Context, _ int) error { return nil }

type fakeUserRepo struct {
	users    map[int]*model.User
	balances map[int]int
}

func (f *fakeUserRepo) UpsertTelegramUser(_ context.Context, u *model.User) (*model.User, error) {
	return u, nil
}
func (f *fakeUserRepo) GetByID(_ context.Context, id int) (*model.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return u, nil
}
func (f *fakeUserRepo) GetByLogin(_ context.Context, _ string) (*model.User, error) {
	return nil, pgx.ErrNoRows
}
func (f *fakeUserRepo) GetBalance(_ context.Context, id int) (int, error) {
	return f.balances[id], nil
}
func (f *fakeUserRepo) UpdateBalance(_ context.Context, id int, amount int) error {
	f.balances[id] = amount
	return nil
}
func (f *fakeUserRepo) IncrementCasesOpened(_ context.Context, _ int) error { return nil }
func (f *fakeUserRepo) AddPurchaseStats(_ context.Context, _ int, _ int) error { return nil }

type fakeOpeningRepo struct {
	openings map[string]*model.Opening
}

func (f *fakeOpeningRepo) Create(_ context.Context, o *model.Opening) error {
	cp := *o
	cp.Status = model.OpeningStatusPending
	cp.CreatedAt = time.Now()
	f.openings[o.ID] = &cp
	return nil
}

func (f *fakeOpeningRepo) GetByID(_ context.Context, id string) (*model.Opening, error) {
	o, ok := f.openings[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return o, nil
}

func (f *fakeOpeningRepo) Finalize(_ context.Context, id string, status string) (bool, error) {
	o, ok := f.openings[id]
	if !ok || o.Status != model.OpeningStatusPending {
		return false, nil
	}
	o.Status = status
	return true, nil
}

func (f *fakeOpeningRepo) MaxOpeningNumber(_ context.Context) (int64, error) {
	var maxNumber int64
	for _, o := range f.openings {
		if o.OpeningNumber > maxNumber {
			maxNumber = o.OpeningNumber
		}
	}
	return maxNumber, nil
}

func (f *fakeOpeningRepo) ListStalePending(_ context.Context, olderThan time.Time) ([]model.Opening, error) {
	var stale []model.Opening
	for _, o := range f.openings {
		if o.Status == model.OpeningStatusPending && o.CreatedAt.Before(olderThan) {
			stale = append(stale, *o)
		}
	}
	return stale, nil
}

type fakeInventoryRepo struct {
	items []model.InventoryItem
}

func (f *fakeInventoryRepo) Add(_ context.Context, item *model.InventoryItem) (int, error) {
	item.ID = len(f.items) + 1
	f.items = append(f.items, *item)
	return item.ID, nil
}
func (f *fakeInventoryRepo) ListByUser(_ context.Context, _ int) ([]model.InventoryItem, error) {
	return f.items, nil
}
func (f *fakeInventoryRepo) GetByID(_ context.Context, _ int) (*model.InventoryItem, error) {
	return nil, pgx.ErrNoRows
}
func (f *fakeInventoryRepo) Delete(_ context.Context, _ int) error { return nil }
func (f *fakeInventoryRepo) MarkWithdrawn(_ context.Context, _ int) error { return nil }

type fakeCounterRepo struct {
	n int64
}

func (f *fakeCounterRepo) Increment(_ context.Context) (int64, error) {
	f.n++
	return f.n, nil
}
func (f *fakeCounterRepo) Current(_ context.Context) (int64, error) { return f.n, nil }
func (f *fakeCounterRepo) SeedIfMissing(_ context.Context, value int64) error {
	if f.n == 0 {
		f.n = value
	}
	return nil
}

type fakeDropsRepo struct {
	drops []model.LiveDrop
}

func (f *fakeDropsRepo) Push(_ context.Context, drop *model.LiveDrop) error {
	f.drops = append(f.drops, *drop)
	return nil
}
func (f *fakeDropsRepo) Recent(_ context.Context, _ int) ([]model.LiveDrop, error) {
	return f.drops, nil
}

type testEnv struct {
	serv      service.CaseService
	userRepo  *fakeUserRepo
	openings  *fakeOpeningRepo
	inventory *fakeInventoryRepo
	counter   *fakeCounterRepo
	drops     *fakeDropsRepo
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	caseRepo := &fakeCaseRepo{
		cases: map[int]*model.Case{
			1: {ID: 1, Name: "Кейс", Price: 500, Active: true},
			2: {ID: 2, Name: "Выключенный", Price: 500, Active: false},
			3: {ID: 3, Name: "Пустой", Price: 500, Active: true},
		},
		items: map[int][]model.CaseItem{
			1: {
				{ID: 10, CaseID: 1, Name: "нож", Rarity: model.RarityLegendary, Price: 10000, PeriodicInterval: 50},
				{ID: 11, CaseID: 1, Name: "наклейка", Rarity: model.RarityCommon, Price: 100, PeriodicInterval: 1},
				{ID: 12, CaseID: 1, Name: "брелок", Rarity: model.RarityCommon, Price: 150, PeriodicInterval: 1},
			},
		},
	}

	env := &testEnv{
		userRepo: &fakeUserRepo{
			users:    map[int]*model.User{7: {ID: 7, Username: "ivan"}},
			balances: map[int]int{7: 1000},
		},
		openings:  &fakeOpeningRepo{openings: make(map[string]*model.Opening)},
		inventory: &fakeInventoryRepo{},
		counter:   &fakeCounterRepo{},
		drops:     &fakeDropsRepo{},
	}

	env.serv = NewCaseService(
		caseRepo,
		env.userRepo,
		env.openings,
		env.inventory,
		env.counter,
		env.drops,
		fakeTxManager{},
		openTestCfg{},
		nil,
	)
	return env
}

// openTestCfg - маленькая лента и короткий TTL для тестов
type openTestCfg struct{}

func (openTestCfg) BaseCount() int { return 10 }
func (openTestCfg) SpinCount() int { return 2 }
func (openTestCfg) ItemWidth() float64 { return 128 }
func (openTestCfg) ViewportWidth() float64 { return 640 }
func (openTestCfg) SpinDelay() time.Duration { return time.Millisecond }
func (openTestCfg) SettleDuration() time.Duration { return time.Millisecond }
func (openTestCfg) RevealDelay() time.Duration { return time.Millisecond }
func (openTestCfg) PendingTTL() time.Duration { return 10 * time.Minute }

func TestOpenDebitsBalanceAndCreatesPending(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	res, err := env.serv.Open(ctx, 7, 1)
	require.NoError(t, err)

	// Лента 10 + 2*3 = 16 слотов, победитель на 10 + 6/2 = 13
	assert.Len(t, res.Strip, 16)
	assert.Equal(t, 13, res.WinnerIndex)
	assert.Equal(t, res.Winner.ID, res.Strip[res.WinnerIndex].Item.ID)

	// Баланс списан, открытие ждет выбора keep/sell
	assert.Equal(t, 500, res.Balance)
	assert.Equal(t, 500, env.userRepo.balances[7])

	opening := env.openings.openings[res.OpeningID]
	require.NotNil(t, opening)
	assert.Equal(t, model.OpeningStatusPending, opening.Status)
	assert.Equal(t, res.Winner.ID, opening.ItemID)
	assert.Equal(t, int64(1), res.OpeningNumber)

	// Дроп ушел в ленту
	require.Len(t, env.drops.drops, 1)
	assert.Equal(t, res.Winner.Name, env.drops.drops[0].ItemName)
}

func TestOpenInsufficientBalance(t *testing.T) {
	env := newTestEnv(t)
	env.userRepo.balances[7] = 100

	_, err := env.serv.Open(context.Background(), 7, 1)
	assert.ErrorIs(t, err, ErrNotEnoughBalance)

	// Ничего не списано и не записано
	assert.Equal(t, 100, env.userRepo.balances[7])
	assert.Empty(t, env.openings.openings)

	// Номер открытия не потрачен: periodic-предметы не сдвигаются
	// из-за сорвавшихся открытий
	assert.Equal(t, int64(0), env.counter.n)

	env.userRepo.balances[7] = 1000
	res, err := env.serv.Open(context.Background(), 7, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(1), res.OpeningNumber)
}

func TestOpenSeedsCounterFromHistory(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	// В БД уже есть открытия, а счетчик пуст (данные Redis потеряны) -
	// нумерация продолжается с максимума из БД, а не заново с 1
	env.openings.openings["old"] = &model.Opening{
		ID:            "old",
		OpeningNumber: 500,
		Status:        model.OpeningStatusKept,
	}

	res, err := env.serv.Open(ctx, 7, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(501), res.OpeningNumber)

	// Живой счетчик засев не перезаписывает
	env2 := newTestEnv(t)
	env2.openings.openings["old"] = &model.Opening{
		ID:            "old",
		OpeningNumber: 500,
		Status:        model.OpeningStatusKept,
	}
	env2.counter.n = 600

	res, err = env2.serv.Open(ctx, 7, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(601), res.OpeningNumber)
}

func TestOpenValidation(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.serv.Open(ctx, 7, 99)
	assert.ErrorIs(t, err, ErrCaseNotFound)

	_, err = env.serv.Open(ctx, 7, 2)
	assert.ErrorIs(t, err, ErrCaseInactive)

	_, err = env.serv.Open(ctx, 7, 3)
	assert.ErrorIs(t, err, ErrNoItems)

	// Ошибки конфигурации не трогают баланс
	assert.Equal(t, 1000, env.userRepo.balances[7])
}

func TestOpenAdvancesGlobalCounter(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	first, err := env.serv.Open(ctx, 7, 1)
	require.NoError(t, err)
	second, err := env.serv.Open(ctx, 7, 1)
	require.NoError(t, err)

	assert.Equal(t, int64(1), first.OpeningNumber)
	assert.Equal(t, int64(2), second.OpeningNumber)
}

func TestFinalizeKeepExactlyOnce(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	res, err := env.serv.Open(ctx, 7, 1)
	require.NoError(t, err)

	outcome, err := env.serv.Finalize(ctx, 7, res.OpeningID, model.OutcomeActionKeep)
	require.NoError(t, err)
	assert.True(t, outcome.Delivered)
	assert.Equal(t, res.Winner.ID, outcome.Item.ID)

	// Предмет в инвентаре, баланс не менялся после списания
	require.Len(t, env.inventory.items, 1)
	assert.Equal(t, res.Winner.Name, env.inventory.items[0].Name)
	assert.Equal(t, model.InventorySourceCase, env.inventory.items[0].Source)
	assert.Equal(t, 500, env.userRepo.balances[7])

	// Повторная финализация отклоняется
	_, err = env.serv.Finalize(ctx, 7, res.OpeningID, model.OutcomeActionSell)
	assert.ErrorIs(t, err, ErrAlreadyFinalized)
	assert.Equal(t, 500, env.userRepo.balances[7])
}

func TestFinalizeSellCreditsBalance(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	res, err := env.serv.Open(ctx, 7, 1)
	require.NoError(t, err)

	outcome, err := env.serv.Finalize(ctx, 7, res.OpeningID, model.OutcomeActionSell)
	require.NoError(t, err)

	assert.Equal(t, 500+res.Winner.Price, outcome.Balance)
	assert.Equal(t, 500+res.Winner.Price, env.userRepo.balances[7])
	assert.Empty(t, env.inventory.items)
}

func TestFinalizeRejectsForeignOpening(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	res, err := env.serv.Open(ctx, 7, 1)
	require.NoError(t, err)

	_, err = env.serv.Finalize(ctx, 8, res.OpeningID, model.OutcomeActionKeep)
	assert.ErrorIs(t, err, ErrOpeningNotFound)
}

func TestFinalizeValidation(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.serv.Finalize(ctx, 7, "missing", model.OutcomeActionKeep)
	assert.ErrorIs(t, err, ErrOpeningNotFound)

	_, err = env.serv.Finalize(ctx, 7, "whatever", "burn")
	assert.ErrorIs(t, err, ErrUnknownAction)
}

func TestForceKeepStale(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	res, err := env.serv.Open(ctx, 7, 1)
	require.NoError(t, err)

	// Открытие "висит" дольше TTL
	env.openings.openings[res.OpeningID].CreatedAt = time.Now().Add(-time.Hour)

	n, err := env.serv.ForceKeepStale(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	// Предмет добран в инвентарь, статус kept
	require.Len(t, env.inventory.items, 1)
	assert.Equal(t, model.OpeningStatusKept, env.openings.openings[res.OpeningID].Status)

	// Повторный прогон ничего не трогает
	n, err = env.serv.ForceKeepStale(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, n)
	assert.Len(t, env.inventory.items, 1)
}
