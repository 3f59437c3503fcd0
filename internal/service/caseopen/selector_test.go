package caseopen

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vaultory_backend/internal/model"
)

// pickFirst всегда выбирает первый элемент пула
func pickFirst() float64 { return 0 }

// possibleWinners перебирает значения rng и собирает все предметы,
// которые селектор может вернуть для данного номера открытия
func possibleWinners(t *testing.T, items []model.CaseItem, openingNumber int64) map[int]bool {
	t.Helper()

	winners := make(map[int]bool)
	for i := 0; i < 100; i++ {
		frac := float64(i) / 100
		winner, err := SelectWinner(items, openingNumber, func() float64 { return frac })
		require.NoError(t, err)
		winners[winner.ID] = true
	}
	return winners
}

func TestSelectWinnerEmptyCatalog(t *testing.T) {
	_, err := SelectWinner(nil, 1, pickFirst)
	assert.ErrorIs(t, err, ErrNoItems)
}

func TestSelectWinnerPeriodicEligibility(t *testing.T) {
	items := []model.CaseItem{
		{ID: 1, Name: "common", PeriodicInterval: 1},
		{ID: 2, Name: "rare", PeriodicInterval: 50},
	}

	// Номер не кратен 50 - редкий предмет выпасть не может
	winners := possibleWinners(t, items, 49)
	assert.True(t, winners[1])
	assert.False(t, winners[2])

	// Номер кратен 50 - оба предмета в пуле
	winners = possibleWinners(t, items, 50)
	assert.True(t, winners[1])
	assert.True(t, winners[2])
}

func TestSelectWinnerDeterministic(t *testing.T) {
	items := []model.CaseItem{
		{ID: 1, PeriodicInterval: 1},
		{ID: 2, PeriodicInterval: 1},
		{ID: 3, PeriodicInterval: 5},
	}

	// Фиксированный rng - результат не меняется от вызова к вызову
	rng := func() float64 { return 0.6 }
	first, err := SelectWinner(items, 10, rng)
	require.NoError(t, err)

	for i := 0; i < 10; i++ {
		next, err := SelectWinner(items, 10, rng)
		require.NoError(t, err)
		assert.Equal(t, first.ID, next.ID)
	}
}

func TestSelectWinnerMultipleIntervalsMature(t *testing.T) {
	items := []model.CaseItem{
		{ID: 1, PeriodicInterval: 1},
		{ID: 2, PeriodicInterval: 50},
		{ID: 3, PeriodicInterval: 100},
		{ID: 4, PeriodicInterval: 3},
	}

	// На открытии 100 созрели интервалы 1, 50 и 100, но не 3.
	// Пул разыгрывается равномерно, без приоритета редких
	winners := possibleWinners(t, items, 100)
	assert.True(t, winners[1])
	assert.True(t, winners[2])
	assert.True(t, winners[3])
	assert.False(t, winners[4])
}

func TestSelectWinnerFallbackToBase(t *testing.T) {
	items := []model.CaseItem{
		{ID: 1, PeriodicInterval: 1},
		{ID: 2, PeriodicInterval: 1},
		{ID: 3, PeriodicInterval: 50},
	}

	// 7 не кратно 50 - выпадает только базовый уровень
	winners := possibleWinners(t, items, 7)
	assert.True(t, winners[1])
	assert.True(t, winners[2])
	assert.False(t, winners[3])
}

func TestSelectWinnerDegradedWholeCatalog(t *testing.T) {
	// Кейс без базового уровня: на некратном номере пул пуст,
	// селектор деградирует до всего каталога
	items := []model.CaseItem{
		{ID: 1, PeriodicInterval: 2},
		{ID: 2, PeriodicInterval: 3},
	}

	winners := possibleWinners(t, items, 7)
	assert.True(t, winners[1])
	assert.True(t, winners[2])
}

func TestSelectWinnerZeroIntervalTreatedAsBase(t *testing.T) {
	items := []model.CaseItem{
		{ID: 1, PeriodicInterval: 0},
	}

	winner, err := SelectWinner(items, 7, pickFirst)
	require.NoError(t, err)
	assert.Equal(t, 1, winner.ID)
}
