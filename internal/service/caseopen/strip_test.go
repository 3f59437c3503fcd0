package caseopen

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"vaultory_backend/internal/model"
)

func catalogOf(n int) []model.CaseItem {
	items := make([]model.CaseItem, n)
	for i := range items {
		items[i] = model.CaseItem{ID: i + 1, PeriodicInterval: 1}
	}
	return items
}

func TestBuildStripLengthAndWinnerPosition(t *testing.T) {
	items := catalogOf(5)
	winner := items[2]

	strip, winnerIndex := BuildStrip(items, winner, 50, 4, pickFirst)

	// 50 + 4*5 = 70 слотов, победитель на 50 + 20/2 = 60
	assert.Len(t, strip, 70)
	assert.Equal(t, 60, winnerIndex)
	assert.Equal(t, winner.ID, strip[winnerIndex].Item.ID)
}

func TestBuildStripIndicesSequential(t *testing.T) {
	items := catalogOf(3)

	strip, _ := BuildStrip(items, items[0], 10, 2, pickFirst)

	assert.Len(t, strip, 16)
	for i, entry := range strip {
		assert.Equal(t, i, entry.Index)
	}
}

func TestBuildStripFillsFromCatalog(t *testing.T) {
	items := catalogOf(4)

	known := make(map[int]bool, len(items))
	for _, item := range items {
		known[item.ID] = true
	}

	strip, _ := BuildStrip(items, items[1], 20, 3, nil)

	for _, entry := range strip {
		assert.True(t, known[entry.Item.ID], "слот заполнен предметом не из каталога")
	}
}

func TestBuildStripOddCatalogWinnerIndex(t *testing.T) {
	// Нечетное произведение: 3*3=9, победитель на 10 + 4 = 14
	items := catalogOf(3)

	strip, winnerIndex := BuildStrip(items, items[0], 10, 3, pickFirst)

	assert.Len(t, strip, 19)
	assert.Equal(t, 14, winnerIndex)
	assert.Equal(t, items[0].ID, strip[winnerIndex].Item.ID)
}
