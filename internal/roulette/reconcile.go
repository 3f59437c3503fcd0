package roulette

import (
	"math"

	"vaultory_backend/internal/model"
)

// Reconcile пересчитывает, какой слот ленты оказался под маркером
// при финальном смещении. Индекс за пределами ленты означает сбой
// геометрии - тогда возвращается победитель, выбранный алгоритмом.
//
// Авторитетным для начисления всегда остается победитель из селектора:
// снимок геометрии и целевое смещение считаются от одних и тех же чисел,
// так что в штатном режиме сверка обязана совпасть с ним
func Reconcile(finalOffset float64, layout Layout, strip []model.StripEntry, winner model.CaseItem) model.CaseItem {
	if layout.ItemWidth <= 0 || len(strip) == 0 {
		return winner
	}

	landedIndex := int(math.Round((-finalOffset + layout.CenterOffset) / layout.ItemWidth))
	if landedIndex < 0 || landedIndex >= len(strip) {
		return winner
	}

	return strip[landedIndex].Item
}
