package caseopen

import "vaultory_backend/internal/model"

// BuildStrip строит визуальную ленту рулетки вокруг победителя.
//
// Длина ленты = baseCount + spinCount*len(items). Все слоты заполняются
// независимыми равномерными выборами из каталога (повторы допустимы),
// после чего победитель ставится на фиксированную позицию
// winnerIndex = baseCount + spinCount*len(items)/2 - примерно в середину
// "прокруточной" части, чтобы после остановки за маркером оставались
// декоративные предметы и лента не обрывалась на победителе
func BuildStrip(items []model.CaseItem, winner model.CaseItem, baseCount, spinCount int, rng Rand) ([]model.StripEntry, int) {
	if rng == nil {
		rng = DefaultRand
	}

	totalLength := baseCount + spinCount*len(items)
	winnerIndex := baseCount + spinCount*len(items)/2

	strip := make([]model.StripEntry, totalLength)
	for i := range strip {
		strip[i] = model.StripEntry{
			Index: i,
			Item:  items[int(rng()*float64(len(items)))],
		}
	}

	strip[winnerIndex].Item = winner

	return strip, winnerIndex
}
