package model

// Rarity - редкость предмета. Порядок: common < rare < epic < legendary
type Rarity string

const (
	RarityCommon    Rarity = "common"
	RarityRare      Rarity = "rare"
	RarityEpic      Rarity = "epic"
	RarityLegendary Rarity = "legendary"
)

// rarityOrder для сортировки предметов по редкости
var rarityOrder = map[Rarity]int{
	RarityCommon:    0,
	RarityRare:      1,
	RarityEpic:      2,
	RarityLegendary: 3,
}

// Less - сравнение редкостей по порядку
func (r Rarity) Less(other Rarity) bool {
	return rarityOrder[r] < rarityOrder[other]
}

type Case struct {
	ID       int
	GameID   int
	Name     string
	Price    int // Цена открытия в копейках
	ImageURL string
	Active   bool
}

// CaseItem - предмет-кандидат внутри кейса.
// PeriodicInterval означает "может выпасть только на каждом N-м открытии".
// Интервал 1 - базовый уровень, выпадает на любом открытии
type CaseItem struct {
	ID               int
	CaseID           int
	Name             string
	Rarity           Rarity
	Price            int // Стоимость предмета (для продажи) в копейках
	ImageURL         string
	PeriodicInterval int
}
