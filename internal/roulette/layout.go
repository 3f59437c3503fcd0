package roulette

// Layout - снимок геометрии рулетки, сделанный один раз в момент старта
// спина. И целевое смещение, и сверка результата считаются от одного и
// того же снимка, поэтому изменение размеров окна посреди анимации не
// может рассинхронизировать "что показали" и "что записали"
type Layout struct {
	ItemWidth     float64
	ViewportWidth float64
	CenterOffset  float64
}

// NewLayout фиксирует геометрию. Маркер стоит в центре области просмотра,
// CenterOffset - смещение, при котором центр слота 0 оказывается под маркером
func NewLayout(itemWidth, viewportWidth float64) Layout {
	return Layout{
		ItemWidth:     itemWidth,
		ViewportWidth: viewportWidth,
		CenterOffset:  viewportWidth/2 - itemWidth/2,
	}
}

// StartOffset - начальное смещение ленты: слот 0 под маркером
func (l Layout) StartOffset() float64 {
	return l.CenterOffset
}

// TargetOffset - смещение, при котором слот index оказывается под маркером
func (l Layout) TargetOffset(index int) float64 {
	return -(float64(index) * l.ItemWidth) + l.CenterOffset
}
