package roulette

import (
	"errors"
	"sync"
	"time"

	"vaultory_backend/internal/config"
	"vaultory_backend/internal/model"
)

// Phase - фаза анимации рулетки
type Phase string

const (
	PhaseIdle        Phase = "idle"
	PhaseSpinning    Phase = "spinning"
	PhaseSettling    Phase = "settling"
	PhaseResultShown Phase = "result_shown"
)

var (
	ErrSpinInProgress = errors.New("spin already in progress")
	ErrSessionClosed  = errors.New("session closed")
)

// Event - событие фазы, отправляемое клиенту
type Event struct {
	Phase     Phase   `json:"phase"`
	OpeningID string  `json:"opening_id"`
	Offset    float64 `json:"offset"`
	// Длительность перехода к Offset в миллисекундах. 0 - мгновенно
	DurationMS int64           `json:"duration_ms"`
	Easing     string          `json:"easing,omitempty"`
	Result     *model.CaseItem `json:"result,omitempty"`
}

// Session - машина состояний одного экрана рулетки.
// Владеет лентой, снимком геометрии и таймерами фаз. Одна сессия
// на одно websocket-соединение, не разделяется между экранами.
//
// Таймеры фаз независимы, поэтому Close обязан погасить все:
// иначе отставший таймер изменит состояние уже закрытого экрана
type Session struct {
	mu sync.Mutex

	cfg  config.RouletteConfig
	emit func(Event)

	phase       Phase
	closed      bool
	strip       []model.StripEntry
	winner      model.CaseItem
	winnerIndex int
	openingID   string
	layout      Layout
	finalOffset float64
	timers      []*time.Timer
}

// NewSession создает сессию в фазе Idle.
// emit вызывается на каждом переходе фазы (из горутин таймеров)
func NewSession(cfg config.RouletteConfig, emit func(Event)) *Session {
	return &Session{
		cfg:   cfg,
		emit:  emit,
		phase: PhaseIdle,
	}
}

// Phase - текущая фаза
func (s *Session) Phase() Phase {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.phase
}

// Start запускает спин по уже вычисленному результату открытия.
// Списание выполняется до вызова Start - сюда попадают только
// оплаченные открытия.
//
// Повторный Start во время Spinning/Settling отклоняется: не больше
// одного активного спина на сессию. Start из ResultShown сбрасывает
// прежний результат и начинает новый спин
func (s *Session) Start(result *model.OpeningResult) error {
	s.mu.Lock()

	if s.closed {
		s.mu.Unlock()
		return ErrSessionClosed
	}
	if s.phase == PhaseSpinning || s.phase == PhaseSettling {
		s.mu.Unlock()
		return ErrSpinInProgress
	}

	// Сброс прежнего спина
	s.stopTimersLocked()

	// Снимок геометрии - один на весь спин
	s.layout = NewLayout(s.cfg.ItemWidth(), s.cfg.ViewportWidth())
	s.strip = result.Strip
	s.winner = result.Winner
	s.winnerIndex = result.WinnerIndex
	s.openingID = result.OpeningID
	s.finalOffset = s.layout.TargetOffset(result.WinnerIndex)

	s.phase = PhaseSpinning

	// Стартовая позиция выставляется мгновенно, без перехода -
	// иначе лента визуально прыгнет
	ev := Event{
		Phase:      PhaseSpinning,
		OpeningID:  s.openingID,
		Offset:     s.layout.StartOffset(),
		DurationMS: 0,
	}
	s.mu.Unlock()

	// Событие уходит без мьютекса, как и в остальных фазах:
	// обработчик emit может обращаться к сессии
	s.emit(ev)

	// Таймеры взводятся после стартового события, чтобы Settling
	// не мог обогнать Spinning. Close во время emit гасит спин -
	// тогда таймеры уже не нужны
	s.mu.Lock()
	if !s.closed && s.phase == PhaseSpinning {
		// Переход к прокрутке - после короткой паузы, чтобы стартовая
		// позиция успела примениться
		s.addTimerLocked(s.cfg.SpinDelay(), s.enterSettling)

		// Результат - после паузы + прокрутки + задержки показа:
		// пользователь должен увидеть остановку до показа результата
		revealAt := s.cfg.SpinDelay() + s.cfg.SettleDuration() + s.cfg.RevealDelay()
		s.addTimerLocked(revealAt, s.enterResultShown)
	}
	s.mu.Unlock()

	return nil
}

// Close гасит все таймеры и возвращает сессию в Idle.
// Безопасен в любой фазе и при повторных вызовах. После Close ни один
// таймер этого спина не изменит состояние и не отправит событие
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.closed = true
	s.stopTimersLocked()
	s.phase = PhaseIdle
	s.strip = nil
}

// Result возвращает сверенный результат, когда фаза ResultShown
func (s *Session) Result() (model.CaseItem, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.phase != PhaseResultShown {
		return model.CaseItem{}, false
	}
	return Reconcile(s.finalOffset, s.layout, s.strip, s.winner), true
}

// OpeningID - открытие текущего спина ("" если спина не было)
func (s *Session) OpeningID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.openingID
}

func (s *Session) enterSettling() {
	s.mu.Lock()
	if s.closed || s.phase != PhaseSpinning {
		s.mu.Unlock()
		return
	}
	s.phase = PhaseSettling
	ev := Event{
		Phase:      PhaseSettling,
		OpeningID:  s.openingID,
		Offset:     s.finalOffset,
		DurationMS: s.cfg.SettleDuration().Milliseconds(),
		Easing:     "ease-out",
	}
	s.mu.Unlock()

	s.emit(ev)
}

func (s *Session) enterResultShown() {
	s.mu.Lock()
	if s.closed || s.phase != PhaseSettling {
		s.mu.Unlock()
		return
	}
	s.phase = PhaseResultShown

	// Сверка: что фактически под маркером при финальном смещении.
	// При рассинхроне геометрии сверка откатывается к победителю селектора
	landed := Reconcile(s.finalOffset, s.layout, s.strip, s.winner)
	ev := Event{
		Phase:     PhaseResultShown,
		OpeningID: s.openingID,
		Offset:    s.finalOffset,
		Result:    &landed,
	}
	s.mu.Unlock()

	s.emit(ev)
}

// addTimerLocked регистрирует таймер фазы. Вызывается под мьютексом
func (s *Session) addTimerLocked(d time.Duration, fn func()) {
	s.timers = append(s.timers, time.AfterFunc(d, fn))
}

// stopTimersLocked гасит все таймеры. Вызывается под мьютексом
func (s *Session) stopTimersLocked() {
	for _, t := range s.timers {
		t.Stop()
	}
	s.timers = nil
}
