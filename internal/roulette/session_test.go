package roulette

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vaultory_backend/internal/model"
)

// testCfg - быстрая конфигурация рулетки для тестов
type testCfg struct{}

func (testCfg) BaseCount() int { return 10 }
func (testCfg) SpinCount() int { return 2 }
func (testCfg) ItemWidth() float64 { return 128 }
func (testCfg) ViewportWidth() float64 { return 640 }
func (testCfg) SpinDelay() time.Duration { return 10 * time.Millisecond }
func (testCfg) SettleDuration() time.Duration { return 20 * time.Millisecond }
func (testCfg) RevealDelay() time.Duration { return 10 * time.Millisecond }
func (testCfg) PendingTTL() time.Duration { return time.Minute }

func testResult() *model.OpeningResult {
	strip := testStrip(16)
	return &model.OpeningResult{
		OpeningID:   "op-1",
		Winner:      strip[12].Item,
		Strip:       strip,
		WinnerIndex: 12,
	}
}

// collect запускает сессию с каналом событий
func collect(cfg testCfg) (*Session, chan Event) {
	events := make(chan Event, 16)
	s := NewSession(cfg, func(ev Event) { events <- ev })
	return s, events
}

func waitEvent(t *testing.T, events chan Event) Event {
	t.Helper()
	select {
	case ev := <-events:
		return ev
	case <-time.After(time.Second):
		t.Fatal("событие не пришло")
		return Event{}
	}
}

func TestSessionPhaseOrdering(t *testing.T) {
	s, events := collect(testCfg{})
	result := testResult()

	require.NoError(t, s.Start(result))

	// Spinning: мгновенная установка стартовой позиции
	ev := waitEvent(t, events)
	assert.Equal(t, PhaseSpinning, ev.Phase)
	assert.Equal(t, "op-1", ev.OpeningID)
	assert.Equal(t, 256.0, ev.Offset)
	assert.Equal(t, int64(0), ev.DurationMS)

	// Settling: переход к финальному смещению победителя
	ev = waitEvent(t, events)
	assert.Equal(t, PhaseSettling, ev.Phase)
	assert.Equal(t, NewLayout(128, 640).TargetOffset(12), ev.Offset)
	assert.Equal(t, int64(20), ev.DurationMS)
	assert.Equal(t, "ease-out", ev.Easing)

	// ResultShown: сверенный результат совпадает с победителем
	ev = waitEvent(t, events)
	assert.Equal(t, PhaseResultShown, ev.Phase)
	require.NotNil(t, ev.Result)
	assert.Equal(t, result.Winner.ID, ev.Result.ID)

	got, ok := s.Result()
	require.True(t, ok)
	assert.Equal(t, result.Winner.ID, got.ID)
}

func TestSessionRejectsSecondSpin(t *testing.T) {
	s, events := collect(testCfg{})

	require.NoError(t, s.Start(testResult()))
	assert.ErrorIs(t, s.Start(testResult()), ErrSpinInProgress)

	// Дожидаемся результата - после него новый спин разрешен
	for {
		if waitEvent(t, events).Phase == PhaseResultShown {
			break
		}
	}
	assert.NoError(t, s.Start(testResult()))
}

func TestSessionEmitMayQuerySession(t *testing.T) {
	// Обработчик событий сам обращается к сессии. Ни одна фаза не
	// должна отправлять событие под мьютексом - иначе такой
	// обработчик намертво блокируется
	phases := make(chan Phase, 16)
	var s *Session
	s = NewSession(testCfg{}, func(Event) { phases <- s.Phase() })

	done := make(chan error, 1)
	go func() { done <- s.Start(testResult()) }()

	select {
	case phase := <-phases:
		assert.Equal(t, PhaseSpinning, phase)
	case <-time.After(time.Second):
		t.Fatal("обработчик события заблокировался на мьютексе сессии")
	}
	require.NoError(t, <-done)

	s.Close()
}

func TestSessionCloseCancelsTimers(t *testing.T) {
	s, events := collect(testCfg{})

	require.NoError(t, s.Start(testResult()))

	// Spinning уже отправлен синхронно
	assert.Equal(t, PhaseSpinning, waitEvent(t, events).Phase)

	s.Close()
	assert.Equal(t, PhaseIdle, s.Phase())

	// Таймеры погашены: ни settling, ни результата не приходит
	select {
	case ev := <-events:
		t.Fatalf("событие после Close: %v", ev.Phase)
	case <-time.After(100 * time.Millisecond):
	}

	_, ok := s.Result()
	assert.False(t, ok)
}

func TestSessionCloseIsIdempotent(t *testing.T) {
	s, _ := collect(testCfg{})

	s.Close()
	s.Close()

	assert.ErrorIs(t, s.Start(testResult()), ErrSessionClosed)
}

func TestSessionResultHiddenBeforeReveal(t *testing.T) {
	s, events := collect(testCfg{})

	require.NoError(t, s.Start(testResult()))

	_, ok := s.Result()
	assert.False(t, ok, "результат не должен быть доступен до ResultShown")

	for {
		if waitEvent(t, events).Phase == PhaseResultShown {
			break
		}
	}

	_, ok = s.Result()
	assert.True(t, ok)
}
