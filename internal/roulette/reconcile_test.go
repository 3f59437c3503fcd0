package roulette

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"vaultory_backend/internal/model"
)

func testStrip(n int) []model.StripEntry {
	strip := make([]model.StripEntry, n)
	for i := range strip {
		strip[i] = model.StripEntry{
			Index: i,
			Item:  model.CaseItem{ID: i + 1},
		}
	}
	return strip
}

func TestReconcileMatchesTargetOffset(t *testing.T) {
	layout := NewLayout(128, 640)
	strip := testStrip(70)
	winner := strip[60].Item

	// Финальное смещение, посчитанное от того же снимка геометрии,
	// обязано указать ровно на слот победителя
	landed := Reconcile(layout.TargetOffset(60), layout, strip, winner)
	assert.Equal(t, winner.ID, landed.ID)
}

func TestReconcileEveryIndexRoundTrips(t *testing.T) {
	layout := NewLayout(128, 640)
	strip := testStrip(70)

	for i := range strip {
		landed := Reconcile(layout.TargetOffset(i), layout, strip, strip[0].Item)
		assert.Equal(t, strip[i].Item.ID, landed.ID)
	}
}

func TestReconcileRoundsToNearestSlot(t *testing.T) {
	layout := NewLayout(128, 640)
	strip := testStrip(10)

	// Смещение чуть недотянуло до слота 4 - округляем к ближайшему
	offset := layout.TargetOffset(4) + 30
	landed := Reconcile(offset, layout, strip, strip[0].Item)
	assert.Equal(t, strip[4].Item.ID, landed.ID)
}

func TestReconcileOutOfBoundsFallsBackToWinner(t *testing.T) {
	layout := NewLayout(128, 640)
	strip := testStrip(10)
	winner := strip[7].Item

	// Смещение далеко за пределами ленты - сбой геометрии
	landed := Reconcile(-1e9, layout, strip, winner)
	assert.Equal(t, winner.ID, landed.ID)

	landed = Reconcile(1e9, layout, strip, winner)
	assert.Equal(t, winner.ID, landed.ID)
}

func TestReconcileDegenerateLayoutFallsBackToWinner(t *testing.T) {
	strip := testStrip(5)
	winner := strip[2].Item

	landed := Reconcile(0, Layout{}, strip, winner)
	assert.Equal(t, winner.ID, landed.ID)

	landed = Reconcile(0, NewLayout(128, 640), nil, winner)
	assert.Equal(t, winner.ID, landed.ID)
}

func TestLayoutOffsets(t *testing.T) {
	layout := NewLayout(128, 640)

	// Маркер в центре вьюпорта: 640/2 - 128/2 = 256
	assert.Equal(t, 256.0, layout.CenterOffset)
	assert.Equal(t, 256.0, layout.StartOffset())
	assert.Equal(t, -(60.0*128)+256, layout.TargetOffset(60))
}
