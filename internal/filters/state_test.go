package filters

import (
	"testing"
	"time"

	"github.com/Shivarajkushals/Dashboard/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2025, time.March, 15, 9, 30, 0, 0, time.UTC)

func TestNewUsesDefaults(t *testing.T) {
	s := New(testNow)
	assert.Equal(t, "2025-03-01", s.Applied().FromDate.String())
	assert.Equal(t, "2025-03-14", s.Applied().ToDate.String())
	assert.Equal(t, s.Applied(), s.Draft())
	assert.False(t, s.Dirty())
	assert.Equal(t, "2022-04-01", s.Bounds().Min.String())
	assert.Equal(t, "2025-03-14", s.Bounds().Max.String())
}

func TestEditTracksDirty(t *testing.T) {
	s := New(testNow)

	require.NoError(t, s.Edit(FieldStore, "Mumbai"))
	assert.True(t, s.Dirty())
	assert.Equal(t, "", s.Applied().Store, "edit never touches applied")

	require.NoError(t, s.Edit(FieldStore, ""))
	assert.False(t, s.Dirty(), "editing back to the applied value is clean")

	require.NoError(t, s.Edit(FieldFromDate, "2025-02-01"))
	assert.True(t, s.Dirty())
}

func TestEditRejectsBadDates(t *testing.T) {
	s := New(testNow)
	before := s.Draft()

	assert.ErrorIs(t, s.Edit(FieldFromDate, "2025/02/01"), domain.ErrInvalidDate)
	assert.ErrorIs(t, s.Edit(FieldFromDate, "2022-03-31"), ErrDateOutOfRange)
	assert.ErrorIs(t, s.Edit(FieldToDate, "2025-03-15"), ErrDateOutOfRange, "today is not yet reportable")
	assert.ErrorIs(t, s.Edit(Field("region"), "x"), ErrUnknownField)
	assert.Equal(t, before, s.Draft())
}

func TestConfirm(t *testing.T) {
	s := New(testNow)
	require.NoError(t, s.Edit(FieldShopType, "Online"))
	require.NoError(t, s.Edit(FieldFromDate, "2025-01-01"))

	applied, err := s.Confirm()
	require.NoError(t, err)
	assert.Equal(t, "Online", applied.ShopType)
	assert.Equal(t, "2025-01-01", applied.FromDate.String())
	assert.False(t, s.Dirty())
}

func TestConfirmRejectsInvertedRange(t *testing.T) {
	s := New(testNow)
	require.NoError(t, s.Edit(FieldFromDate, "2025-03-10"))
	require.NoError(t, s.Edit(FieldToDate, "2025-03-05"))

	prev := s.Applied()
	_, err := s.Confirm()
	assert.ErrorIs(t, err, ErrInvertedRange)
	assert.Equal(t, prev, s.Applied())
	assert.True(t, s.Dirty())
}

func TestResetKeepsDraftDates(t *testing.T) {
	s := New(testNow)
	require.NoError(t, s.Edit(FieldStore, "Pune"))
	_, err := s.Confirm()
	require.NoError(t, err)
	require.NoError(t, s.Edit(FieldFromDate, "2024-12-01"))
	require.NoError(t, s.Edit(FieldTranType, "Return"))

	applied := s.Reset()
	assert.Equal(t, "", applied.Store)
	assert.Equal(t, "", applied.TranType)
	assert.Equal(t, "2024-12-01", applied.FromDate.String())
	assert.Equal(t, "2025-03-14", applied.ToDate.String())
	assert.Equal(t, applied, s.Draft())
	assert.False(t, s.Dirty())
}

func TestResetWithInvertedDraftKeepsAppliedDates(t *testing.T) {
	s := New(testNow)
	require.NoError(t, s.Edit(FieldFromDate, "2025-03-10"))
	require.NoError(t, s.Edit(FieldToDate, "2025-03-05"))

	applied := s.Reset()
	assert.Equal(t, "2025-03-01", applied.FromDate.String())
	assert.Equal(t, "2025-03-14", applied.ToDate.String())
}

func TestToggle(t *testing.T) {
	s := New(testNow)

	applied, err := s.Toggle(FieldStore, "Delhi")
	require.NoError(t, err)
	assert.Equal(t, "Delhi", applied.Store)
	assert.Equal(t, "Delhi", s.Draft().Store, "form mirrors the selection")

	applied, err = s.Toggle(FieldStore, "Delhi")
	require.NoError(t, err)
	assert.Equal(t, "", applied.Store, "double toggle clears")

	applied, err = s.Toggle(FieldStore, "Delhi")
	require.NoError(t, err)
	applied, err = s.Toggle(FieldStore, "Chennai")
	require.NoError(t, err)
	assert.Equal(t, "Chennai", applied.Store, "toggling another value replaces")
}

func TestTogglePreservesPendingEdits(t *testing.T) {
	s := New(testNow)
	require.NoError(t, s.Edit(FieldTranType, "Sale"))

	_, err := s.Toggle(FieldShopType, "Online")
	require.NoError(t, err)
	assert.Equal(t, "Online", s.Applied().ShopType)
	assert.Equal(t, "", s.Applied().TranType)
	assert.Equal(t, "Sale", s.Draft().TranType)
	assert.True(t, s.Dirty())
}

func TestToggleRejectsDates(t *testing.T) {
	s := New(testNow)
	_, err := s.Toggle(FieldFromDate, "2025-01-01")
	assert.ErrorIs(t, err, ErrNotToggleable)
	_, err = s.Toggle(Field("nope"), "x")
	assert.ErrorIs(t, err, ErrUnknownField)
}
