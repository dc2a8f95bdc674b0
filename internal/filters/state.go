// Package filters holds the applied and pending filter sets behind the
// dashboard form.
package filters

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Shivarajkushals/Dashboard/internal/domain"
)

// Field names a single filter.
type Field string

const (
	FieldStore    Field = "store"
	FieldShopType Field = "shop_type"
	FieldTranType Field = "tran_type"
	FieldFromDate Field = "from_date"
	FieldToDate   Field = "to_date"
)

var (
	ErrUnknownField   = errors.New("unknown filter field")
	ErrDateOutOfRange = errors.New("date out of range")
	ErrInvertedRange  = errors.New("from date is after to date")
	ErrNotToggleable  = errors.New("field cannot be toggled")
)

// Bounds is the inclusive selectable date range.
type Bounds struct {
	Min domain.Date
	Max domain.Date
}

func (b Bounds) Contains(d domain.Date) bool {
	return !d.Before(b.Min) && !d.After(b.Max)
}

// State keeps the applied filters, which drive fetching, and the draft the
// user is editing. It is not safe for concurrent use; the owning event loop
// serialises access.
type State struct {
	applied domain.FilterSet
	draft   domain.FilterSet
	bounds  Bounds
	now     time.Time
}

// New starts with the default range (first of the month to yesterday) in
// both slots.
func New(now time.Time) *State {
	def := domain.DefaultFilterSet(now)
	maxDate := domain.Yesterday(now)
	if maxDate.Before(domain.MinReportDate) {
		maxDate = domain.MinReportDate
	}
	return &State{
		applied: def,
		draft:   def,
		bounds:  Bounds{Min: domain.MinReportDate, Max: maxDate},
		now:     now,
	}
}

func (s *State) Applied() domain.FilterSet { return s.applied }
func (s *State) Draft() domain.FilterSet   { return s.draft }
func (s *State) Bounds() Bounds            { return s.bounds }

// Dirty reports whether the draft differs from the applied set.
func (s *State) Dirty() bool { return s.draft != s.applied }

// Edit changes one draft field. Dates must be ISO formatted and inside the
// bounds; rejected values leave the draft unchanged.
func (s *State) Edit(field Field, value string) error {
	value = strings.TrimSpace(value)
	switch field {
	case FieldStore:
		s.draft.Store = value
	case FieldShopType:
		s.draft.ShopType = value
	case FieldTranType:
		s.draft.TranType = value
	case FieldFromDate, FieldToDate:
		d, err := domain.ParseDate(value)
		if err != nil {
			return fmt.Errorf("edit %s: %w", field, err)
		}
		if !s.bounds.Contains(d) {
			return fmt.Errorf("edit %s: %w: %s not within %s..%s",
				field, ErrDateOutOfRange, d, s.bounds.Min, s.bounds.Max)
		}
		if field == FieldFromDate {
			s.draft.FromDate = d
		} else {
			s.draft.ToDate = d
		}
	default:
		return fmt.Errorf("edit %q: %w", field, ErrUnknownField)
	}
	return nil
}

// Confirm promotes the draft to applied. An inverted date range is refused
// and nothing changes.
func (s *State) Confirm() (domain.FilterSet, error) {
	if s.draft.FromDate.After(s.draft.ToDate) {
		return s.applied, fmt.Errorf("confirm: %w", ErrInvertedRange)
	}
	s.applied = s.draft
	return s.applied, nil
}

// Reset clears the categorical filters in both slots and keeps the date
// range currently shown in the form.
func (s *State) Reset() domain.FilterSet {
	next := domain.DefaultFilterSet(s.now)
	if s.draft.FromDate.After(s.draft.ToDate) {
		next.FromDate, next.ToDate = s.applied.FromDate, s.applied.ToDate
	} else {
		next.FromDate, next.ToDate = s.draft.FromDate, s.draft.ToDate
	}
	s.applied = next
	s.draft = next
	return s.applied
}

// Toggle selects value for a categorical field, or clears it when it is
// already selected. It applies immediately, bypassing Confirm, and mirrors
// the field into the draft; other pending edits are kept.
func (s *State) Toggle(field Field, value string) (domain.FilterSet, error) {
	value = strings.TrimSpace(value)
	current, err := categorical(&s.applied, field)
	if err != nil {
		return s.applied, err
	}
	next := value
	if *current == value {
		next = ""
	}
	*current = next

	mirrored, _ := categorical(&s.draft, field)
	*mirrored = next
	return s.applied, nil
}

func categorical(f *domain.FilterSet, field Field) (*string, error) {
	switch field {
	case FieldStore:
		return &f.Store, nil
	case FieldShopType:
		return &f.ShopType, nil
	case FieldTranType:
		return &f.TranType, nil
	case FieldFromDate, FieldToDate:
		return nil, fmt.Errorf("toggle %s: %w", field, ErrNotToggleable)
	default:
		return nil, fmt.Errorf("toggle %q: %w", field, ErrUnknownField)
	}
}
