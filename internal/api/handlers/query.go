package handlers

import (
	"errors"
	"reflect"
	"strings"

	"github.com/Shivarajkushals/Dashboard/internal/domain"
	"github.com/go-playground/validator/v10"
)

var errDatesRequired = errors.New("from_date and to_date are required")

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		tag := strings.SplitN(f.Tag.Get("form"), ",", 2)[0]
		if tag == "" {
			return f.Name
		}
		return tag
	})
	return v
}

// summaryQuery is the query string accepted by the summary endpoints.
type summaryQuery struct {
	FromDate string `form:"from_date" validate:"required,datetime=2006-01-02"`
	ToDate   string `form:"to_date" validate:"required,datetime=2006-01-02"`
	Store    string `form:"store" validate:"max=200"`
	ShopType string `form:"shop_type" validate:"max=100"`
	TranType string `form:"tran_type" validate:"max=100"`
}

// filterSet validates q and converts it. A missing date yields
// errDatesRequired so callers can answer with the documented message.
func (q summaryQuery) filterSet() (domain.FilterSet, map[string]string, error) {
	q.FromDate = strings.TrimSpace(q.FromDate)
	q.ToDate = strings.TrimSpace(q.ToDate)
	if q.FromDate == "" || q.ToDate == "" {
		return domain.FilterSet{}, nil, errDatesRequired
	}
	if err := validate.Struct(q); err != nil {
		return domain.FilterSet{}, fieldErrors(err), err
	}

	from, err := domain.ParseDate(q.FromDate)
	if err != nil {
		return domain.FilterSet{}, nil, err
	}
	to, err := domain.ParseDate(q.ToDate)
	if err != nil {
		return domain.FilterSet{}, nil, err
	}
	if from.After(to) {
		return domain.FilterSet{}, map[string]string{"from_date": "must not be after to_date"}, errors.New("invalid date range")
	}

	return domain.FilterSet{
		Store:    strings.TrimSpace(q.Store),
		ShopType: strings.TrimSpace(q.ShopType),
		TranType: strings.TrimSpace(q.TranType),
		FromDate: from,
		ToDate:   to,
	}, nil, nil
}

func fieldErrors(err error) map[string]string {
	var errs validator.ValidationErrors
	if !errors.As(err, &errs) {
		return nil
	}
	details := make(map[string]string, len(errs))
	for _, fe := range errs {
		switch fe.Tag() {
		case "datetime":
			details[fe.Field()] = "must be a date in YYYY-MM-DD format"
		case "max":
			details[fe.Field()] = "must be at most " + fe.Param() + " characters"
		default:
			details[fe.Field()] = "is invalid"
		}
	}
	return details
}
