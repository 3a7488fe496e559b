package queue

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/simaogato/wizardfund-backend/internal/domain"
)

// fields collects the first error met while mapping a loose payload
type fields struct {
	err error
}

func (f *fields) fail(err error) {
	if f.err == nil {
		f.err = fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
}

func (f *fields) required(name string, v *string) string {
	if v == nil || *v == "" {
		f.fail(fmt.Errorf("%s is missing", name))
		return ""
	}
	return *v
}

// number converts an optional wire number; absent means zero
func (f *fields) number(name string, v *float64) decimal.Decimal {
	if v == nil {
		return decimal.Zero
	}
	d, err := domain.DecimalFromFloat(*v)
	if err != nil {
		f.fail(fmt.Errorf("field %s: %v", name, err))
		return decimal.Zero
	}
	return d
}

func optional[T any](v *T) T {
	var zero T
	if v == nil {
		return zero
	}
	return *v
}

func fromMillis(ms *int64) time.Time {
	if ms == nil || *ms <= 0 {
		return time.Time{}
	}
	return time.UnixMilli(*ms).UTC()
}
