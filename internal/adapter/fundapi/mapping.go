package fundapi

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/simaogato/wizardfund-backend/internal/domain"
)

// mapper converts wire numbers into decimals and keeps the first failure
type mapper struct {
	err error
}

func (m *mapper) decimal(field string, f float64) decimal.Decimal {
	d, err := domain.DecimalFromFloat(f)
	if err != nil && m.err == nil {
		m.err = fmt.Errorf("field %s: %w", field, err)
	}
	return d
}

// fromMillis converts an epoch milliseconds timestamp; zero stays the zero time
func fromMillis(ms int64) time.Time {
	if ms == 0 {
		return time.Time{}
	}
	return time.UnixMilli(ms).UTC()
}
