package number

import (
	"github.com/shopspring/decimal"
	"github.com/spf13/cast"
)

func Decimal(v interface{}) decimal.Decimal {
	d, _ := decimal.NewFromString(cast.ToString(v))
	return d
}

func Min(a, b decimal.Decimal) decimal.Decimal {
	if a.LessThan(b) {
		return a
	}
	return b
}

func Ceil(d decimal.Decimal, precision int32) decimal.Decimal {
	return d.Shift(precision).Ceil().Shift(-precision)
}
