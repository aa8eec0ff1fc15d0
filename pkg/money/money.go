// Package money 金额换算
// 系统内部统一使用int64"分"，只在API边界与十进制字符串互转
package money

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// MaxCents 金额上限 99,999,999.99（DECIMAL(10,2)）
const MaxCents int64 = 9_999_999_999

var (
	// ErrTooManyDecimals 小数位超过2位
	ErrTooManyDecimals = errors.New("金额最多保留2位小数")
	// ErrNegative 金额为负
	ErrNegative = errors.New("金额不能为负数")
	// ErrOutOfRange 金额超出范围
	ErrOutOfRange = errors.New("金额超出范围")
)

var hundred = decimal.NewFromInt(100)

// FromDecimal 十进制金额 → 分
// 规则：最多2位小数，不能为负，不能超过MaxCents
func FromDecimal(d decimal.Decimal) (int64, error) {
	if !d.Equal(d.Round(2)) {
		return 0, ErrTooManyDecimals
	}
	if d.IsNegative() {
		return 0, ErrNegative
	}
	cents := d.Mul(hundred)
	if cents.GreaterThan(decimal.NewFromInt(MaxCents)) {
		return 0, ErrOutOfRange
	}
	return cents.IntPart(), nil
}

// Parse 字符串金额 → 分（"29.99" → 2999，"20" → 2000）
func Parse(s string) (int64, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, fmt.Errorf("无效的金额 %q", s)
	}
	return FromDecimal(d)
}

// ToDecimal 分 → 十进制金额
func ToDecimal(cents int64) decimal.Decimal {
	return decimal.New(cents, -2)
}

// Format 分 → 固定2位小数的字符串（4550 → "45.50"）
func Format(cents int64) string {
	return ToDecimal(cents).StringFixed(2)
}
