package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// TimeLayout 响应中时间戳的统一格式
const TimeLayout = "2006-01-02T15:04:05Z"

// FormatTime 转为 UTC 后格式化
func FormatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(TimeLayout)
}

// Money 金额转 float64 输出，保留两位小数
func Money(d decimal.Decimal) float64 {
	return d.Round(2).InexactFloat64()
}

// ToDecimal 请求中的 float64 金额转 decimal，保留两位小数
func ToDecimal(f float64) decimal.Decimal {
	return decimal.NewFromFloat(f).Round(2)
}
