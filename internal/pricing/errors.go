package pricing

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ── 计价核心错误 ──

var (
	// ErrValidation 输入数据不合法（调整类型、负价格、日期区间等）
	ErrValidation = errors.New("计价参数无效")
	// ErrAmbiguousSeason 多个同优先级的启用季节同时覆盖目标日期
	ErrAmbiguousSeason = errors.New("季节匹配存在歧义")
)

// ValidationError 携带字段信息的校验错误
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

// Is 使 errors.Is(err, ErrValidation) 成立
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

func invalid(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}

// AmbiguousSeasonError 同一日期命中多个最低优先级季节
type AmbiguousSeasonError struct {
	Date      time.Time
	Priority  int
	SeasonIDs []string
}

func (e *AmbiguousSeasonError) Error() string {
	if e.Date.IsZero() {
		return fmt.Sprintf("优先级为 %d 的季节日期重叠: %s", e.Priority, strings.Join(e.SeasonIDs, ", "))
	}
	return fmt.Sprintf("%s 命中多个优先级为 %d 的季节: %s",
		e.Date.Format(DateLayout), e.Priority, strings.Join(e.SeasonIDs, ", "))
}

// Is 使 errors.Is(err, ErrAmbiguousSeason) 成立
func (e *AmbiguousSeasonError) Is(target error) bool {
	return target == ErrAmbiguousSeason
}
