package pricing

import (
	"sort"
	"strings"
	"time"
)

// DateLayout 日历日期格式
const DateLayout = "2006-01-02"

// 常用季节名称（名称本身为开放字符串，这里只列出约定值）
const (
	SeasonStandard    = "Standard"
	SeasonHolidayPeak = "Holiday Peak"
	SeasonFestive     = "Festive"
)

const seasonNameMaxLen = 50

// DateRange 闭区间日历日期 [Start, End]
type DateRange struct {
	Start time.Time
	End   time.Time
}

// Season 带优先级的季节定义，Priority 越小优先级越高
type Season struct {
	ID          string
	Name        string
	DateRanges  []DateRange
	MinimumStay int
	Priority    int
	Active      bool
}

// DateOf 截取日期部分并归一到 UTC 零点
func DateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ParseDate 解析 YYYY-MM-DD
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, invalid("date", "日期格式应为 YYYY-MM-DD")
	}
	return t, nil
}

// NewDateRange 由两个字符串日期构造区间
func NewDateRange(start, end string) (DateRange, error) {
	s, err := ParseDate(start)
	if err != nil {
		return DateRange{}, invalid("start_date", "日期格式应为 YYYY-MM-DD")
	}
	e, err := ParseDate(end)
	if err != nil {
		return DateRange{}, invalid("end_date", "日期格式应为 YYYY-MM-DD")
	}
	r := DateRange{Start: s, End: e}
	return r, r.Validate()
}

// Validate 结束日期不得早于开始日期
func (r DateRange) Validate() error {
	if DateOf(r.End).Before(DateOf(r.Start)) {
		return invalid("date_ranges", "结束日期早于开始日期: "+
			r.Start.Format(DateLayout)+" ~ "+r.End.Format(DateLayout))
	}
	return nil
}

// Contains 判断日期是否落在闭区间内
func (r DateRange) Contains(date time.Time) bool {
	d := DateOf(date)
	return !d.Before(DateOf(r.Start)) && !d.After(DateOf(r.End))
}

// Overlaps 两个闭区间是否有交集
func (r DateRange) Overlaps(o DateRange) bool {
	return !DateOf(r.End).Before(DateOf(o.Start)) && !DateOf(o.End).Before(DateOf(r.Start))
}

// Covers 季节的任一区间是否包含该日期
func (s Season) Covers(date time.Time) bool {
	for _, r := range s.DateRanges {
		if r.Contains(date) {
			return true
		}
	}
	return false
}

func (s Season) overlaps(o Season) bool {
	for _, a := range s.DateRanges {
		for _, b := range o.DateRanges {
			if a.Overlaps(b) {
				return true
			}
		}
	}
	return false
}

// ResolveSeason 找出在 date 生效的季节
//
// 只考虑启用的季节；多个命中时取 Priority 最小者。
// 无命中返回 (nil, nil)，由调用方回退到默认价格。
// 最小优先级出现并列时返回 *AmbiguousSeasonError，不依赖切片顺序。
func ResolveSeason(seasons []Season, date time.Time) (*Season, error) {
	var matches []int
	for i := range seasons {
		s := &seasons[i]
		if !s.Active {
			continue
		}
		for _, r := range s.DateRanges {
			if err := r.Validate(); err != nil {
				return nil, err
			}
		}
		if s.Covers(date) {
			matches = append(matches, i)
		}
	}
	if len(matches) == 0 {
		return nil, nil
	}

	best := matches[0]
	for _, i := range matches[1:] {
		if seasons[i].Priority < seasons[best].Priority {
			best = i
		}
	}

	var tied []string
	for _, i := range matches {
		if seasons[i].Priority == seasons[best].Priority {
			tied = append(tied, seasons[i].ID)
		}
	}
	if len(tied) > 1 {
		sort.Strings(tied)
		return nil, &AmbiguousSeasonError{
			Date:      DateOf(date),
			Priority:  seasons[best].Priority,
			SeasonIDs: tied,
		}
	}

	result := seasons[best]
	return &result, nil
}

// ValidateSeason 校验单个季节的数据完整性
func ValidateSeason(s Season) error {
	name := strings.TrimSpace(s.Name)
	if name == "" {
		return invalid("name", "季节名称不能为空")
	}
	if len([]rune(name)) > seasonNameMaxLen {
		return invalid("name", "季节名称过长")
	}
	if s.MinimumStay < 1 {
		return invalid("minimum_stay", "最少入住晚数必须为正整数")
	}
	if s.Priority < 1 {
		return invalid("priority", "优先级必须为正整数")
	}
	if len(s.DateRanges) == 0 {
		return invalid("date_ranges", "至少需要一个日期区间")
	}
	for _, r := range s.DateRanges {
		if err := r.Validate(); err != nil {
			return err
		}
	}
	for i := 0; i < len(s.DateRanges); i++ {
		for j := i + 1; j < len(s.DateRanges); j++ {
			if s.DateRanges[i].Overlaps(s.DateRanges[j]) {
				return invalid("date_ranges", "同一季节内的日期区间不能重叠")
			}
		}
	}
	return nil
}

// CheckPriorityConflicts 检查候选季节是否与其他启用季节同优先级且日期重叠
// 这种组合会让 ResolveSeason 产生歧义，写入时即拒绝
func CheckPriorityConflicts(candidate Season, others []Season) error {
	if !candidate.Active {
		return nil
	}
	var conflicts []string
	for _, o := range others {
		if o.ID == candidate.ID || !o.Active || o.Priority != candidate.Priority {
			continue
		}
		if candidate.overlaps(o) {
			conflicts = append(conflicts, o.ID)
		}
	}
	if len(conflicts) == 0 {
		return nil
	}
	if candidate.ID != "" {
		conflicts = append(conflicts, candidate.ID)
	}
	sort.Strings(conflicts)
	return &AmbiguousSeasonError{Priority: candidate.Priority, SeasonIDs: conflicts}
}
