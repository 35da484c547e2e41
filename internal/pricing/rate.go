package pricing

import (
	"time"

	"github.com/shopspring/decimal"
)

// AdjustmentType 价格调整方式
type AdjustmentType string

const (
	AdjustmentFixed      AdjustmentType = "fixed"
	AdjustmentPercentage AdjustmentType = "percentage"
)

// 金额保留两位小数（最小货币单位）
const moneyPlaces = 2

var hundred = decimal.NewFromInt(100)

// Valid 是否为受支持的调整方式
func (t AdjustmentType) Valid() bool {
	return t == AdjustmentFixed || t == AdjustmentPercentage
}

// Adjustment 在基础价上叠加的固定金额或百分比
type Adjustment struct {
	Type  AdjustmentType
	Value decimal.Decimal
}

// RatePlan 房源在某季节下的价格覆盖
type RatePlan struct {
	ID         string
	ListingID  string
	Season     Season
	Price      decimal.Decimal
	Adjustment Adjustment
}

// Listing 计价所需的房源字段
type Listing struct {
	ID           string
	DefaultPrice decimal.Decimal
	MinStay      int
	CleaningFee  decimal.Decimal
}

// RateSource 夜间价格来源
type RateSource string

const (
	SourceRatePlan RateSource = "rate_plan"
	SourceDefault  RateSource = "default"
)

// NightlyRate 某一晚的价格与最少入住要求
type NightlyRate struct {
	Price       decimal.Decimal
	MinimumStay int
	Source      RateSource
	SeasonID    string
	SeasonName  string
	RatePlanID  string
}

// CalculateFinalPrice 计算调整后的每晚价格
//
//	fixed:      base + value
//	percentage: base + base*value/100
//
// 结果四舍五入到两位小数，且不低于 0。
func CalculateFinalPrice(basePrice decimal.Decimal, adj Adjustment) (decimal.Decimal, error) {
	if basePrice.IsNegative() {
		return decimal.Zero, invalid("price", "基础价格不能为负数")
	}

	var final decimal.Decimal
	switch adj.Type {
	case AdjustmentFixed:
		final = basePrice.Add(adj.Value)
	case AdjustmentPercentage:
		final = basePrice.Add(basePrice.Mul(adj.Value).Div(hundred))
	default:
		return decimal.Zero, invalid("adjustment_type", "调整方式必须为 fixed 或 percentage")
	}

	final = final.Round(moneyPlaces)
	if final.IsNegative() {
		return decimal.Zero, nil
	}
	return final, nil
}

// ResolveRateForStay 计算房源在指定日期的每晚价格与最少入住晚数
//
// 候选季节取自该房源自身的价格方案；其他房源的方案被忽略。
// 没有匹配方案时回退到房源默认价格，MinStay 缺省为 1。
func ResolveRateForStay(listing Listing, plans []RatePlan, date time.Time) (NightlyRate, error) {
	if listing.DefaultPrice.IsNegative() {
		return NightlyRate{}, invalid("default_price", "默认价格不能为负数")
	}

	own := make([]RatePlan, 0, len(plans))
	seasons := make([]Season, 0, len(plans))
	for _, p := range plans {
		if p.ListingID != listing.ID {
			continue
		}
		own = append(own, p)
		seasons = append(seasons, p.Season)
	}

	season, err := ResolveSeason(seasons, date)
	if err != nil {
		return NightlyRate{}, err
	}

	if season != nil {
		for _, p := range own {
			if p.Season.ID != season.ID {
				continue
			}
			price, err := CalculateFinalPrice(p.Price, p.Adjustment)
			if err != nil {
				return NightlyRate{}, err
			}
			return NightlyRate{
				Price:       price,
				MinimumStay: p.Season.MinimumStay,
				Source:      SourceRatePlan,
				SeasonID:    p.Season.ID,
				SeasonName:  p.Season.Name,
				RatePlanID:  p.ID,
			}, nil
		}
	}

	minStay := listing.MinStay
	if minStay <= 0 {
		minStay = 1
	}
	return NightlyRate{
		Price:       listing.DefaultPrice,
		MinimumStay: minStay,
		Source:      SourceDefault,
	}, nil
}

// TotalStayCost nightly*nights + cleaningFee
// 不校验最少入住晚数，调用方需自行比较 nights 与 MinimumStay
func TotalStayCost(nightlyPrice decimal.Decimal, nights int, cleaningFee decimal.Decimal) (decimal.Decimal, error) {
	if nightlyPrice.IsNegative() {
		return decimal.Zero, invalid("nightly_price", "每晚价格不能为负数")
	}
	if nights < 0 {
		return decimal.Zero, invalid("nights", "入住晚数不能为负数")
	}
	if cleaningFee.IsNegative() {
		return decimal.Zero, invalid("cleaning_fee", "清洁费不能为负数")
	}
	return nightlyPrice.Mul(decimal.NewFromInt(int64(nights))).Add(cleaningFee).Round(moneyPlaces), nil
}
