package pricing

import (
	"time"

	"github.com/shopspring/decimal"
)

// MaxStayNights 单次报价允许的最大晚数
const MaxStayNights = 365

// NightQuote 单晚报价
type NightQuote struct {
	Date time.Time
	NightlyRate
}

// StaySegment 连续且价格来源相同的若干晚
type StaySegment struct {
	StartDate   time.Time // 第一晚
	EndDate     time.Time // 最后一晚
	Nights      int
	SeasonID    string
	SeasonName  string
	NightlyRate decimal.Decimal
	Subtotal    decimal.Decimal
}

// StayQuote 多晚入住报价
type StayQuote struct {
	CheckIn          time.Time
	CheckOut         time.Time
	Nights           int
	Breakdown        []NightQuote
	Segments         []StaySegment
	NightsSubtotal   decimal.Decimal
	CleaningFee      decimal.Decimal
	Total            decimal.Decimal
	MinimumStay      int // 入住期间最严格的最少晚数
	MeetsMinimumStay bool
}

// QuoteStay 逐晚解析 [checkIn, checkOut) 的价格并汇总
func QuoteStay(listing Listing, plans []RatePlan, checkIn, checkOut time.Time) (*StayQuote, error) {
	in, out := DateOf(checkIn), DateOf(checkOut)
	if !out.After(in) {
		return nil, invalid("check_out", "退房日期必须晚于入住日期")
	}
	nights := int(out.Sub(in).Hours() / 24)
	if nights > MaxStayNights {
		return nil, invalid("check_out", "单次报价最多 365 晚")
	}
	if listing.CleaningFee.IsNegative() {
		return nil, invalid("cleaning_fee", "清洁费不能为负数")
	}

	q := &StayQuote{
		CheckIn:        in,
		CheckOut:       out,
		Nights:         nights,
		Breakdown:      make([]NightQuote, 0, nights),
		NightsSubtotal: decimal.Zero,
		CleaningFee:    listing.CleaningFee,
	}

	for d := in; d.Before(out); d = d.AddDate(0, 0, 1) {
		rate, err := ResolveRateForStay(listing, plans, d)
		if err != nil {
			return nil, err
		}
		q.Breakdown = append(q.Breakdown, NightQuote{Date: d, NightlyRate: rate})
		q.NightsSubtotal = q.NightsSubtotal.Add(rate.Price)
		if rate.MinimumStay > q.MinimumStay {
			q.MinimumStay = rate.MinimumStay
		}

		n := len(q.Segments)
		if n > 0 && sameSegment(q.Segments[n-1], rate) {
			seg := &q.Segments[n-1]
			seg.EndDate = d
			seg.Nights++
			seg.Subtotal = seg.Subtotal.Add(rate.Price)
			continue
		}
		q.Segments = append(q.Segments, StaySegment{
			StartDate:   d,
			EndDate:     d,
			Nights:      1,
			SeasonID:    rate.SeasonID,
			SeasonName:  rate.SeasonName,
			NightlyRate: rate.Price,
			Subtotal:    rate.Price,
		})
	}

	total := listing.CleaningFee
	for _, seg := range q.Segments {
		cost, err := TotalStayCost(seg.NightlyRate, seg.Nights, decimal.Zero)
		if err != nil {
			return nil, err
		}
		total = total.Add(cost)
	}
	q.Total = total.Round(moneyPlaces)
	q.MeetsMinimumStay = nights >= q.MinimumStay
	return q, nil
}

func sameSegment(seg StaySegment, rate NightlyRate) bool {
	return seg.SeasonID == rate.SeasonID && seg.NightlyRate.Equal(rate.Price)
}
