package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/AVN-Software/seascapes-admin/internal/dto"
	"github.com/AVN-Software/seascapes-admin/internal/model"
	"github.com/AVN-Software/seascapes-admin/internal/pricing"
	"github.com/AVN-Software/seascapes-admin/internal/repository"
)

// QuoteService 报价预览业务接口
//
// 计价逻辑全部委托给 pricing 包；这里只负责加载数据。
// 返回的 pricing.ErrValidation / pricing.ErrAmbiguousSeason 由 Handler 映射为 400 / 409。
type QuoteService interface {
	NightlyRate(ctx context.Context, listingID, date string) (*dto.NightlyQuoteResponse, error)
	StayQuote(ctx context.Context, listingID, checkIn, checkOut string) (*dto.StayQuoteResponse, error)
}

type quoteService struct {
	repo   *repository.Repository
	cache  RatePlanCache
	logger *zap.Logger
}

// NewQuoteService 创建 QuoteService 实例
func NewQuoteService(repo *repository.Repository, cache RatePlanCache, logger *zap.Logger) QuoteService {
	return &quoteService{repo: repo, cache: cache, logger: logger}
}

// ────────────────────── NightlyRate ──────────────────────

func (s *quoteService) NightlyRate(ctx context.Context, listingID, date string) (*dto.NightlyQuoteResponse, error) {
	day, err := pricing.ParseDate(date)
	if err != nil {
		return nil, err
	}

	listing, plans, err := s.load(ctx, listingID)
	if err != nil {
		return nil, err
	}

	rate, err := pricing.ResolveRateForStay(listing, plans, day)
	if err != nil {
		return nil, err
	}

	return &dto.NightlyQuoteResponse{
		ListingID:           listingID,
		NightlyRateResponse: toNightlyRateResponse(day, rate),
	}, nil
}

// ────────────────────── StayQuote ──────────────────────

func (s *quoteService) StayQuote(ctx context.Context, listingID, checkIn, checkOut string) (*dto.StayQuoteResponse, error) {
	in, err := pricing.ParseDate(checkIn)
	if err != nil {
		return nil, err
	}
	out, err := pricing.ParseDate(checkOut)
	if err != nil {
		return nil, err
	}

	listing, plans, err := s.load(ctx, listingID)
	if err != nil {
		return nil, err
	}

	q, err := pricing.QuoteStay(listing, plans, in, out)
	if err != nil {
		return nil, err
	}

	resp := &dto.StayQuoteResponse{
		ListingID:        listingID,
		CheckIn:          q.CheckIn.Format(pricing.DateLayout),
		CheckOut:         q.CheckOut.Format(pricing.DateLayout),
		Nights:           q.Nights,
		Breakdown:        make([]dto.NightlyRateResponse, 0, len(q.Breakdown)),
		Segments:         make([]dto.StaySegmentResponse, 0, len(q.Segments)),
		NightsSubtotal:   dto.Money(q.NightsSubtotal),
		CleaningFee:      dto.Money(q.CleaningFee),
		Total:            dto.Money(q.Total),
		MinimumStay:      q.MinimumStay,
		MeetsMinimumStay: q.MeetsMinimumStay,
	}
	for _, n := range q.Breakdown {
		resp.Breakdown = append(resp.Breakdown, toNightlyRateResponse(n.Date, n.NightlyRate))
	}
	for _, seg := range q.Segments {
		resp.Segments = append(resp.Segments, dto.StaySegmentResponse{
			StartDate:   seg.StartDate.Format(pricing.DateLayout),
			EndDate:     seg.EndDate.Format(pricing.DateLayout),
			Nights:      seg.Nights,
			SeasonID:    seg.SeasonID,
			SeasonName:  seg.SeasonName,
			NightlyRate: dto.Money(seg.NightlyRate),
			Subtotal:    dto.Money(seg.Subtotal),
		})
	}
	return resp, nil
}

// ── 数据加载 ──

// load 读取房源与其价格方案；方案优先读缓存
func (s *quoteService) load(ctx context.Context, listingID string) (pricing.Listing, []pricing.RatePlan, error) {
	listing, err := s.repo.Listing.GetByID(ctx, listingID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pricing.Listing{}, nil, ErrListingNotFound
		}
		s.logger.Error("查询房源失败", zap.String("id", listingID), zap.Error(err))
		return pricing.Listing{}, nil, err
	}

	stored, ok := s.cache.Get(ctx, listingID)
	if !ok {
		stored, err = s.repo.RatePlan.ListByListing(ctx, listingID)
		if err != nil {
			s.logger.Error("列出价格方案失败", zap.String("listing_id", listingID), zap.Error(err))
			return pricing.Listing{}, nil, err
		}
		s.cache.Set(ctx, listingID, stored)
	}

	plans, err := s.toPricingPlans(stored)
	if err != nil {
		return pricing.Listing{}, nil, err
	}
	return listing.ToPricing(), plans, nil
}

func (s *quoteService) toPricingPlans(stored []model.RatePlan) ([]pricing.RatePlan, error) {
	plans := make([]pricing.RatePlan, 0, len(stored))
	for i := range stored {
		if stored[i].Season == nil {
			// 季节已被软删除
			s.logger.Warn("价格方案缺少季节，已跳过",
				zap.String("id", stored[i].ID),
				zap.String("season_id", stored[i].SeasonID),
			)
			continue
		}
		p, err := stored[i].ToPricing()
		if err != nil {
			return nil, err
		}
		plans = append(plans, p)
	}
	return plans, nil
}

func toNightlyRateResponse(day time.Time, rate pricing.NightlyRate) dto.NightlyRateResponse {
	return dto.NightlyRateResponse{
		Date:        day.Format(pricing.DateLayout),
		Price:       dto.Money(rate.Price),
		MinimumStay: rate.MinimumStay,
		Source:      string(rate.Source),
		SeasonID:    rate.SeasonID,
		SeasonName:  rate.SeasonName,
		RatePlanID:  rate.RatePlanID,
	}
}
