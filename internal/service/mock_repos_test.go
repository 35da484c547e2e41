package service

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/AVN-Software/seascapes-admin/internal/model"
	"github.com/AVN-Software/seascapes-admin/internal/repository"
	pkgerrors "github.com/AVN-Software/seascapes-admin/pkg/errors"
)

// ── Mock ListingRepository ──

type mockListingRepo struct {
	listings map[string]*model.Listing
	seq      int
}

func newMockListingRepo() *mockListingRepo {
	return &mockListingRepo{listings: make(map[string]*model.Listing)}
}

func (m *mockListingRepo) Create(_ context.Context, listing *model.Listing) error {
	if listing.ID == "" {
		m.seq++
		listing.ID = fmt.Sprintf("listing-%d", m.seq)
	}
	cp := *listing
	m.listings[listing.ID] = &cp
	return nil
}

func (m *mockListingRepo) GetByID(_ context.Context, id string) (*model.Listing, error) {
	if l, ok := m.listings[id]; ok {
		cp := *l
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockListingRepo) List(_ context.Context, filter repository.ListingFilter) ([]model.Listing, error) {
	var result []model.Listing
	for _, l := range m.listings {
		if filter.Town != "" && l.TownName != filter.Town {
			continue
		}
		if filter.Query != "" && !strings.Contains(strings.ToLower(l.Title), strings.ToLower(filter.Query)) {
			continue
		}
		result = append(result, *l)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Title < result[j].Title })
	return result, nil
}

func (m *mockListingRepo) UpdateFields(_ context.Context, id string, version int, fields map[string]interface{}) error {
	if len(fields) == 0 {
		return pkgerrors.ErrEmptyUpdate
	}
	l, ok := m.listings[id]
	if !ok || l.Version != version {
		return pkgerrors.ErrOptimisticLock
	}
	for k, v := range fields {
		switch k {
		case "title":
			l.Title = v.(string)
		case "townname":
			l.TownName = v.(string)
		case "max_guests":
			l.MaxGuests = v.(int)
		case "min_stay":
			l.MinStay = v.(int)
		case "default_price":
			l.DefaultPrice = v.(decimal.Decimal)
		case "cleaning_fee":
			l.CleaningFee = v.(decimal.Decimal)
		case "updated_by":
			l.UpdatedBy = v.(*string)
		}
	}
	l.Version++
	return nil
}

func (m *mockListingRepo) Delete(_ context.Context, id string, _ string) error {
	if _, ok := m.listings[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(m.listings, id)
	return nil
}

// ── Mock SeasonRepository ──

type mockSeasonRepo struct {
	seasons map[string]*model.Season
	seq     int
}

func newMockSeasonRepo() *mockSeasonRepo {
	return &mockSeasonRepo{seasons: make(map[string]*model.Season)}
}

func (m *mockSeasonRepo) Create(_ context.Context, season *model.Season) error {
	if season.ID == "" {
		m.seq++
		season.ID = fmt.Sprintf("season-%d", m.seq)
	}
	cp := *season
	m.seasons[season.ID] = &cp
	return nil
}

func (m *mockSeasonRepo) GetByID(_ context.Context, id string) (*model.Season, error) {
	if s, ok := m.seasons[id]; ok {
		cp := *s
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockSeasonRepo) List(_ context.Context, includeInactive bool) ([]model.Season, error) {
	var result []model.Season
	for _, s := range m.seasons {
		if !includeInactive && !s.Active {
			continue
		}
		result = append(result, *s)
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].Priority != result[j].Priority {
			return result[i].Priority < result[j].Priority
		}
		return result[i].Name < result[j].Name
	})
	return result, nil
}

func (m *mockSeasonRepo) Update(_ context.Context, season *model.Season) error {
	cp := *season
	m.seasons[season.ID] = &cp
	return nil
}

func (m *mockSeasonRepo) Delete(_ context.Context, id string, _ string) error {
	if _, ok := m.seasons[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(m.seasons, id)
	return nil
}

// ── Mock RatePlanRepository ──

type mockRatePlanRepo struct {
	plans   map[string]*model.RatePlan
	seasons *mockSeasonRepo // 模拟 Preload("Season")
	seq     int
	listErr error
	calls   int // ListByListing 调用次数
}

func newMockRatePlanRepo(seasons *mockSeasonRepo) *mockRatePlanRepo {
	return &mockRatePlanRepo{plans: make(map[string]*model.RatePlan), seasons: seasons}
}

func (m *mockRatePlanRepo) withSeason(p model.RatePlan) model.RatePlan {
	p.Season = nil
	if s, ok := m.seasons.seasons[p.SeasonID]; ok {
		cp := *s
		p.Season = &cp
	}
	return p
}

func (m *mockRatePlanRepo) Create(_ context.Context, plan *model.RatePlan) error {
	for _, p := range m.plans {
		if p.ListingID == plan.ListingID && p.SeasonID == plan.SeasonID {
			return gorm.ErrDuplicatedKey
		}
	}
	if plan.ID == "" {
		m.seq++
		plan.ID = fmt.Sprintf("plan-%d", m.seq)
	}
	cp := *plan
	cp.Season = nil
	m.plans[plan.ID] = &cp
	return nil
}

func (m *mockRatePlanRepo) GetByID(_ context.Context, id string) (*model.RatePlan, error) {
	if p, ok := m.plans[id]; ok {
		cp := m.withSeason(*p)
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockRatePlanRepo) ListByListing(_ context.Context, listingID string) ([]model.RatePlan, error) {
	m.calls++
	if m.listErr != nil {
		return nil, m.listErr
	}
	var result []model.RatePlan
	for _, p := range m.plans {
		if p.ListingID == listingID {
			result = append(result, m.withSeason(*p))
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

func (m *mockRatePlanRepo) ExistsForSeason(_ context.Context, listingID, seasonID, excludeID string) (bool, error) {
	for _, p := range m.plans {
		if p.ListingID == listingID && p.SeasonID == seasonID && p.ID != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func (m *mockRatePlanRepo) CountBySeason(_ context.Context, seasonID string) (int64, error) {
	var n int64
	for _, p := range m.plans {
		if p.SeasonID == seasonID {
			n++
		}
	}
	return n, nil
}

func (m *mockRatePlanRepo) Update(_ context.Context, plan *model.RatePlan) error {
	cp := *plan
	cp.Season = nil
	m.plans[plan.ID] = &cp
	return nil
}

func (m *mockRatePlanRepo) Delete(_ context.Context, id string) error {
	if _, ok := m.plans[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(m.plans, id)
	return nil
}

// ── Mock AmenityRepository ──

type mockAmenityRepo struct {
	amenities map[string]*model.Amenity
	seq       int
}

func newMockAmenityRepo() *mockAmenityRepo {
	return &mockAmenityRepo{amenities: make(map[string]*model.Amenity)}
}

func (m *mockAmenityRepo) Create(_ context.Context, amenity *model.Amenity) error {
	if amenity.ID == "" {
		m.seq++
		amenity.ID = fmt.Sprintf("amenity-%d", m.seq)
	}
	cp := *amenity
	m.amenities[amenity.ID] = &cp
	return nil
}

func (m *mockAmenityRepo) GetByID(_ context.Context, id string) (*model.Amenity, error) {
	if a, ok := m.amenities[id]; ok {
		cp := *a
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockAmenityRepo) GetByIDs(_ context.Context, ids []string) ([]model.Amenity, error) {
	var result []model.Amenity
	for _, id := range ids {
		if a, ok := m.amenities[id]; ok {
			result = append(result, *a)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result, nil
}

func (m *mockAmenityRepo) GetByName(_ context.Context, name string) (*model.Amenity, error) {
	for _, a := range m.amenities {
		if strings.EqualFold(a.Name, name) {
			cp := *a
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockAmenityRepo) List(_ context.Context, query string) ([]model.Amenity, error) {
	var result []model.Amenity
	for _, a := range m.amenities {
		if query != "" && !strings.Contains(strings.ToLower(a.Name), strings.ToLower(query)) {
			continue
		}
		result = append(result, *a)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result, nil
}

func (m *mockAmenityRepo) Update(_ context.Context, amenity *model.Amenity) error {
	cp := *amenity
	m.amenities[amenity.ID] = &cp
	return nil
}

func (m *mockAmenityRepo) DeleteByIDs(_ context.Context, ids []string) (int64, error) {
	var n int64
	for _, id := range ids {
		if _, ok := m.amenities[id]; ok {
			delete(m.amenities, id)
			n++
		}
	}
	return n, nil
}

// ── Mock AmenityMapRepository ──

type mockAmenityMapRepo struct {
	maps []model.AmenityMap
}

func newMockAmenityMapRepo() *mockAmenityMapRepo {
	return &mockAmenityMapRepo{}
}

func (m *mockAmenityMapRepo) ListByListing(_ context.Context, listingID string) ([]model.AmenityMap, error) {
	var result []model.AmenityMap
	for _, am := range m.maps {
		if am.ListingID == listingID {
			result = append(result, am)
		}
	}
	return result, nil
}

func (m *mockAmenityMapRepo) Exists(_ context.Context, listingID, amenityID string) (bool, error) {
	for _, am := range m.maps {
		if am.ListingID == listingID && am.AmenityID == amenityID {
			return true, nil
		}
	}
	return false, nil
}

func (m *mockAmenityMapRepo) Create(_ context.Context, am *model.AmenityMap) error {
	m.maps = append(m.maps, *am)
	return nil
}

func (m *mockAmenityMapRepo) BatchCreate(_ context.Context, maps []model.AmenityMap) error {
	m.maps = append(m.maps, maps...)
	return nil
}

func (m *mockAmenityMapRepo) Delete(_ context.Context, listingID, amenityID string) (int64, error) {
	var n int64
	kept := m.maps[:0]
	for _, am := range m.maps {
		if am.ListingID == listingID && am.AmenityID == amenityID {
			n++
			continue
		}
		kept = append(kept, am)
	}
	m.maps = kept
	return n, nil
}

func (m *mockAmenityMapRepo) DeleteByListing(_ context.Context, listingID string) error {
	kept := m.maps[:0]
	for _, am := range m.maps {
		if am.ListingID != listingID {
			kept = append(kept, am)
		}
	}
	m.maps = kept
	return nil
}

func (m *mockAmenityMapRepo) DeleteByAmenities(_ context.Context, amenityIDs []string) error {
	drop := make(map[string]bool, len(amenityIDs))
	for _, id := range amenityIDs {
		drop[id] = true
	}
	kept := m.maps[:0]
	for _, am := range m.maps {
		if !drop[am.AmenityID] {
			kept = append(kept, am)
		}
	}
	m.maps = kept
	return nil
}

// ── 测试装配 ──

type mockRepos struct {
	listing    *mockListingRepo
	season     *mockSeasonRepo
	ratePlan   *mockRatePlanRepo
	amenity    *mockAmenityRepo
	amenityMap *mockAmenityMapRepo
}

func newMockRepository() (*repository.Repository, *mockRepos) {
	seasons := newMockSeasonRepo()
	m := &mockRepos{
		listing:    newMockListingRepo(),
		season:     seasons,
		ratePlan:   newMockRatePlanRepo(seasons),
		amenity:    newMockAmenityRepo(),
		amenityMap: newMockAmenityMapRepo(),
	}
	repo := &repository.Repository{
		Listing:    m.listing,
		Season:     m.season,
		RatePlan:   m.ratePlan,
		Amenity:    m.amenity,
		AmenityMap: m.amenityMap,
	}
	return repo, m
}

// recordingCache 记录失效调用的内存缓存
type recordingCache struct {
	data          map[string][]model.RatePlan
	invalidated   []string
	invalidateAll int
}

func newRecordingCache() *recordingCache {
	return &recordingCache{data: make(map[string][]model.RatePlan)}
}

func (c *recordingCache) Get(_ context.Context, listingID string) ([]model.RatePlan, bool) {
	p, ok := c.data[listingID]
	return p, ok
}

func (c *recordingCache) Set(_ context.Context, listingID string, plans []model.RatePlan) {
	c.data[listingID] = plans
}

func (c *recordingCache) Invalidate(_ context.Context, listingID string) {
	c.invalidated = append(c.invalidated, listingID)
	delete(c.data, listingID)
}

func (c *recordingCache) InvalidateAll(_ context.Context) {
	c.invalidateAll++
	c.data = make(map[string][]model.RatePlan)
}

// ── 测试数据 ──

func seedListing(m *mockRepos, title string, defaultPrice, cleaningFee float64, minStay int) *model.Listing {
	l := &model.Listing{
		Title:        title,
		TownName:     "Hermanus",
		MaxGuests:    4,
		DefaultPrice: decimal.NewFromFloat(defaultPrice),
		CleaningFee:  decimal.NewFromFloat(cleaningFee),
		MinStay:      minStay,
	}
	l.Version = 1
	_ = m.listing.Create(context.Background(), l)
	return l
}

func seedSeason(m *mockRepos, name string, priority, minStay int, ranges ...model.DateRange) *model.Season {
	s := &model.Season{
		Name:        name,
		DateRanges:  ranges,
		MinimumStay: minStay,
		Priority:    priority,
		Active:      true,
	}
	_ = m.season.Create(context.Background(), s)
	return s
}

func seedPlan(m *mockRepos, listingID, seasonID string, price float64, adjType string, adjValue float64) *model.RatePlan {
	p := &model.RatePlan{
		ListingID: listingID,
		SeasonID:  seasonID,
		Price:     decimal.NewFromFloat(price),
	}
	p.RateAdjustment = datatypes.NewJSONType(model.RateAdjustment{Type: adjType, Value: decimal.NewFromFloat(adjValue)})
	_ = m.ratePlan.Create(context.Background(), p)
	return p
}
