package service

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"github.com/AVN-Software/seascapes-admin/config"
	"github.com/AVN-Software/seascapes-admin/internal/dto"
	"github.com/AVN-Software/seascapes-admin/pkg/storage"
)

// ── 测试辅助 ──

func setupTestListingService() (ListingService, *mockRepos, *recordingCache) {
	repo, m := newMockRepository()
	cache := newRecordingCache()
	images := storage.NewURLBuilder(&config.StorageConfig{
		PublicBaseURL: "https://cdn.example.com/",
		Bucket:        "listing-images",
	})
	return NewListingService(repo, images, cache, zap.NewNop()), m, cache
}

func strPtr(s string) *string { return &s }
func intPtr(i int) *int       { return &i }
func floatPtr(f float64) *float64 {
	return &f
}

// ── Create ──

func TestListingService_Create_DefaultsMinStay(t *testing.T) {
	svc, _, _ := setupTestListingService()

	resp, err := svc.Create(context.Background(), &dto.CreateListingRequest{
		Title:        "Seaside Cottage",
		TownName:     "Hermanus",
		MaxGuests:    4,
		DefaultPrice: 1200,
		CleaningFee:  350,
		CoverImg:     "cover.jpg",
	}, "user-1")
	if err != nil {
		t.Fatalf("Create 应成功: %v", err)
	}
	if resp.MinStay != 1 {
		t.Errorf("min_stay 缺省应为 1, got %d", resp.MinStay)
	}
	if resp.Version != 1 {
		t.Errorf("新建房源版本号应为 1, got %d", resp.Version)
	}
	if resp.DefaultPrice != 1200 || resp.CleaningFee != 350 {
		t.Errorf("价格字段不正确: %+v", resp)
	}
	want := "https://cdn.example.com/listing-images/" + resp.ID + "/main/cover.jpg"
	if resp.CoverImgURL != want {
		t.Errorf("封面地址应为 %s, got %s", want, resp.CoverImgURL)
	}
}

// ── List ──

func TestListingService_List_Filters(t *testing.T) {
	svc, m, _ := setupTestListingService()
	seedListing(m, "Seaside Cottage", 1000, 0, 1)
	other := seedListing(m, "Mountain Cabin", 900, 0, 1)
	m.listing.listings[other.ID].TownName = "Franschhoek"

	all, err := svc.List(context.Background(), &dto.ListingListRequest{})
	if err != nil {
		t.Fatalf("List 应成功: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("应返回 2 个房源, got %d", len(all))
	}

	byTown, _ := svc.List(context.Background(), &dto.ListingListRequest{Town: "Hermanus"})
	if len(byTown) != 1 || byTown[0].Title != "Seaside Cottage" {
		t.Errorf("按城镇过滤结果不正确: %+v", byTown)
	}

	byQuery, _ := svc.List(context.Background(), &dto.ListingListRequest{Q: "cabin"})
	if len(byQuery) != 1 || byQuery[0].Title != "Mountain Cabin" {
		t.Errorf("按关键字过滤结果不正确: %+v", byQuery)
	}
}

// ── GetByID ──

func TestListingService_GetByID_NotFound(t *testing.T) {
	svc, _, _ := setupTestListingService()

	_, err := svc.GetByID(context.Background(), "missing")
	if !errors.Is(err, ErrListingNotFound) {
		t.Errorf("期望 ErrListingNotFound，实际: %v", err)
	}
}

// ── Update ──

func TestListingService_Update(t *testing.T) {
	svc, m, _ := setupTestListingService()
	l := seedListing(m, "Seaside Cottage", 1000, 0, 1)

	resp, err := svc.Update(context.Background(), l.ID, &dto.UpdateListingRequest{
		Version: 1,
		Title:   strPtr("Seaside Villa"),
	}, "user-1")
	if err != nil {
		t.Fatalf("Update 应成功: %v", err)
	}
	if resp.Title != "Seaside Villa" || resp.Version != 2 {
		t.Errorf("更新后数据不正确: title=%s version=%d", resp.Title, resp.Version)
	}

	_, err = svc.Update(context.Background(), l.ID, &dto.UpdateListingRequest{
		Version: 1,
		Title:   strPtr("Stale"),
	}, "user-1")
	if !errors.Is(err, ErrListingVersionConflict) {
		t.Errorf("旧版本号应返回 ErrListingVersionConflict，实际: %v", err)
	}

	_, err = svc.Update(context.Background(), l.ID, &dto.UpdateListingRequest{
		Version: 2,
		Title:   strPtr("Seaside Villa"),
	}, "user-1")
	if !errors.Is(err, ErrListingNoChanges) {
		t.Errorf("无变化应返回 ErrListingNoChanges，实际: %v", err)
	}
}

// ── UpdateRates ──

func TestListingService_UpdateRates(t *testing.T) {
	svc, m, _ := setupTestListingService()
	l := seedListing(m, "Seaside Cottage", 1000, 300, 2)

	resp, err := svc.UpdateRates(context.Background(), l.ID, &dto.UpdateListingRatesRequest{
		Version:      1,
		DefaultPrice: floatPtr(1250.5),
		MinStay:      intPtr(3),
	}, "user-1")
	if err != nil {
		t.Fatalf("UpdateRates 应成功: %v", err)
	}
	if resp.DefaultPrice != 1250.5 || resp.MinStay != 3 || resp.CleaningFee != 300 {
		t.Errorf("价格更新结果不正确: %+v", resp)
	}

	_, err = svc.UpdateRates(context.Background(), l.ID, &dto.UpdateListingRatesRequest{
		Version:     2,
		CleaningFee: floatPtr(300),
	}, "user-1")
	if !errors.Is(err, ErrListingNoChanges) {
		t.Errorf("清洁费未变化应返回 ErrListingNoChanges，实际: %v", err)
	}
}

// ── Delete ──

func TestListingService_Delete_InvalidatesCache(t *testing.T) {
	svc, m, cache := setupTestListingService()
	l := seedListing(m, "Seaside Cottage", 1000, 0, 1)

	if err := svc.Delete(context.Background(), l.ID, "user-1"); err != nil {
		t.Fatalf("Delete 应成功: %v", err)
	}
	if len(cache.invalidated) != 1 || cache.invalidated[0] != l.ID {
		t.Errorf("删除后应清除该房源缓存, got %v", cache.invalidated)
	}
	if _, err := svc.GetByID(context.Background(), l.ID); !errors.Is(err, ErrListingNotFound) {
		t.Errorf("删除后应查不到房源，实际: %v", err)
	}
	if err := svc.Delete(context.Background(), l.ID, "user-1"); !errors.Is(err, ErrListingNotFound) {
		t.Errorf("重复删除应返回 ErrListingNotFound，实际: %v", err)
	}
}
