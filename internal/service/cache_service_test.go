package service

import (
	"context"
	"errors"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/Payphone-Digital/instruments/internal/constants"
	"github.com/Payphone-Digital/instruments/internal/dto"
	"github.com/Payphone-Digital/instruments/internal/repository"
	"github.com/Payphone-Digital/instruments/pkg/circuit"
)

type fakeRedis struct {
	mu     sync.Mutex
	data   map[string][]byte
	failed bool
}

func newFakeRedis() *fakeRedis {
	return &fakeRedis{data: make(map[string][]byte)}
}

var errRedisDown = errors.New("redis down")

func (f *fakeRedis) IsEnabled() bool {
	return true
}

func (f *fakeRedis) Ping(ctx context.Context) error {
	if f.failed {
		return errRedisDown
	}
	return nil
}

func (f *fakeRedis) Get(ctx context.Context, key string) ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failed {
		return nil, errRedisDown
	}
	return f.data[key], nil
}

func (f *fakeRedis) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failed {
		return errRedisDown
	}
	f.data[key] = value
	return nil
}

func (f *fakeRedis) Incr(ctx context.Context, key string) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failed {
		return 0, errRedisDown
	}
	n, _ := strconv.ParseInt(string(f.data[key]), 10, 64)
	n++
	f.data[key] = []byte(strconv.FormatInt(n, 10))
	return n, nil
}

func (f *fakeRedis) Close() error {
	return nil
}

type countingLoader struct {
	calls int
	page  dto.ListingPage
}

func (l *countingLoader) load(ctx context.Context, q dto.ListingQuery) (*dto.ListingPage, error) {
	l.calls++
	page := l.page
	return &page, nil
}

func TestCacheService_LocalHitAndInvalidate(t *testing.T) {
	svc := NewCacheService(nil, CacheConfig{Enabled: true, Local: true, TTL: time.Minute})
	defer svc.Close()

	loader := &countingLoader{page: dto.ListingPage{Count: 1, NumPages: 1}}
	q := dto.ListingQuery{}.Normalize()

	for i := 0; i < 3; i++ {
		if _, err := svc.Listing(context.Background(), q, loader.load); err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
	}
	if loader.calls != 1 {
		t.Errorf("Expected 1 load, got %d", loader.calls)
	}

	svc.Invalidate(context.Background())
	if _, err := svc.Listing(context.Background(), q, loader.load); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if loader.calls != 2 {
		t.Errorf("Expected a reload after invalidation, got %d loads", loader.calls)
	}
}

func TestCacheService_Disabled(t *testing.T) {
	svc := NewCacheService(newFakeRedis(), CacheConfig{Enabled: false})
	defer svc.Close()

	loader := &countingLoader{}
	q := dto.ListingQuery{}.Normalize()
	for i := 0; i < 2; i++ {
		_, _ = svc.Listing(context.Background(), q, loader.load)
	}
	if loader.calls != 2 {
		t.Errorf("Expected every call to load, got %d loads", loader.calls)
	}
}

func TestCacheService_RedisGeneration(t *testing.T) {
	rdb := newFakeRedis()
	svc := NewCacheService(rdb, CacheConfig{Enabled: true, TTL: time.Minute})
	defer svc.Close()

	loader := &countingLoader{page: dto.ListingPage{
		Count:    1,
		NumPages: 1,
		Results:  []dto.InstrumentResponse{{ID: 7, Name: "Sitar"}},
	}}
	q := dto.ListingQuery{}.Normalize()

	if _, err := svc.Listing(context.Background(), q, loader.load); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if _, ok := rdb.data[constants.CacheKeyListing+"0:"+q.CacheKey()]; !ok {
		t.Error("Expected page to be stored under generation 0")
	}

	page, err := svc.Listing(context.Background(), q, loader.load)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if loader.calls != 1 {
		t.Errorf("Expected cache hit, got %d loads", loader.calls)
	}
	if len(page.Results) != 1 || page.Results[0].Name != "Sitar" {
		t.Errorf("Expected cached Sitar result, got %+v", page.Results)
	}

	svc.Invalidate(context.Background())
	if string(rdb.data[constants.CacheKeyGeneration]) != "1" {
		t.Errorf("Expected generation 1, got %q", rdb.data[constants.CacheKeyGeneration])
	}
	if _, err := svc.Listing(context.Background(), q, loader.load); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if loader.calls != 2 {
		t.Errorf("Expected reload after invalidation, got %d loads", loader.calls)
	}
}

func TestCacheService_RedisDownFallsBackToStorage(t *testing.T) {
	rdb := newFakeRedis()
	rdb.failed = true
	svc := NewCacheService(rdb, CacheConfig{
		Enabled: true,
		TTL:     time.Minute,
		Breaker: circuit.Config{Failures: 1, Cooldown: time.Hour},
	})
	defer svc.Close()

	loader := &countingLoader{page: dto.ListingPage{Count: 1, NumPages: 1}}
	q := dto.ListingQuery{}.Normalize()

	for i := 0; i < 3; i++ {
		if _, err := svc.Listing(context.Background(), q, loader.load); err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
	}
	if loader.calls != 3 {
		t.Errorf("Expected every call to reach storage, got %d loads", loader.calls)
	}
	if svc.breaker.State() != circuit.StateOpen {
		t.Errorf("Expected breaker to open, got %s", svc.breaker.State())
	}

	status := svc.Status(context.Background())
	if status["redis"] != "unreachable" {
		t.Errorf("Expected redis unreachable, got %v", status["redis"])
	}
}

func TestInstrumentService_ListInvalidatesAfterWrite(t *testing.T) {
	cache := NewCacheService(nil, CacheConfig{Enabled: true, Local: true, TTL: time.Minute})
	defer cache.Close()
	svc := NewInstrumentService(repository.NewMemoryInstrumentRepository(), cache, testListingURL)
	ctx := context.Background()

	if _, err := svc.Create(ctx, newRequest("Harp")); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	res, err := svc.List(ctx, dto.ListingQuery{}, nil)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if res.Count != 1 {
		t.Fatalf("Expected count 1, got %d", res.Count)
	}

	if _, err := svc.Create(ctx, newRequest("Lyre")); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	res, err = svc.List(ctx, dto.ListingQuery{}, nil)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if res.Count != 2 {
		t.Errorf("Expected count 2 after create, got %d", res.Count)
	}
}

func TestCacheService_SharedStoreWithoutRedis(t *testing.T) {
	store := repository.NewMemoryInstrumentRepository()
	ctx := context.Background()

	newReplica := func() *InstrumentService {
		cache := NewCacheService(nil, CacheConfig{Enabled: true, TTL: time.Minute})
		t.Cleanup(cache.Close)
		return NewInstrumentService(store, cache, testListingURL)
	}
	a, b := newReplica(), newReplica()

	if _, err := a.Create(ctx, newRequest("Lyre")); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	res, err := b.List(ctx, dto.ListingQuery{}, nil)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if res.Count != 1 {
		t.Fatalf("Expected count 1, got %d", res.Count)
	}

	id, err := a.Create(ctx, newRequest("Harp"))
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if _, err := b.GetByID(ctx, id); err != nil {
		t.Fatalf("Expected the new record on the other replica, got %v", err)
	}
	res, err = b.List(ctx, dto.ListingQuery{}, nil)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if res.Count != 2 {
		t.Errorf("Expected count 2 on the other replica, got %d", res.Count)
	}
}

func TestCacheService_StatusWithoutBackend(t *testing.T) {
	svc := NewCacheService(nil, CacheConfig{Enabled: true})
	defer svc.Close()

	if got := svc.Status(context.Background())["backend"]; got != "none" {
		t.Errorf("Expected backend none, got %v", got)
	}
}
