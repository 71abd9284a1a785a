package service

import (
	"context"
	"errors"
	"net/url"

	"github.com/Payphone-Digital/instruments/internal/constants"
	"github.com/Payphone-Digital/instruments/internal/dto"
	apperrors "github.com/Payphone-Digital/instruments/internal/errors"
	"github.com/Payphone-Digital/instruments/internal/repository"
	ctxutil "github.com/Payphone-Digital/instruments/pkg/context"
	"github.com/Payphone-Digital/instruments/pkg/logger"
	"github.com/Payphone-Digital/instruments/pkg/pagination"
)

type InstrumentService struct {
	store      repository.InstrumentStore
	cache      *CacheService
	listingURL string
}

// NewInstrumentService wires the store and listing cache. listingURL is the
// absolute URL of the listing endpoint used in navigation links. A nil cache
// disables listing caching.
func NewInstrumentService(store repository.InstrumentStore, cache *CacheService, listingURL string) *InstrumentService {
	return &InstrumentService{
		store:      store,
		cache:      cache,
		listingURL: listingURL,
	}
}

// List returns one page of instruments. raw holds the query parameters as the
// client sent them; navigation links repeat them with only page changed.
func (s *InstrumentService) List(ctx context.Context, q dto.ListingQuery, raw url.Values) (*dto.PageResult, error) {
	ctx = ctxutil.WithFunction(ctx, "service", "List")
	q = q.Normalize()

	logger.InfoWithContext(ctx, "List instruments").
		String("search", q.Search).
		Int("page", q.Page).
		Int("page_size", q.PageSize).
		String("sort_by", q.SortBy).
		String("sort_direction", q.SortDirection).
		Log()

	var (
		page *dto.ListingPage
		err  error
	)
	if s.cache != nil {
		page, err = s.cache.Listing(ctx, q, s.loadPage)
	} else {
		page, err = s.loadPage(ctx, q)
	}
	if err != nil {
		logger.ErrorWithContext(ctx, "Failed to list instruments").
			String("search", q.Search).
			Int("page", q.Page).
			Err(err).
			Log()
		return nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}

	if page.Count == 0 {
		return nil, apperrors.ErrNoResults
	}
	if q.Page > page.NumPages {
		logger.InfoWithContext(ctx, "Requested page is out of range").
			Int("page", q.Page).
			Int("num_pages", page.NumPages).
			Log()
		return nil, apperrors.ErrPageNotFound
	}

	links := pagination.Navigation(s.listingURL, raw, q.Page, page.NumPages)

	return &dto.PageResult{
		Count:         page.Count,
		PageSize:      q.PageSize,
		SortBy:        q.SortBy,
		SortDirection: q.SortDirection,
		Next:          links.Next,
		Previous:      links.Previous,
		Results:       page.Results,
	}, nil
}

// loadPage reads one page from the store. Pages past the end carry the count
// and no results so the caller can tell the two not-found cases apart.
func (s *InstrumentService) loadPage(ctx context.Context, q dto.ListingQuery) (*dto.ListingPage, error) {
	count, err := s.store.Count(ctx, q.Search)
	if err != nil {
		return nil, err
	}

	page := &dto.ListingPage{
		Count:    count,
		NumPages: pagination.NumPages(count, q.PageSize),
		Results:  []dto.InstrumentResponse{},
	}
	if !pagination.Exists(count, q.Page, q.PageSize) {
		return page, nil
	}

	sortBy := repository.SortByID
	if q.SortBy == constants.SortByName {
		sortBy = repository.SortByName
	}

	found, err := s.store.Find(ctx, repository.FindOptions{
		Search:     q.Search,
		SortBy:     sortBy,
		Descending: q.SortDirection == constants.SortDesc,
		Offset:     pagination.Offset(q.Page, q.PageSize),
		Limit:      q.PageSize,
	})
	if err != nil {
		return nil, err
	}

	for i := range found {
		page.Results = append(page.Results, dto.NewInstrumentResponse(&found[i]))
	}
	return page, nil
}

func (s *InstrumentService) GetByID(ctx context.Context, id int) (*dto.InstrumentResponse, error) {
	ctx = ctxutil.WithFunction(ctx, "service", "GetByID")

	inst, err := s.store.GetByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		logger.InfoWithContext(ctx, "Instrument not found").
			Int("instrument_id", id).
			Log()
		return nil, apperrors.ErrInstrumentNotFound
	}
	if err != nil {
		logger.ErrorWithContext(ctx, "Failed to get instrument").
			Int("instrument_id", id).
			Err(err).
			Log()
		return nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}

	res := dto.NewInstrumentResponse(inst)
	return &res, nil
}

// Create stores a new instrument under the next counter value and returns
// its id.
func (s *InstrumentService) Create(ctx context.Context, req dto.InstrumentRequest) (int, error) {
	ctx = ctxutil.WithFunction(ctx, "service", "Create")

	logger.InfoWithContext(ctx, "Creating instrument").
		String("name", req.Name).
		String("type", req.Type).
		Log()

	id, err := s.store.NextID(ctx)
	if err != nil {
		logger.ErrorWithContext(ctx, "Failed to allocate instrument id").
			Err(err).
			Log()
		return 0, apperrors.WrapError(apperrors.ErrInternal, err)
	}

	if err := s.store.Insert(ctx, req.ToModel(id)); err != nil {
		if errors.Is(err, repository.ErrDuplicateName) {
			logger.InfoWithContext(ctx, "Instrument name already exists").
				String("name", req.Name).
				Log()
			return 0, apperrors.ErrNameExists
		}
		logger.ErrorWithContext(ctx, "Failed to create instrument").
			Int("instrument_id", id).
			Err(err).
			Log()
		return 0, apperrors.WrapError(apperrors.ErrInternal, err)
	}

	s.invalidate(ctx)

	logger.InfoWithContext(ctx, "Instrument created").
		Int("instrument_id", id).
		String("name", req.Name).
		Log()

	return id, nil
}

// Replace overwrites every field of an existing instrument.
func (s *InstrumentService) Replace(ctx context.Context, id int, req dto.InstrumentRequest) error {
	ctx = ctxutil.WithFunction(ctx, "service", "Replace")

	err := s.store.Replace(ctx, req.ToModel(id))
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return apperrors.ErrInstrumentNotFound
	case errors.Is(err, repository.ErrDuplicateName):
		return apperrors.ErrNameExists
	case err != nil:
		logger.ErrorWithContext(ctx, "Failed to replace instrument").
			Int("instrument_id", id).
			Err(err).
			Log()
		return apperrors.WrapError(apperrors.ErrInternal, err)
	}

	s.invalidate(ctx)

	logger.InfoWithContext(ctx, "Instrument replaced").
		Int("instrument_id", id).
		Log()

	return nil
}

func (s *InstrumentService) Delete(ctx context.Context, id int) error {
	ctx = ctxutil.WithFunction(ctx, "service", "Delete")

	err := s.store.Delete(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return apperrors.ErrInstrumentNotFound
	}
	if err != nil {
		logger.ErrorWithContext(ctx, "Failed to delete instrument").
			Int("instrument_id", id).
			Err(err).
			Log()
		return apperrors.WrapError(apperrors.ErrInternal, err)
	}

	s.invalidate(ctx)

	logger.InfoWithContext(ctx, "Instrument deleted").
		Int("instrument_id", id).
		Log()

	return nil
}

func (s *InstrumentService) invalidate(ctx context.Context) {
	if s.cache != nil {
		s.cache.Invalidate(ctx)
	}
}
