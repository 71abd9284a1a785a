package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Payphone-Digital/instruments/internal/constants"
	"github.com/Payphone-Digital/instruments/internal/model"
	"github.com/Payphone-Digital/instruments/pkg/collation"
	ctxutil "github.com/Payphone-Digital/instruments/pkg/context"
	"github.com/Payphone-Digital/instruments/pkg/logger"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// pgUniqueViolation is the SQLSTATE for unique constraint violations.
const pgUniqueViolation = "23505"

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

type InstrumentRepository struct {
	db *gorm.DB
}

func NewInstrumentRepository(db *gorm.DB) *InstrumentRepository {
	return &InstrumentRepository{db: db}
}

func (r *InstrumentRepository) filtered(ctx context.Context, search string) *gorm.DB {
	query := r.db.WithContext(ctx).Model(&model.Instrument{})
	if search != "" {
		pattern := "%" + likeEscaper.Replace(collation.Fold(search)) + "%"
		query = query.Where("search_text LIKE ?", pattern)
	}
	return query
}

func (r *InstrumentRepository) Count(ctx context.Context, search string) (int64, error) {
	ctx = ctxutil.WithFunction(ctx, "repository", "Count")

	start := time.Now()
	var count int64
	if err := r.filtered(ctx, search).Count(&count).Error; err != nil {
		logger.ErrorWithContext(ctx, "Failed to count instruments").
			String("search", search).
			Duration(time.Since(start)).
			Err(err).
			Log()
		return 0, err
	}

	logger.DebugWithContext(ctx, "Instruments counted").
		String("search", search).
		Int64("count", count).
		Duration(time.Since(start)).
		Log()

	return count, nil
}

func (r *InstrumentRepository) Find(ctx context.Context, opts FindOptions) ([]model.Instrument, error) {
	ctx = ctxutil.WithFunction(ctx, "repository", "Find")

	if err := ctx.Err(); err != nil {
		logger.WarnWithContext(ctx, "Context cancelled before query").
			Err(err).
			Log()
		return nil, err
	}

	start := time.Now()
	query := r.filtered(ctx, opts.Search)

	switch opts.SortBy {
	case SortByName:
		query = query.
			Order(clause.OrderByColumn{Column: clause.Column{Name: "name_key"}, Desc: opts.Descending}).
			Order(clause.OrderByColumn{Column: clause.Column{Name: "_id"}})
	default:
		query = query.Order(clause.OrderByColumn{Column: clause.Column{Name: "_id"}, Desc: opts.Descending})
	}

	var instruments []model.Instrument
	if err := query.Offset(opts.Offset).Limit(opts.Limit).Find(&instruments).Error; err != nil {
		logger.ErrorWithContext(ctx, "Failed to fetch instruments").
			String("search", opts.Search).
			Int("offset", opts.Offset).
			Int("limit", opts.Limit).
			Duration(time.Since(start)).
			Err(err).
			Log()
		return nil, err
	}

	logger.DebugWithContext(ctx, "Instruments retrieved").
		String("search", opts.Search).
		String("sort_by", string(opts.SortBy)).
		Bool("descending", opts.Descending).
		Int("offset", opts.Offset).
		Int("returned_count", len(instruments)).
		Duration(time.Since(start)).
		Log()

	return instruments, nil
}

func (r *InstrumentRepository) GetByID(ctx context.Context, id int) (*model.Instrument, error) {
	ctx = ctxutil.WithFunction(ctx, "repository", "GetByID")

	start := time.Now()
	var inst model.Instrument
	err := r.db.WithContext(ctx).Where("_id = ?", id).First(&inst).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		logger.ErrorWithContext(ctx, "Failed to get instrument by ID").
			Int("instrument_id", id).
			Duration(time.Since(start)).
			Err(err).
			Log()
		return nil, err
	}

	logger.DebugWithContext(ctx, "Instrument retrieved").
		Int("instrument_id", id).
		Duration(time.Since(start)).
		Log()

	return &inst, nil
}

// NextID atomically increments the instruments counter and returns the new
// value. Concurrent callers never receive the same id.
func (r *InstrumentRepository) NextID(ctx context.Context) (int, error) {
	ctx = ctxutil.WithFunction(ctx, "repository", "NextID")

	var lastID int
	result := r.db.WithContext(ctx).
		Raw("UPDATE counters SET last_id = last_id + 1 WHERE name = ? RETURNING last_id", constants.CounterInstruments).
		Scan(&lastID)
	if result.Error != nil {
		logger.ErrorWithContext(ctx, "Failed to increment counter").
			Err(result.Error).
			Log()
		return 0, result.Error
	}
	if result.RowsAffected == 0 {
		return 0, fmt.Errorf("counter %q is not initialised", constants.CounterInstruments)
	}

	return lastID, nil
}

func (r *InstrumentRepository) Insert(ctx context.Context, inst *model.Instrument) error {
	ctx = ctxutil.WithFunction(ctx, "repository", "Insert")

	inst.Index()
	start := time.Now()
	if err := r.db.WithContext(ctx).Create(inst).Error; err != nil {
		if isDuplicateKey(err) {
			return ErrDuplicateName
		}
		logger.ErrorWithContext(ctx, "Failed to insert instrument").
			Int("instrument_id", inst.ID).
			Duration(time.Since(start)).
			Err(err).
			Log()
		return err
	}

	logger.LogDatabase("insert", inst.TableName(), time.Since(start).Milliseconds())
	return nil
}

func (r *InstrumentRepository) Replace(ctx context.Context, inst *model.Instrument) error {
	ctx = ctxutil.WithFunction(ctx, "repository", "Replace")

	inst.Index()
	start := time.Now()
	result := r.db.WithContext(ctx).
		Model(&model.Instrument{}).
		Where("_id = ?", inst.ID).
		Select("*").
		Omit("_id").
		Updates(inst)
	if result.Error != nil {
		if isDuplicateKey(result.Error) {
			return ErrDuplicateName
		}
		logger.ErrorWithContext(ctx, "Failed to replace instrument").
			Int("instrument_id", inst.ID).
			Duration(time.Since(start)).
			Err(result.Error).
			Log()
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}

	logger.LogDatabase("replace", inst.TableName(), time.Since(start).Milliseconds())
	return nil
}

func (r *InstrumentRepository) Delete(ctx context.Context, id int) error {
	ctx = ctxutil.WithFunction(ctx, "repository", "Delete")

	start := time.Now()
	result := r.db.WithContext(ctx).Where("_id = ?", id).Delete(&model.Instrument{})
	if result.Error != nil {
		logger.ErrorWithContext(ctx, "Failed to delete instrument").
			Int("instrument_id", id).
			Duration(time.Since(start)).
			Err(result.Error).
			Log()
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}

	logger.LogDatabase("delete", model.Instrument{}.TableName(), time.Since(start).Milliseconds())
	return nil
}

func (r *InstrumentRepository) Ping(ctx context.Context) error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func isDuplicateKey(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation
}
