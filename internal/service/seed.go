package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/Payphone-Digital/instruments/internal/dto"
	apperrors "github.com/Payphone-Digital/instruments/internal/errors"
	"github.com/Payphone-Digital/instruments/internal/schema"
	ctxutil "github.com/Payphone-Digital/instruments/pkg/context"
	"github.com/Payphone-Digital/instruments/pkg/logger"
	"github.com/Payphone-Digital/instruments/pkg/validation"
)

// Seed inserts docs when the catalog is empty and returns how many were
// created. Every document must pass the body schema. Documents whose name
// already exists are skipped.
func (s *InstrumentService) Seed(ctx context.Context, v *validation.Validator, docs []map[string]any) (int, error) {
	ctx = ctxutil.WithFunction(ctx, "service", "Seed")

	count, err := s.store.Count(ctx, "")
	if err != nil {
		return 0, fmt.Errorf("count instruments: %w", err)
	}
	if count > 0 {
		logger.InfoWithContext(ctx, "Catalog is not empty, skipping seed").
			Int64("count", count).
			Log()
		return 0, nil
	}

	created := 0
	for i, doc := range docs {
		clean, err := v.Validate(schema.Body, doc)
		if err != nil {
			return created, fmt.Errorf("seed document %d: %w", i, err)
		}

		req := dto.InstrumentFromMap(clean)
		if _, err := s.Create(ctx, req); err != nil {
			if errors.Is(err, apperrors.ErrNameExists) {
				logger.WarnWithContext(ctx, "Skipping duplicate seed document").
					Int("index", i).
					String("name", req.Name).
					Log()
				continue
			}
			return created, fmt.Errorf("seed document %d: %w", i, err)
		}
		created++
	}

	logger.InfoWithContext(ctx, "Catalog seeded").
		Int("created", created).
		Log()

	return created, nil
}
