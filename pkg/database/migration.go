package database

import (
	"fmt"

	"github.com/Payphone-Digital/instruments/internal/constants"
	"github.com/Payphone-Digital/instruments/internal/model"
	"gorm.io/gorm"
)

// AutoMigrate creates the instrument and counter tables and makes sure the
// instruments counter exists. A fresh counter starts at the highest stored
// _id so identifiers are never reused.
func AutoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&model.Instrument{}, &model.Counter{}); err != nil {
		return err
	}

	err := db.Exec(
		`INSERT INTO counters (name, last_id)
		 SELECT ?, COALESCE(MAX(_id), 0) FROM instruments
		 ON CONFLICT (name) DO NOTHING`,
		constants.CounterInstruments,
	).Error
	if err != nil {
		return fmt.Errorf("failed to initialise counter: %w", err)
	}

	return nil
}
