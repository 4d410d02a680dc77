package storage

import (
	"time"

	"github.com/willrr/ha-toyota-willrr/api"
	"github.com/willrr/ha-toyota-willrr/util"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// Record is one vehicle's statistics summary for one period, captured at the
// end of a successful refresh cycle
type Record struct {
	ID           uint64    `gorm:"primaryKey"`
	CreatedAt    time.Time `gorm:"index"`
	VIN          string    `gorm:"index"`
	Period       string    `gorm:"index"`
	Distance     float64
	Duration     float64
	FuelConsumed float64
	EVDistance   float64
	AverageSpeed float64
}

// Store persists driving statistics history
type Store struct {
	log *util.Logger
	db  *gorm.DB
}

// Open opens or creates the statistics database
func Open(path string, log *util.Logger) (*Store, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: &adapter{log: log},
	})
	if err != nil {
		return nil, err
	}

	if err := db.AutoMigrate(&Record{}); err != nil {
		return nil, err
	}

	return &Store{log: log, db: db}, nil
}

// Persist writes one record per vehicle and period of the given cycle.
// Missing summaries are skipped.
func (s *Store) Persist(cycle api.CycleResult) error {
	var records []Record

	for _, snap := range cycle {
		for _, period := range api.Periods {
			sum := snap.Statistics[period]
			if sum == nil {
				continue
			}

			records = append(records, Record{
				CreatedAt:    time.Now(),
				VIN:          snap.Vehicle.VIN,
				Period:       string(period),
				Distance:     sum.Distance,
				Duration:     sum.Duration,
				FuelConsumed: sum.FuelConsumed,
				EVDistance:   sum.EVDistance,
				AverageSpeed: sum.AverageSpeed,
			})
		}
	}

	if len(records) == 0 {
		return nil
	}

	tx := s.db.Create(&records)
	return tx.Error
}

// History returns the persisted records for a vehicle and period, most
// recent first, up to the given limit
func (s *Store) History(vin string, period api.Period, limit int) ([]Record, error) {
	var records []Record

	tx := s.db.Where("vin = ? AND period = ?", vin, string(period)).
		Order("created_at desc").
		Limit(limit).
		Find(&records)

	return records, tx.Error
}
