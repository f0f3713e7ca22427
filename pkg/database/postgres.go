package database

import (
	"github.com/chessdesk/tournament-booking/internal/models"
	"github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func NewPostgresDB(dsn string) *gorm.DB {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		logrus.Fatalf("failed to connect to database: %v", err)
	}

	if err := Migrate(db); err != nil {
		logrus.Fatalf("failed to migrate: %v", err)
	}

	return db
}

// Migrate applies the schema plus the constraints AutoMigrate cannot express.
// The integration suite runs the same migration as production.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.Event{},
		&models.Category{},
		&models.Participant{},
		&models.Booking{},
		&models.BookingParticipant{},
		&models.Payment{},
	); err != nil {
		return err
	}

	// Capacity can never be oversold even if application logic regresses.
	db.Exec(`ALTER TABLE events DROP CONSTRAINT IF EXISTS chk_event_capacity`)
	db.Exec(`
		ALTER TABLE events ADD CONSTRAINT chk_event_capacity
		CHECK (max_capacity IS NULL OR current_bookings <= max_capacity)
	`)

	// One link per participant per booking.
	db.Exec(`
		CREATE UNIQUE INDEX IF NOT EXISTS idx_booking_participant
		ON booking_participants (booking_id, participant_id)
	`)

	return nil
}
