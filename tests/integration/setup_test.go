//go:build integration

package integration

import (
	"fmt"
	"log"
	"os"
	"testing"
	"time"

	"github.com/chessdesk/tournament-booking/internal/models"
	"github.com/chessdesk/tournament-booking/pkg/database"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var testDB *gorm.DB

func TestMain(m *testing.M) {
	dsn := fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		getEnv("TEST_DB_HOST", "localhost"),
		getEnv("TEST_DB_PORT", "5434"),
		getEnv("TEST_DB_USER", "postgres"),
		getEnv("TEST_DB_PASSWORD", "postgres"),
		getEnv("TEST_DB_NAME", "tournament_test_db"),
	)

	var err error
	testDB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		log.Fatalf("failed to connect to test database: %v", err)
	}

	dropTables()

	// Same migration as production, including the constraints AutoMigrate
	// cannot express.
	if err := database.Migrate(testDB); err != nil {
		log.Fatalf("failed to migrate test database: %v", err)
	}

	code := m.Run()

	dropTables()
	os.Exit(code)
}

func dropTables() {
	testDB.Exec("DROP TABLE IF EXISTS payments")
	testDB.Exec("DROP TABLE IF EXISTS booking_participants")
	testDB.Exec("DROP TABLE IF EXISTS bookings")
	testDB.Exec("DROP TABLE IF EXISTS participants")
	testDB.Exec("DROP TABLE IF EXISTS categories")
	testDB.Exec("DROP TABLE IF EXISTS events")
}

func cleanTables() {
	testDB.Exec("DELETE FROM payments")
	testDB.Exec("DELETE FROM booking_participants")
	testDB.Exec("DELETE FROM bookings")
	testDB.Exec("DELETE FROM participants")
	testDB.Exec("DELETE FROM categories")
	testDB.Exec("DELETE FROM events")
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

var participantSeq uint

func seedParticipant(userID string, isGovtStudent bool) *models.Participant {
	participantSeq++
	p := &models.Participant{
		ID:            participantSeq,
		UserID:        userID,
		Name:          fmt.Sprintf("Player %d", participantSeq),
		DateOfBirth:   time.Date(2010, 5, 1, 0, 0, 0, 0, time.UTC),
		IsGovtStudent: isGovtStudent,
	}
	testDB.Create(p)
	return p
}
