package models

import "time"

type EventStatus string

const (
	EventUpcoming   EventStatus = "UPCOMING"
	EventInProgress EventStatus = "IN_PROGRESS"
	EventCompleted  EventStatus = "COMPLETED"
	EventCancelled  EventStatus = "CANCELLED"
)

type ConcessionType string

const (
	ConcessionNone       ConcessionType = "NONE"
	ConcessionRupees     ConcessionType = "RUPEES"
	ConcessionPercentage ConcessionType = "PERCENTAGE"
)

type Event struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	OrganizerID string    `gorm:"not null;index" json:"organizer_id"`
	Name        string    `gorm:"not null" json:"name"`
	StartDate   time.Time `gorm:"not null" json:"start_date"`

	// MaxCapacity nil means unlimited.
	MaxCapacity     *int `json:"max_capacity,omitempty"`
	CurrentBookings int  `gorm:"not null;default:0" json:"current_bookings"`

	EntryFee float64 `gorm:"not null" json:"entry_fee"`
	IsOnline bool    `gorm:"not null;default:false" json:"is_online"`

	GovtConcessionType  ConcessionType `gorm:"type:varchar(20);not null;default:'NONE'" json:"govt_concession_type"`
	GovtConcessionValue float64        `gorm:"not null;default:0" json:"govt_concession_value"`

	EventStatus EventStatus `gorm:"type:varchar(20);not null;default:'UPCOMING'" json:"event_status"`

	Categories []Category `gorm:"foreignKey:EventID" json:"categories,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Category caps entry by participant age; no gender restriction in the
// current model.
type Category struct {
	ID      uint   `gorm:"primaryKey" json:"id"`
	EventID uint   `gorm:"not null;index" json:"event_id"`
	Name    string `gorm:"not null" json:"name"`
	MaxAge  int    `gorm:"not null" json:"max_age"`
}

// SlotsAvailable reports remaining capacity; -1 means unlimited.
func (e *Event) SlotsAvailable() int {
	if e.MaxCapacity == nil {
		return -1
	}
	return *e.MaxCapacity - e.CurrentBookings
}
