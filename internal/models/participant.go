package models

import "time"

// Participant is a player profile owned by a user; reusable across bookings.
type Participant struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	UserID        string    `gorm:"not null;index" json:"user_id"`
	Name          string    `gorm:"not null" json:"name"`
	DateOfBirth   time.Time `gorm:"not null" json:"date_of_birth"`
	IsGovtStudent bool      `gorm:"not null;default:false" json:"is_govt_student"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// AgeAt returns the participant's age in whole years at the given time.
func (p *Participant) AgeAt(at time.Time) int {
	age := at.Year() - p.DateOfBirth.Year()
	if at.Month() < p.DateOfBirth.Month() ||
		(at.Month() == p.DateOfBirth.Month() && at.Day() < p.DateOfBirth.Day()) {
		age--
	}
	return age
}
