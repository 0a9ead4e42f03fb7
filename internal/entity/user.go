package entity

import "time"

type User struct {
	ID              string    `db:"id"`
	Email           string    `db:"email"`
	Username        string    `db:"username"`
	Password        string    `db:"password"`
	HomeAirport     string    `db:"home_airport"`
	PreferredLocale string    `db:"preferred_locale"`
	ProfilePhotoURL string    `db:"profile_photo_url"`
	IsVerified      bool      `db:"is_verified"`
	CreatedAt       time.Time `db:"created_at"`
	UpdatedAt       time.Time `db:"updated_at"`
}

type UserLoginData struct {
	ID       string
	Username string
	Email    string
}
