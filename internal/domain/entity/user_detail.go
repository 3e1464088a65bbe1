package entity

import "time"

// UserDetail is a device registration. A city groups devices for the weather fan-out.
type UserDetail struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	DeviceToken string    `gorm:"column:device_token;uniqueIndex;not null" json:"device_token"`
	Address     *string   `gorm:"column:address" json:"address"`
	City        *string   `gorm:"column:city;index" json:"city"`
	Lat         *float64  `gorm:"column:lat" json:"lat"`
	Lon         *float64  `gorm:"column:lon" json:"lon"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (UserDetail) TableName() string {
	return "user_details"
}

// CityName returns the city or an empty string.
func (u UserDetail) CityName() string {
	if u.City == nil {
		return ""
	}
	return *u.City
}
