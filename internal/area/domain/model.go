// Package domain contains delivery-territory reference data.
package domain

import (
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
)

var (
	ErrAreaNotFound    = errors.New("area not found")
	ErrSocietyNotFound = errors.New("society not found")
	ErrInvalidName     = errors.New("invalid name")
)

// Area is a serviceable delivery zone within a city.
type Area struct {
	ID        snowflake.ID `gorm:"primaryKey" json:"id"`
	Name      string       `gorm:"type:text;not null" json:"name"`
	City      string       `gorm:"type:text;not null;index" json:"city"`
	CreatedAt time.Time    `gorm:"not null" json:"created_at"`
}

func (Area) TableName() string { return "areas" }

// Society is a housing society inside an area; customers pick one as their
// delivery address anchor.
type Society struct {
	ID        snowflake.ID `gorm:"primaryKey" json:"id"`
	AreaID    snowflake.ID `gorm:"not null;index" json:"area_id"`
	Name      string       `gorm:"type:text;not null" json:"name"`
	CreatedAt time.Time    `gorm:"not null" json:"created_at"`
}

func (Society) TableName() string { return "societies" }
