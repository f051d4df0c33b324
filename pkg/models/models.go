package models

import (
	"time"
)

type Author struct {
	ID          uint      `gorm:"primaryKey"`
	FullName    string    `gorm:"column:full_name;size:255;not null;uniqueIndex"`
	DateCreated time.Time `gorm:"column:date_created;autoCreateTime;not null"`

	Books []Book `gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE"`
}

func (Author) TableName() string {
	return "authors"
}

type Book struct {
	ID            uint      `gorm:"primaryKey"`
	DateCreated   time.Time `gorm:"column:date_created;autoCreateTime;not null"`
	Title         string    `gorm:"size:255;not null"`
	AuthorID      uint      `gorm:"not null;index"`
	ISBN          string    `gorm:"column:isbn;not null;uniqueIndex"`
	DatePublished *Date     `gorm:"column:date_published;type:date"`
}

func (Book) TableName() string {
	return "books"
}
