package models

import "time"

const (
	RoleUser  = "USER"
	RoleAdmin = "ADMIN"
)

type User struct {
	ID           string    `gorm:"primaryKey"      json:"id"`
	Email        string    `gorm:"unique;not null" json:"email"`
	Name         string    `json:"name,omitempty"`
	PasswordHash string    `gorm:"not null"        json:"-"`
	Role         string    `gorm:"not null"        json:"role"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

type Book struct {
	ID          string    `gorm:"primaryKey"      json:"id"`
	Title       string    `gorm:"not null"        json:"title"`
	Author      string    `gorm:"not null"        json:"author"`
	ISBN        string    `gorm:"unique;not null" json:"isbn"`
	Publisher   string    `json:"publisher,omitempty"`
	PublishYear int       `json:"publishYear,omitempty"`
	Description string    `json:"description,omitempty"`
	Quantity    int       `json:"quantity"`
	Price       float64   `json:"price,omitempty"`
	ImageURL    string    `json:"imageUrl,omitempty"`
	Category    string    `json:"category,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}
