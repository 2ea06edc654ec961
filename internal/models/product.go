package models

import "time"

// Product represents a product in the catalog.
type Product struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	Name         string    `json:"name" gorm:"type:varchar(100);not null"`
	Price        float64   `json:"price" gorm:"not null"`
	Availability bool      `json:"availability" gorm:"not null;default:true"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// ProductInput carries the user-editable fields of a product once the
// request body has passed validation.
type ProductInput struct {
	Name         string
	Price        float64
	Availability bool
}

// Apply replaces the editable fields of p with the input values.
func (in ProductInput) Apply(p *Product) {
	p.Name = in.Name
	p.Price = in.Price
	p.Availability = in.Availability
}
