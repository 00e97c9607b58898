package domain

import (
	"time"
)

// Product represents a product in the catalog
type Product struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Price       float64   `json:"price"`
	Category    string    `json:"category"`
	Stock       int       `json:"stock"`
	Description string    `json:"description,omitempty"`
	ImageURL    string    `json:"image_url,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Draft holds validated product data prior to ID and timestamp assignment
type Draft struct {
	Name        string
	Price       float64
	Category    string
	Stock       int
	Description string
	ImageURL    string
}

// Patch carries a partial update; nil fields are left untouched
type Patch struct {
	Name        *string
	Price       *float64
	Category    *string
	Stock       *int
	Description *string
	ImageURL    *string
}

// Apply merges the patch into a copy of the product and returns it
func (p Patch) Apply(product Product) Product {
	if p.Name != nil {
		product.Name = *p.Name
	}
	if p.Price != nil {
		product.Price = *p.Price
	}
	if p.Category != nil {
		product.Category = *p.Category
	}
	if p.Stock != nil {
		product.Stock = *p.Stock
	}
	if p.Description != nil {
		product.Description = *p.Description
	}
	if p.ImageURL != nil {
		product.ImageURL = *p.ImageURL
	}
	return product
}
