package domain

import "time"

type Product struct {
	ID            string
	Name          string
	Price         float64
	StockQuantity int
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
