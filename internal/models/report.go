package models

import (
	"github.com/shopspring/decimal"
)

// Admin report payloads. All read-only aggregations over orders, books and
// users; the handlers gate them behind the admin middleware.

type SalesReport struct {
	Orders       []Order         `json:"orders"`
	OrderCount   int             `json:"order_count"`
	TotalRevenue decimal.Decimal `json:"total_revenue"`
}

type InventoryReport struct {
	Books       []Book `json:"books"`
	TotalUnits  int    `json:"total_units"`
	OutOfStock  int    `json:"out_of_stock"`
	TitlesCount int    `json:"titles_count"`
}

type UserActivity struct {
	User       User `json:"user"`
	OrderCount int  `json:"order_count"`
	PostCount  int  `json:"post_count"`
}

type UserActivityReport struct {
	Users []UserActivity `json:"users"`
}
