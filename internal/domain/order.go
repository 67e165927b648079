package domain

import "time"

// Order представляет заказ из датасета заказов.
// Используется для тепловых карт и подсчета уникальных пользователей
// по полигонам; движок никогда не изменяет заказы.
type Order struct {
	OrderID       int64      `json:"order_id" db:"order_id"`
	VendorCode    string     `json:"vendor_code" db:"vendor_code"`
	CityName      string     `json:"city" db:"city_name"`
	BusinessLine  string     `json:"business_line" db:"business_line"`
	MarketingArea string     `json:"marketing_area" db:"marketing_area"`
	CreatedAt     time.Time  `json:"created_at" db:"created_at"`
	CustomerLat   *float64   `json:"customer_lat" db:"customer_latitude"`
	CustomerLng   *float64   `json:"customer_lng" db:"customer_longitude"`
	UserID        *int64     `json:"user_id" db:"user_id"`
	Organic       bool       `json:"organic" db:"organic"`
}

// HasCustomerLocation возвращает true, если у заказа есть координаты клиента
func (o *Order) HasCustomerLocation() bool {
	return o.CustomerLat != nil && o.CustomerLng != nil
}
