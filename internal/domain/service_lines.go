package domain

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
)

// ErrInvalidServiceLines возвращается при некорректном составе услуг
var ErrInvalidServiceLines = errors.New("invalid service lines")

// ServiceLine одна услуга в составе записи (денормализация для истории)
type ServiceLine struct {
	ServiceID       int64   `json:"serviceId"`
	Name            string  `json:"name"`
	Price           float64 `json:"price"`
	DurationMinutes int     `json:"durationMinutes"`
}

// ServiceLines состав услуг записи, хранится в БД как JSONB
type ServiceLines []ServiceLine

// TotalDuration возвращает суммарную длительность услуг в минутах
func (s ServiceLines) TotalDuration() int {
	total := 0
	for _, line := range s {
		total += line.DurationMinutes
	}
	return total
}

// TotalAmount возвращает суммарную стоимость услуг
func (s ServiceLines) TotalAmount() float64 {
	total := 0.0
	for _, line := range s {
		total += line.Price
	}
	return total
}

// Value реализует driver.Valuer для записи в JSONB колонку
func (s ServiceLines) Value() (driver.Value, error) {
	if s == nil {
		return "[]", nil
	}
	data, err := json.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("%w: marshal: %v", ErrInvalidServiceLines, err)
	}
	return string(data), nil
}

// Scan реализует sql.Scanner для чтения из JSONB колонки
func (s *ServiceLines) Scan(src interface{}) error {
	if src == nil {
		*s = ServiceLines{}
		return nil
	}

	var data []byte
	switch v := src.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("%w: unsupported type %T", ErrInvalidServiceLines, src)
	}

	return json.Unmarshal(data, s)
}
