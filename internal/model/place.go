package model

import (
	"database/sql/driver"
	"encoding/json"
	"time"
)

// Place represents a single place record from the catalog
type Place struct {
	ID             string    `json:"id" db:"id"`
	Name           string    `json:"name" db:"name"`
	Category       string    `json:"category" db:"category"`
	PlaceType      string    `json:"place_type,omitempty" db:"place_type"`
	Description    string    `json:"description,omitempty" db:"description"`
	Address        string    `json:"address,omitempty" db:"address"`
	ExternalRating *float64  `json:"external_rating,omitempty" db:"external_rating"`
	Photos         JSONArray `json:"photos,omitempty" db:"photos"`
	Created        time.Time `json:"created" db:"created"`
	Updated        time.Time `json:"updated" db:"updated"`
}

// Category represents a place category with its display name
type Category struct {
	ID   string `json:"id" db:"id"`
	Name string `json:"name" db:"name"`
}

// JSONArray represents a JSON array column
type JSONArray []string

// Value implements driver.Valuer interface
func (j JSONArray) Value() (driver.Value, error) {
	if j == nil {
		return nil, nil
	}
	return json.Marshal(j)
}

// Scan implements sql.Scanner interface
func (j *JSONArray) Scan(value interface{}) error {
	if value == nil {
		*j = nil
		return nil
	}
	bytes, ok := value.([]byte)
	if !ok {
		return json.Unmarshal([]byte(value.(string)), j)
	}
	return json.Unmarshal(bytes, j)
}
