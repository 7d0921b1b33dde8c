package models

import "time"

// IndicatorEntry describes one catalog indicator.
type IndicatorEntry struct {
	Code  string `json:"code"`
	Name  string `json:"name"`
	Stock bool   `json:"stock"`
	Chart string `json:"chart"`
	TopN  int    `json:"topN"`
}

// CountryEntry describes one member of the country set.
type CountryEntry struct {
	Code    string `json:"code"`
	Name    string `json:"name"`
	MapName string `json:"mapName"`
}

// YearsData lists the years a selection can use.
type YearsData struct {
	Years     []int `json:"years"`
	FirstYear int   `json:"firstYear"`
	LastYear  int   `json:"lastYear"`
}

// HealthData reports the state of the loaded snapshot.
type HealthData struct {
	Status       string    `json:"status"`
	Environment  string    `json:"environment"`
	Source       string    `json:"source"`
	LoadedAt     time.Time `json:"loadedAt"`
	Observations int       `json:"observations"`
	Countries    int       `json:"countries"`
	Years        int       `json:"years"`
}
