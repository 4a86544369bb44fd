package models

import "time"

// Video is one captured, published clip as reported to clients.
// URL is derived from BaseURL and MovieID, never stored.
type Video struct {
	Title        string    `json:"title"`
	Tags         []string  `json:"tags"`
	Location     string    `json:"location"`
	GenerateDate time.Time `json:"generateDate"`
	BaseURL      string    `json:"baseUrl"`
	MovieID      string    `json:"movieId"`
	URL          string    `json:"url"`
}
