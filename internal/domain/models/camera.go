package models

type Camera struct {
	Name       string     `json:"name"`
	ID         string     `json:"id"`
	Coordinate Coordinate `json:"coordinate"`
	URL        string     `json:"url"`
}

type Coordinate struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}
