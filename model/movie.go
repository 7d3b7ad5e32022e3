package model

type Movie struct {
	Id          MovieID `json:"id"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	DurationMin int     `json:"durationMin"`
	Genre       string  `json:"genre"`
	Language    string  `json:"language"`
	PosterUrl   string  `json:"posterUrl"`
}
