package model

import "time"

// Showing is a scheduled screening of a movie on a specific screen. Theatre
// and screen names are denormalized for display; TheatreId may be zero on
// records from sources that omit it.
type Showing struct {
	Id          ShowingID `json:"id"`
	StartTime   time.Time `json:"startTime"`
	EndTime     time.Time `json:"endTime"`
	MovieId     MovieID   `json:"movieId"`
	ScreenId    ScreenID  `json:"screenId"`
	TheatreId   TheatreID `json:"theatreId"`
	TheatreName string    `json:"theatreName"`
	ScreenName  string    `json:"screenName"`
}
