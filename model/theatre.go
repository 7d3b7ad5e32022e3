package model

type Theatre struct {
	Id          TheatreID `json:"id"`
	Name        string    `json:"name"`
	Address     string    `json:"address"`
	ScreenCount int       `json:"screenCount"`
}

type Screen struct {
	Id        ScreenID  `json:"id"`
	Name      string    `json:"name"`
	Capacity  int       `json:"capacity"`
	TheatreId TheatreID `json:"theatreId"`
}
