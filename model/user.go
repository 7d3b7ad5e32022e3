package model

type User struct {
	Id    UserID `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}
