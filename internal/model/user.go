package model

type User struct {
	UserID    string `json:"user_id"`
	Ctime     int64  `json:"ctime"`
	LastLogin int64  `json:"last_login"`
}
