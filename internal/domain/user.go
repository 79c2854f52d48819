package domain

type UserId = string

type User struct {
	Id       UserId
	Email    string
	PassHash string
}

type Credentials struct {
	Email    string
	Password string
}
