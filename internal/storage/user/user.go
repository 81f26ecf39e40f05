package user

type User struct {
	UserID      string  `json:"userId"`
	Name        string  `json:"name"`
	Phonenumber string  `json:"phone"`
	Email       string  `json:"email"`
	Balance     float64 `json:"balance"`
}
