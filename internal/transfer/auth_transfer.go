package transfer

type GoogleUserInfo struct {
	ID      string `json:"id"`
	Email   string `json:"email"`
	Name    string `json:"name"`
	Picture string `json:"picture"`
}

type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}
