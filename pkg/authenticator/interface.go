package authenticator

type TokenEngine[T any] interface {
	Generate(sub string, obj T) (string, error)
	Verify(token string) (T, error)
}

// AccessToken is the object carried by access tokens.
type AccessToken struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
}
