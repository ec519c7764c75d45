package settings

// Credentials is the access/refresh token pair issued by the image host.
type Credentials struct {
	AccessToken  string
	RefreshToken string
}

func (c Credentials) Valid() bool {
	return c.AccessToken != "" && c.RefreshToken != ""
}

// LoadCredentials reports false when either token is missing.
func LoadCredentials(store Store) (Credentials, bool) {
	creds := Credentials{
		AccessToken:  store.String(KeyAccessToken),
		RefreshToken: store.String(KeyRefreshToken),
	}
	return creds, creds.Valid()
}

func SaveCredentials(store Store, creds Credentials) {
	store.SetString(KeyAccessToken, creds.AccessToken)
	store.SetString(KeyRefreshToken, creds.RefreshToken)
}

func ClearCredentials(store Store) {
	store.RemoveValue(KeyAccessToken)
	store.RemoveValue(KeyRefreshToken)
}
