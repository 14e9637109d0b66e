package domain

// UserProfile is the authenticated GitHub user, as returned by credential
// verification. Held in memory only; the credential itself is what persists.
type UserProfile struct {
	Login     string `json:"login"`
	Name      string `json:"name"`
	AvatarURL string `json:"avatar_url"`
}
