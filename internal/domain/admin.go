package domain

// AdminRole is the back-office permission level.
type AdminRole string

const (
	RoleAdmin  AdminRole = "admin"
	RoleEditor AdminRole = "editor"
)

// AdminUser is the authenticated back-office user record.
type AdminUser struct {
	ID       string    `json:"id"`
	Username string    `json:"username"`
	Email    string    `json:"email,omitempty"`
	Role     AdminRole `json:"role"`
}

// AdminToken is the login response: a bearer token plus the user record.
type AdminToken struct {
	AccessToken string    `json:"access_token"`
	TokenType   string    `json:"token_type"`
	ExpiresIn   int       `json:"expires_in"`
	UserInfo    AdminUser `json:"user_info"`
}

// Credentials is the login request body.
type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Registration is the admin registration request body.
type Registration struct {
	Username string    `json:"username"`
	Email    string    `json:"email"`
	Password string    `json:"password"`
	Role     AdminRole `json:"role,omitempty"`
}

// UploadResult is the single-file upload response.
type UploadResult struct {
	ImageURL string `json:"image_url"`
}

// MultiUploadResult is the multi-file upload response.
type MultiUploadResult struct {
	ImageURLs []string `json:"image_urls"`
}
