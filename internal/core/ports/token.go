package ports

import "github.com/studytrack/task-system/internal/core/domain"

// Claims is the verified identity carried by an authentication token.
// Handlers trust these values from token-issue time; role or email changes
// after issue are not reflected until re-login.
type Claims struct {
	UserID   string
	Username string
	Email    string
	Role     string
}

// TokenService issues and verifies signed identity assertions. It is
// stateless: there is no revocation list, tokens expire naturally.
type TokenService interface {
	Issue(user *domain.User) (string, error)
	Verify(token string) (*Claims, error)
}
