package auth

import "github.com/cdp-clube/cdp-api/internal/user"

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email" example:"joao@example.com"`
	Password string `json:"password" binding:"required" example:"password123"`
}

type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

type AuthResponse struct {
	AccessToken  string       `json:"access_token"`
	RefreshToken string       `json:"refresh_token"`
	User         UserResponse `json:"user"`
}

type UserResponse struct {
	ID               uint     `json:"id"`
	Name             string   `json:"name"`
	Email            string   `json:"email"`
	Phone            string   `json:"phone,omitempty"`
	Roles            []string `json:"roles"`
	MembershipNumber string   `json:"membership_number,omitempty"`
}

// FilterUserRecord strips credentials and internal fields from a user for
// the login response.
func FilterUserRecord(u *user.User, roles []string) UserResponse {
	resp := UserResponse{
		ID:    u.ID,
		Name:  u.FullName(),
		Email: u.Email,
		Phone: u.Phone,
		Roles: roles,
	}
	if u.MemberProfile != nil {
		resp.MembershipNumber = u.MemberProfile.MembershipNumber
	}
	return resp
}
