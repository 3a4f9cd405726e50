// Package dto - DTO cho domain auth (user).
package dto

// FirebaseLoginInput là input cho đăng nhập bằng Firebase ID token
type FirebaseLoginInput struct {
	IDToken string `json:"idToken" validate:"required"`
}

// UserUpdateProfileInput là input cập nhật profile của chính user
type UserUpdateProfileInput struct {
	Name      string `json:"name,omitempty" validate:"omitempty,max=100,no_xss"`
	AvatarURL string `json:"avatarUrl,omitempty" validate:"omitempty,url"`
}

// UserResponse trả về thông tin user cho client (không kèm các field nội bộ)
type UserResponse struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Email         string `json:"email,omitempty"`
	Phone         string `json:"phone,omitempty"`
	AvatarURL     string `json:"avatarUrl,omitempty"`
	Role          string `json:"role"`
	EmailVerified bool   `json:"emailVerified"`
	PhoneVerified bool   `json:"phoneVerified"`
	CreatedAt     int64  `json:"createdAt"`
}
