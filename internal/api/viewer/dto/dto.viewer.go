// Package dto - DTO cho domain viewer (phiên làm việc).
package dto

// SessionInput dữ liệu tạo phiên viewer. ProjectID tùy chọn — nếu có,
// vai trò được resolve theo dự án (Owner / vai trò trong crew list / Crew).
type SessionInput struct {
	Email     string `json:"email" validate:"required,email"`
	Name      string `json:"name,omitempty" maxLength:"200"`
	ProjectID string `json:"projectId,omitempty"`
}

// SessionResponse trả về token và thông tin phiên.
type SessionResponse struct {
	Token     string `json:"token"`
	Email     string `json:"email"`
	Name      string `json:"name,omitempty"`
	Role      string `json:"role"`
	ExpiresAt int64  `json:"expiresAt"`
}
