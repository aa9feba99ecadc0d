package middleware

import (
	"strings"

	"onset_studio/internal/common"
	"onset_studio/internal/global"
	"onset_studio/internal/logger"

	"github.com/gofiber/fiber/v3"
	"github.com/golang-jwt/jwt/v5"
	"github.com/sirupsen/logrus"
)

// ViewerAuthMiddleware middleware xác thực phiên viewer cho Fiber.
// - Đọc Bearer token từ header Authorization
// - Parse và verify JWT bằng JwtSecret (HMAC)
// - Lưu viewer_email và viewer_name vào context để handler/service sử dụng
//
// Mọi route nghiệp vụ (dự án, on-set, crew, media) đều đi qua middleware này.
// Danh tính viewer là email — quyền theo dự án (Owner/crew) được service kiểm tra sau.
func ViewerAuthMiddleware() fiber.Handler {
	return func(c fiber.Ctx) error {
		// Lấy token từ header
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			logger.GetAppLogger().WithFields(logrus.Fields{
				"path":   c.Path(),
				"method": c.Method(),
			}).Warn("❌ [AUTH] Missing Authorization header")
			HandleErrorResponse(c, common.ErrTokenMissing)
			return nil
		}

		// Kiểm tra định dạng token
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			HandleErrorResponse(c, common.ErrTokenInvalid)
			return nil
		}

		email, name, role, err := ParseViewerToken(parts[1])
		if err != nil {
			logger.GetAppLogger().WithFields(logrus.Fields{
				"path":  c.Path(),
				"error": err.Error(),
			}).Warn("❌ [AUTH] Invalid viewer token")
			HandleErrorResponse(c, common.ErrTokenInvalid)
			return nil
		}

		// Lưu thông tin viewer vào context
		c.Locals("viewer_email", email)
		c.Locals("viewer_name", name)
		c.Locals("viewer_role", role)

		return c.Next()
	}
}

// ParseViewerToken parse và verify JWT phiên viewer, trả về email, tên và
// vai trò hiển thị. Token phải được ký HMAC bằng JwtSecret và có claim
// "email" khác rỗng. Vai trò trong token chỉ để hiển thị — quyền thực tế
// luôn được service tính lại theo dữ liệu dự án.
func ParseViewerToken(tokenStr string) (email string, name string, role string, err error) {
	token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, common.ErrTokenInvalid
		}
		return []byte(global.ServerConfig.JwtSecret), nil
	})
	if err != nil || !token.Valid {
		return "", "", "", common.ErrTokenInvalid
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", "", "", common.ErrTokenInvalid
	}

	email, _ = claims["email"].(string)
	if email == "" {
		return "", "", "", common.ErrIdentityMissing
	}
	name, _ = claims["name"].(string)
	role, _ = claims["role"].(string)
	if role == "" {
		role = "Crew"
	}

	return email, name, role, nil
}
