package authutils

import (
	"hr-pipeline-backend/models"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

// GetToken - токен доступа с организацией и ролью пользователя. Выпуск токенов вне этого сервиса,
// функция нужна для служебных утилит и тестов.
func GetToken(secret, userID, orgID string, role models.UserRole, ttl time.Duration) (tokenString string, err error) {
	claims := jwt.MapClaims{
		"sub":  userID,
		"org":  orgID,
		"role": string(role),
		"exp":  time.Now().Add(ttl).Unix(),
		"iat":  time.Now().Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

func GetClaims(ctx *fiber.Ctx) jwt.MapClaims {
	token, ok := ctx.Locals("user").(*jwt.Token)
	if !ok {
		return jwt.MapClaims{}
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return jwt.MapClaims{}
	}
	return claims
}

func GetStringClaim(ctx *fiber.Ctx, key string) string {
	value, _ := GetClaims(ctx)[key].(string)
	return value
}
