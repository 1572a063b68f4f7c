package utils

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/TeamPaintbrush/thejerktracker/entity"
)

// Claims are the custom JWT claims the API issues.
type Claims struct {
	UserID       string  `json:"userId"`
	Role         string  `json:"role"`
	RestaurantID *string `json:"restaurantId,omitempty"`
	jwt.RegisteredClaims
}

// GenerateToken signs an HS256 JWT for the user.
func GenerateToken(u *entity.User, secret string, ttl time.Duration) (string, error) {
	claims := &Claims{
		UserID:       u.ID,
		Role:         u.Role,
		RestaurantID: u.RestaurantID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}
