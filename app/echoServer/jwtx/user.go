// app/echoServer/jwtx/user.go
package jwtx

import (
	"errors"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

func claims(c echo.Context) (jwt.MapClaims, error) {
	switch tok := c.Get("user").(type) {
	case *jwt.Token:
		if mc, ok := tok.Claims.(jwt.MapClaims); ok {
			return mc, nil
		}
	case jwt.MapClaims:
		return tok, nil
	}
	return nil, errors.New("no jwt claims in context")
}

func UserIDFromContext(c echo.Context) (int64, error) {
	mc, err := claims(c)
	if err != nil {
		return 0, err
	}
	if f, ok := mc["sub"].(float64); ok {
		return int64(f), nil
	}
	return 0, errors.New("sub missing in claims")
}

func RoleFromContext(c echo.Context) (string, error) {
	mc, err := claims(c)
	if err != nil {
		return "", err
	}
	if s, ok := mc["role"].(string); ok && s != "" {
		return s, nil
	}
	return "", errors.New("role missing in claims")
}
