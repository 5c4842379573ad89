package auth

import (
	"time"

	"github.com/dgrijalva/jwt-go"
)

// TokenExpiry reads the exp claim of a JWT without verifying the
// signature. It is for display only; the backend stays the authority.
// Opaque or malformed tokens report ok=false.
func TokenExpiry(token string) (exp time.Time, ok bool) {
	claims := jwt.MapClaims{}
	if _, _, err := new(jwt.Parser).ParseUnverified(token, claims); err != nil {
		return time.Time{}, false
	}
	switch v := claims["exp"].(type) {
	case float64:
		return time.Unix(int64(v), 0), true
	case int64:
		return time.Unix(v, 0), true
	default:
		return time.Time{}, false
	}
}

// TokenSubject returns the sub claim, when present.
func TokenSubject(token string) string {
	claims := jwt.MapClaims{}
	if _, _, err := new(jwt.Parser).ParseUnverified(token, claims); err != nil {
		return ""
	}
	sub, _ := claims["sub"].(string)
	return sub
}

// DescribeExpiry renders the token lifetime for whoami style output.
func DescribeExpiry(token string, now time.Time) string {
	exp, ok := TokenExpiry(token)
	if !ok {
		return "unknown"
	}
	if !exp.After(now) {
		return "expired " + exp.Local().Format(time.RFC1123)
	}
	return exp.Local().Format(time.RFC1123) + " (in " + exp.Sub(now).Round(time.Minute).String() + ")"
}
