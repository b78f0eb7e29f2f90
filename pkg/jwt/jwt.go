package jwt

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims claims estándar más el tenant y el rol, para que los handlers no consulten la DB.
type Claims struct {
	jwt.RegisteredClaims
	UserID    string `json:"user_id"`
	CompanyID string `json:"company_id"`
	Role      string `json:"role"` // "admin" | "bodeguero" | "vendedor"
}

// Signer firma y valida tokens HS256 con un secreto y emisor fijos.
type Signer struct {
	secret     []byte
	issuer     string
	expiration time.Duration
}

// NewSigner construye el firmador. expMinutes <= 0 usa 60.
func NewSigner(secret, issuer string, expMinutes int) (*Signer, error) {
	if secret == "" {
		return nil, errors.New("jwt: secret vacío")
	}
	if expMinutes <= 0 {
		expMinutes = 60
	}
	return &Signer{secret: []byte(secret), issuer: issuer, expiration: time.Duration(expMinutes) * time.Minute}, nil
}

// Generate emite un token para el usuario dentro de su empresa.
func (s *Signer) Generate(userID, companyID, role string) (string, error) {
	return s.generateAt(time.Now(), userID, companyID, role, s.expiration)
}

func (s *Signer) generateAt(now time.Time, userID, companyID, role string, ttl time.Duration) (string, error) {
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    s.issuer,
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		UserID:    userID,
		CompanyID: companyID,
		Role:      role,
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

// Parse valida firma, expiración y emisor. Un token sin company_id no sirve: todo va acotado por empresa.
func (s *Signer) Parse(tokenString string) (*Claims, error) {
	opts := []jwt.ParserOption{jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()})}
	if s.issuer != "" {
		opts = append(opts, jwt.WithIssuer(s.issuer))
	}
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		return s.secret, nil
	}, opts...)
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("claims inválidos")
	}
	if claims.UserID == "" || claims.CompanyID == "" {
		return nil, fmt.Errorf("token sin usuario o empresa")
	}
	return claims, nil
}
