package services

import (
	"fmt"
	"time"

	"staydesk/errors"
	"staydesk/types"

	"github.com/dgrijalva/jwt-go"
)

// OperatorClaims là claims của token operator
type OperatorClaims struct {
	OperatorInfo types.OperatorInfo `json:"operatorinfo"`
	jwt.StandardClaims
}

// TokenIssuer ký và kiểm tra token operator (HS256)
type TokenIssuer struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewTokenIssuer(secret string, ttl time.Duration) *TokenIssuer {
	if ttl <= 0 {
		ttl = 12 * time.Hour
	}
	return &TokenIssuer{secret: []byte(secret), ttl: ttl, now: time.Now}
}

// IssueOperatorToken tạo token mới, trả về cả thời điểm hết hạn
func (t *TokenIssuer) IssueOperatorToken(info types.OperatorInfo) (string, time.Time, error) {
	issued := t.now()
	expires := issued.Add(t.ttl)
	claims := &OperatorClaims{
		OperatorInfo: info,
		StandardClaims: jwt.StandardClaims{
			Subject:   info.OperatorID,
			IssuedAt:  issued.Unix(),
			ExpiresAt: expires.Unix(),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(t.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expires, nil
}

// ParseOperatorToken kiểm tra chữ ký và hạn của token
func (t *TokenIssuer) ParseOperatorToken(tokenString string) (types.OperatorInfo, error) {
	claims := &OperatorClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return t.secret, nil
	})
	if err != nil || !token.Valid {
		return types.OperatorInfo{}, errors.NewAppError(errors.ErrCodeAuthFailed, "Invalid or expired token.", errors.ErrInvalidToken)
	}
	if claims.OperatorInfo.OperatorID == "" {
		return types.OperatorInfo{}, errors.NewAppError(errors.ErrCodeAuthFailed, "Invalid or expired token.", errors.ErrInvalidToken)
	}
	return claims.OperatorInfo, nil
}
