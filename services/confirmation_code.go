package services

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"

	"staydesk/constants"
	"staydesk/errors"
)

// CodeChecker kiểm tra mã xác nhận đã được dùng chưa
type CodeChecker interface {
	CodeExists(ctx context.Context, code string) (bool, error)
}

// CodeGenerator sinh mã SD-XXXXX không trùng
type CodeGenerator struct {
	checker  CodeChecker
	attempts int
	random   func() (string, error)
}

func NewCodeGenerator(checker CodeChecker) *CodeGenerator {
	return &CodeGenerator{
		checker:  checker,
		attempts: constants.ConfirmationCodeAttempts,
		random:   RandomConfirmationCode,
	}
}

// Generate thử tối đa attempts lần, hết lượt trả về ErrCodeSpaceExhausted
func (g *CodeGenerator) Generate(ctx context.Context) (string, error) {
	for i := 0; i < g.attempts; i++ {
		code, err := g.random()
		if err != nil {
			return "", err
		}
		exists, err := g.checker.CodeExists(ctx, code)
		if err != nil {
			return "", fmt.Errorf("check confirmation code: %w", err)
		}
		if !exists {
			return code, nil
		}
	}
	return "", errors.ErrCodeSpaceExhausted
}

// RandomConfirmationCode sinh mã ngẫu nhiên từ crypto/rand, bỏ các ký tự dễ nhầm (0/O, 1/I)
func RandomConfirmationCode() (string, error) {
	alphabet := constants.ConfirmationCodeAlphabet
	max := big.NewInt(int64(len(alphabet)))

	var b strings.Builder
	b.WriteString(constants.ConfirmationCodePrefix)
	for i := 0; i < constants.ConfirmationCodeLength; i++ {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		b.WriteByte(alphabet[n.Int64()])
	}
	return b.String(), nil
}

// IsConfirmationCode kiểm tra định dạng mã
func IsConfirmationCode(s string) bool {
	if !strings.HasPrefix(s, constants.ConfirmationCodePrefix) {
		return false
	}
	body := strings.TrimPrefix(s, constants.ConfirmationCodePrefix)
	if len(body) != constants.ConfirmationCodeLength {
		return false
	}
	for _, c := range body {
		if !strings.ContainsRune(constants.ConfirmationCodeAlphabet, c) {
			return false
		}
	}
	return true
}
