package usecasetest

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/finance-tracker/savings-ledger/internal/application/adapter"
	domainerror "github.com/finance-tracker/savings-ledger/internal/domain/error"
)

var (
	_ adapter.PasswordService      = PasswordService{}
	_ adapter.TokenService         = (*TokenService)(nil)
	_ adapter.ExchangeRateProvider = (*RateProvider)(nil)
	_ adapter.ReportExporter       = (*Exporter)(nil)
)

// PasswordService is a reversible stand-in for bcrypt.
type PasswordService struct{}

func (PasswordService) HashPassword(password string) (string, error) {
	return "hashed:" + password, nil
}

func (PasswordService) VerifyPassword(hashedPassword, password string) error {
	if hashedPassword != "hashed:"+password {
		return errors.New("password mismatch")
	}
	return nil
}

func (PasswordService) ValidatePasswordStrength(password string) error {
	if len(password) < 8 {
		return domainerror.ErrWeakPassword
	}
	return nil
}

// TokenService issues opaque tokens and tracks revoked refresh tokens.
type TokenService struct {
	mu      sync.Mutex
	next    int
	access  map[string]adapter.TokenClaims
	refresh map[string]adapter.TokenClaims
	revoked map[string]bool
}

// NewTokenService creates a new TokenService.
func NewTokenService() *TokenService {
	return &TokenService{
		access:  make(map[string]adapter.TokenClaims),
		refresh: make(map[string]adapter.TokenClaims),
		revoked: make(map[string]bool),
	}
}

func (s *TokenService) GenerateTokenPair(_ context.Context, userID uuid.UUID, email string, _ bool) (*adapter.TokenPair, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.next++
	pair := &adapter.TokenPair{
		AccessToken:  fmt.Sprintf("access-%d", s.next),
		RefreshToken: fmt.Sprintf("refresh-%d", s.next),
	}
	claims := adapter.TokenClaims{UserID: userID, Email: email}
	s.access[pair.AccessToken] = claims
	s.refresh[pair.RefreshToken] = claims
	return pair, nil
}

func (s *TokenService) ValidateAccessToken(_ context.Context, token string) (*adapter.TokenClaims, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	claims, ok := s.access[token]
	if !ok {
		return nil, domainerror.ErrInvalidToken
	}
	return &claims, nil
}

func (s *TokenService) ValidateRefreshToken(_ context.Context, token string) (*adapter.TokenClaims, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	claims, ok := s.refresh[token]
	if !ok {
		return nil, domainerror.ErrInvalidToken
	}
	return &claims, nil
}

func (s *TokenService) InvalidateRefreshToken(_ context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.revoked[token] = true
	return nil
}

func (s *TokenService) IsRefreshTokenValid(_ context.Context, token string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, issued := s.refresh[token]
	return issued && !s.revoked[token], nil
}

// RateProvider returns a fixed table or error.
type RateProvider struct {
	Table *adapter.ExchangeRateTable
	Err   error
	Calls int
}

func (p *RateProvider) Latest(_ context.Context, _ []string) (*adapter.ExchangeRateTable, error) {
	p.Calls++
	if p.Err != nil {
		return nil, p.Err
	}
	return p.Table, nil
}

// Exporter writes one line per transaction.
type Exporter struct{}

func (*Exporter) Write(w io.Writer, export *adapter.LedgerExport) error {
	var b strings.Builder
	for _, t := range export.Transactions {
		fmt.Fprintf(&b, "%s;%s;%s\n", t.Transaction.Date.Format("2006-01-02"), t.Transaction.Description, t.Transaction.Amount)
	}
	_, err := io.WriteString(w, b.String())
	return err
}

func (*Exporter) ContentType() string {
	return "text/plain"
}
