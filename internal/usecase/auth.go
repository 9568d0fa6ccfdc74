package usecase

import (
	"context"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode"

	"go.uber.org/zap"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/crors-digital/calltrack/internal/config"
	domainErrors "github.com/crors-digital/calltrack/internal/domain/errors"
	"github.com/crors-digital/calltrack/internal/domain/model"
	"github.com/crors-digital/calltrack/internal/domain/repository"
)

// AuthUsecase authenticates users and manages their sessions.
type AuthUsecase struct {
	users    repository.UserRepository
	audit    repository.AuditRepository
	sessions SessionStore
	logger   *zap.Logger
}

// NewAuthUsecase creates a new authentication usecase
func NewAuthUsecase(users repository.UserRepository, audit repository.AuditRepository, sessions SessionStore, logger *zap.Logger) *AuthUsecase {
	return &AuthUsecase{
		users:    users,
		audit:    audit,
		sessions: sessions,
		logger:   logger,
	}
}

// Login checks the credentials and opens a session. Absent, inactive and
// wrong-password users all fail with ErrInvalidCredentials.
func (uc *AuthUsecase) Login(ctx context.Context, username, password, ip string) (string, *Identity, error) {
	user, err := uc.users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			return "", nil, domainErrors.ErrInvalidCredentials
		}
		return "", nil, err
	}
	if !user.Active {
		return "", nil, domainErrors.ErrInvalidCredentials
	}

	hash := HashPassword(password)
	if subtle.ConstantTimeCompare([]byte(hash), []byte(user.PasswordHash)) != 1 {
		return "", nil, domainErrors.ErrInvalidCredentials
	}

	identity := Identity{
		UserID:   user.ID,
		Username: user.Username,
		FullName: user.FullName,
		Role:     user.Role,
	}

	token, err := uc.sessions.Create(ctx, identity)
	if err != nil {
		uc.logger.Error("Failed to create session",
			zap.String("username", username),
			zap.Error(err))
		return "", nil, fmt.Errorf("failed to create session: %w", err)
	}

	if err := uc.users.TouchLastLogin(ctx, user.ID); err != nil {
		uc.logger.Warn("Failed to record last login",
			zap.String("username", username),
			zap.Error(err))
	}

	uc.recordAudit(ctx, user.ID, model.AuditActionLogin, ip, "Login realizado")

	return token, &identity, nil
}

// Logout invalidates the session. Unknown tokens are a no-op.
func (uc *AuthUsecase) Logout(ctx context.Context, token, ip string) error {
	identity, ok := uc.sessions.Resolve(ctx, token)
	if err := uc.sessions.Invalidate(ctx, token); err != nil {
		return err
	}
	if ok {
		uc.recordAudit(ctx, identity.UserID, model.AuditActionLogout, ip, "Logout realizado")
	}
	return nil
}

// Audit failures never fail the login/logout itself.
func (uc *AuthUsecase) recordAudit(ctx context.Context, userID int64, action, ip, description string) {
	entry := &model.AuditEntry{
		UserID:      userID,
		Table:       "usuarios",
		RecordID:    userID,
		Action:      action,
		Description: description,
		IPAddress:   ip,
	}
	if err := uc.audit.Create(ctx, entry); err != nil {
		uc.logger.Warn("Failed to record auth audit entry",
			zap.String("action", action),
			zap.Error(err))
	}
}

// HashPassword returns the hex-encoded SHA-256 of the password.
func HashPassword(password string) string {
	sum := sha256.Sum256([]byte(password))
	return hex.EncodeToString(sum[:])
}

// DeriveUsername builds the login name from a full name: the first given
// name concatenated with the last surname, lowercased, diacritics
// stripped. "André Nunes Flores" becomes "andreflores".
func DeriveUsername(fullName string) string {
	parts := strings.Fields(strings.TrimSpace(fullName))
	if len(parts) == 0 {
		return ""
	}
	name := parts[0]
	if len(parts) > 1 {
		name += parts[len(parts)-1]
	}
	return strings.ToLower(foldDiacritics(name))
}

// DeriveBirthDatePassword turns a dd/mm/yyyy birth date into the ddmmyyyy
// initial password.
func DeriveBirthDatePassword(birthDate string) (string, error) {
	parts := strings.Split(strings.TrimSpace(birthDate), "/")
	if len(parts) != 3 {
		return "", fmt.Errorf("invalid birth date %q: expected dd/mm/yyyy", birthDate)
	}
	return parts[0] + parts[1] + parts[2], nil
}

// foldDiacritics strips combining marks: "ç" -> "c", "é" -> "e".
func foldDiacritics(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return folded
}

// RosterUsers materializes the configured roster into seedable user rows.
// The configured admin username gets the admin role; entries without an
// explicit role default to assistant.
func RosterUsers(cfg config.AuthConfig) ([]model.User, error) {
	now := time.Now().UTC()
	users := make([]model.User, 0, len(cfg.Roster))
	for _, entry := range cfg.Roster {
		username := DeriveUsername(entry.FullName)
		if username == "" {
			return nil, fmt.Errorf("roster entry with empty name")
		}

		password, err := DeriveBirthDatePassword(entry.BirthDate)
		if err != nil {
			return nil, fmt.Errorf("roster entry %q: %w", entry.FullName, err)
		}

		role := model.ParseRole(entry.Role)
		if username == cfg.AdminUsername {
			role = model.RoleAdmin
		}

		domain := cfg.EmailDomain
		if domain == "" {
			domain = "example.org"
		}

		users = append(users, model.User{
			Username:     username,
			FullName:     entry.FullName,
			Email:        fmt.Sprintf("%s@%s", username, domain),
			PasswordHash: HashPassword(password),
			Role:         role,
			Active:       true,
			CreatedAt:    now,
			UpdatedAt:    now,
		})
	}
	return users, nil
}
