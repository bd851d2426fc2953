package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/novalabs/landing-api/internal/api/metrics"
	"github.com/novalabs/landing-api/internal/core/domain"
	"github.com/novalabs/landing-api/internal/core/ports"
)

// AdminService implements the admin RPC procedures against the user directory.
type AdminService struct {
	repo    ports.UserRepository
	allowed map[string]struct{}
	logger  zerolog.Logger
	now     func() time.Time
}

// NewAdminService builds the service with an explicit set of roles granted
// access. An empty allowedRoles defaults to exactly {admin}; super-admin is
// deliberately not included unless configured (the page navigation uses a
// wider set — see domain.CanSeeAdminNav).
func NewAdminService(repo ports.UserRepository, allowedRoles []string, logger zerolog.Logger) *AdminService {
	if len(allowedRoles) == 0 {
		allowedRoles = []string{domain.RoleAdmin}
	}
	allowed := make(map[string]struct{}, len(allowedRoles))
	for _, r := range allowedRoles {
		allowed[r] = struct{}{}
	}
	return &AdminService{repo: repo, allowed: allowed, logger: logger, now: time.Now}
}

// authorize applies the uniform precondition check. It runs before any store
// access on every procedure.
func (s *AdminService) authorize(session *domain.Session) error {
	if !session.Valid(s.now()) {
		metrics.AuthDeniedTotal.WithLabelValues("unauthorized").Inc()
		return domain.ErrUnauthorized
	}
	if _, ok := s.allowed[session.Role]; !ok {
		metrics.AuthDeniedTotal.WithLabelValues("forbidden").Inc()
		return domain.ErrForbidden
	}
	return nil
}

// ListUsers returns the whole directory ordered by creation time, most recent
// first. No pagination.
func (s *AdminService) ListUsers(ctx context.Context, session *domain.Session) ([]domain.User, error) {
	if err := s.authorize(session); err != nil {
		return nil, err
	}

	users, err := s.repo.ListByCreatedDesc(ctx)
	if err != nil {
		metrics.AdminActionsTotal.WithLabelValues("list_users", "error").Inc()
		s.logger.Error().Err(err).Msg("failed to list users")
		return nil, err
	}

	metrics.AdminActionsTotal.WithLabelValues("list_users", "ok").Inc()
	return users, nil
}

// SetRole overwrites the target's role. The write is blind: no check that the
// target exists, no guard against an admin demoting themselves. An absent
// identity is a store-level no-op.
func (s *AdminService) SetRole(ctx context.Context, session *domain.Session, input ports.SetRoleInput) error {
	if err := s.authorize(session); err != nil {
		return err
	}

	if err := s.repo.SetRole(ctx, input.UserID, input.Role); err != nil {
		metrics.AdminActionsTotal.WithLabelValues("set_role", "error").Inc()
		s.logger.Error().Err(err).Str("user_id", input.UserID).Msg("failed to set role")
		return err
	}

	metrics.AdminActionsTotal.WithLabelValues("set_role", "ok").Inc()
	s.logger.Info().Str("user_id", input.UserID).Str("role", input.Role).Str("actor", session.UserID).Msg("role updated")
	return nil
}

// BanUser sets banned=true with the supplied reason, falling back to
// domain.DefaultBanReason when the reason is empty. ExpiresInSeconds > 0
// makes the ban time-limited.
func (s *AdminService) BanUser(ctx context.Context, session *domain.Session, input ports.BanUserInput) error {
	if err := s.authorize(session); err != nil {
		return err
	}

	reason := input.Reason
	if reason == "" {
		reason = domain.DefaultBanReason
	}

	update := ports.BanUpdate{Reason: reason}
	if input.ExpiresInSeconds > 0 {
		exp := s.now().UTC().Add(time.Duration(input.ExpiresInSeconds) * time.Second)
		update.Expires = &exp
	}

	if err := s.repo.Ban(ctx, input.UserID, update); err != nil {
		metrics.AdminActionsTotal.WithLabelValues("ban_user", "error").Inc()
		s.logger.Error().Err(err).Str("user_id", input.UserID).Msg("failed to ban user")
		return err
	}

	metrics.AdminActionsTotal.WithLabelValues("ban_user", "ok").Inc()
	s.logger.Info().Str("user_id", input.UserID).Str("reason", reason).Str("actor", session.UserID).Msg("user banned")
	return nil
}

// UnbanUser clears the banned flag. Ban reason and expiry are left in place.
func (s *AdminService) UnbanUser(ctx context.Context, session *domain.Session, userID string) error {
	if err := s.authorize(session); err != nil {
		return err
	}

	if err := s.repo.Unban(ctx, userID); err != nil {
		metrics.AdminActionsTotal.WithLabelValues("unban_user", "error").Inc()
		s.logger.Error().Err(err).Str("user_id", userID).Msg("failed to unban user")
		return err
	}

	metrics.AdminActionsTotal.WithLabelValues("unban_user", "ok").Inc()
	s.logger.Info().Str("user_id", userID).Str("actor", session.UserID).Msg("user unbanned")
	return nil
}

// RemoveUser deletes the record by identity. Irreversible.
func (s *AdminService) RemoveUser(ctx context.Context, session *domain.Session, userID string) error {
	if err := s.authorize(session); err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, userID); err != nil {
		metrics.AdminActionsTotal.WithLabelValues("remove_user", "error").Inc()
		s.logger.Error().Err(err).Str("user_id", userID).Msg("failed to remove user")
		return err
	}

	metrics.AdminActionsTotal.WithLabelValues("remove_user", "ok").Inc()
	s.logger.Info().Str("user_id", userID).Str("actor", session.UserID).Msg("user removed")
	return nil
}
