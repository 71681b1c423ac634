package identity

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/emansa3ed/jewelry-store/internal/domain/identity"
	"github.com/emansa3ed/jewelry-store/internal/domain/shared"
)

// UserListFilter represents pagination options for the admin user list
type UserListFilter struct {
	Page     int `form:"page"`
	PageSize int `form:"page_size"`
}

// UserService serves the administrative user surface. Admin access is
// enforced at the HTTP layer.
type UserService struct {
	users  identity.UserRepository
	logger *zap.Logger
}

// NewUserService creates a new UserService
func NewUserService(users identity.UserRepository, logger *zap.Logger) *UserService {
	return &UserService{
		users:  users,
		logger: logger,
	}
}

// List retrieves registered users, newest first
func (s *UserService) List(ctx context.Context, filter UserListFilter) ([]UserResponse, int64, error) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}

	users, err := s.users.FindAll(ctx, shared.Filter{
		Page:     filter.Page,
		PageSize: filter.PageSize,
		OrderBy:  "created_at",
		OrderDir: "desc",
	})
	if err != nil {
		return nil, 0, err
	}
	total, err := s.users.Count(ctx)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]UserResponse, 0, len(users))
	for i := range users {
		responses = append(responses, ToUserResponse(&users[i]))
	}
	return responses, total, nil
}

// Delete removes a user account. An admin cannot delete their own account;
// that would leave the session's bearer token orphaned mid-request.
func (s *UserService) Delete(ctx context.Context, requesterID, userID uuid.UUID) error {
	if requesterID == userID {
		return shared.NewDomainError("CANNOT_DELETE_SELF", "You cannot delete your own account")
	}

	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return err
	}
	if err := s.users.Delete(ctx, userID); err != nil {
		return err
	}

	s.logger.Info("user account deleted",
		zap.String("user_id", userID.String()),
		zap.String("email", user.Email),
		zap.String("deleted_by", requesterID.String()))

	return nil
}
