package profile

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/presenta/backend/domain"
	"github.com/presenta/backend/repository"
)

type UseCase struct {
	users  repository.UserRepository
	logger *zap.Logger
}

func New(users repository.UserRepository, logger *zap.Logger) *UseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UseCase{users: users, logger: logger}
}

func (uc *UseCase) GetProfile(ctx context.Context, userID string) (*domain.User, error) {
	return uc.users.GetByID(ctx, userID)
}

// UpdateProfile changes the editable identity fields. Email, role and active
// status are never client-writable through this path.
func (uc *UseCase) UpdateProfile(ctx context.Context, userID string, name, phone *string) (*domain.User, error) {
	user, err := uc.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if name != nil {
		trimmed := strings.TrimSpace(*name)
		if trimmed == "" {
			return nil, domain.Validation("El nombre es obligatorio")
		}
		user.Name = trimmed
	}
	if phone != nil {
		user.Phone = strings.TrimSpace(*phone)
	}
	user.UpdatedAt = time.Now()

	if err := uc.users.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// UpdatePreferences merges the provided settings over the stored ones.
func (uc *UseCase) UpdatePreferences(ctx context.Context, userID string, theme, language *string, notifications *domain.NotificationPreferences) (*domain.User, error) {
	user, err := uc.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if theme != nil {
		switch *theme {
		case "light", "dark":
			user.Preferences.Theme = *theme
		default:
			return nil, domain.Validation("El tema debe ser light o dark")
		}
	}
	if language != nil {
		user.Preferences.Language = *language
	}
	if notifications != nil {
		user.Preferences.Notifications = *notifications
	}
	user.UpdatedAt = time.Now()

	if err := uc.users.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}
