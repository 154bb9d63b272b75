package repositories

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/tonshowcase/showcase/internal/database/models"
	"gorm.io/gorm"
)

var ErrUserNotFound = errors.New("user not found")

const searchLimit = 20

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

// UpsertUser creates the user or refreshes its profile fields. An empty wallet
// address never overwrites a connected one.
func (r *UserRepository) UpsertUser(ctx context.Context, user *models.User) error {
	var existing models.User
	err := r.db.WithContext(ctx).First(&existing, "telegram_id = ?", user.TelegramID).Error

	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	now := time.Now()

	if errors.Is(err, gorm.ErrRecordNotFound) {
		user.CreatedAt = now
		user.UpdatedAt = now
		return r.db.WithContext(ctx).Create(user).Error
	}

	updates := map[string]interface{}{
		"first_name": user.FirstName,
		"username":   user.Username,
		"updated_at": now,
	}
	if user.WalletAddress != "" {
		updates["wallet_address"] = user.WalletAddress
	}

	return r.db.WithContext(ctx).Model(&existing).Updates(updates).Error
}

func (r *UserRepository) GetUserById(ctx context.Context, telegramID int64) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).First(&user, "telegram_id = ?", telegramID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	return &user, nil
}

// SearchUsers matches usernames containing query, ignoring case.
func (r *UserRepository) SearchUsers(ctx context.Context, query string) ([]models.User, error) {
	users := make([]models.User, 0)
	query = strings.TrimSpace(query)
	if query == "" {
		return users, nil
	}

	pattern := "%" + escapeLike(strings.ToLower(query)) + "%"
	err := r.db.WithContext(ctx).
		Where("LOWER(username) LIKE ? ESCAPE '\\'", pattern).
		Order("username").
		Limit(searchLimit).
		Find(&users).Error
	if err != nil {
		return nil, err
	}

	return users, nil
}

func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}
