package repository

import (
	"errors"
	"fmt"
	"strings"

	"api_yamdb/internal/app/ds"
)

var ErrUserNotFound = errors.New("пользователь не найден")

func (r *Repository) GetUserByID(id int) (ds.User, error) {
	var user ds.User
	err := r.db.Where("user_id = ?", id).First(&user).Error
	if err != nil {
		return ds.User{}, ErrUserNotFound
	}
	return user, nil
}

func (r *Repository) GetUserByUsername(username string) (ds.User, error) {
	var user ds.User
	err := r.db.Where("username = ?", username).First(&user).Error
	if err != nil {
		return ds.User{}, ErrUserNotFound
	}
	return user, nil
}

func (r *Repository) GetUserByEmail(email string) (ds.User, error) {
	var user ds.User
	err := r.db.Where("email = ?", email).First(&user).Error
	if err != nil {
		return ds.User{}, ErrUserNotFound
	}
	return user, nil
}

// GetUserByUsernameAndEmail ищет пользователя по точной паре (username, email).
// Используется для повторной регистрации: совпадение пары — не конфликт.
func (r *Repository) GetUserByUsernameAndEmail(username, email string) (ds.User, error) {
	var user ds.User
	err := r.db.Where("username = ? AND email = ?", username, email).First(&user).Error
	if err != nil {
		return ds.User{}, ErrUserNotFound
	}
	return user, nil
}

func (r *Repository) GetUsers(search string, limit, offset int) ([]ds.User, error) {
	var users []ds.User
	q := r.db.Order("username")
	if search != "" {
		q = q.Where("LOWER(username) LIKE ?", "%"+strings.ToLower(search)+"%")
	}
	err := q.Limit(limit).Offset(offset).Find(&users).Error
	return users, err
}

func (r *Repository) CreateUser(user *ds.User) error {
	return r.db.Create(user).Error
}

func (r *Repository) UpdateUser(userID int, updates map[string]interface{}) error {
	return r.db.Model(&ds.User{}).Where("user_id = ?", userID).Updates(updates).Error
}

func (r *Repository) DeleteUserByUsername(username string) error {
	result := r.db.Where("username = ?", username).Delete(&ds.User{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrUserNotFound
	}
	return nil
}

// UpdateUserConfirmationCode сохраняет (или стирает) код подтверждения
func (r *Repository) UpdateUserConfirmationCode(userID int, code string) error {
	result := r.db.Model(&ds.User{}).Where("user_id = ?", userID).Update("confirmation_code", code)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("пользователь %d не найден", userID)
	}
	return nil
}
