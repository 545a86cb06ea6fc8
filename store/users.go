package store

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"cinebook/model"
)

const userTimeLayout = "2006-01-02 15:04:05"

// Users is the plaintext account file. One comma-delimited row per user:
// email, password, name, registration timestamp. Older rows may lack the
// trailing fields.
type Users struct {
	path string
}

// NewUsers opens the user store over the given file path.
func NewUsers(path string) *Users {
	return &Users{path: path}
}

// All reads every account row. A missing file means no accounts yet.
func (u *Users) All() ([]model.User, error) {
	file, err := os.Open(u.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read users: %w", err)
	}
	defer file.Close()

	var users []model.User
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		parts := strings.Split(line, fieldDelim)
		if len(parts) < 2 {
			continue
		}
		user := model.User{
			Email:    strings.TrimSpace(parts[0]),
			Password: parts[1],
		}
		if len(parts) >= 3 {
			user.Name = strings.TrimSpace(parts[2])
		}
		if len(parts) >= 4 {
			if at, err := time.ParseInLocation(userTimeLayout, strings.TrimSpace(parts[3]), time.Local); err == nil {
				user.RegisteredAt = at
			}
		}
		users = append(users, user)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read users: %w", err)
	}
	return users, nil
}

// FindByEmail returns the account with the given email, compared
// case-insensitively.
func (u *Users) FindByEmail(email string) (model.User, bool, error) {
	users, err := u.All()
	if err != nil {
		return model.User{}, false, err
	}
	for _, user := range users {
		if strings.EqualFold(user.Email, strings.TrimSpace(email)) {
			return user, true, nil
		}
	}
	return model.User{}, false, nil
}

// Add appends a new account row.
func (u *Users) Add(user model.User) error {
	if err := os.MkdirAll(filepath.Dir(u.path), 0o755); err != nil {
		return fmt.Errorf("add user: %w", err)
	}
	file, err := os.OpenFile(u.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("add user: %w", err)
	}
	line := strings.Join([]string{
		sanitize(user.Email),
		sanitize(user.Password),
		sanitize(user.Name),
		user.RegisteredAt.Format(userTimeLayout),
	}, fieldDelim)
	if _, err := file.WriteString(line + "\n"); err != nil {
		file.Close()
		return fmt.Errorf("add user: %w", err)
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("add user: %w", err)
	}
	return nil
}
