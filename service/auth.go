package service

import (
	"strings"
	"time"

	"cinebook/model"
	"cinebook/store"
)

// Auth handles sign-up and sign-in against the plaintext user file. Not a
// security boundary; it exists so bookings can default to the signed-in
// customer's name and email.
type Auth struct {
	users *store.Users
}

// NewAuth wraps the user store.
func NewAuth(users *store.Users) *Auth {
	return &Auth{users: users}
}

// Register creates a new account after validating the basics.
func (a *Auth) Register(name, email, password string) (model.User, error) {
	name = strings.TrimSpace(name)
	email = strings.TrimSpace(email)
	if len(name) < 2 {
		return model.User{}, ErrInvalidName
	}
	if !validEmail(email) {
		return model.User{}, ErrInvalidEmail
	}
	if len(password) < 6 {
		return model.User{}, ErrWeakPassword
	}
	if _, exists, err := a.users.FindByEmail(email); err != nil {
		return model.User{}, err
	} else if exists {
		return model.User{}, ErrEmailTaken
	}
	user := model.User{
		Email:        email,
		Password:     password,
		Name:         name,
		RegisteredAt: time.Now(),
	}
	if err := a.users.Add(user); err != nil {
		return model.User{}, err
	}
	return user, nil
}

// Login checks an email/password pair. The error is the same whether the
// account is missing or the password wrong.
func (a *Auth) Login(email, password string) (model.User, error) {
	user, exists, err := a.users.FindByEmail(email)
	if err != nil {
		return model.User{}, err
	}
	if !exists || user.Password != password {
		return model.User{}, ErrBadCredentials
	}
	return user, nil
}

func validEmail(email string) bool {
	at := strings.Index(email, "@")
	if at < 1 {
		return false
	}
	domain := email[at+1:]
	if strings.Contains(domain, "@") {
		return false
	}
	dot := strings.Index(domain, ".")
	return dot > 0 && dot < len(domain)-1 && !strings.ContainsAny(email, ", ")
}
