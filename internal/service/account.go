package service

import (
	"context"
	"log"
	"strings"
	"time"

	"todoapp/internal/domain/errors"
	"todoapp/internal/domain/models"

	"golang.org/x/crypto/bcrypt"
)

type Accounts struct {
	store UserStore
}

func NewAccounts(store UserStore) *Accounts {
	if store == nil {
		return nil
	}
	return &Accounts{store: store}
}

func (a *Accounts) Register(ctx context.Context, name, email, password string) (*models.UserInfo, error) {
	name = strings.TrimSpace(name)
	email = strings.ToLower(strings.TrimSpace(email))

	if name == "" {
		return nil, errors.ErrInvalidName
	}
	if email == "" {
		return nil, errors.ErrInvalidEmail
	}
	if password == "" {
		return nil, errors.ErrInvalidPassword
	}

	existing, err := a.store.GetUserByEmail(ctx, email)
	if err != nil && err != errors.ErrUserNotFound {
		log.Println("[ERROR] Ошибка проверки email при регистрации:", err)
		return nil, errors.ErrStorageUnavailable
	}
	if existing != nil {
		return nil, errors.ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Println("[ERROR] Не удалось захэшировать пароль:", err)
		return nil, errors.ErrInternalServer
	}

	user := &models.User{
		Name:      name,
		Email:     email,
		Password:  string(hash),
		CreatedAt: time.Now(),
	}

	// The store's uniqueness constraint on email backstops the explicit
	// check above against a racing registration.
	if err := a.store.CreateUser(ctx, user); err != nil {
		if err == errors.ErrEmailTaken {
			return nil, errors.ErrEmailTaken
		}
		log.Println("[ERROR] Не удалось создать пользователя:", err)
		return nil, errors.ErrStorageUnavailable
	}

	log.Println("[SUCCESS] Пользователь зарегистрирован:", user.ID)
	return &models.UserInfo{ID: user.ID, Name: user.Name, Email: user.Email}, nil
}

func (a *Accounts) Login(ctx context.Context, email, password string) (*models.UserInfo, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	user, err := a.store.GetUserByEmail(ctx, email)
	if err != nil {
		if err == errors.ErrUserNotFound {
			return nil, errors.ErrUserNotFound
		}
		log.Println("[ERROR] Ошибка поиска пользователя при входе:", err)
		return nil, errors.ErrStorageUnavailable
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, errors.ErrInvalidCredentials
	}

	log.Println("[SUCCESS] Вход выполнен:", user.ID)
	return &models.UserInfo{ID: user.ID, Name: user.Name, Email: user.Email}, nil
}
