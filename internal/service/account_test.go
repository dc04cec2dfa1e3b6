package service

import (
	"context"
	"encoding/json"
	"testing"

	"todoapp/internal/domain/errors"
	"todoapp/internal/domain/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"
)

type MockUserStore struct {
	mock.Mock
}

func (m *MockUserStore) CreateUser(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserStore) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserStore) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func TestRegister(t *testing.T) {
	tests := []struct {
		name      string
		inName    string
		inEmail   string
		inPass    string
		mockSetup func(*MockUserStore)
		want      struct {
			err   error
			email string
		}
	}{
		{
			name:    "successful registration lowercases email",
			inName:  "  Ana  ",
			inEmail: " Ana@X.com ",
			inPass:  "secret1",
			mockSetup: func(store *MockUserStore) {
				store.On("GetUserByEmail", mock.Anything, "ana@x.com").Return(nil, errors.ErrUserNotFound)
				store.On("CreateUser", mock.Anything, mock.AnythingOfType("*models.User")).
					Run(func(args mock.Arguments) {
						args.Get(1).(*models.User).ID = "7b0d05d4-3e57-4f15-9c1a-111111111111"
					}).Return(nil)
			},
			want: struct {
				err   error
				email string
			}{
				err:   nil,
				email: "ana@x.com",
			},
		},
		{
			name:    "duplicate email",
			inName:  "Ana",
			inEmail: "ana@x.com",
			inPass:  "secret1",
			mockSetup: func(store *MockUserStore) {
				store.On("GetUserByEmail", mock.Anything, "ana@x.com").Return(&models.User{
					ID:    "existing",
					Email: "ana@x.com",
				}, nil)
			},
			want: struct {
				err   error
				email string
			}{
				err: errors.ErrEmailTaken,
			},
		},
		{
			name:      "empty name",
			inName:    "   ",
			inEmail:   "ana@x.com",
			inPass:    "secret1",
			mockSetup: func(store *MockUserStore) {},
			want: struct {
				err   error
				email string
			}{
				err: errors.ErrInvalidName,
			},
		},
		{
			name:      "empty password",
			inName:    "Ana",
			inEmail:   "ana@x.com",
			inPass:    "",
			mockSetup: func(store *MockUserStore) {},
			want: struct {
				err   error
				email string
			}{
				err: errors.ErrInvalidPassword,
			},
		},
		{
			name:    "store lookup failure",
			inName:  "Ana",
			inEmail: "ana@x.com",
			inPass:  "secret1",
			mockSetup: func(store *MockUserStore) {
				store.On("GetUserByEmail", mock.Anything, "ana@x.com").Return(nil, errors.ErrStorageUnavailable)
			},
			want: struct {
				err   error
				email string
			}{
				err: errors.ErrStorageUnavailable,
			},
		},
		{
			name:    "race backstop via store uniqueness constraint",
			inName:  "Ana",
			inEmail: "ana@x.com",
			inPass:  "secret1",
			mockSetup: func(store *MockUserStore) {
				store.On("GetUserByEmail", mock.Anything, "ana@x.com").Return(nil, errors.ErrUserNotFound)
				store.On("CreateUser", mock.Anything, mock.AnythingOfType("*models.User")).Return(errors.ErrEmailTaken)
			},
			want: struct {
				err   error
				email string
			}{
				err: errors.ErrEmailTaken,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := &MockUserStore{}
			tt.mockSetup(store)

			accounts := NewAccounts(store)
			info, err := accounts.Register(context.Background(), tt.inName, tt.inEmail, tt.inPass)

			if tt.want.err != nil {
				assert.ErrorIs(t, err, tt.want.err)
				assert.Nil(t, info)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.want.email, info.Email)
				assert.Equal(t, "Ana", info.Name)
				assert.NotEmpty(t, info.ID)
			}

			store.AssertExpectations(t)
		})
	}
}

func TestRegisterNeverStoresPlaintext(t *testing.T) {
	store := &MockUserStore{}
	var stored *models.User
	store.On("GetUserByEmail", mock.Anything, "ana@x.com").Return(nil, errors.ErrUserNotFound)
	store.On("CreateUser", mock.Anything, mock.AnythingOfType("*models.User")).
		Run(func(args mock.Arguments) {
			stored = args.Get(1).(*models.User)
			stored.ID = "user123"
		}).Return(nil)

	accounts := NewAccounts(store)
	_, err := accounts.Register(context.Background(), "Ana", "ana@x.com", "secret1")

	assert.NoError(t, err)
	assert.NotEqual(t, "secret1", stored.Password)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.Password), []byte("secret1")))
}

func TestLogin(t *testing.T) {
	hash, _ := bcrypt.GenerateFromPassword([]byte("secret1"), bcrypt.MinCost)
	anaUser := &models.User{
		ID:       "user123",
		Name:     "Ana",
		Email:    "ana@x.com",
		Password: string(hash),
	}

	tests := []struct {
		name      string
		inEmail   string
		inPass    string
		mockSetup func(*MockUserStore)
		want      struct {
			err error
		}
	}{
		{
			name:    "unknown email",
			inEmail: "nobody@x.com",
			inPass:  "secret1",
			mockSetup: func(store *MockUserStore) {
				store.On("GetUserByEmail", mock.Anything, "nobody@x.com").Return(nil, errors.ErrUserNotFound)
			},
			want: struct{ err error }{err: errors.ErrUserNotFound},
		},
		{
			name:    "wrong password",
			inEmail: "ana@x.com",
			inPass:  "wrong",
			mockSetup: func(store *MockUserStore) {
				store.On("GetUserByEmail", mock.Anything, "ana@x.com").Return(anaUser, nil)
			},
			want: struct{ err error }{err: errors.ErrInvalidCredentials},
		},
		{
			name:    "successful login with mixed-case email",
			inEmail: "Ana@X.com",
			inPass:  "secret1",
			mockSetup: func(store *MockUserStore) {
				store.On("GetUserByEmail", mock.Anything, "ana@x.com").Return(anaUser, nil)
			},
			want: struct{ err error }{err: nil},
		},
		{
			name:    "store failure",
			inEmail: "ana@x.com",
			inPass:  "secret1",
			mockSetup: func(store *MockUserStore) {
				store.On("GetUserByEmail", mock.Anything, "ana@x.com").Return(nil, errors.ErrStorageUnavailable)
			},
			want: struct{ err error }{err: errors.ErrStorageUnavailable},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := &MockUserStore{}
			tt.mockSetup(store)

			accounts := NewAccounts(store)
			info, err := accounts.Login(context.Background(), tt.inEmail, tt.inPass)

			if tt.want.err != nil {
				assert.ErrorIs(t, err, tt.want.err)
				assert.Nil(t, info)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, "ana@x.com", info.Email)

				// The descriptor must carry no password in any form.
				raw, merr := json.Marshal(info)
				assert.NoError(t, merr)
				assert.NotContains(t, string(raw), "password")
			}

			store.AssertExpectations(t)
		})
	}
}
