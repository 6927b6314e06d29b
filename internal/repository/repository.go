package repository

import (
	"errors"
	"sync"

	"github.com/Dan9191/usuarios-service/internal/models"
)

// ErrUserNotFound is returned when no user has the requested id
var ErrUserNotFound = errors.New("user not found")

// Repository keeps user records in memory, in insertion order
type Repository struct {
	mu    sync.Mutex
	users []models.User
}

// NewRepository initializes an empty repository
func NewRepository() *Repository {
	return &Repository{users: make([]models.User, 0)}
}

// ListUsers returns a copy of all users in insertion order
func (r *Repository) ListUsers() []models.User {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]models.User, len(r.users))
	copy(out, r.users)
	return out
}

// CreateUser assigns the next sequential id to user and stores it
func (r *Repository) CreateUser(user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	user.ID = len(r.users) + 1
	r.users = append(r.users, *user)
	return nil
}

// GetUserByID retrieves a user by id
func (r *Repository) GetUserByID(id int) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.indexOf(id)
	if i < 0 {
		return nil, ErrUserNotFound
	}
	user := r.users[i]
	return &user, nil
}

// UpdateUser overwrites name, email and password of the stored user with
// user.ID. Empty values are written as-is.
func (r *Repository) UpdateUser(user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.indexOf(user.ID)
	if i < 0 {
		return ErrUserNotFound
	}
	r.users[i].Name = user.Name
	r.users[i].Email = user.Email
	r.users[i].Password = user.Password
	return nil
}

// Count returns the number of stored users
func (r *Repository) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.users)
}

// indexOf must be called with mu held
func (r *Repository) indexOf(id int) int {
	for i := range r.users {
		if r.users[i].ID == id {
			return i
		}
	}
	return -1
}
