package service

import (
	"fmt"
	"sync"

	"github.com/Dan9191/usuarios-service/internal/models"
	"github.com/Dan9191/usuarios-service/internal/repository"
	"github.com/sirupsen/logrus"
)

// Notifier delivers a welcome message to a newly created user
type Notifier interface {
	SendWelcome(to, name string) error
}

// Service handles business logic
type Service struct {
	repo     *repository.Repository
	log      *logrus.Logger
	notifier Notifier
	pending  sync.WaitGroup
}

// NewService initializes a new service. notifier may be nil.
func NewService(repo *repository.Repository, log *logrus.Logger, notifier Notifier) *Service {
	return &Service{repo: repo, log: log, notifier: notifier}
}

// ListUsers returns all users in insertion order
func (s *Service) ListUsers() []models.User {
	return s.repo.ListUsers()
}

// CountUsers returns the number of stored users
func (s *Service) CountUsers() int {
	return s.repo.Count()
}

// CreateUser stores a new user and sends a welcome notification
func (s *Service) CreateUser(name, email, password string) (*models.User, error) {
	user := &models.User{
		Name:     name,
		Email:    email,
		Password: password,
	}

	if err := s.repo.CreateUser(user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	s.log.Infof("User created: %d", user.ID)

	if s.notifier != nil {
		s.pending.Add(1)
		go s.notify(user.ID, user.Email, user.Name)
	}
	return user, nil
}

// notify delivers the welcome message off the request goroutine
func (s *Service) notify(id int, email, name string) {
	defer s.pending.Done()
	if err := s.notifier.SendWelcome(email, name); err != nil {
		s.log.Warnf("Failed to notify user %d: %v", id, err)
	}
}

// Close waits for in-flight notifications to finish
func (s *Service) Close() {
	s.pending.Wait()
}

// GetUserByID retrieves a user by id
func (s *Service) GetUserByID(id int) (*models.User, error) {
	return s.repo.GetUserByID(id)
}

// UpdateUser replaces name, email and password of an existing user
func (s *Service) UpdateUser(id int, name, email, password string) (*models.User, error) {
	user := &models.User{
		ID:       id,
		Name:     name,
		Email:    email,
		Password: password,
	}

	if err := s.repo.UpdateUser(user); err != nil {
		return nil, err
	}

	s.log.Infof("User updated: %d", user.ID)
	return user, nil
}
