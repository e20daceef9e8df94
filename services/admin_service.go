package services

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"

	"bookshop/models"
)

const bcryptCost = 10

type AdminService struct {
	admins AdminStore
}

func NewAdminService(admins AdminStore) *AdminService {
	return &AdminService{admins: admins}
}

func (s *AdminService) List(ctx context.Context) ([]models.Admin, error) {
	return s.admins.List(ctx)
}

func (s *AdminService) Get(ctx context.Context, id primitive.ObjectID) (*models.Admin, error) {
	return s.admins.FindByID(ctx, id)
}

type CreateAdminInput struct {
	Username string `json:"username" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	Role     string `json:"role"`
}

func (s *AdminService) Create(ctx context.Context, input CreateAdminInput) (*models.Admin, error) {
	if _, err := s.admins.FindByEmail(ctx, input.Email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, ErrNotFound) {
		return nil, err
	}

	role := input.Role
	if role == "" {
		role = models.RoleAdmin
	}
	if !models.ValidRole(role) {
		return nil, ErrInvalidStatus
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcryptCost)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	admin := &models.Admin{
		ID:        primitive.NewObjectID(),
		Username:  input.Username,
		Email:     input.Email,
		Password:  string(hashed),
		Role:      role,
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.admins.Insert(ctx, admin); err != nil {
		return nil, err
	}
	return admin, nil
}

type UpdateAdminInput struct {
	Username *string `json:"username"`
	Email    *string `json:"email"`
	Role     *string `json:"role"`
	IsActive *bool   `json:"isActive"`
}

func (s *AdminService) Update(ctx context.Context, id primitive.ObjectID, input UpdateAdminInput) (*models.Admin, error) {
	fields := map[string]interface{}{}
	if input.Username != nil {
		fields["username"] = *input.Username
	}
	if input.Email != nil {
		fields["email"] = *input.Email
	}
	if input.Role != nil {
		if !models.ValidRole(*input.Role) {
			return nil, ErrInvalidStatus
		}
		fields["role"] = *input.Role
	}
	if input.IsActive != nil {
		fields["isActive"] = *input.IsActive
	}

	return s.admins.Update(ctx, id, fields)
}

// Delete removes an admin record. Admins cannot remove themselves, so the
// panel always keeps at least the acting account.
func (s *AdminService) Delete(ctx context.Context, id, requesterID primitive.ObjectID) error {
	if id == requesterID {
		return ErrSelfDelete
	}
	return s.admins.Delete(ctx, id)
}

type UpdateProfileInput struct {
	Username string `json:"username" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
}

func (s *AdminService) UpdateProfile(ctx context.Context, id primitive.ObjectID, input UpdateProfileInput) (*models.Admin, error) {
	return s.admins.Update(ctx, id, map[string]interface{}{
		"username": input.Username,
		"email":    input.Email,
	})
}

func (s *AdminService) ChangePassword(ctx context.Context, id primitive.ObjectID, currentPassword, newPassword string) error {
	admin, err := s.admins.FindByID(ctx, id)
	if err != nil {
		return err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(admin.Password), []byte(currentPassword)); err != nil {
		return ErrWrongPassword
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcryptCost)
	if err != nil {
		return err
	}

	_, err = s.admins.Update(ctx, id, map[string]interface{}{"password": string(hashed)})
	return err
}

// Bootstrap seeds one active super_admin when the collection is empty, so a
// fresh deployment has an account to log in with.
func (s *AdminService) Bootstrap(ctx context.Context, username, email, password string) (bool, error) {
	count, err := s.admins.Count(ctx)
	if err != nil {
		return false, err
	}
	if count > 0 {
		return false, nil
	}

	_, err = s.Create(ctx, CreateAdminInput{
		Username: username,
		Email:    email,
		Password: password,
		Role:     models.RoleSuperAdmin,
	})
	if err != nil {
		return false, err
	}
	return true, nil
}
