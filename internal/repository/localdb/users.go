package localdb

import (
	"context"

	"github.com/maheshrc27/cominiti-api/internal/models"
	"github.com/maheshrc27/cominiti-api/internal/repository"
)

const usersTable = "users"

type userRepository struct {
	s *Store
}

func NewUserRepository(s *Store) repository.UserRepository {
	return &userRepository{s: s}
}

func (r *userRepository) GetByID(ctx context.Context, id string) (*models.User, bool, error) {
	rows, err := r.s.Select(usersTable, Match{"id": id})
	if err != nil {
		return nil, false, err
	}
	return first[models.User](rows)
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*models.User, bool, error) {
	rows, err := r.s.Select(usersTable, Match{"email": email})
	if err != nil {
		return nil, false, err
	}
	return first[models.User](rows)
}

func (r *userRepository) Create(ctx context.Context, user *models.User) (string, error) {
	row, err := encode(user)
	if err != nil {
		return "", err
	}
	var id string
	err = r.s.update(func(t tables) error {
		if len(t.find(usersTable, Row{"email": row["email"]})) > 0 {
			return ErrDuplicate
		}
		t.insert(usersTable, r.s.stamp(row, true))
		var created models.User
		if err := decode(row, &created); err != nil {
			return err
		}
		id = created.ID
		return nil
	})
	return id, err
}

func (r *userRepository) Update(ctx context.Context, user *models.User) error {
	_, err := r.s.Update(usersTable, Match{"id": user.ID}, Match{
		"google_id":       user.GoogleID,
		"name":            user.Name,
		"profile_picture": user.ProfilePicture,
	})
	return err
}
