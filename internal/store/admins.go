package store

import (
	"database/sql"
	"errors"

	"github.com/athanas-ai/nakhasbit/internal/models"
)

func (s *Store) GetAdminByUsername(username string) (*models.Admin, error) {
	query := `SELECT id, username, password_hash FROM admins WHERE username = ?`
	row := s.DB.QueryRow(query, username)

	var admin models.Admin
	if err := row.Scan(&admin.ID, &admin.Username, &admin.PasswordHash); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &admin, nil
}

func (s *Store) GetAdminByID(id int) (*models.Admin, error) {
	query := `SELECT id, username, password_hash FROM admins WHERE id = ?`
	row := s.DB.QueryRow(query, id)

	var admin models.Admin
	if err := row.Scan(&admin.ID, &admin.Username, &admin.PasswordHash); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &admin, nil
}

// CreateAdmin is mainly for seeding the initial admin and the operator CLI.
func (s *Store) CreateAdmin(username, passwordHash string) error {
	if taken, err := s.usernameTaken(username, 0); err != nil {
		return err
	} else if taken {
		return ErrUsernameTaken
	}
	query := `INSERT INTO admins (username, password_hash) VALUES (?, ?)`
	_, err := s.DB.Exec(query, username, passwordHash)
	return err
}

// UpdateAdminCredentials rewrites username and password hash together in a
// single statement, so a credential change is all-or-nothing per request.
func (s *Store) UpdateAdminCredentials(id int, username, passwordHash string) error {
	if taken, err := s.usernameTaken(username, id); err != nil {
		return err
	} else if taken {
		return ErrUsernameTaken
	}
	query := `UPDATE admins SET username = ?, password_hash = ? WHERE id = ?`
	_, err := s.DB.Exec(query, username, passwordHash, id)
	return err
}

func (s *Store) CountAdmins() (int, error) {
	var count int
	err := s.DB.QueryRow("SELECT COUNT(*) FROM admins").Scan(&count)
	if err != nil {
		return 0, err
	}
	return count, nil
}

// usernameTaken reports whether a different admin row already holds the
// username. The UNIQUE constraint is the backstop; this check exists so
// callers get ErrUsernameTaken instead of a driver error.
func (s *Store) usernameTaken(username string, excludeID int) (bool, error) {
	var id int
	err := s.DB.QueryRow(`SELECT id FROM admins WHERE username = ? AND id <> ?`, username, excludeID).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}
