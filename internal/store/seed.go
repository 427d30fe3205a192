package store

import (
	"fmt"
	"log/slog"

	"golang.org/x/crypto/bcrypt"
)

// defaultAdminPassword is the well-known first-run password. The settings
// page nags until it is changed; the CLI can reset it.
const defaultAdminPassword = "123456"

// Seed inserts the default admin and settings rows when the tables are
// empty. It is called once at startup after InitSchema and is idempotent:
// running it any number of times leaves exactly one seeded row of each.
func (s *Store) Seed(adminUsername, whatsappNumber string) error {
	count, err := s.CountAdmins()
	if err != nil {
		return fmt.Errorf("seed: counting admins: %w", err)
	}
	if count == 0 {
		hash, err := bcrypt.GenerateFromPassword([]byte(defaultAdminPassword), bcrypt.DefaultCost)
		if err != nil {
			return fmt.Errorf("seed: hashing default password: %w", err)
		}
		if err := s.CreateAdmin(adminUsername, string(hash)); err != nil {
			return fmt.Errorf("seed: creating default admin: %w", err)
		}
		slog.Info("Seeded default admin account", "username", adminUsername)
	}

	settings, err := s.GetSettings()
	if err != nil {
		return fmt.Errorf("seed: reading settings: %w", err)
	}
	if settings == nil {
		if _, err := s.DB.Exec(`INSERT INTO settings (whatsapp_number) VALUES (?)`, whatsappNumber); err != nil {
			return fmt.Errorf("seed: creating default settings: %w", err)
		}
		slog.Info("Seeded default settings", "whatsapp_number", whatsappNumber)
	}

	return nil
}
