package store

import (
	"database/sql"
	"errors"

	"github.com/athanas-ai/nakhasbit/internal/models"
)

// GetSettings returns the first settings row, or nil if none exists yet.
func (s *Store) GetSettings() (*models.Settings, error) {
	query := `SELECT id, whatsapp_number FROM settings ORDER BY id LIMIT 1`
	row := s.DB.QueryRow(query)

	var settings models.Settings
	if err := row.Scan(&settings.ID, &settings.WhatsAppNumber); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &settings, nil
}

// UpdateWhatsAppNumber overwrites the stored contact number, inserting the
// settings row if it has somehow gone missing.
func (s *Store) UpdateWhatsAppNumber(number string) error {
	settings, err := s.GetSettings()
	if err != nil {
		return err
	}
	if settings == nil {
		_, err := s.DB.Exec(`INSERT INTO settings (whatsapp_number) VALUES (?)`, number)
		return err
	}
	_, err = s.DB.Exec(`UPDATE settings SET whatsapp_number = ? WHERE id = ?`, number, settings.ID)
	return err
}

// EffectiveWhatsAppNumber resolves the owner's contact number: the stored
// settings row if present, otherwise the configured fallback. Pure read.
func (s *Store) EffectiveWhatsAppNumber(fallback string) string {
	settings, err := s.GetSettings()
	if err != nil || settings == nil {
		return fallback
	}
	return settings.WhatsAppNumber
}
