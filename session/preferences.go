package session

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Themes accepted by the backend.
const (
	ThemeLight = "light"
	ThemeDark  = "dark"
)

// DefaultAccent is the accent colour used until one is chosen.
const DefaultAccent = "purple"

// Accents returns the accent colours offered by the client.
func Accents() []string {
	return []string{"purple", "blue", "green", "orange", "pink", "teal"}
}

// Preferences are display settings of this device. Unlike the session they
// survive a logout.
type Preferences struct {
	Theme       string
	DarkMode    bool
	HideAmounts bool
	Accent      string
}

// DefaultPreferences returns the preferences of a fresh install.
func DefaultPreferences() Preferences {
	return Preferences{Theme: ThemeLight, Accent: DefaultAccent}
}

// preference is the stored row. There is only one, with ID 1.
type preference struct {
	ID          uint `gorm:"primaryKey"`
	Theme       string
	DarkMode    bool
	HideAmounts bool
	Accent      string
	UpdatedAt   time.Time
}

// PreferenceStore persists Preferences in a sqlite database.
type PreferenceStore struct {
	db *gorm.DB
}

// DefaultPreferencesPath returns the database file under the user config dir.
func DefaultPreferencesPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "arthik", "preferences.db"), nil
}

// OpenPreferences opens (creating if needed) the preference database at dsn.
// Use ":memory:" for a store that lives as long as the process.
func OpenPreferences(dsn string) (*PreferenceStore, error) {
	if dsn != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(dsn), 0700); err != nil {
			return nil, fmt.Errorf("cannot create preferences dir: %w", err)
		}
	}
	config := &gorm.Config{
		NowFunc: func() time.Time {
			return time.Now().In(time.UTC)
		},
		Logger: logger.Default.LogMode(logger.Silent),
	}
	db, err := gorm.Open(sqlite.Open(dsn), config)
	if err != nil {
		return nil, fmt.Errorf("failed to open preferences: %w", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	// sqlite only supports one writer, and ":memory:" is per connection.
	sqlDB.SetMaxIdleConns(1)
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(&preference{}); err != nil {
		return nil, fmt.Errorf("failed to migrate preferences: %w", err)
	}
	return &PreferenceStore{db: db}, nil
}

// Load returns the stored preferences, or the defaults if none were saved.
func (s *PreferenceStore) Load() (Preferences, error) {
	var p preference
	err := s.db.First(&p, 1).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return DefaultPreferences(), nil
	}
	if err != nil {
		return DefaultPreferences(), fmt.Errorf("cannot load preferences: %w", err)
	}
	prefs := Preferences{Theme: p.Theme, DarkMode: p.DarkMode, HideAmounts: p.HideAmounts, Accent: p.Accent}
	if prefs.Theme == "" {
		prefs.Theme = ThemeLight
	}
	if prefs.Accent == "" {
		prefs.Accent = DefaultAccent
	}
	return prefs, nil
}

// Save stores prefs.
func (s *PreferenceStore) Save(prefs Preferences) error {
	p := preference{ID: 1, Theme: prefs.Theme, DarkMode: prefs.DarkMode, HideAmounts: prefs.HideAmounts, Accent: prefs.Accent}
	if err := s.db.Save(&p).Error; err != nil {
		return fmt.Errorf("cannot save preferences: %w", err)
	}
	return nil
}

// Update loads the preferences, applies f and saves the result.
func (s *PreferenceStore) Update(f func(*Preferences)) (Preferences, error) {
	prefs, err := s.Load()
	if err != nil {
		return prefs, err
	}
	f(&prefs)
	return prefs, s.Save(prefs)
}

// Reset forgets the stored preferences.
func (s *PreferenceStore) Reset() error {
	if err := s.db.Delete(&preference{}, 1).Error; err != nil {
		return fmt.Errorf("cannot reset preferences: %w", err)
	}
	return nil
}

// Close releases the database.
func (s *PreferenceStore) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
