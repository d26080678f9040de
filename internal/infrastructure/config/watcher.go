package config

import (
	"fmt"

	"github.com/fsnotify/fsnotify"
	"github.com/ubytes/appplatform/internal/logging"
)

// Watch starts watching the config file for changes and reloads automatically.
// A reload that fails validation keeps the previous configuration.
func (m *Manager) Watch() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.config == nil {
		return fmt.Errorf("configuration not loaded")
	}
	if m.watching {
		return nil
	}

	m.viper.OnConfigChange(m.handleChange)
	m.viper.WatchConfig()
	m.watching = true
	return nil
}

func (m *Manager) handleChange(e fsnotify.Event) {
	log := logging.NewFromEnv()
	log.Debug().Str("op", e.Op.String()).Str("file", e.Name).Msg("fsnotify config change detected")

	m.mu.Lock()

	if m.skipNextReload {
		log.Debug().Msg("skipping reload (triggered by own Save)")
		m.skipNextReload = false
		if err := m.viper.ReadInConfig(); err != nil {
			log.Warn().Err(err).Msg("failed to sync viper config after Save")
		}
		m.notifyCallbacksLocked()
		return
	}

	if err := m.reload(); err != nil {
		log.Warn().Err(err).Msg("failed to reload config")
		m.mu.Unlock()
		return
	}
	m.notifyCallbacksLocked()
}

// notifyCallbacksLocked copies callbacks and config, releases lock, then notifies.
// Must be called with m.mu held for write.
func (m *Manager) notifyCallbacksLocked() {
	config := m.config.Clone()
	callbacks := make([]func(*Config), len(m.callbacks))
	copy(callbacks, m.callbacks)
	m.mu.Unlock()

	for _, callback := range callbacks {
		callback(config)
	}
}

// OnConfigChange registers a callback function to be called when config changes.
func (m *Manager) OnConfigChange(callback func(*Config)) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.callbacks = append(m.callbacks, callback)
}

// reload re-reads the file. Must be called with m.mu held for write.
func (m *Manager) reload() error {
	if err := m.viper.ReadInConfig(); err != nil {
		return err
	}

	config, err := m.unmarshalConfig()
	if err != nil {
		return err
	}
	if err := ensureDatabasePath(config); err != nil {
		return err
	}
	normalizeConfig(config)

	if err := validateConfig(config); err != nil {
		return fmt.Errorf("configuration validation failed: %w", err)
	}

	m.config = config
	return nil
}
