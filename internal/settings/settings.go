// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package settings

import (
	"errors"
	"sync"

	"github.com/rs/zerolog"
	"golang.org/x/text/language"
)

const (
	keyFrontend = "frontendSettings"
	keyAudio    = "audioSettings"

	defaultLanguage = "en"
)

// =============================================================================
// SETTINGS OBJECTS
// =============================================================================

// LinkPreviewPolicy controls whether URLs in chat messages are fetched
// for inline previews.
type LinkPreviewPolicy struct {
	// Enabled turns link previews on or off globally.
	Enabled bool `json:"enabled"`

	// AllowAll fetches previews for every host when true. When false,
	// only hosts in AllowedHosts are fetched.
	AllowAll bool `json:"allow_all"`

	// AllowedHosts lists hosts previews may be fetched from when
	// AllowAll is false.
	AllowedHosts []string `json:"allowed_hosts"`
}

// FrontendSettings holds user-facing client preferences. The whole
// object is stored and replaced as one value.
type FrontendSettings struct {
	// Language is a BCP 47 language tag for the UI locale.
	Language string `json:"language"`

	// Theme selects the UI color theme.
	Theme string `json:"theme"`

	// LinkPreview controls inline URL preview fetching.
	LinkPreview LinkPreviewPolicy `json:"link_preview"`

	// ShowEventLog toggles the mute/deafen event feed in the sidebar.
	ShowEventLog bool `json:"show_event_log"`

	// APIKeys maps provider names to credentials. Values are sealed
	// before persistence and never stored in plaintext.
	APIKeys map[string]string `json:"api_keys,omitempty"`
}

// AudioSettings holds audio device and volume preferences. Stored and
// replaced as one value, same as FrontendSettings.
type AudioSettings struct {
	// InputDevice names the capture device, empty for system default.
	InputDevice string `json:"input_device"`

	// OutputDevice names the playback device, empty for system default.
	OutputDevice string `json:"output_device"`

	// InputVolume is the capture gain in percent (0-100).
	InputVolume int `json:"input_volume"`

	// OutputVolume is the playback gain in percent (0-100).
	OutputVolume int `json:"output_volume"`

	// VoiceActivation enables voice-activated transmission rather than
	// push-to-talk.
	VoiceActivation bool `json:"voice_activation"`
}

// DefaultFrontend returns frontend settings used before any are saved.
func DefaultFrontend() FrontendSettings {
	return FrontendSettings{
		Language:     defaultLanguage,
		Theme:        "dark",
		LinkPreview:  LinkPreviewPolicy{Enabled: true, AllowAll: false},
		ShowEventLog: true,
	}
}

// DefaultAudio returns audio settings used before any are saved.
func DefaultAudio() AudioSettings {
	return AudioSettings{
		InputVolume:  100,
		OutputVolume: 100,
	}
}

// NormalizeLanguage parses tag as BCP 47 and returns its canonical
// form, falling back to "en" for anything unparseable.
func NormalizeLanguage(tag string) string {
	parsed, err := language.Parse(tag)
	if err != nil {
		return defaultLanguage
	}
	return parsed.String()
}

// =============================================================================
// MANAGER
// =============================================================================

// Manager loads settings once at startup and persists each settings
// object as a whole on every change.
type Manager struct {
	mu       sync.RWMutex
	store    *KVStore
	sealer   *Sealer
	frontend FrontendSettings
	audio    AudioSettings
	log      zerolog.Logger
}

// NewManager opens the settings store under dataDir and loads both
// settings objects, falling back to defaults where nothing is stored.
func NewManager(dataDir string, logger zerolog.Logger) (*Manager, error) {
	store, err := OpenKV(dataDir + "/settings.db")
	if err != nil {
		return nil, err
	}
	sealer, err := NewSealer(dataDir)
	if err != nil {
		store.Close()
		return nil, err
	}

	m := &Manager{
		store:    store,
		sealer:   sealer,
		frontend: DefaultFrontend(),
		audio:    DefaultAudio(),
		log:      logger,
	}
	m.load()
	return m, nil
}

func (m *Manager) load() {
	var frontend FrontendSettings
	switch err := m.store.Get(keyFrontend, &frontend); {
	case err == nil:
		frontend.Language = NormalizeLanguage(frontend.Language)
		frontend.APIKeys = m.unsealKeys(frontend.APIKeys)
		m.frontend = frontend
	case !errors.Is(err, ErrKeyNotFound):
		m.log.Warn().Err(err).Msg("Failed to load frontend settings, using defaults")
	}

	var audio AudioSettings
	switch err := m.store.Get(keyAudio, &audio); {
	case err == nil:
		m.audio = audio
	case !errors.Is(err, ErrKeyNotFound):
		m.log.Warn().Err(err).Msg("Failed to load audio settings, using defaults")
	}
}

// Frontend returns a copy of the current frontend settings.
func (m *Manager) Frontend() FrontendSettings {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s := m.frontend
	s.APIKeys = copyKeys(m.frontend.APIKeys)
	return s
}

// Audio returns a copy of the current audio settings.
func (m *Manager) Audio() AudioSettings {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.audio
}

// SetFrontend replaces the frontend settings object and persists it.
// API keys are sealed before the object reaches the store.
func (m *Manager) SetFrontend(s FrontendSettings) error {
	s.Language = NormalizeLanguage(s.Language)

	stored := s
	sealed, err := m.sealKeys(s.APIKeys)
	if err != nil {
		return err
	}
	stored.APIKeys = sealed

	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.store.Put(keyFrontend, stored); err != nil {
		return err
	}
	m.frontend = s
	return nil
}

// SetAudio replaces the audio settings object and persists it.
func (m *Manager) SetAudio(s AudioSettings) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.store.Put(keyAudio, s); err != nil {
		return err
	}
	m.audio = s
	return nil
}

// Close closes the underlying store.
func (m *Manager) Close() error {
	return m.store.Close()
}

func (m *Manager) sealKeys(keys map[string]string) (map[string]string, error) {
	if len(keys) == 0 {
		return nil, nil
	}
	sealed := make(map[string]string, len(keys))
	for name, key := range keys {
		token, err := m.sealer.Seal(key)
		if err != nil {
			return nil, err
		}
		sealed[name] = token
	}
	return sealed, nil
}

func (m *Manager) unsealKeys(keys map[string]string) map[string]string {
	if len(keys) == 0 {
		return nil
	}
	plain := make(map[string]string, len(keys))
	for name, token := range keys {
		key, err := m.sealer.Open(token)
		if err != nil {
			m.log.Warn().Str("provider", name).Err(err).Msg("Failed to unseal API key, dropping")
			continue
		}
		plain[name] = key
	}
	return plain
}

func copyKeys(keys map[string]string) map[string]string {
	if keys == nil {
		return nil
	}
	out := make(map[string]string, len(keys))
	for k, v := range keys {
		out[k] = v
	}
	return out
}
