// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package settings

import (
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func newTestManager(t *testing.T, dir string) *Manager {
	t.Helper()
	m, err := NewManager(dir, zerolog.Nop())
	if err != nil {
		t.Fatalf("NewManager() error = %v", err)
	}
	return m
}

func TestManagerDefaults(t *testing.T) {
	m := newTestManager(t, t.TempDir())
	defer m.Close()

	f := m.Frontend()
	if f.Language != "en" {
		t.Errorf("default Language = %q, want en", f.Language)
	}
	if !f.LinkPreview.Enabled {
		t.Error("default LinkPreview.Enabled = false, want true")
	}

	a := m.Audio()
	if a.InputVolume != 100 || a.OutputVolume != 100 {
		t.Errorf("default volumes = %d/%d, want 100/100", a.InputVolume, a.OutputVolume)
	}
}

func TestManagerRoundtrip(t *testing.T) {
	dir := t.TempDir()

	m := newTestManager(t, dir)
	f := m.Frontend()
	f.Theme = "light"
	f.Language = "de-DE"
	f.LinkPreview.AllowedHosts = []string{"example.com"}
	if err := m.SetFrontend(f); err != nil {
		t.Fatalf("SetFrontend() error = %v", err)
	}
	a := m.Audio()
	a.InputVolume = 42
	a.VoiceActivation = true
	if err := m.SetAudio(a); err != nil {
		t.Fatalf("SetAudio() error = %v", err)
	}
	m.Close()

	// A fresh manager over the same directory must see the saved state.
	m2 := newTestManager(t, dir)
	defer m2.Close()

	got := m2.Frontend()
	if got.Theme != "light" {
		t.Errorf("Theme = %q, want light", got.Theme)
	}
	if got.Language != "de-DE" {
		t.Errorf("Language = %q, want de-DE", got.Language)
	}
	if len(got.LinkPreview.AllowedHosts) != 1 || got.LinkPreview.AllowedHosts[0] != "example.com" {
		t.Errorf("AllowedHosts = %v, want [example.com]", got.LinkPreview.AllowedHosts)
	}
	gotAudio := m2.Audio()
	if gotAudio.InputVolume != 42 || !gotAudio.VoiceActivation {
		t.Errorf("audio = %+v, want InputVolume 42 and VoiceActivation", gotAudio)
	}
}

func TestSetFrontendReplacesWholeObject(t *testing.T) {
	dir := t.TempDir()
	m := newTestManager(t, dir)

	f := m.Frontend()
	f.LinkPreview.AllowedHosts = []string{"a.com", "b.com"}
	if err := m.SetFrontend(f); err != nil {
		t.Fatalf("SetFrontend() error = %v", err)
	}

	// Writing a settings object without the list must erase it, not
	// merge with the previous value.
	f2 := DefaultFrontend()
	if err := m.SetFrontend(f2); err != nil {
		t.Fatalf("SetFrontend() error = %v", err)
	}
	m.Close()

	m2 := newTestManager(t, dir)
	defer m2.Close()
	if hosts := m2.Frontend().LinkPreview.AllowedHosts; len(hosts) != 0 {
		t.Errorf("AllowedHosts = %v, want empty after whole-object replace", hosts)
	}
}

func TestNormalizeLanguage(t *testing.T) {
	tests := []struct {
		tag  string
		want string
	}{
		{"en", "en"},
		{"de-DE", "de-DE"},
		{"EN-us", "en-US"},
		{"not a tag!!", "en"},
		{"", "en"},
	}
	for _, tt := range tests {
		if got := NormalizeLanguage(tt.tag); got != tt.want {
			t.Errorf("NormalizeLanguage(%q) = %q, want %q", tt.tag, got, tt.want)
		}
	}
}

func TestSealerRoundtrip(t *testing.T) {
	s, err := NewSealer(t.TempDir())
	if err != nil {
		t.Fatalf("NewSealer() error = %v", err)
	}

	token, err := s.Seal("sk-secret-value")
	if err != nil {
		t.Fatalf("Seal() error = %v", err)
	}
	if strings.Contains(token, "sk-secret-value") {
		t.Error("sealed token contains plaintext")
	}

	got, err := s.Open(token)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	if got != "sk-secret-value" {
		t.Errorf("Open() = %q, want original plaintext", got)
	}

	if _, err := s.Open("not-base64!!"); err == nil {
		t.Error("Open() on garbage succeeded, want error")
	}
}

func TestAPIKeysSealedAtRest(t *testing.T) {
	dir := t.TempDir()
	m := newTestManager(t, dir)

	f := m.Frontend()
	f.APIKeys = map[string]string{"openai": "sk-plaintext-key"}
	if err := m.SetFrontend(f); err != nil {
		t.Fatalf("SetFrontend() error = %v", err)
	}

	// The value in the store must never contain the raw key.
	var stored FrontendSettings
	if err := m.store.Get(keyFrontend, &stored); err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if stored.APIKeys["openai"] == "sk-plaintext-key" {
		t.Error("stored API key is plaintext, want sealed")
	}
	m.Close()

	// Reload through a fresh manager and the key comes back decrypted.
	m2 := newTestManager(t, dir)
	defer m2.Close()
	if got := m2.Frontend().APIKeys["openai"]; got != "sk-plaintext-key" {
		t.Errorf("reloaded API key = %q, want sk-plaintext-key", got)
	}
}

func TestKVStoreMissingKey(t *testing.T) {
	kv, err := OpenKV(t.TempDir() + "/kv.db")
	if err != nil {
		t.Fatalf("OpenKV() error = %v", err)
	}
	defer kv.Close()

	var v struct{}
	if err := kv.Get("nope", &v); err != ErrKeyNotFound {
		t.Errorf("Get(missing) error = %v, want ErrKeyNotFound", err)
	}
}
