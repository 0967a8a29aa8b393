// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package settings manages persisted frontend and audio settings.
//
// Settings live in a single SQLite-backed key-value store with one key
// per settings object ("frontendSettings", "audioSettings"). Values
// are replaced whole on every save — there is no field-level
// persistence. The manager loads both objects at startup and persists
// on every change.
//
// API keys inside the frontend settings are sealed at rest with a key
// derived from a machine-local secret, so a copied database file does
// not leak them in plain text.
package settings
