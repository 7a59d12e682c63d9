package docsite

import "embed"

// EmbeddedAssets contains static assets shipped with the engine:
// docsite.css (default theme) and search.js (client-side search UI).
//
//go:embed embedded/*
var EmbeddedAssets embed.FS
