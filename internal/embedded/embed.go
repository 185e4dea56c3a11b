package embedded

import (
	"embed"
)

// FS embeds the shipped region definitions at build time. Each file
// under regions/ is one named boundary a filter run can select.
//
//go:embed regions/*
var FS embed.FS
