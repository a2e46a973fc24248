// Package dataset loads the case table bundled into the binary at build time.
package dataset

import "embed"

// FileName is the embedded dataset file.
const FileName = "cases.json"

// dataFS embeds the dataset at build time.
//
//go:embed cases.json
var dataFS embed.FS
