package contracts

import "embed"

//go:embed schemas
var schemasFS embed.FS
