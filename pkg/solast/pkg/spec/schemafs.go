// Package spec embeds the JSON Schema that describes the tree shape
// pkg/solast/pkg/node.ToMap produces, used by cmd/solast's validate command.
package spec

import "embed"

// SchemaFS contains the embedded node-tree JSON schema.
//
//go:embed solast-node-schema.json
var SchemaFS embed.FS

// SchemaFile is the name of the embedded schema document within SchemaFS.
const SchemaFile = "solast-node-schema.json"
