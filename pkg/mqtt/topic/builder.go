package topic

import (
	"fmt"
	"strings"
)

// Topic segments published by riskboard.
// Consumers subscribe to these, so changing them breaks downstream tooling.
const (
	// SuffixHighRisk carries vehicles scored into the High bucket.
	// Structure: {root}/risk/high/{vin}
	SuffixHighRisk = "risk/high"
)

// Builder constructs MQTT topic strings under a common root.
type Builder struct {
	// root is the base namespace for all topics (e.g., "warranty/v1").
	root string
}

// NewBuilder creates a new Builder with the specified root namespace.
func NewBuilder(root string) *Builder {
	return &Builder{root: strings.TrimSuffix(root, "/")}
}

// HighRisk returns the topic for a high-risk alert about one vehicle.
func (b *Builder) HighRisk(vin string) string {
	return b.build(SuffixHighRisk, sanitize(vin))
}

// build is a private helper to construct the final topic string.
// Pattern: {root}/{suffix}/{identifier}
func (b *Builder) build(suffix, id string) string {
	return fmt.Sprintf("%s/%s/%s", b.root, suffix, id)
}

// sanitize keeps identifiers from introducing extra levels or wildcards.
func sanitize(id string) string {
	return strings.NewReplacer("/", "_", Wildcard, "_", MultiWildcard, "_").Replace(id)
}
