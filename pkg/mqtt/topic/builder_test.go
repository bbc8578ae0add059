package topic

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuilder(t *testing.T) {
	tests := []struct {
		name string
		root string
		vin  string
		want string
	}{
		{"plain", "warranty/v1", "1HGCM82633A004352", "warranty/v1/risk/high/1HGCM82633A004352"},
		{"trailing slash root", "warranty/v1/", "VIN1", "warranty/v1/risk/high/VIN1"},
		{"slash in vin", "warranty/v1", "A/B", "warranty/v1/risk/high/A_B"},
		{"wildcards in vin", "w", "A+#", "w/risk/high/A__"},
		{"multi-level wildcard only", "w", "#", "w/risk/high/_"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NewBuilder(tt.root).HighRisk(tt.vin))
		})
	}
}
