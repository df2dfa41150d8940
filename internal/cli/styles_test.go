package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatHelpers(t *testing.T) {
	tests := []struct {
		name    string
		format  func(string) string
		icon    string
		message string
	}{
		{name: "success", format: FormatSuccess, icon: SuccessIcon, message: "imported 3 transactions"},
		{name: "error", format: FormatError, icon: ErrorIcon, message: "failed to open database"},
		{name: "warning", format: FormatWarning, icon: WarningIcon, message: "no transactions found"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.format(tt.message)
			assert.Contains(t, got, tt.icon)
			assert.Contains(t, got, tt.message)
		})
	}
}
