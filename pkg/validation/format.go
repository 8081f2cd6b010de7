package validation

import (
	"fmt"

	"github.com/fincast/assumptions/pkg/constants"
)

// ValidateOutputFormat checks if the output format is one of the supported formats.
func ValidateOutputFormat(format string) error {
	if format != constants.OutputFormatJSON && format != constants.OutputFormatYAML {
		return fmt.Errorf("expected output format of %s or %s, got %s",
			constants.OutputFormatJSON, constants.OutputFormatYAML, format)
	}
	return nil
}
