// Copyright (c) 2025 Taskdeck
// Licensed under the MIT License. See LICENSE file in the project root for details.

package logging

import (
	"fmt"

	apperr "taskdeck/cli/internal/errors"
)

// PresentError formats an error for user display with masking.
// Validation failures are rendered field by field.
func PresentError(context string, err error) string {
	if err == nil {
		return ""
	}
	msg := apperr.Describe(err)
	if fields := apperr.FieldsOf(err); len(fields) > 0 {
		msg = apperr.FlattenFields(fields)
	}
	if context == "" {
		return Mask(msg)
	}
	return fmt.Sprintf("%s: %s", context, Mask(msg))
}
