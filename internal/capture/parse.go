// Copyright (c) 2026 IR Cloner Team
// IR Cloner - infrared remote code capture tool
// This source code is licensed under the MIT license found in the LICENSE file.

package capture

import (
	"errors"
	"fmt"
	"strings"

	"github.com/toeirei/ircloner/internal/model"
)

// Delimiter separates fields in a receiver line.
const Delimiter = ";"

// MinFields is the field count a line must exceed to be accepted: a bare
// protocol;address;command line is rejected.
const MinFields = 3

// ErrMalformedLine is returned by ParseLine for lines with too few fields.
var ErrMalformedLine = errors.New("malformed line")

// ParseLine splits a receiver line of the form protocol;address;command;...
// Only the first three fields are used; they are kept verbatim.
func ParseLine(line string) (model.Code, error) {
	parts := strings.Split(line, Delimiter)
	if len(parts) <= MinFields {
		return model.Code{}, fmt.Errorf("%w: %q has %d fields, need more than %d separated by '%s'",
			ErrMalformedLine, line, len(parts), MinFields, Delimiter)
	}
	return model.Code{
		Protocol: parts[0],
		Address:  parts[1],
		Command:  parts[2],
		Raw:      line,
	}, nil
}
