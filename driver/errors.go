// Copyright (C) 2024 Grundy Lab
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program.  If not, see <http://www.gnu.org/licenses/>.

package driver

import "errors"

type errorCode int

const (
	ecInvalidRules errorCode = iota
	ecIoError
	ecMaxNimberGrewInTail
	ecInternalInvariantViolation
	ecLastCode
)

var errs = [ecLastCode]error{
	ecInvalidRules:               errors.New("invalid octal rules string"),
	ecIoError:                    errors.New("checkpoint i/o failure"),
	ecMaxNimberGrewInTail:        errors.New("largest nimber grew past the in-memory prefix during tail-mode computation"),
	ecInternalInvariantViolation: errors.New("rare/common mex disagreed with the naive reference mex"),
}

// The four error kinds a Run can fail with. Wrap these with
// fmt.Errorf("...: %w", ErrX) to attach a path, index, or value.
var (
	ErrInvalidRules               = errs[ecInvalidRules]
	ErrIoError                    = errs[ecIoError]
	ErrMaxNimberGrewInTail        = errs[ecMaxNimberGrewInTail]
	ErrInternalInvariantViolation = errs[ecInternalInvariantViolation]
)
