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

package main

import (
	"fmt"
	"os"

	"sigs.k8s.io/yaml"
)

// fileConfig is the shape of a --config YAML document. Every field is
// a pointer so an absent key leaves the corresponding flag default (or
// an explicitly passed flag) untouched; only fields present in the
// file participate in the overlay.
type fileConfig struct {
	Rules         *string `json:"rules,omitempty"`
	MaxFullMemory *int    `json:"maxFullMemory,omitempty"`
	TailMemory    *bool   `json:"continueWithTailMemory,omitempty"`
	Threads       *int    `json:"threads,omitempty"`
	DumpAt        []int   `json:"dumpAt,omitempty"`
	DebugAddr     *string `json:"debugAddr,omitempty"`
}

// loadFileConfig reads and parses a YAML config file. sigs.k8s.io/yaml
// converts YAML to JSON before unmarshaling, so the json struct tags
// above double as the YAML keys.
func loadFileConfig(path string) (fileConfig, error) {
	var fc fileConfig
	data, err := os.ReadFile(path)
	if err != nil {
		return fc, fmt.Errorf("reading config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return fc, fmt.Errorf("parsing config %s: %w", path, err)
	}
	return fc, nil
}

// overlay applies fc's fields onto flags that were not passed on the
// command line; explicit is the set of flag names flag.Visit reports
// were explicitly passed.
func (fc fileConfig) overlay(a *args, explicit map[string]bool) {
	if fc.Rules != nil && !explicit["rules"] {
		a.rules = *fc.Rules
	}
	if fc.MaxFullMemory != nil && !explicit["max-full-memory"] {
		a.maxFullMemory = *fc.MaxFullMemory
	}
	if fc.TailMemory != nil && !explicit["continue-with-tail-memory"] {
		a.tailMemory = *fc.TailMemory
	}
	if fc.Threads != nil && !explicit["threads"] {
		a.threads = *fc.Threads
	}
	if fc.DebugAddr != nil && !explicit["debug-addr"] {
		a.debugAddr = *fc.DebugAddr
	}
	if len(fc.DumpAt) > 0 && !explicit["dump-at"] {
		a.dumpAt = append(intList(nil), fc.DumpAt...)
	}
}
