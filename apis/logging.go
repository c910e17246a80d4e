/*
   Copyright 2025 The DIRPX Authors

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

package apis

import (
	"errors"
	"strings"
)

// Level is the declared logging level of a problem.
//
// The zero value is LevelAuto: the effective level is derived from the
// resolved status at build time.
type Level int

const (
	LevelAuto Level = iota
	LevelError
	LevelWarn
	LevelInfo
	LevelDebug
	LevelOff
)

// ErrInvalidLevel is returned when parsing an unknown level name.
var ErrInvalidLevel = errors.New("dproblem: invalid logging level")

var levelNames = [...]string{
	LevelAuto:  "auto",
	LevelError: "error",
	LevelWarn:  "warn",
	LevelInfo:  "info",
	LevelDebug: "debug",
	LevelOff:   "off",
}

// ParseLevel parses a case-insensitive level name. An empty string is AUTO.
func ParseLevel(s string) (Level, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return LevelAuto, nil
	}
	for l, name := range levelNames {
		if name == s {
			return Level(l), nil
		}
	}
	if s == "warning" {
		return LevelWarn, nil
	}
	return LevelAuto, ErrInvalidLevel
}

func (l Level) String() string {
	if l < 0 || int(l) >= len(levelNames) {
		return "unknown"
	}
	return levelNames[l]
}

func (l Level) MarshalText() ([]byte, error) {
	if l < 0 || int(l) >= len(levelNames) {
		return nil, ErrInvalidLevel
	}
	return []byte(levelNames[l]), nil
}

func (l *Level) UnmarshalText(text []byte) error {
	parsed, err := ParseLevel(string(text))
	if err != nil {
		return err
	}
	*l = parsed
	return nil
}

// Logging is a logging policy: the logger category (zap logger name) and
// the level. An empty Category means "not declared"; the resolver then
// falls back to the error type's qualified name.
type Logging struct {
	Category string `json:"category,omitempty" yaml:"category,omitempty"`
	Level    Level  `json:"level,omitempty" yaml:"level,omitempty"`
}
