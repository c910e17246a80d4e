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

package logpolicy

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"dirpx.dev/dproblem/apis"
)

// DefaultClientLevel is the level AUTO resolves to for statuses below 500
// unless configured otherwise.
const DefaultClientLevel = apis.LevelInfo

// Resolve merges a type-level and a namespace-level policy field by field.
//
// A non-empty category and a non-AUTO level at the type level win; otherwise
// the namespace-level field is used; otherwise the process default applies:
// category self (the type's own qualified name) and level AUTO.
func Resolve(typeLevel, namespaceLevel apis.Logging, self string) apis.Logging {
	out := apis.Logging{Category: self, Level: apis.LevelAuto}
	switch {
	case typeLevel.Category != "":
		out.Category = typeLevel.Category
	case namespaceLevel.Category != "":
		out.Category = namespaceLevel.Category
	}
	switch {
	case typeLevel.Level != apis.LevelAuto:
		out.Level = typeLevel.Level
	case namespaceLevel.Level != apis.LevelAuto:
		out.Level = namespaceLevel.Level
	}
	return out
}

// Effective resolves AUTO against the final status: ERROR for server errors
// (status >= 500), clientDefault otherwise. An AUTO clientDefault means
// DefaultClientLevel. Non-AUTO levels are returned unchanged.
func Effective(level apis.Level, status int, clientDefault apis.Level) apis.Level {
	if level != apis.LevelAuto {
		return level
	}
	if status >= 500 {
		return apis.LevelError
	}
	if clientDefault == apis.LevelAuto {
		return DefaultClientLevel
	}
	return clientDefault
}

// ZapLevel maps a resolved level to zap. ok is false for OFF and AUTO.
func ZapLevel(level apis.Level) (zapcore.Level, bool) {
	switch level {
	case apis.LevelError:
		return zapcore.ErrorLevel, true
	case apis.LevelWarn:
		return zapcore.WarnLevel, true
	case apis.LevelInfo:
		return zapcore.InfoLevel, true
	case apis.LevelDebug:
		return zapcore.DebugLevel, true
	}
	return zapcore.InvalidLevel, false
}

// Log writes msg to logger.Named(policy.Category) at the effective level.
// OFF writes nothing. A nil logger writes nothing.
func Log(logger *zap.Logger, policy apis.Logging, status int, clientDefault apis.Level, msg string, fields ...zap.Field) {
	if logger == nil {
		return
	}
	lvl, ok := ZapLevel(Effective(policy.Level, status, clientDefault))
	if !ok {
		return
	}
	l := logger
	if policy.Category != "" {
		l = logger.Named(policy.Category)
	}
	if ce := l.Check(lvl, msg); ce != nil {
		ce.Write(fields...)
	}
}
