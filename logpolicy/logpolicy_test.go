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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"dirpx.dev/dproblem/apis"
)

func TestResolve_Precedence(t *testing.T) {
	tests := []struct {
		name    string
		typ, ns apis.Logging
		want    apis.Logging
	}{
		{"defaults", apis.Logging{}, apis.Logging{}, apis.Logging{Category: "self", Level: apis.LevelAuto}},
		{"namespace", apis.Logging{}, apis.Logging{Category: "bank", Level: apis.LevelWarn}, apis.Logging{Category: "bank", Level: apis.LevelWarn}},
		{"type wins", apis.Logging{Category: "t", Level: apis.LevelDebug}, apis.Logging{Category: "bank", Level: apis.LevelWarn}, apis.Logging{Category: "t", Level: apis.LevelDebug}},
		{"field by field", apis.Logging{Level: apis.LevelOff}, apis.Logging{Category: "bank"}, apis.Logging{Category: "bank", Level: apis.LevelOff}},
		{"type auto falls through", apis.Logging{Category: "t"}, apis.Logging{Level: apis.LevelError}, apis.Logging{Category: "t", Level: apis.LevelError}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Resolve(tt.typ, tt.ns, "self"))
		})
	}
}

func TestEffective_Auto(t *testing.T) {
	for status := 100; status < 600; status++ {
		want := apis.LevelInfo
		if status >= 500 {
			want = apis.LevelError
		}
		require.Equal(t, want, Effective(apis.LevelAuto, status, apis.LevelAuto), "status %d", status)
		if status < 500 {
			require.Equal(t, apis.LevelDebug, Effective(apis.LevelAuto, status, apis.LevelDebug), "status %d", status)
		}
	}
	assert.Equal(t, apis.LevelWarn, Effective(apis.LevelWarn, 500, apis.LevelDebug))
}

func TestLog(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	logger := zap.New(core)

	Log(logger, apis.Logging{Category: "bank"}, 503, apis.LevelAuto, "server")
	Log(logger, apis.Logging{Category: "bank"}, 404, apis.LevelDebug, "client", zap.Int("status", 404))
	Log(logger, apis.Logging{Category: "bank", Level: apis.LevelOff}, 500, apis.LevelAuto, "off")
	Log(nil, apis.Logging{}, 500, apis.LevelAuto, "nil logger")

	entries := logs.AllUntimed()
	require.Len(t, entries, 2)
	assert.Equal(t, zapcore.ErrorLevel, entries[0].Level)
	assert.Equal(t, "bank", entries[0].LoggerName)
	assert.Equal(t, "server", entries[0].Message)
	assert.Equal(t, zapcore.DebugLevel, entries[1].Level)
	assert.Equal(t, int64(404), entries[1].ContextMap()["status"])
}
