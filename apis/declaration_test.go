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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeclaration_Overlay(t *testing.T) {
	base := Declaration{
		Type:      "urn:problem-type:base",
		Title:     "Base",
		Status:    400,
		Logging:   Logging{Category: "base", Level: LevelWarn},
		Accessors: map[string]string{"Ref": "instance", "Code": "extension"},
	}
	over := Declaration{
		Title:     "Over",
		Logging:   Logging{Level: LevelOff},
		Accessors: map[string]string{"Code": "extension,code"},
	}

	got := base.Overlay(over)
	assert.Equal(t, "urn:problem-type:base", got.Type)
	assert.Equal(t, "Over", got.Title)
	assert.Equal(t, 400, got.Status)
	assert.Equal(t, Logging{Category: "base", Level: LevelOff}, got.Logging)
	assert.Equal(t, map[string]string{"Ref": "instance", "Code": "extension,code"}, got.Accessors)
	// base is untouched
	assert.Equal(t, "extension", base.Accessors["Code"])
}

func TestDeclaration_IsZero(t *testing.T) {
	assert.True(t, Declaration{}.IsZero())
	assert.False(t, Declaration{Status: 500}.IsZero())
	assert.False(t, Declaration{Logging: Logging{Level: LevelDebug}}.IsZero())
}

func TestLevel_Text(t *testing.T) {
	for _, name := range []string{"auto", "error", "warn", "info", "debug", "off"} {
		l, err := ParseLevel(name)
		require.NoError(t, err)
		assert.Equal(t, name, l.String())

		text, err := l.MarshalText()
		require.NoError(t, err)
		assert.Equal(t, name, string(text))
	}

	var l Level
	require.NoError(t, l.UnmarshalText([]byte(" WARNING ")))
	assert.Equal(t, LevelWarn, l)

	_, err := ParseLevel("verbose")
	assert.ErrorIs(t, err, ErrInvalidLevel)

	_, err = Level(42).MarshalText()
	assert.ErrorIs(t, err, ErrInvalidLevel)
}
