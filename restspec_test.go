// Copyright (c) 2025 Restspec Authors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package restspec

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMode(t *testing.T) {
	t.Run("defaults to debug", func(t *testing.T) {
		assert.Equal(t, ModeDebug, CurrentMode())
	})

	t.Run("round trips through SetMode", func(t *testing.T) {
		SetMode(ModeRelease)
		defer SetMode(ModeDebug)

		assert.Equal(t, ModeRelease, CurrentMode())
	})
}

func TestLogger(t *testing.T) {
	t.Run("returns a usable logger", func(t *testing.T) {
		log := Logger("test")
		assert.NotNil(t, log)
	})
}
