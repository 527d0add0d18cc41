package sms

import (
	"context"
	"testing"

	"moving/internal/core/domain/model/kernel"
	"moving/internal/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDigitGenerator_Generate(t *testing.T) {
	t.Run("should produce numeric codes of the configured length", func(t *testing.T) {
		g, err := NewDigitGenerator(6)
		require.NoError(t, err)

		for i := 0; i < 20; i++ {
			code, err := g.Generate()
			require.NoError(t, err)
			assert.Len(t, code, 6)
			assert.Regexp(t, `^[0-9]{6}$`, code)
		}
	})

	t.Run("should reject unreasonable lengths", func(t *testing.T) {
		_, err := NewDigitGenerator(2)
		assert.Error(t, err)
	})
}

func TestLogSender_Send(t *testing.T) {
	t.Run("should accept any code", func(t *testing.T) {
		phone, err := kernel.NewPhone("09121234567")
		require.NoError(t, err)

		assert.NoError(t, NewLogSender(logger.NewNop()).Send(context.Background(), phone, "123456"))
	})
}
