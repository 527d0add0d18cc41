// Package sms delivers one-time codes. LogSender only logs them and is meant
// for local runs until an SMS gateway is configured.
package sms

import (
	"context"
	"crypto/rand"
	"math/big"

	"moving/internal/core/domain/model/kernel"
	"moving/internal/pkg/errs"
	"moving/internal/pkg/logger"
)

const DefaultCodeLength = 6

type LogSender struct {
	log logger.ILogger
}

func NewLogSender(log logger.ILogger) *LogSender {
	return &LogSender{log: log.With(logger.String("component", "sms"))}
}

func (s *LogSender) Send(_ context.Context, phone kernel.Phone, code string) error {
	s.log.Info("one-time code issued",
		logger.String("phone", phone.String()),
		logger.String("code", code),
	)
	return nil
}

// DigitGenerator returns uniformly random numeric codes.
type DigitGenerator struct {
	length int
}

func NewDigitGenerator(length int) (*DigitGenerator, error) {
	if length < 4 || length > 10 {
		return nil, errs.NewValueIsOutOfRangeError("code length", length, 4, 10)
	}
	return &DigitGenerator{length: length}, nil
}

func (g *DigitGenerator) Generate() (string, error) {
	ten := big.NewInt(10)
	out := make([]byte, g.length)
	for i := range out {
		d, err := rand.Int(rand.Reader, ten)
		if err != nil {
			return "", err
		}
		out[i] = byte('0' + d.Int64())
	}
	return string(out), nil
}
