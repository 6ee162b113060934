package errors

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInitSentryRequiresDSN(t *testing.T) {
	err := InitSentry(DefaultSentryConfig("", "development"))
	assert.Error(t, err)
}

func TestCaptureErrorWithoutClientIsNoop(t *testing.T) {
	assert.Nil(t, CaptureErrorWithContext(context.Background(), errors.New("tier failed"), map[string]string{"strategy": "province_sql"}))
	assert.Nil(t, CaptureErrorWithContext(context.Background(), nil, nil))
}

func TestDefaultSentryConfigSampleRate(t *testing.T) {
	assert.Equal(t, 0.5, DefaultSentryConfig("dsn", "production").SampleRate)
	assert.Equal(t, 1.0, DefaultSentryConfig("dsn", "development").SampleRate)
}
