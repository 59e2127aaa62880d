package common

import (
	"errors"
	"fmt"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatsErrorIs(t *testing.T) {
	_, parseErr := strconv.ParseFloat("abc", 64)
	err := fmt.Errorf("record 3: %w", MalformedInput("add record", "A", "x", parseErr))

	assert.ErrorIs(t, err, ErrMalformedInput)
	assert.ErrorIs(t, err, strconv.ErrSyntax)
	assert.NotErrorIs(t, err, ErrInsufficientData)
	assert.Equal(t, `record 3: malformed input: add record: key "A": field "x": `+
		`strconv.ParseFloat: parsing "abc": invalid syntax`, err.Error())

	var statsErr *StatsError
	assert.True(t, errors.As(err, &statsErr))
	assert.Equal(t, "x", statsErr.Field)
}

func TestInsufficientData(t *testing.T) {
	err := InsufficientData("7", "y", 1)
	assert.ErrorIs(t, err, ErrInsufficientData)
	assert.Equal(t, `insufficient data: finalize: key "7": field "y": 1 value(s), need at least 2`, err.Error())
}

func TestConfigurationError(t *testing.T) {
	err := ConfigurationError("confidence level %v outside (0,1)", 1.5)
	assert.ErrorIs(t, err, ErrConfiguration)
	assert.Equal(t, "configuration error: confidence level 1.5 outside (0,1)", err.Error())
}
