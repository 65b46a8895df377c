// Copyright (C) 2020-2026, Ontograph Authors. All rights reserved.
// See the file LICENSE for licensing terms.

package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultIsValid(t *testing.T) {
	assert.NoError(t, Default().Validate())
}

func TestValidateRejectsNonPositiveMaxConcurrentTransactions(t *testing.T) {
	c := Default()
	c.MaxConcurrentTransactions = 0
	assert.ErrorIs(t, c.Validate(), ErrInvalidMaxConcurrentTransactions)
}

func TestValidateRejectsZeroGCInterval(t *testing.T) {
	c := Default()
	c.GCInterval = 0
	assert.ErrorIs(t, c.Validate(), ErrInvalidGCInterval)
}

func TestValidateRejectsZeroResponseChannelCapacity(t *testing.T) {
	c := Default()
	c.ResponseChannelCapacity = 0
	assert.ErrorIs(t, c.Validate(), ErrInvalidResponseChannelCapacity)
}
