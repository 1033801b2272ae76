package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatRupiah(t *testing.T) {
	assert.Equal(t, "Rp 0", FormatRupiah(0))
	assert.Equal(t, "Rp 4.000", FormatRupiah(4000))
	assert.Equal(t, "Rp 30.000", FormatRupiah(30000))
	assert.Equal(t, "Rp 60.000", FormatRupiah(60000))
	assert.Equal(t, "Rp 7.500.000", FormatRupiah(7500000))
}
