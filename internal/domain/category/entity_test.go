package category

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCategory(t *testing.T) {
	c, err := NewCategory("  小说 ", "虚构类作品")
	require.NoError(t, err)
	assert.Equal(t, "小说", c.Name)

	_, err = NewCategory("   ", "")
	assert.ErrorIs(t, err, ErrInvalidName)

	_, err = NewCategory(strings.Repeat("长", 101), "")
	assert.ErrorIs(t, err, ErrInvalidName)
}
