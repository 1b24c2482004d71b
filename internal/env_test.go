package internal

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetAsString(t *testing.T) {
	t.Setenv("PIXELPRESS_TEST_STRING", "hello")

	value, err := GetAsString("PIXELPRESS_TEST_STRING", true, "")
	require.NoError(t, err)
	assert.Equal(t, "hello", value)

	value, err = GetAsString("PIXELPRESS_TEST_UNSET", false, "fallback")
	require.NoError(t, err)
	assert.Equal(t, "fallback", value)

	_, err = GetAsString("PIXELPRESS_TEST_UNSET", true, "")
	assert.Error(t, err)
}

func TestGetAsInt(t *testing.T) {
	t.Setenv("PIXELPRESS_TEST_INT", "42")

	value, err := GetAsInt("PIXELPRESS_TEST_INT", true, 0)
	require.NoError(t, err)
	assert.Equal(t, 42, value)

	value, err = GetAsInt("PIXELPRESS_TEST_UNSET", false, 7)
	require.NoError(t, err)
	assert.Equal(t, 7, value)

	t.Setenv("PIXELPRESS_TEST_INT", "nope")
	_, err = GetAsInt("PIXELPRESS_TEST_INT", true, 0)
	assert.Error(t, err)
}

func TestGetAsInt32(t *testing.T) {
	t.Setenv("PIXELPRESS_TEST_INT32", "1024")

	value, err := GetAsInt32("PIXELPRESS_TEST_INT32", true, 0)
	require.NoError(t, err)
	assert.Equal(t, int32(1024), value)

	t.Setenv("PIXELPRESS_TEST_INT32", "4294967296")
	_, err = GetAsInt32("PIXELPRESS_TEST_INT32", true, 0)
	assert.Error(t, err, "overflowing value must be rejected")
}

func TestGetAsBool(t *testing.T) {
	t.Setenv("PIXELPRESS_TEST_BOOL", "true")

	value, err := GetAsBool("PIXELPRESS_TEST_BOOL", true, false)
	require.NoError(t, err)
	assert.True(t, value)

	value, err = GetAsBool("PIXELPRESS_TEST_UNSET", false, true)
	require.NoError(t, err)
	assert.True(t, value)

	t.Setenv("PIXELPRESS_TEST_BOOL", "maybe")
	_, err = GetAsBool("PIXELPRESS_TEST_BOOL", true, false)
	assert.Error(t, err)
}
