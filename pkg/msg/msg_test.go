package msg

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetMessageReplacesPlaceholders(t *testing.T) {
	got := GetMessage("notification.body.generic", "Lahore", "Haze", 31.5, 40, 5)
	assert.Equal(t, "🌦 Lahore: Haze, Temp 31.5°C, Humidity 40%, Wind 5 m/s", got)
}

func TestGetMessageKeepsPlaceholdersInArguments(t *testing.T) {
	got := GetMessage("notification.body.generic", "{2}", "Fog {4}", 12, 95, 1.5)
	assert.Equal(t, "🌦 {2}: Fog {4}, Temp 12°C, Humidity 95%, Wind 1.5 m/s", got)
}

func TestGetMessageUnknownKey(t *testing.T) {
	assert.Equal(t, "Message not found: nope.nothing", GetMessage("nope.nothing"))
}

func TestGetMessageMarshalsNonPrimitives(t *testing.T) {
	require.NoError(t, Load([]byte("test:\n  payload: \"value={0}\"\n")))

	got := GetMessage("test.payload", map[string]int{"a": 1})
	assert.Equal(t, `value={"a":1}`, got)
}

func TestLoadOverridesExistingKeys(t *testing.T) {
	require.NoError(t, Load([]byte("test:\n  override: \"first\"\n")))
	require.NoError(t, Load([]byte("test:\n  override: \"second\"\n")))

	assert.Equal(t, "second", GetMessage("test.override"))
	assert.Equal(t, "Weather Update for Multan", GetMessage("notification.heading", "Multan"))
}
