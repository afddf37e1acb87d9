package attribute

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuiltinTypesAreUniqueAndNamed(t *testing.T) {
	seen := map[int]string{}
	for _, m := range Builtin() {
		for _, c := range m.Candidates() {
			assert.NotEmpty(t, c.Name)
			assert.NotEmpty(t, c.ImplementationClass)
			assert.Nil(t, c.Order, "built-in modules leave the user's order alone")
			assert.Nil(t, c.Active, "built-in modules leave the user's active flag alone")
			if prev, dup := seen[c.Type]; dup {
				t.Fatalf("type %d used by %q and %q", c.Type, prev, c.Name)
			}
			seen[c.Type] = c.Name
		}
	}
}

func TestSelect(t *testing.T) {
	all, err := Select(nil)
	require.NoError(t, err)
	assert.Len(t, all, len(Builtin()))

	mods, err := Select([]string{" Sound ", "xmit", "sound"})
	require.NoError(t, err)
	require.Len(t, mods, 2)
	assert.Equal(t, "sound", mods[0].Name())
	assert.Equal(t, "xmit", mods[1].Name())

	_, err = Select([]string{"bluetooth"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "xmit, sound")
}

func TestXmitParamsNameServices(t *testing.T) {
	params := map[int]string{}
	for _, c := range (Xmit{}).Candidates() {
		params[c.Type] = c.Param
	}
	assert.Equal(t, map[int]string{
		TypeWiFi:       "wifi",
		TypeAirplane:   "airplane",
		TypeMobileData: "mobiledata",
	}, params)
}
