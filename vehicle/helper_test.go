package vehicle

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/willrr/ha-toyota-willrr/api"
)

var fleet = []api.Vehicle{
	{VIN: "JT123456789012345", Alias: "first"},
	{VIN: "JT999999999999999", Alias: "second"},
}

func TestEnsure(t *testing.T) {
	// exact match, case insensitive
	veh, err := Ensure("jt999999999999999", fleet)
	require.NoError(t, err)
	assert.Equal(t, "second", veh.Alias)

	// unknown vin
	_, err = Ensure("JT000000000000000", fleet)
	assert.Error(t, err)

	// empty vin resolves the single vehicle
	veh, err = Ensure("", fleet[:1])
	require.NoError(t, err)
	assert.Equal(t, "first", veh.Alias)

	// empty vin is ambiguous with more than one vehicle
	_, err = Ensure("", fleet)
	assert.Error(t, err)
}

func TestFilter(t *testing.T) {
	// empty allowlist keeps all
	assert.Len(t, Filter(fleet, nil), 2)

	res := Filter(fleet, []string{" jt123456789012345 "})
	require.Len(t, res, 1)
	assert.Equal(t, "first", res[0].Alias)

	// unknown vins filter everything
	assert.Empty(t, Filter(fleet, []string{"JT000000000000000"}))
}
