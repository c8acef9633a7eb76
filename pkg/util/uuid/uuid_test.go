package uuid

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestOfflinePlayerUUID(t *testing.T) {
	id := OfflinePlayerUUID("bob")
	require.Equal(t, id, OfflinePlayerUUID("bob"))
	require.NotEqual(t, id, OfflinePlayerUUID("Bob"))
	require.Equal(t, byte(3), id[6]>>4)
}

func TestUUID_JSON(t *testing.T) {
	id := OfflinePlayerUUID("bob")
	b, err := id.MarshalJSON()
	require.NoError(t, err)
	require.Equal(t, `"`+id.String()+`"`, string(b))

	var id2 UUID
	require.NoError(t, id2.UnmarshalJSON(b))
	require.Equal(t, id, id2)
}

func TestUUID_Halves(t *testing.T) {
	id, err := Parse("069a79f444e94726a5befca90e38aaf5")
	require.NoError(t, err)
	require.Equal(t, "069a79f4-44e9-4726-a5be-fca90e38aaf5", id.String())
	require.Equal(t, "069a79f444e94726a5befca90e38aaf5", id.Undashed())

	msb, lsb := id.Halves()
	require.Equal(t, uint64(0x069a79f444e94726), msb)
	require.Equal(t, uint64(0xa5befca90e38aaf5), lsb)
	require.Equal(t, id, FromHalves(msb, lsb))
}
