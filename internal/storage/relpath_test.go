package storage

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRelativeToSameDirectory(t *testing.T) {
	require.Equal(t, "a.png", relativeTo("/out", "/out/a.png"))
}

func TestRelativeToOneLevelUp(t *testing.T) {
	require.Equal(t, "../source", relativeTo("/out/subdir", "/out/source"))
}

func TestRelativeToAcrossBranches(t *testing.T) {
	require.Equal(t, "../../2/0/1.png", relativeTo("/out/3/1", "/out/2/0/1.png"))
	require.Equal(t, "../0/1.png", relativeTo("/out/2/1", "/out/2/0/1.png"))
}

func TestRelativeToRelativeInputs(t *testing.T) {
	require.Equal(t, "../0/1.png", relativeTo("2/1", "2/0/1.png"))
	require.Equal(t, "1.png", relativeTo("2/0", "2/0/1.png"))
}
