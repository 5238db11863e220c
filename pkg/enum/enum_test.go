package enum

import (
	"testing"

	"github.com/stretchr/testify/require"
)

type color string

var (
	red  = New(color("RED"))
	blue = New(color("BLUE"))
)

func TestToEnum(t *testing.T) {
	v, err := ToEnum[color]("RED")
	require.NoError(t, err)
	require.Equal(t, red, v)

	_, err = ToEnum[color]("red")
	require.Error(t, err)

	type unknown string
	_, err = ToEnum[unknown]("RED")
	require.Error(t, err)
}

func TestValues(t *testing.T) {
	require.Equal(t, []color{blue, red}, Values[color]())
}
