package device

import (
	stderrors "errors"
	"testing"

	"codeberg.org/mutker/colorlog/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeLister struct {
	ports []PortInfo
	err   error
}

func (f fakeLister) List() ([]PortInfo, error) {
	return f.ports, f.err
}

func TestLocateSingleArduino(t *testing.T) {
	lister := fakeLister{ports: []PortInfo{
		{Path: "/dev/cu.usbmodem14101", Description: "Arduino"},
	}}

	path, ports, err := Locate(lister)
	require.NoError(t, err)
	assert.Equal(t, "/dev/cu.usbmodem14101", path)
	assert.Len(t, ports, 1)
}

func TestLocateFirstMatchWins(t *testing.T) {
	tests := []struct {
		name  string
		ports []PortInfo
		want  string
	}{
		{
			name: "skips non matching",
			ports: []PortInfo{
				{Path: "/dev/cu.Bluetooth-Incoming-Port", Description: "n/a"},
				{Path: "/dev/cu.usbserial-110", Description: "FT232R"},
			},
			want: "/dev/cu.usbserial-110",
		},
		{
			name: "enumeration order not substring order",
			ports: []PortInfo{
				{Path: "/dev/tty.usbserial-A1", Description: "CH340"},
				{Path: "/dev/tty.usbmodem1", Description: "UNO R4"},
			},
			want: "/dev/tty.usbserial-A1",
		},
		{
			name: "two modems",
			ports: []PortInfo{
				{Path: "/dev/cu.usbmodem2", Description: "a"},
				{Path: "/dev/cu.usbmodem1", Description: "b"},
			},
			want: "/dev/cu.usbmodem2",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path, _, err := Locate(fakeLister{ports: tt.ports})
			require.NoError(t, err)
			assert.Equal(t, tt.want, path)
		})
	}
}

func TestLocateNotFound(t *testing.T) {
	ports := []PortInfo{
		{Path: "/dev/ttyS0", Description: "n/a"},
		{Path: "/dev/ttyACM0", Description: "Arduino Uno"},
	}

	path, listed, err := Locate(fakeLister{ports: ports})
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, ErrPortNotFound))
	assert.Empty(t, path)
	assert.Equal(t, ports, listed, "ports are returned for diagnostics")
}

func TestLocateEmptyList(t *testing.T) {
	_, listed, err := Locate(fakeLister{})
	assert.True(t, errors.HasCode(err, ErrPortNotFound))
	assert.Empty(t, listed)
}

func TestLocateEnumerationError(t *testing.T) {
	_, _, err := Locate(fakeLister{err: stderrors.New("no sysfs")})
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, ErrEnumerateFailed))
	assert.Contains(t, err.Error(), "no sysfs")
}

func TestMatchIsCaseSensitive(t *testing.T) {
	_, ok := Match([]PortInfo{{Path: "/dev/cu.USBMODEM1"}})
	assert.False(t, ok)
}
