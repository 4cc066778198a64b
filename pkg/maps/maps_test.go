package maps

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestForEscapesLabel(t *testing.T) {
	l := For(-1.3, 36.8, "Aga Khan University Hospital")
	assert.Contains(t, l.IOS, "maps://?q=Aga+Khan+University+Hospital")
	assert.Contains(t, l.Android, "geo:-1.300000,36.800000")
	assert.Contains(t, l.Android, "(Aga+Khan+University+Hospital)")
	assert.Contains(t, l.Web, "https://www.google.com/maps/search/?api=1&query=-1.300000,36.800000")
}

func TestForPlainLabel(t *testing.T) {
	l := For(51.5, -0.12, "Clinic")
	assert.Equal(t, "maps://?q=Clinic&ll=51.500000,-0.120000", l.IOS)
}
