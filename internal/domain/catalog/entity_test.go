package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMajor(t *testing.T) {
	m, err := NewMajor("major-1", "  Računarstvo i informatika  ")
	require.NoError(t, err)
	assert.Equal(t, "Računarstvo i informatika", m.Name)

	_, err = NewMajor("major-1", "   ")
	assert.ErrorIs(t, err, ErrInvalidMajorName)
}

func TestNewSubject(t *testing.T) {
	s, err := NewSubject("sub-1", "Matematika 1", 7, true, 1, "major-1")
	require.NoError(t, err)
	assert.Equal(t, 7, s.ECTS)
	assert.True(t, s.Required)

	_, err = NewSubject("sub-1", "Matematika 1", -1, true, 1, "major-1")
	assert.ErrorIs(t, err, ErrInvalidSubject)

	_, err = NewSubject("sub-1", "", 7, true, 1, "major-1")
	assert.ErrorIs(t, err, ErrInvalidSubject)
}

func TestRequiredAndElectiveFilters(t *testing.T) {
	subjects := []Subject{
		{ID: "sub-1", Name: "Matematika 1", Required: true},
		{ID: "sub-2", Name: "Web programiranje", Required: false},
		{ID: "sub-3", Name: "Programiranje", Required: true},
	}

	required := RequiredSubjects(subjects)
	require.Len(t, required, 2)
	assert.Equal(t, "sub-1", required[0].ID)
	assert.Equal(t, "sub-3", required[1].ID)

	electives := ElectiveSubjects(subjects)
	require.Len(t, electives, 1)
	assert.Equal(t, "sub-2", electives[0].ID)
}
