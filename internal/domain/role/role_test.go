package role_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/simkah-portal/internal/domain/role"
)

func TestParse(t *testing.T) {
	cases := map[string]role.Role{
		"staff":         role.Staff,
		"kepala_kua":    role.KepalaKUA,
		"administrator": role.Administrator,
		"penghulu":      role.Penghulu,
		"":              role.Unknown,
		"guest":         role.Unknown,
		"Staff":         role.Unknown,
		" staff":        role.Unknown,
	}
	for in, want := range cases {
		assert.Equal(t, want, role.Parse(in), "Parse(%q)", in)
	}
}

func TestString_RoundTrip(t *testing.T) {
	for _, r := range role.Recognized() {
		assert.Equal(t, r, role.Parse(r.String()))
	}
	assert.Equal(t, "unknown", role.Unknown.String())
	assert.Equal(t, "unknown", role.Role(99).String())
}

func TestRecognized_Order(t *testing.T) {
	assert.Equal(t,
		[]role.Role{role.Staff, role.KepalaKUA, role.Administrator, role.Penghulu},
		role.Recognized())
}

func TestIsAdminArea(t *testing.T) {
	for _, s := range []string{"staff", "kepala_kua", "administrator", "penghulu"} {
		assert.True(t, role.IsAdminArea(s), s)
	}
	for _, s := range []string{"", "guest", "admin", "PENGHULU"} {
		assert.False(t, role.IsAdminArea(s), s)
	}
}

func TestIsPenghulu(t *testing.T) {
	assert.True(t, role.IsPenghulu("penghulu"))
	assert.False(t, role.IsPenghulu("staff"))
	assert.False(t, role.IsPenghulu(""))
	assert.False(t, role.Unknown.IsPenghulu())
}

func TestIsStaffOnly(t *testing.T) {
	assert.True(t, role.IsStaffOnly("staff"))
	assert.False(t, role.IsStaffOnly("kepala_kua"))
	assert.False(t, role.IsStaffOnly(""))
	assert.False(t, role.Role(-1).IsStaffOnly())
}

func TestHomes(t *testing.T) {
	h := role.Homes{Public: "/", Admin: "/admin", Staff: "/admin/staff", Penghulu: "/penghulu"}

	assert.Equal(t, "/admin/staff", h.Home(role.Staff))
	assert.Equal(t, "/penghulu", h.Home(role.Penghulu))
	assert.Equal(t, "/admin", h.Home(role.KepalaKUA))
	assert.Equal(t, "/admin", h.Home(role.Administrator))
	assert.Equal(t, "/", h.Home(role.Unknown))
}
