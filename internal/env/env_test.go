package env

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetString(t *testing.T) {
	t.Setenv("AUDITOR_TEST_ADDR", ":9090")
	assert.Equal(t, ":9090", GetString("AUDITOR_TEST_ADDR", ":8080"))
	assert.Equal(t, ":8080", GetString("AUDITOR_TEST_UNSET", ":8080"))
}

func TestGetInt(t *testing.T) {
	t.Setenv("AUDITOR_TEST_INT", "42")
	t.Setenv("AUDITOR_TEST_BAD_INT", "quarenta")
	assert.Equal(t, 42, GetInt("AUDITOR_TEST_INT", 1))
	assert.Equal(t, 1, GetInt("AUDITOR_TEST_BAD_INT", 1))
	assert.Equal(t, 7, GetInt("AUDITOR_TEST_UNSET", 7))
}

func TestGetBool(t *testing.T) {
	tests := []struct {
		val      string
		fallback bool
		want     bool
	}{
		{"true", false, true},
		{"0", true, false},
		{"Sim", false, true},
		{"não", true, false},
		{"talvez", true, true},
	}

	for _, tt := range tests {
		t.Run(tt.val, func(t *testing.T) {
			t.Setenv("AUDITOR_TEST_BOOL", tt.val)
			assert.Equal(t, tt.want, GetBool("AUDITOR_TEST_BOOL", tt.fallback))
		})
	}
}
