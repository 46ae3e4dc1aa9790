package flagx

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFilterArgs(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		allowed []string
		want    []string
	}{
		{
			name:    "separate value kept",
			args:    []string{"-a", "localhost:9000", "-x", "ignored"},
			allowed: []string{"-a"},
			want:    []string{"-a", "localhost:9000"},
		},
		{
			name:    "equals form kept",
			args:    []string{"--config=conf.json", "-v"},
			allowed: []string{"--config"},
			want:    []string{"--config=conf.json"},
		},
		{
			name:    "unknown flags dropped",
			args:    []string{"-z", "1", "-q"},
			allowed: []string{"-a"},
			want:    []string{},
		},
		{
			name:    "flag followed by another flag keeps no value",
			args:    []string{"-a", "-b", "val"},
			allowed: []string{"-a", "-b"},
			want:    []string{"-a", "-b", "val"},
		},
		{
			name:    "empty input",
			args:    nil,
			allowed: []string{"-a"},
			want:    []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FilterArgs(tt.args, tt.allowed)
			assert.Equal(t, tt.want, got)
		})
	}
}

func setArgs(t *testing.T, args ...string) {
	t.Helper()
	orig := os.Args
	os.Args = append([]string{"luckyadmin"}, args...)
	t.Cleanup(func() { os.Args = orig })
}

func TestConfigFileFlag(t *testing.T) {
	t.Run("short form", func(t *testing.T) {
		setArgs(t, "-c", "conf.json", "-a", "host:1")
		require.Equal(t, "conf.json", ConfigFileFlag())
	})

	t.Run("long form with equals", func(t *testing.T) {
		setArgs(t, "-config=other.json")
		require.Equal(t, "other.json", ConfigFileFlag())
	})

	t.Run("absent", func(t *testing.T) {
		setArgs(t, "-a", "host:1")
		require.Equal(t, "", ConfigFileFlag())
	})
}
