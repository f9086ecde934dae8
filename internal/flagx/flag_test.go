package flagx

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFilterArgs(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		allowed []string
		want    []string
	}{
		{"separate value", []string{"-c", "conf.json", "-a", "localhost"}, []string{"-c"}, []string{"-c", "conf.json"}},
		{"equals form", []string{"--config=alt.json", "-a", "x"}, []string{"--config"}, []string{"--config=alt.json"}},
		{"unknown flags dropped", []string{"-x", "1", "--y=2", "positional"}, []string{"-c"}, []string{}},
		{"flag at the end", []string{"-c"}, []string{"-c"}, []string{"-c"}},
		{"next flag not consumed", []string{"-c", "-q"}, []string{"-c"}, []string{"-c"}},
		{"several allowed", []string{"-a", ":9090", "-d", "dsn", "-z", "1"}, []string{"-a", "-d"}, []string{"-a", ":9090", "-d", "dsn"}},
		{"repeated flag", []string{"-q", "100", "-q", "200"}, []string{"-q"}, []string{"-q", "100", "-q", "200"}},
		{"empty", []string{}, []string{"-c"}, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FilterArgs(tt.args, tt.allowed))
		})
	}
}

func TestJsonConfigFlags(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	os.Args = []string{"loopin", "-c", "/etc/loopin/short.json"}
	assert.Equal(t, "/etc/loopin/short.json", JsonConfigFlags())

	os.Args = []string{"loopin", "-a", ":50051", "-config", "/etc/loopin/long.json"}
	assert.Equal(t, "/etc/loopin/long.json", JsonConfigFlags())

	os.Args = []string{"loopin", "-c", "/one.json", "-config", "/two.json"}
	assert.Equal(t, "/two.json", JsonConfigFlags())

	os.Args = []string{"loopin", "-x", "1"}
	assert.Empty(t, JsonConfigFlags())
}
