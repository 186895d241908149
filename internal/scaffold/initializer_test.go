package scaffold

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SEA6153/tableview/internal/config"
	"github.com/SEA6153/tableview/internal/printer"
	"github.com/SEA6153/tableview/pkg/records"
)

func TestInitialize(t *testing.T) {
	tests := []struct {
		name      string
		force     bool
		setupFunc func(string)
		wantErr   string
	}{
		{
			name:      "fresh initialization",
			setupFunc: func(dir string) {},
		},
		{
			name:  "existing config without force",
			force: false,
			setupFunc: func(dir string) {
				os.WriteFile(filepath.Join(dir, ConfigFile), []byte("old content"), 0644)
			},
			wantErr: "project already initialized",
		},
		{
			name:  "force overwrites existing config",
			force: true,
			setupFunc: func(dir string) {
				os.WriteFile(filepath.Join(dir, ConfigFile), []byte("old content"), 0644)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			tt.setupFunc(dir)

			err := Initialize(dir, tt.force)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)

			cfg, err := config.Load(filepath.Join(dir, ConfigFile))
			require.NoError(t, err)
			assert.Equal(t, "default", cfg.Instance)
			assert.Nil(t, cfg.Redis)
		})
	}
}

func TestInitialize_CreatesMissingDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "project")
	require.NoError(t, Initialize(dir, false))
	assert.FileExists(t, filepath.Join(dir, ConfigFile))
}

// The template's seed must stay in step with the built-in defaults.
func TestTemplateSeedMatchesDefaults(t *testing.T) {
	content, err := templatesFS.ReadFile("templates/tableview.yml.tmpl")
	require.NoError(t, err)

	cfg, err := config.Parse(content)
	require.NoError(t, err)

	want := records.DefaultDataset()
	got := cfg.Dataset()
	require.Equal(t, want.Names(), got.Names())
	for i := range want {
		assert.Equal(t, want[i].Records, got[i].Records, want[i].Name)
	}
}

func TestCheckExisting(t *testing.T) {
	dir := t.TempDir()
	assert.NoError(t, CheckExisting(dir))

	require.NoError(t, os.WriteFile(filepath.Join(dir, ConfigFile), []byte("x"), 0644))
	err := CheckExisting(dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "tableview init --force")
}

func TestPrintSuccess(t *testing.T) {
	var buf bytes.Buffer
	restore := printer.SetOutput(&buf, &buf)
	defer restore()

	PrintSuccess()
	assert.Contains(t, buf.String(), "Successfully initialized tableview")
	assert.Contains(t, buf.String(), "tableview.yml")
}
