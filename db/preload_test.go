package db

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSeedTemplate(t *testing.T) {
	t.Run(`embedded default template`, func(t *testing.T) {
		tpl := DefaultTemplate()
		require.Equal(t, "Standard Pipeline", tpl.Name)
		names := []string{}
		protected := []string{}
		for _, stage := range tpl.Stages {
			names = append(names, stage.Name)
			if stage.Protected {
				protected = append(protected, stage.Name)
			}
		}
		require.Equal(t, []string{"Applied", "Screening", "Interview", "Offer", "Hired", "Rejected"}, names)
		require.Equal(t, []string{"Applied", "Hired", "Rejected"}, protected)
	})

	t.Run(`build assigns dense order`, func(t *testing.T) {
		rec := DefaultTemplate().Build("org-1")
		require.True(t, rec.IsDefault)
		require.Equal(t, "org-1", rec.OrgID)
		for k, stage := range rec.Stages {
			require.Equal(t, k, stage.StageOrder)
			require.Equal(t, "org-1", stage.OrgID)
		}
	})

	t.Run(`load from file`, func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "pipeline.yml")
		doc := "name: Short\nstages:\n  - name: New\n  - name: Done\n    protected: true\n"
		require.Nil(t, os.WriteFile(path, []byte(doc), 0o600))
		tpl, err := LoadSeedTemplate(path)
		require.Nil(t, err)
		require.Len(t, tpl.Stages, 2)
		require.Equal(t, "#000000", tpl.Stages[0].Color)
		require.True(t, tpl.Stages[1].Protected)
	})

	t.Run(`invalid documents`, func(t *testing.T) {
		_, err := ParseSeedTemplate([]byte("name: Empty\nstages: []\n"))
		require.NotNil(t, err)
		_, err = ParseSeedTemplate([]byte("stages:\n  - name: A\n"))
		require.NotNil(t, err)
		_, err = ParseSeedTemplate([]byte("name: [\n"))
		require.NotNil(t, err)
	})
}
