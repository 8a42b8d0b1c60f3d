package obs

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	apperrors "github.com/thomas-vilte/relx/internal/errors"
	"github.com/thomas-vilte/relx/internal/models"
)

func collectArtifacts(provider *ArtifactProvider, project string, packages []string, repo models.RepoFilter, onProgress func()) ([]string, error) {
	var artifacts []string
	for artifact, err := range provider.ListArtifacts(context.Background(), project, packages, repo, onProgress) {
		if err != nil {
			return artifacts, err
		}
		artifacts = append(artifacts, artifact)
	}
	return artifacts, nil
}

func TestArtifactProvider_ListPackages(t *testing.T) {
	t.Run("should split the project listing into package names", func(t *testing.T) {
		// Arrange
		run := newFakeRunner()
		run.on("osc -A https://api.suse.de ls SUSE:Product", "cdi-importer\nvirt-handler\n")
		provider := NewArtifactProvider(testAPIURL, nil, nil, run)

		// Act
		packages, err := provider.ListPackages(context.Background(), "SUSE:Product")

		// Assert
		assert.NoError(t, err)
		assert.Equal(t, []string{"cdi-importer", "virt-handler"}, packages)
	})

	t.Run("should propagate a listing failure", func(t *testing.T) {
		// Arrange
		run := newFakeRunner()
		run.fail("osc -A https://api.suse.de ls SUSE:Product",
			apperrors.NewBackend("command failed", nil))
		provider := NewArtifactProvider(testAPIURL, nil, nil, run)

		// Act
		_, err := provider.ListPackages(context.Background(), "SUSE:Product")

		// Assert
		assert.Error(t, err)
	})
}

func TestArtifactProvider_ListArtifacts(t *testing.T) {
	repo := models.RepoFilter{Name: "images", Pattern: "^cdi"}

	t.Run("should only inspect packages matching the pattern", func(t *testing.T) {
		// Arrange
		run := newFakeRunner()
		run.on("osc -A https://api.suse.de ls SUSE:Product cdi-importer -b -r images",
			"cdi-importer.x86_64.raw.xz\n")
		provider := NewArtifactProvider(testAPIURL, nil, nil, run)

		// Act
		artifacts, err := collectArtifacts(provider, "SUSE:Product",
			[]string{"cdi-importer", "virt-handler"}, repo, nil)

		// Assert
		assert.NoError(t, err)
		assert.Equal(t, []string{"cdi-importer.x86_64.raw.xz"}, artifacts)
		assert.Len(t, run.calls, 1)
	})

	t.Run("should drop noise lines", func(t *testing.T) {
		// Arrange
		run := newFakeRunner()
		run.on("osc -A https://api.suse.de ls SUSE:Product cdi-importer -b -r images", ""+
			"images/\n"+
			"_buildenv\n"+
			"cdi-importer.x86_64.raw.xz\n"+
			"cdi-importer.x86_64.raw.xz.sha256\n")
		provider := NewArtifactProvider(testAPIURL,
			[]string{"_"}, []string{".sha256"}, run)

		// Act
		artifacts, err := collectArtifacts(provider, "SUSE:Product",
			[]string{"cdi-importer"}, repo, nil)

		// Assert
		assert.NoError(t, err)
		assert.Equal(t, []string{"cdi-importer.x86_64.raw.xz"}, artifacts)
	})

	t.Run("should fire onProgress once per package, matched or not", func(t *testing.T) {
		// Arrange
		run := newFakeRunner()
		run.on("osc -A https://api.suse.de ls SUSE:Product cdi-importer -b -r images", "a\n")
		provider := NewArtifactProvider(testAPIURL, nil, nil, run)
		progress := 0

		// Act
		_, err := collectArtifacts(provider, "SUSE:Product",
			[]string{"cdi-importer", "virt-handler", "qemu"}, repo, func() { progress++ })

		// Assert
		assert.NoError(t, err)
		assert.Equal(t, 3, progress)
	})

	t.Run("should fail fast on an invalid pattern", func(t *testing.T) {
		// Arrange
		run := newFakeRunner()
		provider := NewArtifactProvider(testAPIURL, nil, nil, run)

		// Act
		_, err := collectArtifacts(provider, "SUSE:Product", []string{"cdi-importer"},
			models.RepoFilter{Name: "images", Pattern: "("}, nil)

		// Assert
		var appErr *apperrors.AppError
		assert.True(t, errors.As(err, &appErr))
		assert.Equal(t, apperrors.TypeInvalidArgument, appErr.Type)
		assert.Empty(t, run.calls)
	})

	t.Run("should stop yielding when a package listing fails", func(t *testing.T) {
		// Arrange
		run := newFakeRunner()
		run.fail("osc -A https://api.suse.de ls SUSE:Product cdi-importer -b -r images",
			apperrors.NewBackend("command failed", nil))
		provider := NewArtifactProvider(testAPIURL, nil, nil, run)

		// Act
		_, err := collectArtifacts(provider, "SUSE:Product", []string{"cdi-importer"}, repo, nil)

		// Assert
		assert.Error(t, err)
	})
}
