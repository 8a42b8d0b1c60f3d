package artifacts

import (
	"bytes"
	"context"
	"iter"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/thomas-vilte/relx/internal/config"
	apperrors "github.com/thomas-vilte/relx/internal/errors"
	"github.com/thomas-vilte/relx/internal/i18n"
)

func artifactSeq(items []string, err error) iter.Seq2[string, error] {
	return func(yield func(string, error) bool) {
		for _, item := range items {
			if !yield(item, nil) {
				return
			}
		}
		if err != nil {
			yield("", err)
		}
	}
}

func setupTestEnv(t *testing.T) (*config.Config, *i18n.Translations) {
	cfg := &config.Config{
		DefaultProject: "SUSE:Product",
		Artifacts: config.ArtifactsConfig{
			RepoInfo: []config.RepoInfo{
				{Name: "images", Pattern: "^cdi"},
			},
		},
	}
	translations, err := i18n.NewTranslations("en")
	if err != nil {
		t.Fatal(err)
	}
	return cfg, translations
}

func TestArtifactsCommand(t *testing.T) {
	t.Run("should print artifacts from every configured repository", func(t *testing.T) {
		// Arrange
		cfg, translations := setupTestEnv(t)
		cfg.Artifacts.RepoInfo = []config.RepoInfo{
			{Name: "images", Pattern: "^cdi"},
			{Name: "containers", Pattern: "^virt"},
		}
		mockProvider := new(MockArtifactProvider)
		packages := []string{"cdi-importer", "virt-handler"}

		mockProvider.On("ListPackages", mock.Anything, "SUSE:Product").Return(packages, nil)
		mockProvider.On("ListArtifacts", mock.Anything, "SUSE:Product", packages, mock.Anything, mock.Anything).
			Return(artifactSeq([]string{"images/cdi-importer.raw.xz"}, nil)).Once()
		mockProvider.On("ListArtifacts", mock.Anything, "SUSE:Product", packages, mock.Anything, mock.Anything).
			Return(artifactSeq([]string{"containers/virt-handler.tar"}, nil)).Once()

		var out bytes.Buffer
		factory := NewArtifactsCommandFactory(mockProvider)
		factory.out = &out
		cmd := factory.CreateCommand(translations, cfg)

		// Act
		err := cmd.Run(context.Background(), []string{"artifacts"})

		// Assert
		assert.NoError(t, err)
		assert.Contains(t, out.String(), "images/cdi-importer.raw.xz")
		assert.Contains(t, out.String(), "containers/virt-handler.tar")
		mockProvider.AssertExpectations(t)
	})

	t.Run("should keep other repositories working when one fails", func(t *testing.T) {
		// Arrange
		cfg, translations := setupTestEnv(t)
		cfg.Artifacts.RepoInfo = []config.RepoInfo{
			{Name: "images", Pattern: "^cdi"},
			{Name: "containers", Pattern: "^virt"},
		}
		mockProvider := new(MockArtifactProvider)
		packages := []string{"cdi-importer"}

		mockProvider.On("ListPackages", mock.Anything, "SUSE:Product").Return(packages, nil)
		mockProvider.On("ListArtifacts", mock.Anything, "SUSE:Product", packages, mock.Anything, mock.Anything).
			Return(artifactSeq(nil, apperrors.NewBackend("osc failed", nil))).Once()
		mockProvider.On("ListArtifacts", mock.Anything, "SUSE:Product", packages, mock.Anything, mock.Anything).
			Return(artifactSeq([]string{"containers/virt-handler.tar"}, nil)).Once()

		var out bytes.Buffer
		factory := NewArtifactsCommandFactory(mockProvider)
		factory.out = &out
		cmd := factory.CreateCommand(translations, cfg)

		// Act
		err := cmd.Run(context.Background(), []string{"artifacts"})

		// Assert
		assert.Error(t, err)
		assert.Contains(t, out.String(), "containers/virt-handler.tar")
		mockProvider.AssertExpectations(t)
	})

	t.Run("should fail when the project cannot be listed", func(t *testing.T) {
		// Arrange
		cfg, translations := setupTestEnv(t)
		mockProvider := new(MockArtifactProvider)
		mockProvider.On("ListPackages", mock.Anything, "SUSE:Product").
			Return(nil, apperrors.NewBackend("osc failed", nil))

		factory := NewArtifactsCommandFactory(mockProvider)
		cmd := factory.CreateCommand(translations, cfg)

		// Act
		err := cmd.Run(context.Background(), []string{"artifacts"})

		// Assert
		assert.Error(t, err)
		mockProvider.AssertNotCalled(t, "ListArtifacts")
	})

	t.Run("should require a project", func(t *testing.T) {
		// Arrange
		cfg, translations := setupTestEnv(t)
		cfg.DefaultProject = ""
		mockProvider := new(MockArtifactProvider)

		factory := NewArtifactsCommandFactory(mockProvider)
		cmd := factory.CreateCommand(translations, cfg)

		// Act
		err := cmd.Run(context.Background(), []string{"artifacts"})

		// Assert
		assert.Error(t, err)
		mockProvider.AssertNotCalled(t, "ListPackages")
	})

	t.Run("should honor the project flag over the default", func(t *testing.T) {
		// Arrange
		cfg, translations := setupTestEnv(t)
		mockProvider := new(MockArtifactProvider)
		mockProvider.On("ListPackages", mock.Anything, "SUSE:Other").Return([]string{}, nil)
		mockProvider.On("ListArtifacts", mock.Anything, "SUSE:Other", []string{}, mock.Anything, mock.Anything).
			Return(artifactSeq(nil, nil))

		var out bytes.Buffer
		factory := NewArtifactsCommandFactory(mockProvider)
		factory.out = &out
		cmd := factory.CreateCommand(translations, cfg)

		// Act
		err := cmd.Run(context.Background(), []string{"artifacts", "-p", "SUSE:Other"})

		// Assert
		assert.NoError(t, err)
		mockProvider.AssertExpectations(t)
	})
}
