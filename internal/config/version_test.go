package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestGetVersion(t *testing.T) {
	// Save original environment
	originalVersion := os.Getenv("APP_VERSION")
	defer func() {
		if originalVersion != "" {
			os.Setenv("APP_VERSION", originalVersion)
		} else {
			os.Unsetenv("APP_VERSION")
		}
	}()

	tests := []struct {
		name           string
		envVersion     string
		expectContains string
		expectMinLen   int
	}{
		{
			name:           "version from environment variable",
			envVersion:     "1.2.3",
			expectContains: "1.2.3",
			expectMinLen:   5,
		},
		{
			name:           "version from environment with build number",
			envVersion:     "2.0.0-beta.1",
			expectContains: "2.0.0-beta.1",
			expectMinLen:   10,
		},
		{
			name:         "version from git (no env var)",
			envVersion:   "",
			expectMinLen: 3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			os.Unsetenv("APP_VERSION")

			if tt.envVersion != "" {
				os.Setenv("APP_VERSION", tt.envVersion)
			}

			version := GetVersion()

			if len(version) < tt.expectMinLen {
				t.Errorf("Expected version length >= %d, got %d (version: %s)", tt.expectMinLen, len(version), version)
			}

			if tt.expectContains != "" && !strings.Contains(version, tt.expectContains) {
				t.Errorf("Expected version to contain '%s', got '%s'", tt.expectContains, version)
			}

			if version == "" {
				t.Error("Version should not be empty")
			}
		})
	}
}

func TestGetBaseVersionFromFile(t *testing.T) {
	tempDir := t.TempDir()
	versionFile := filepath.Join(tempDir, "VERSION")

	expectedVersion := "1.5.0"
	if err := os.WriteFile(versionFile, []byte(expectedVersion+"\n"), 0644); err != nil {
		t.Fatalf("Failed to create test VERSION file: %v", err)
	}

	originalDir, _ := os.Getwd()
	defer os.Chdir(originalDir)
	os.Chdir(tempDir)

	version := getBaseVersion()
	if version != expectedVersion {
		t.Errorf("Expected version '%s' from VERSION file, got '%s'", expectedVersion, version)
	}
}

func TestGetBaseVersionFallback(t *testing.T) {
	// Test in a directory where no VERSION file exists
	tempDir := t.TempDir()
	originalDir, _ := os.Getwd()
	defer os.Chdir(originalDir)

	os.Chdir(tempDir)

	version := getBaseVersion()
	if version != "0.1.0" {
		t.Errorf("Expected fallback version '0.1.0', got '%s'", version)
	}
}

func TestGetGitCommitCount(t *testing.T) {
	count := getGitCommitCount()

	// Count should be non-negative; zero is normal outside a git repository
	if count < 0 {
		t.Errorf("Expected non-negative commit count, got %d", count)
	}
	t.Logf("Git commit count: %d", count)
}

func TestUserAgent(t *testing.T) {
	originalVersion := os.Getenv("APP_VERSION")
	defer func() {
		if originalVersion != "" {
			os.Setenv("APP_VERSION", originalVersion)
		} else {
			os.Unsetenv("APP_VERSION")
		}
	}()

	os.Setenv("APP_VERSION", "3.1.4")

	ua := UserAgent()
	if ua != "plantcast/3.1.4" {
		t.Errorf("Expected User-Agent 'plantcast/3.1.4', got '%s'", ua)
	}
}

func TestGetVersionIntegration(t *testing.T) {
	os.Unsetenv("APP_VERSION")

	version := GetVersion()

	if version == "" {
		t.Error("Version should not be empty")
	}

	if !strings.Contains(version, ".") {
		t.Errorf("Expected version to contain '.', got '%s'", version)
	}

	if len(version) == 0 || version[0] < '0' || version[0] > '9' {
		t.Errorf("Expected version to start with a digit, got '%s'", version)
	}

	t.Logf("Generated version: %s", version)
}
