package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestParseDotEnvLine(t *testing.T) {
	cases := []struct {
		line      string
		key, val  string
		wantMatch bool
	}{
		{"DB_PATH=./dev.db", "DB_PATH", "./dev.db", true},
		{"  PORT = 9090  ", "PORT", "9090", true},
		{"export SESSION_SECRET=abc", "SESSION_SECRET", "abc", true},
		{`NAME="quoted value"`, "NAME", "quoted value", true},
		{"NAME='single quoted'", "NAME", "single quoted", true},
		{`MIXED="unbalanced'`, "MIXED", `"unbalanced'`, true},
		{"EMPTY=", "EMPTY", "", true},
		{"# a comment", "", "", false},
		{"", "", "", false},
		{"no equals sign", "", "", false},
		{"=value without key", "", "", false},
	}

	for _, tc := range cases {
		key, val, ok := parseDotEnvLine(tc.line)
		if ok != tc.wantMatch {
			t.Fatalf("parseDotEnvLine(%q) ok = %v, want %v", tc.line, ok, tc.wantMatch)
		}
		if key != tc.key || val != tc.val {
			t.Fatalf("parseDotEnvLine(%q) = %q,%q, want %q,%q", tc.line, key, val, tc.key, tc.val)
		}
	}
}

func TestLoadDotEnvExportsMissingVariables(t *testing.T) {
	t.Setenv("DOTENV_A", "")
	t.Setenv("DOTENV_B", "")

	path := filepath.Join(t.TempDir(), ".env")
	content := "# dev values\nDOTENV_A=one\nexport DOTENV_B='two words'\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write dotenv file: %v", err)
	}

	if err := loadDotEnv(path); err != nil {
		t.Fatalf("loadDotEnv returned error: %v", err)
	}
	if got := os.Getenv("DOTENV_A"); got != "one" {
		t.Fatalf("DOTENV_A = %q, want one", got)
	}
	if got := os.Getenv("DOTENV_B"); got != "two words" {
		t.Fatalf("DOTENV_B = %q, want two words", got)
	}
}

func TestLoadDotEnvNeverOverwrites(t *testing.T) {
	t.Setenv("DOTENV_KEEP", "from-real-env")

	path := filepath.Join(t.TempDir(), ".env")
	if err := os.WriteFile(path, []byte("DOTENV_KEEP=from-file\n"), 0o600); err != nil {
		t.Fatalf("write dotenv file: %v", err)
	}

	if err := loadDotEnv(path); err != nil {
		t.Fatalf("loadDotEnv returned error: %v", err)
	}
	if got := os.Getenv("DOTENV_KEEP"); got != "from-real-env" {
		t.Fatalf("DOTENV_KEEP = %q, the file must not win", got)
	}
}

func TestLoadDotEnvMissingFileIsNotAnError(t *testing.T) {
	if err := loadDotEnv(filepath.Join(t.TempDir(), "no-such.env")); err != nil {
		t.Fatalf("missing dotenv file should be ignored, got %v", err)
	}
}
