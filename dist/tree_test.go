package dist

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"
)

// writeSource creates a file with the given content and permissions, standing
// in for the release binary or icon.
func writeSource(t *testing.T, dir, name string, content []byte, mode os.FileMode) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, content, mode); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestBuildTree(t *testing.T) {
	srcDir := t.TempDir()
	outDir := t.TempDir()
	binContent := []byte("\x7fELF fake binary")
	iconContent := []byte("\x89PNG fake icon")
	binPath := writeSource(t, srcDir, "astra_lite", binContent, 0755)
	iconPath := writeSource(t, srcDir, "astra_lite48x48.png", iconContent, 0644)

	tree, err := BuildTree(outDir, "astralite", "2.0-1", "amd64", binPath, iconPath)
	if err != nil {
		t.Fatalf("BuildTree: %v", err)
	}

	if want := filepath.Join(outDir, "astralite_2.0-1_amd64"); tree.Root != want {
		t.Errorf("Root = %q, want %q", tree.Root, want)
	}
	if fi, err := os.Stat(tree.DebianDir()); err != nil || !fi.IsDir() {
		t.Errorf("DEBIAN directory missing: %v", err)
	}

	gotBin, err := os.ReadFile(filepath.Join(tree.PrefixDir(), "astra_lite"))
	if err != nil {
		t.Fatalf("reading copied binary: %v", err)
	}
	if !bytes.Equal(gotBin, binContent) {
		t.Error("copied binary differs from source")
	}
	fi, err := os.Stat(filepath.Join(tree.PrefixDir(), "astra_lite"))
	if err != nil {
		t.Fatal(err)
	}
	if fi.Mode().Perm()&0100 == 0 {
		t.Errorf("copied binary lost its executable bit: %v", fi.Mode())
	}

	gotIcon, err := os.ReadFile(filepath.Join(tree.PrefixDir(), "astra_lite48x48.png"))
	if err != nil {
		t.Fatalf("reading copied icon: %v", err)
	}
	if !bytes.Equal(gotIcon, iconContent) {
		t.Error("copied icon differs from source")
	}
}

func TestBuildTreeRerunOverwrites(t *testing.T) {
	srcDir := t.TempDir()
	outDir := t.TempDir()
	binPath := writeSource(t, srcDir, "astra_lite", []byte("first"), 0755)
	iconPath := writeSource(t, srcDir, "icon.png", []byte("icon"), 0644)

	if _, err := BuildTree(outDir, "astralite", "2.0-1", "amd64", binPath, iconPath); err != nil {
		t.Fatalf("BuildTree: %v", err)
	}
	if err := os.WriteFile(binPath, []byte("second build"), 0755); err != nil {
		t.Fatal(err)
	}
	tree, err := BuildTree(outDir, "astralite", "2.0-1", "amd64", binPath, iconPath)
	if err != nil {
		t.Fatalf("BuildTree rerun: %v", err)
	}
	got, err := os.ReadFile(filepath.Join(tree.PrefixDir(), "astra_lite"))
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != "second build" {
		t.Errorf("rerun kept stale binary: %q", got)
	}
}

func TestBuildTreeMissingBinary(t *testing.T) {
	srcDir := t.TempDir()
	iconPath := writeSource(t, srcDir, "icon.png", []byte("icon"), 0644)
	_, err := BuildTree(t.TempDir(), "astralite", "2.0-1", "amd64", filepath.Join(srcDir, "absent"), iconPath)
	if !errors.Is(err, ErrIO) {
		t.Errorf("BuildTree = %v, want ErrIO", err)
	}
}

func TestTreePaths(t *testing.T) {
	tree := &Tree{Root: "/out/astralite_2.0-1_amd64", name: "astralite", bin: "astra_lite", icon: "astra_lite48x48.png"}

	tests := []struct {
		name string
		got  string
		want string
	}{
		{"PrefixRel", tree.PrefixRel(), "opt/astralite"},
		{"BinRel", tree.BinRel(), "opt/astralite/astra_lite"},
		{"BinAbs", tree.BinAbs(), "/opt/astralite/astra_lite"},
		{"IconAbs", tree.IconAbs(), "/opt/astralite/astra_lite48x48.png"},
		{"DesktopPath", tree.DesktopPath(), "/out/astralite_2.0-1_amd64/usr/share/applications/astra_lite.desktop"},
		{"ArtifactPath", tree.ArtifactPath(), "/out/astralite_2.0-1_amd64.deb"},
	}
	for _, tt := range tests {
		if tt.got != tt.want {
			t.Errorf("%s = %q, want %q", tt.name, tt.got, tt.want)
		}
	}
}

func TestInstalledSize(t *testing.T) {
	tests := []struct {
		name  string
		sizes []int
		want  int64
	}{
		{"empty prefix", nil, 0},
		{"under one kibibyte", []int{1023}, 0},
		{"exactly one kibibyte", []int{1024}, 1},
		{"truncates", []int{1500, 600}, 2},
		{"several files", []int{4096, 2048, 100}, 6},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tree := &Tree{Root: t.TempDir(), name: "astralite"}
			if err := os.MkdirAll(tree.PrefixDir(), 0755); err != nil {
				t.Fatal(err)
			}
			for i, size := range tt.sizes {
				writeSource(t, tree.PrefixDir(), fmt.Sprintf("file%d", i), make([]byte, size), 0644)
			}
			got, err := tree.InstalledSize()
			if err != nil {
				t.Fatalf("InstalledSize: %v", err)
			}
			if got != tt.want {
				t.Errorf("InstalledSize = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestInstalledSizeSkipsDirectories(t *testing.T) {
	tree := &Tree{Root: t.TempDir(), name: "astralite"}
	sub := filepath.Join(tree.PrefixDir(), "plugins")
	if err := os.MkdirAll(sub, 0755); err != nil {
		t.Fatal(err)
	}
	writeSource(t, sub, "a.so", make([]byte, 2048), 0644)

	got, err := tree.InstalledSize()
	if err != nil {
		t.Fatalf("InstalledSize: %v", err)
	}
	if got != 2 {
		t.Errorf("InstalledSize = %d, want 2", got)
	}
}
