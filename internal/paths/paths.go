package paths

import (
	"os"
	"path/filepath"
	"strings"
)

const (
	AppDirName     = "moonicon"
	ConfigFileName = "moonicon-config.json"
	LogFileName    = "moonicon.log"
	DBFileName     = "moonicon.db"
	DirPerm        = 0755
	FilePerm       = 0644
)

// AtomicWrite writes data to path via a temporary file + rename to avoid
// partial writes. The parent directory is created if needed. The temporary
// file is removed whenever the write does not complete.
func AtomicWrite(path string, data []byte) (err error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, DirPerm); err != nil {
		return err
	}
	f, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			f.Close()
			os.Remove(f.Name())
		}
	}()

	if _, err = f.Write(data); err != nil {
		return err
	}
	if err = f.Chmod(FilePerm); err != nil {
		return err
	}
	if err = f.Close(); err != nil {
		return err
	}
	return os.Rename(f.Name(), path)
}

// DataDir returns the platform-specific data directory for moonicon:
//   - Windows: %APPDATA%\moonicon
//   - Unix:    ~/.config/moonicon
//
// Falls back to os.TempDir()/moonicon if neither is available.
func DataDir() string {
	if appdata := os.Getenv("APPDATA"); appdata != "" {
		return filepath.Join(appdata, AppDirName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(os.TempDir(), AppDirName)
	}
	return filepath.Join(home, ".config", AppDirName)
}

// Rel returns path relative to root using forward slashes, for display and
// for ledger records. Paths outside root are returned cleaned but unchanged.
func Rel(root, path string) string {
	rel, err := filepath.Rel(root, path)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return filepath.ToSlash(filepath.Clean(path))
	}
	return filepath.ToSlash(rel)
}
