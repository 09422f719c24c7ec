package capture

import (
	"context"
	"path"

	"github.com/spf13/afero"
)

type FSStore struct {
	fs afero.Fs
}

// NewFSStore roots all keys under dir on the OS filesystem.
func NewFSStore(dir string) *FSStore {
	return &FSStore{fs: afero.NewBasePathFs(afero.NewOsFs(), dir)}
}

// NewFSStoreOn uses an arbitrary afero filesystem, e.g. afero.NewMemMapFs in tests.
func NewFSStoreOn(fs afero.Fs) *FSStore {
	return &FSStore{fs: fs}
}

func (s *FSStore) Save(ctx context.Context, key, _ string, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := s.fs.MkdirAll(path.Dir(key), 0o755); err != nil {
		return err
	}
	return afero.WriteFile(s.fs, key, data, 0o644)
}
