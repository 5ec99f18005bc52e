package sorter

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/dropsort/dropsort/pkg/config"
	"github.com/dropsort/dropsort/pkg/errors"
)

// move relocates path into destDir, applying the collision policy.
// It returns the final target path, or skipped=true when the
// collision-skip policy left the file alone.
func (s *Sorter) move(path, destDir string) (target string, skipped bool, err error) {
	if !s.opts.DryRun {
		if err := s.fs.MkdirAll(destDir, 0755); err != nil {
			return "", false, errors.Wrapf(err, errors.ErrDirCreate,
				"failed to create %s", destDir)
		}
	}

	target = filepath.Join(destDir, filepath.Base(path))
	if _, statErr := s.fs.Stat(target); statErr == nil {
		switch s.opts.Collision {
		case config.CollisionSkip:
			return "", true, nil
		case config.CollisionOverwrite:
			if !s.opts.DryRun {
				if err := s.fs.Remove(target); err != nil {
					return "", false, errors.Wrapf(err, errors.ErrFileMove,
						"failed to overwrite %s", target)
				}
			}
		default:
			target = s.resolveCollision(destDir, filepath.Base(path))
		}
	}

	if s.opts.DryRun {
		return target, false, nil
	}

	if err := s.rename(path, target); err != nil {
		return "", false, err
	}
	return target, false, nil
}

// resolveCollision finds a free name in destDir by probing
// "stem (N).ext" upward from 1.
func (s *Sorter) resolveCollision(destDir, filename string) string {
	ext := filepath.Ext(filename)
	stem := strings.TrimSuffix(filename, ext)

	for i := 1; ; i++ {
		candidate := filepath.Join(destDir, fmt.Sprintf("%s (%d)%s", stem, i, ext))
		if _, err := s.fs.Stat(candidate); err != nil {
			return candidate
		}
	}
}

// rename moves the file, falling back to copy+remove when rename fails,
// which it does across devices.
func (s *Sorter) rename(oldpath, newpath string) error {
	if err := s.fs.Rename(oldpath, newpath); err == nil {
		return nil
	}

	info, err := s.fs.Stat(oldpath)
	if err != nil {
		return errors.Wrapf(err, errors.ErrFileAccess, "cannot stat %s", oldpath)
	}

	data, err := s.fs.ReadFile(oldpath)
	if err != nil {
		return errors.Wrapf(err, errors.ErrFileAccess, "cannot read %s", oldpath)
	}
	if err := s.fs.WriteFile(newpath, data, info.Mode().Perm()); err != nil {
		return errors.Wrapf(err, errors.ErrFileMove, "cannot write %s", newpath)
	}
	if err := s.fs.Remove(oldpath); err != nil {
		// The copy landed; a stale source is better than a lost file
		return errors.Wrapf(err, errors.ErrFileMove, "cannot remove %s after copy", oldpath)
	}
	return nil
}
