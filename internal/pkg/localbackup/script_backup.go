// Package localbackup persists the rendered RouterOS script pushed to a
// managed peer on every apply, one file per peer, so a human can inspect
// or recover the last-known-applied configuration without reaching the
// router. Writes for a given peer are serialized and crash-safe.
package localbackup

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"syscall"
	"time"
)

// peerLock is a process-wide flock(2) held for the duration of one
// peer's script write, so two concurrent applies against the same peer
// can't interleave backups.
type peerLock struct {
	f *os.File
}

func acquirePeerLock(dir, peerID string) (*peerLock, error) {
	f, err := os.OpenFile(filepath.Join(dir, peerID+".lock"), os.O_CREATE|os.O_RDWR, 0600)
	if err != nil {
		return nil, err
	}
	if err := syscall.Flock(int(f.Fd()), syscall.LOCK_EX); err != nil {
		_ = f.Close()
		return nil, err
	}
	return &peerLock{f: f}, nil
}

func (l *peerLock) release() {
	if l == nil || l.f == nil {
		return
	}
	_ = syscall.Flock(int(l.f.Fd()), syscall.LOCK_UN)
	_ = l.f.Close()
}

// WritePeerScript atomically saves script as peerID's backup under dir,
// keeping a timestamped copy of whatever was there before. The write is
// serialized against any other WritePeerScript call for the same peerID.
func WritePeerScript(dir, peerID, script string) error {
	lock, err := acquirePeerLock(dir, peerID)
	if err != nil {
		return err
	}
	defer lock.release()

	if err := os.MkdirAll(dir, 0700); err != nil {
		return err
	}

	path := filepath.Join(dir, peerID+".rsc")
	if st, err := os.Stat(path); err == nil && st.Mode().IsRegular() {
		ts := time.Now().Format("20060102-150405")
		bak := filepath.Join(dir, fmt.Sprintf("%s.rsc.bak.%s", peerID, ts))
		if err := copyFile(path, bak, st.Mode().Perm()); err != nil {
			return err
		}
	}

	tmp, err := os.CreateTemp(dir, peerID+".rsc.tmp.*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer func() { _ = os.Remove(tmpName) }()

	if err := tmp.Chmod(0600); err != nil {
		_ = tmp.Close()
		return err
	}
	if _, err := tmp.WriteString(script); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}

	// Rename is atomic on the same filesystem.
	return os.Rename(tmpName, path)
}

func copyFile(src, dst string, perm os.FileMode) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, perm)
	if err != nil {
		return err
	}
	defer func() { _ = out.Close() }()

	if _, err := io.Copy(out, in); err != nil {
		return err
	}
	return out.Sync()
}
