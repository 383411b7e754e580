package desktop

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	log "github.com/sirupsen/logrus"
)

// statusDir returns $HOME/.wm, creating it mode 0700 if missing.
func statusDir() (string, error) {
	home := os.Getenv("HOME")
	if home == "" {
		return "", fmt.Errorf("HOME is not set")
	}
	dir := filepath.Join(home, ".wm")
	if err := os.MkdirAll(dir, 0700); err != nil {
		return "", err
	}
	return dir, nil
}

// writeSidecar truncates and rewrites name with contents. Concurrent
// readers may observe a partial write; that's acceptable since these
// files are advisory status-bar inputs, not a protocol.
func writeSidecar(name, contents string) {
	dir, err := statusDir()
	if err != nil {
		log.Warn("sidecar directory unavailable: ", err)
		return
	}
	path := filepath.Join(dir, name)
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
	if err != nil {
		log.Warn("failed to open sidecar file ", path, ": ", err)
		return
	}
	defer f.Close()
	if _, err := f.WriteString(contents); err != nil {
		log.Warn("failed to write sidecar file ", path, ": ", err)
	}
}

// WriteFocused rewrites focused.workspace with the 1-based index of ws.
func WriteFocused(ws int) {
	writeSidecar("focused.workspace", strconv.Itoa(ws+1)+"\n")
}

// WriteOccupied rewrites occupied.workspace with the ascending,
// comma-separated 1-based indices of workspaces holding at least one
// non-dock client.
func WriteOccupied(occupied []int) {
	sorted := append([]int(nil), occupied...)
	sort.Ints(sorted)
	parts := make([]string, len(sorted))
	for i, ws := range sorted {
		parts[i] = strconv.Itoa(ws + 1)
	}
	writeSidecar("occupied.workspace", strings.Join(parts, ",")+"\n")
}
