// Package filestore derives content-addressed storage coordinates for
// uploaded attachments and maps them to stable public URLs.
package filestore

import (
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"chatserver/internal/domain"
)

const urlPrefix = "/files/"

// ChatFile is the content-addressed identity of an uploaded attachment.
// It is a pure projection of (workspace, filename, bytes): two uploads of
// identical bytes within a workspace collapse to the same coordinates.
type ChatFile struct {
	WorkspaceID int64  `json:"workspace_id"`
	Ext         string `json:"ext"`
	Hash        string `json:"hash"`
}

// NewChatFile computes the coordinates for a payload. The extension is
// taken after the last '.' of the filename, defaulting to "txt". No bytes
// are written; the caller checks existence and decides whether to store.
func NewChatFile(workspaceID int64, filename string, data []byte) ChatFile {
	sum := sha1.Sum(data)

	ext := "txt"
	if i := strings.LastIndex(filename, "."); i >= 0 && i < len(filename)-1 {
		ext = filename[i+1:]
	}

	return ChatFile{
		WorkspaceID: workspaceID,
		Ext:         ext,
		Hash:        hex.EncodeToString(sum[:]),
	}
}

// RelPath returns the sharded storage path
// {ws}/{hash[0:3]}/{hash[3:6]}/{hash[6:]}.{ext}. Sharding keeps any single
// directory from accumulating unbounded entries.
func (f ChatFile) RelPath() string {
	return fmt.Sprintf("%d/%s/%s/%s.%s", f.WorkspaceID, f.Hash[0:3], f.Hash[3:6], f.Hash[6:], f.Ext)
}

// Path returns the on-disk location under baseDir.
func (f ChatFile) Path(baseDir string) string {
	return filepath.Join(baseDir, filepath.FromSlash(f.RelPath()))
}

// URL returns the public-facing URL for the file.
func (f ChatFile) URL() string {
	return urlPrefix + f.RelPath()
}

// ParseURL is the inverse of URL. It fails with ErrMalformedFileURL when
// the prefix, segment count or extension separator is missing, so that
// ParseURL(f.URL()) == f for every valid f.
func ParseURL(url string) (ChatFile, error) {
	rest, ok := strings.CutPrefix(url, urlPrefix)
	if !ok {
		return ChatFile{}, fmt.Errorf("%w: %s", domain.ErrMalformedFileURL, url)
	}

	parts := strings.Split(rest, "/")
	if len(parts) != 4 {
		return ChatFile{}, fmt.Errorf("%w: %s", domain.ErrMalformedFileURL, url)
	}

	workspaceID, err := strconv.ParseInt(parts[0], 10, 64)
	if err != nil {
		return ChatFile{}, fmt.Errorf("%w: bad workspace id %q", domain.ErrMalformedFileURL, parts[0])
	}

	dot := strings.LastIndex(parts[3], ".")
	if dot < 0 {
		return ChatFile{}, fmt.Errorf("%w: missing extension in %q", domain.ErrMalformedFileURL, parts[3])
	}
	last, ext := parts[3][:dot], parts[3][dot+1:]

	return ChatFile{
		WorkspaceID: workspaceID,
		Ext:         ext,
		Hash:        parts[1] + parts[2] + last,
	}, nil
}
