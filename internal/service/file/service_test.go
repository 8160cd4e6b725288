package file

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nalaaircon/nala-backend/internal/pkg/storage"
)

func newService(t *testing.T) (FileService, *storage.LocalStorage) {
	t.Helper()
	local, err := storage.NewLocalStorage(t.TempDir(), "http://localhost:8080/api/v1/leave-requests/proof")
	require.NoError(t, err)
	now := func() time.Time { return time.Date(2025, 1, 6, 9, 0, 0, 0, time.UTC) }
	return NewFileService(local, now), local
}

func TestUploadLeaveProof(t *testing.T) {
	ctx := context.Background()
	svc, local := newService(t)

	up, err := svc.UploadLeaveProof(ctx, "emp-1", strings.NewReader("%PDF-1.4"), "Surat Dokter.PDF")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(up.Path, "leave/emp-1/2025-01/"), up.Path)
	assert.True(t, strings.HasSuffix(up.Path, ".pdf"), up.Path)
	assert.Equal(t, "http://localhost:8080/api/v1/leave-requests/proof/"+up.Path, up.URL)

	ok, err := local.Exists(ctx, up.Path)
	require.NoError(t, err)
	assert.True(t, ok)

	require.NoError(t, svc.DeleteFile(ctx, up.Path))
	ok, err = local.Exists(ctx, up.Path)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestUploadLeaveProof_Rejects(t *testing.T) {
	ctx := context.Background()
	svc, _ := newService(t)

	_, err := svc.UploadLeaveProof(ctx, "emp-1", strings.NewReader("MZ"), "virus.exe")
	assert.ErrorIs(t, err, ErrInvalidFileType)

	big := bytes.Repeat([]byte("a"), MaxProofSize+1)
	_, err = svc.UploadLeaveProof(ctx, "emp-1", bytes.NewReader(big), "scan.jpg")
	assert.ErrorIs(t, err, ErrFileTooLarge)
}

func TestOpenLeaveProof(t *testing.T) {
	ctx := context.Background()
	svc, local := newService(t)

	up, err := svc.UploadLeaveProof(ctx, "emp-1", strings.NewReader("%PDF-1.4"), "surat.pdf")
	require.NoError(t, err)

	proof, err := svc.OpenLeaveProof(ctx, up.Path)
	require.NoError(t, err)
	defer proof.Content.Close()
	assert.Equal(t, "emp-1", proof.EmployeeID)
	raw, err := io.ReadAll(proof.Content)
	require.NoError(t, err)
	assert.Equal(t, "%PDF-1.4", string(raw))

	_, err = local.Upload(ctx, strings.NewReader("secret"), "config/app.yaml")
	require.NoError(t, err)

	for _, p := range []string{
		"leave/emp-1",
		"leave/emp-1/2025-01",
		"leave/emp-1/2025-01/missing.pdf",
		"leave/emp-1/2025-01/../../../config/app.yaml",
		"config/app.yaml",
		"",
	} {
		_, err := svc.OpenLeaveProof(ctx, p)
		assert.ErrorIs(t, err, ErrFileNotFound, "path %q", p)
	}
}

func TestProofOwner(t *testing.T) {
	tests := []struct {
		path  string
		owner string
		ok    bool
	}{
		{"leave/emp-1/2025-01/a.pdf", "emp-1", true},
		{"/leave/emp-2/2025-02/b.png", "emp-2", true},
		{"leave/emp-1/2025-01", "", false},
		{"leave/emp-1/../emp-2/2025-01/a.pdf", "emp-2", true},
		{"leave//2025-01/a.pdf", "", false},
		{"other/emp-1/2025-01/a.pdf", "", false},
	}
	for _, tt := range tests {
		owner, ok := ProofOwner(tt.path)
		assert.Equal(t, tt.ok, ok, tt.path)
		assert.Equal(t, tt.owner, owner, tt.path)
	}
}
