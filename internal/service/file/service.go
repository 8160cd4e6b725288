package file

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/nalaaircon/nala-backend/internal/pkg/storage"
)

// MaxProofSize caps a leave proof upload.
const MaxProofSize = 5 << 20

var (
	ErrFileNotFound    = errors.New("file not found")
	ErrInvalidFileType = errors.New("invalid file type: only jpg, jpeg, png, pdf allowed")
	ErrFileTooLarge    = errors.New("file exceeds the 5 MB limit")
)

var proofExts = map[string]bool{".jpg": true, ".jpeg": true, ".png": true, ".pdf": true}

// Upload is a stored file and the URL it is served from.
type Upload struct {
	Path string `json:"path"`
	URL  string `json:"url"`
}

type FileService interface {
	// UploadLeaveProof stores a sick note or other leave attachment of an employee
	UploadLeaveProof(ctx context.Context, employeeID string, file io.Reader, filename string) (Upload, error)

	// OpenLeaveProof opens a stored leave proof. The caller closes Content.
	OpenLeaveProof(ctx context.Context, path string) (Proof, error)

	DeleteFile(ctx context.Context, path string) error
}

// Proof is an opened leave proof.
type Proof struct {
	EmployeeID string
	Name       string
	ModTime    time.Time
	Content    io.ReadSeekCloser
}

// ProofOwner returns the employee a leave proof path belongs to. Only paths
// shaped like leave/{employeeID}/{yyyy-mm}/{name} qualify.
func ProofOwner(p string) (string, bool) {
	clean := path.Clean("/" + p)[1:]
	parts := strings.Split(clean, "/")
	if len(parts) != 4 || parts[0] != "leave" || parts[1] == "" || parts[3] == "" {
		return "", false
	}
	return parts[1], true
}

type fileServiceImpl struct {
	storage storage.FileStorage
	now     func() time.Time
}

func NewFileService(storage storage.FileStorage, now func() time.Time) FileService {
	if now == nil {
		now = time.Now
	}
	return &fileServiceImpl{
		storage: storage,
		now:     now,
	}
}

// UploadLeaveProof implements FileService.
func (s *fileServiceImpl) UploadLeaveProof(ctx context.Context, employeeID string, file io.Reader, filename string) (Upload, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	if !proofExts[ext] {
		return Upload{}, ErrInvalidFileType
	}

	// Read one byte past the limit to detect oversized files.
	limited := &io.LimitedReader{R: file, N: MaxProofSize + 1}
	counter := &countingReader{r: limited}

	// leave/{employeeID}/{yyyy-mm}/{uuid}{ext}
	name := uuid.New().String() + ext
	target := path.Join("leave", employeeID, s.now().Format("2006-01"), name)

	stored, err := s.storage.Upload(ctx, counter, target)
	if err != nil {
		return Upload{}, fmt.Errorf("failed to upload leave proof: %w", err)
	}
	if counter.n > MaxProofSize {
		if derr := s.storage.Delete(ctx, stored); derr != nil {
			return Upload{}, errors.Join(ErrFileTooLarge, derr)
		}
		return Upload{}, ErrFileTooLarge
	}

	return Upload{Path: stored, URL: s.storage.URL(stored)}, nil
}

// OpenLeaveProof implements FileService.
func (s *fileServiceImpl) OpenLeaveProof(ctx context.Context, p string) (Proof, error) {
	owner, ok := ProofOwner(p)
	if !ok || !proofExts[strings.ToLower(path.Ext(p))] {
		return Proof{}, ErrFileNotFound
	}

	content, info, err := s.storage.Open(ctx, p)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) || errors.Is(err, storage.ErrInvalidPath) {
			return Proof{}, ErrFileNotFound
		}
		return Proof{}, fmt.Errorf("failed to open leave proof: %w", err)
	}
	return Proof{
		EmployeeID: owner,
		Name:       info.Name(),
		ModTime:    info.ModTime(),
		Content:    content,
	}, nil
}

// DeleteFile implements FileService.
func (s *fileServiceImpl) DeleteFile(ctx context.Context, path string) error {
	return s.storage.Delete(ctx, path)
}

type countingReader struct {
	r io.Reader
	n int64
}

func (c *countingReader) Read(p []byte) (int, error) {
	n, err := c.r.Read(p)
	c.n += int64(n)
	return n, err
}
