package cloudinary

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"path"
	"strings"

	cld "github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api"
	"github.com/cloudinary/cloudinary-go/v2/api/admin"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/gofiber/fiber/v2"
)

// Documents are uploaded as raw assets so PDFs and images keep their bytes.
const resourceType = "raw"

// Store keeps documents in one Cloudinary folder. Refs are secure URLs.
type Store struct {
	cld    *cld.Cloudinary
	folder string
}

func NewStore(cloud *cld.Cloudinary, folder string) *Store {
	return &Store{cld: cloud, folder: strings.Trim(folder, "/")}
}

func (s *Store) publicID(name string) string {
	if s.folder == "" {
		return name
	}
	return s.folder + "/" + name
}

func (s *Store) Put(ctx context.Context, name, _ string, b []byte) (string, error) {
	overwrite := false
	res, err := s.cld.Upload.Upload(ctx, bytes.NewReader(b), uploader.UploadParams{
		PublicID:     s.publicID(name),
		ResourceType: resourceType,
		Overwrite:    &overwrite,
	})
	if err != nil {
		return "", err
	}
	if res.Error.Message != "" {
		return "", errors.New(res.Error.Message)
	}
	return res.SecureURL, nil
}

func (s *Store) Delete(ctx context.Context, ref string) error {
	res, err := s.cld.Upload.Destroy(ctx, uploader.DestroyParams{
		PublicID:     s.publicID(path.Base(ref)),
		ResourceType: resourceType,
	})
	if err != nil {
		return err
	}
	if res.Error.Message != "" {
		return errors.New(res.Error.Message)
	}
	return nil
}

func (s *Store) asset(ctx context.Context, name string) (*admin.AssetResult, error) {
	res, err := s.cld.Admin.Asset(ctx, admin.AssetParams{
		PublicID:  s.publicID(name),
		AssetType: api.AssetType(resourceType),
	})
	if err != nil {
		return nil, err
	}
	if res.Error.Message != "" {
		return nil, fmt.Errorf("%s: %w", name, fs.ErrNotExist)
	}
	return res, nil
}

func (s *Store) Exists(ctx context.Context, ref string) (bool, error) {
	_, err := s.asset(ctx, path.Base(ref))
	if err == nil {
		return true, nil
	}
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	return false, err
}

func (s *Store) Read(ctx context.Context, name string) ([]byte, error) {
	res, err := s.asset(ctx, name)
	if err != nil {
		return nil, err
	}

	code, body, errs := fiber.Get(res.SecureURL).Bytes()
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	if code == http.StatusNotFound {
		return nil, fmt.Errorf("%s: %w", name, fs.ErrNotExist)
	}
	if code != http.StatusOK {
		return nil, fmt.Errorf("fetch %s: status %d", name, code)
	}
	return body, nil
}
