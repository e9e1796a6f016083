package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"golang.org/x/oauth2"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	gcsapi "google.golang.org/api/storage/v1"
)

// GCSConfig carries the credentials for a GCS-backed FS. Exactly one of
// TokenSource or CredentialsFile should be set; with neither set, application
// default credentials are used.
type GCSConfig struct {
	// CredentialsFile is a path to a service account JSON key.
	CredentialsFile string
	// TokenSource supplies OAuth2 tokens directly.
	TokenSource oauth2.TokenSource
}

// GCS implements FS over Google Cloud Storage. All paths must be of the form
// gs://bucket/object. GCS has no real directories; a "directory" here is any
// object name prefix, optionally marked by a zero-byte placeholder object
// with a trailing slash.
type GCS struct {
	svc *gcsapi.Service
}

// NewGCS builds a GCS backend from explicit configuration.
func NewGCS(ctx context.Context, cfg GCSConfig) (*GCS, error) {
	var opts []option.ClientOption
	switch {
	case cfg.TokenSource != nil:
		opts = append(opts, option.WithTokenSource(cfg.TokenSource))
	case cfg.CredentialsFile != "":
		opts = append(opts, option.WithCredentialsFile(cfg.CredentialsFile))
	}
	svc, err := gcsapi.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("creating storage service: %w", err)
	}
	return &GCS{svc: svc}, nil
}

// parseGS splits gs://bucket/object into its bucket and object parts.
func parseGS(name string) (bucket, object string, err error) {
	scheme, rest, ok := splitScheme(name)
	if !ok || scheme != "gs" {
		return "", "", fmt.Errorf("not a gs:// path: %s", name)
	}
	bucket, object, _ = strings.Cut(rest, "/")
	if bucket == "" {
		return "", "", fmt.Errorf("missing bucket in %s", name)
	}
	return bucket, strings.TrimSuffix(object, "/"), nil
}

func isNotFound(err error) bool {
	var gerr *googleapi.Error
	return errors.As(err, &gerr) && gerr.Code == 404
}

func (g *GCS) stat(ctx context.Context, bucket, object string) (*gcsapi.Object, error) {
	return g.svc.Objects.Get(bucket, object).Context(ctx).Do()
}

// hasPrefix reports whether any object in bucket starts with prefix.
func (g *GCS) hasPrefix(ctx context.Context, bucket, prefix string) (bool, error) {
	objs, err := g.svc.Objects.List(bucket).Prefix(prefix).MaxResults(1).Context(ctx).Do()
	if err != nil {
		return false, err
	}
	return len(objs.Items) > 0 || len(objs.Prefixes) > 0, nil
}

func (g *GCS) Exists(ctx context.Context, name string) (bool, error) {
	bucket, object, err := parseGS(name)
	if err != nil {
		return false, err
	}
	if object == "" {
		_, err := g.svc.Buckets.Get(bucket).Context(ctx).Do()
		if isNotFound(err) {
			return false, nil
		}
		return err == nil, err
	}
	if _, err := g.stat(ctx, bucket, object); err == nil {
		return true, nil
	} else if !isNotFound(err) {
		return false, err
	}
	// Fall back to treating the name as a directory prefix.
	return g.hasPrefix(ctx, bucket, object+"/")
}

func (g *GCS) IsDir(ctx context.Context, name string) (bool, error) {
	bucket, object, err := parseGS(name)
	if err != nil {
		return false, err
	}
	if object == "" {
		return true, nil
	}
	return g.hasPrefix(ctx, bucket, object+"/")
}

func (g *GCS) Glob(ctx context.Context, pattern string) ([]string, error) {
	bucket, objPattern, err := parseGS(pattern)
	if err != nil {
		return nil, err
	}
	prefix := fixedPrefix(objPattern)

	var matches []string
	err = g.svc.Objects.List(bucket).Prefix(prefix).Pages(ctx, func(objs *gcsapi.Objects) error {
		for _, o := range objs.Items {
			ok, merr := doublestar.Match(objPattern, o.Name)
			if merr != nil {
				return merr
			}
			if ok {
				matches = append(matches, "gs://"+bucket+"/"+o.Name)
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("listing gs://%s/%s: %w", bucket, prefix, err)
	}
	return matches, nil
}

// fixedPrefix returns the literal leading portion of a glob pattern, used to
// narrow the server-side listing.
func fixedPrefix(pattern string) string {
	if i := strings.IndexAny(pattern, "*?[{\\"); i >= 0 {
		return pattern[:i]
	}
	return pattern
}

func (g *GCS) List(ctx context.Context, dir string) ([]string, error) {
	bucket, object, err := parseGS(dir)
	if err != nil {
		return nil, err
	}
	prefix := ""
	if object != "" {
		prefix = object + "/"
	}

	var names []string
	err = g.svc.Objects.List(bucket).Prefix(prefix).Delimiter("/").Pages(ctx, func(objs *gcsapi.Objects) error {
		for _, o := range objs.Items {
			if o.Name == prefix { // directory placeholder
				continue
			}
			names = append(names, path.Base(o.Name))
		}
		for _, p := range objs.Prefixes {
			names = append(names, path.Base(strings.TrimSuffix(p, "/")))
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("listing %s: %w", dir, err)
	}
	return names, nil
}

func (g *GCS) Size(ctx context.Context, name string) (int64, error) {
	bucket, object, err := parseGS(name)
	if err != nil {
		return 0, err
	}
	o, err := g.stat(ctx, bucket, object)
	if err != nil {
		return 0, fmt.Errorf("stat %s: %w", name, err)
	}
	return int64(o.Size), nil
}

// MkdirAll writes a zero-byte placeholder object so the directory shows up in
// delimiter listings even while empty.
func (g *GCS) MkdirAll(ctx context.Context, dir string) error {
	bucket, object, err := parseGS(dir)
	if err != nil {
		return err
	}
	if object == "" {
		return nil
	}
	_, err = g.svc.Objects.Insert(bucket, &gcsapi.Object{Name: object + "/"}).
		Media(bytes.NewReader(nil)).Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("creating %s: %w", dir, err)
	}
	return nil
}

func (g *GCS) RemoveAll(ctx context.Context, name string) error {
	bucket, object, err := parseGS(name)
	if err != nil {
		return err
	}
	if err := g.svc.Objects.Delete(bucket, object).Context(ctx).Do(); err != nil && !isNotFound(err) {
		return fmt.Errorf("deleting %s: %w", name, err)
	}
	return g.svc.Objects.List(bucket).Prefix(object+"/").Pages(ctx, func(objs *gcsapi.Objects) error {
		for _, o := range objs.Items {
			if err := g.svc.Objects.Delete(bucket, o.Name).Context(ctx).Do(); err != nil && !isNotFound(err) {
				return fmt.Errorf("deleting gs://%s/%s: %w", bucket, o.Name, err)
			}
		}
		return nil
	})
}

// Rename moves a single object via server-side copy plus delete. Directory
// renames are not supported on this backend.
func (g *GCS) Rename(ctx context.Context, oldName, newName string) error {
	srcBucket, srcObj, err := parseGS(oldName)
	if err != nil {
		return err
	}
	dstBucket, dstObj, err := parseGS(newName)
	if err != nil {
		return err
	}
	if _, err := g.svc.Objects.Copy(srcBucket, srcObj, dstBucket, dstObj, &gcsapi.Object{}).Context(ctx).Do(); err != nil {
		return fmt.Errorf("copying %s to %s: %w", oldName, newName, err)
	}
	if err := g.svc.Objects.Delete(srcBucket, srcObj).Context(ctx).Do(); err != nil {
		return fmt.Errorf("deleting %s after copy: %w", oldName, err)
	}
	return nil
}

func (g *GCS) Open(ctx context.Context, name string) (io.ReadCloser, error) {
	bucket, object, err := parseGS(name)
	if err != nil {
		return nil, err
	}
	resp, err := g.svc.Objects.Get(bucket, object).Context(ctx).Download()
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", name, err)
	}
	return resp.Body, nil
}

// Create returns a writer that buffers in memory and uploads the object on
// Close. Suitable for the file sizes this tool moves around; large streaming
// uploads should use gsutil instead.
func (g *GCS) Create(ctx context.Context, name string) (io.WriteCloser, error) {
	bucket, object, err := parseGS(name)
	if err != nil {
		return nil, err
	}
	return &gcsWriter{ctx: ctx, svc: g.svc, bucket: bucket, object: object}, nil
}

type gcsWriter struct {
	ctx    context.Context
	svc    *gcsapi.Service
	bucket string
	object string
	buf    bytes.Buffer
}

func (w *gcsWriter) Write(p []byte) (int, error) {
	return w.buf.Write(p)
}

func (w *gcsWriter) Close() error {
	_, err := w.svc.Objects.Insert(w.bucket, &gcsapi.Object{Name: w.object}).
		Media(bytes.NewReader(w.buf.Bytes())).Context(w.ctx).Do()
	if err != nil {
		return fmt.Errorf("uploading gs://%s/%s: %w", w.bucket, w.object, err)
	}
	return nil
}
