package loader

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"time"
)

func readFile(_ context.Context, location string) ([]byte, error) {
	f, err := os.Open(filepath.Clean(location))
	if err != nil {
		return nil, fmt.Errorf("openapi loader: read %s: %w", location, err)
	}
	defer f.Close()
	return readLimited(f, location)
}

func fsReader(files fs.FS) readFunc {
	return func(_ context.Context, location string) ([]byte, error) {
		name := path.Clean(location)
		f, err := files.Open(name)
		if err != nil {
			return nil, fmt.Errorf("openapi loader: read %s: %w", name, err)
		}
		defer f.Close()
		return readLimited(f, name)
	}
}

func httpReader(client *http.Client, timeout time.Duration) readFunc {
	return func(ctx context.Context, location string) ([]byte, error) {
		if timeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, timeout)
			defer cancel()
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, location, nil)
		if err != nil {
			return nil, err
		}
		req.Header.Set("Accept", "application/json, application/yaml;q=0.9, */*;q=0.1")

		resp, err := client.Do(req)
		if err != nil {
			return nil, fmt.Errorf("openapi loader: fetch %s: %w", location, err)
		}
		defer resp.Body.Close()

		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			return nil, fmt.Errorf("openapi loader: fetch %s: unexpected status %s", location, resp.Status)
		}
		return readLimited(resp.Body, location)
	}
}

// readLimited reads r whole, failing when it exceeds MaxDocumentBytes.
func readLimited(r io.Reader, location string) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(r, MaxDocumentBytes+1))
	if err != nil {
		return nil, fmt.Errorf("openapi loader: read %s: %w", location, err)
	}
	if len(data) > MaxDocumentBytes {
		return nil, fmt.Errorf("openapi loader: %s exceeds %d bytes", location, MaxDocumentBytes)
	}
	return data, nil
}
