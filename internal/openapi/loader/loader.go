package loader

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	pkgopenapi "github.com/goliatone/go-formguard/pkg/openapi"
)

// MaxDocumentBytes caps the size of a document from any source.
const MaxDocumentBytes = 8 << 20

type readFunc func(ctx context.Context, location string) ([]byte, error)

// Loader implements pkgopenapi.Loader. Each source kind is read by its own
// strategy; fs and URL strategies exist only when configured.
type Loader struct {
	readers map[pkgopenapi.SourceKind]readFunc
}

var _ pkgopenapi.Loader = (*Loader)(nil)

// New constructs a Loader from pre-resolved options.
func New(options pkgopenapi.LoaderOptions) pkgopenapi.Loader {
	l := &Loader{
		readers: map[pkgopenapi.SourceKind]readFunc{
			pkgopenapi.SourceKindFile: readFile,
		},
	}
	if options.FileSystem != nil {
		l.readers[pkgopenapi.SourceKindFS] = fsReader(options.FileSystem)
	}
	if client := httpClient(options); client != nil {
		l.readers[pkgopenapi.SourceKindURL] = httpReader(client, options.RequestTimeout)
	}
	return l
}

func httpClient(options pkgopenapi.LoaderOptions) *http.Client {
	switch {
	case options.HTTPClient != nil:
		clone := *options.HTTPClient
		if options.RequestTimeout > 0 && clone.Timeout == 0 {
			clone.Timeout = options.RequestTimeout
		}
		return &clone
	case options.AllowHTTPFallback:
		return &http.Client{Timeout: options.RequestTimeout}
	default:
		return nil
	}
}

// Load reads src and wraps its payload in a Document.
func (l *Loader) Load(ctx context.Context, src pkgopenapi.Source) (pkgopenapi.Document, error) {
	if src == nil {
		return pkgopenapi.Document{}, errors.New("openapi loader: source is nil")
	}
	if err := ctx.Err(); err != nil {
		return pkgopenapi.Document{}, err
	}

	read, ok := l.readers[src.Kind()]
	if !ok {
		return pkgopenapi.Document{}, fmt.Errorf("openapi loader: %s sources are not enabled", src.Kind())
	}
	if src.Location() == "" {
		return pkgopenapi.Document{}, fmt.Errorf("openapi loader: %s source has no location", src.Kind())
	}

	data, err := read(ctx, src.Location())
	if err != nil {
		return pkgopenapi.Document{}, err
	}
	return pkgopenapi.NewDocument(src, data)
}
