package videosource

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
)

// Metadata is the subset of oEmbed fields the authoring flow cares about.
// Duration is only reported by providers whose oEmbed payload carries it
// (Vimeo and Loom); for the others DurationLabel stays empty.
type Metadata struct {
	Title         string
	DurationLabel string
}

type oembedResponse struct {
	Title    string  `json:"title"`
	Duration float64 `json:"duration"`
}

// MetadataClient fetches video metadata from the provider oEmbed endpoints.
type MetadataClient struct {
	http *resty.Client
}

// NewMetadataClient builds a client with a short timeout; metadata lookups are
// best-effort enrichment and must never stall an authoring request for long.
func NewMetadataClient() *MetadataClient {
	return &MetadataClient{
		http: resty.New().
			SetTimeout(8 * time.Second).
			SetRetryCount(1),
	}
}

// SetBaseClient swaps the underlying resty client, used by tests to point the
// lookups at a stub server.
func (m *MetadataClient) SetBaseClient(c *resty.Client) {
	m.http = c
}

func oembedEndpoint(ref EmbedRef) (string, string, bool) {
	switch ref.Provider {
	case ProviderYouTube:
		return "https://www.youtube.com/oembed", "https://www.youtube.com/watch?v=" + ref.VideoID, true
	case ProviderVimeo:
		return "https://vimeo.com/api/oembed.json", "https://vimeo.com/" + ref.VideoID, true
	case ProviderLoom:
		return "https://www.loom.com/v1/oembed", "https://www.loom.com/share/" + ref.VideoID, true
	}
	return "", "", false
}

// Fetch looks up oEmbed metadata for a resolved embed reference. Uploaded
// assets have no oEmbed endpoint and return empty metadata.
func (m *MetadataClient) Fetch(ctx context.Context, ref EmbedRef) (Metadata, error) {
	endpoint, watchURL, ok := oembedEndpoint(ref)
	if !ok {
		return Metadata{}, nil
	}

	var body oembedResponse
	resp, err := m.http.R().
		SetContext(ctx).
		SetQueryParam("url", watchURL).
		SetQueryParam("format", "json").
		SetResult(&body).
		Get(endpoint)
	if err != nil {
		return Metadata{}, err
	}
	if resp.IsError() {
		return Metadata{}, fmt.Errorf("oembed lookup for %s returned %d", ref.Provider, resp.StatusCode())
	}

	return Metadata{
		Title:         body.Title,
		DurationLabel: FormatDuration(int(body.Duration)),
	}, nil
}

// FormatDuration renders a second count as m:ss or h:mm:ss. Zero or negative
// seconds render as the empty string, meaning "unknown".
func FormatDuration(seconds int) string {
	if seconds <= 0 {
		return ""
	}
	h := seconds / 3600
	m := (seconds % 3600) / 60
	s := seconds % 60
	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%d:%02d", m, s)
}
