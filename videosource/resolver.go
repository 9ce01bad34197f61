package videosource

import (
	"fmt"
	"regexp"
	"strings"
)

// Video providers. UPLOAD is a locally hosted asset; the link providers each
// accept several equivalent URL shapes that normalize to one embed reference.
const (
	ProviderUpload  = "UPLOAD"
	ProviderYouTube = "YOUTUBE"
	ProviderVimeo   = "VIMEO"
	ProviderLoom    = "LOOM"
)

// EmbedRef is the canonical, playable representation of a video regardless of
// which equivalent source URL the author supplied.
type EmbedRef struct {
	Provider string `json:"provider"`
	VideoID  string `json:"video_id"`
	EmbedURL string `json:"embed_url"`
}

// Resolution failure reasons.
const (
	ReasonNoIDFound       = "NO_ID_FOUND"
	ReasonUnknownProvider = "UNKNOWN_PROVIDER"
)

// ResolutionError reports that a raw URL could not be normalized. It is a
// recoverable validation failure surfaced to the author, never a panic.
type ResolutionError struct {
	Provider string
	RawURL   string
	Reason   string
}

func (e *ResolutionError) Error() string {
	return fmt.Sprintf("videosource: cannot resolve %s url %q: %s", e.Provider, e.RawURL, e.Reason)
}

// Known URL shapes per provider. First match wins; every shape for one
// provider yields the same canonical embed URL.
var (
	youtubePatterns = []*regexp.Regexp{
		regexp.MustCompile(`youtube\.com/watch\?(?:[^#\s]*&)?v=([A-Za-z0-9_-]{11})(?:[^A-Za-z0-9_-]|$)`),
		regexp.MustCompile(`youtu\.be/([A-Za-z0-9_-]{11})(?:[^A-Za-z0-9_-]|$)`),
		regexp.MustCompile(`youtube\.com/(?:embed|shorts|live)/([A-Za-z0-9_-]{11})(?:[^A-Za-z0-9_-]|$)`),
	}
	vimeoPattern = regexp.MustCompile(`(?:player\.)?vimeo\.com/(?:video/)?(\d{6,12})(?:[/?#]|$)`)
	loomPattern  = regexp.MustCompile(`loom\.com/(?:share|embed)/([a-f0-9]{32})(?:[/?#]|$)`)
)

// Resolve parses a raw URL for the declared provider into a canonical embed
// reference. It is pure and stateless: the same (rawURL, provider) always
// yields the same result. A URL with no recognizable identifier returns a
// *ResolutionError, not a panic.
func Resolve(rawURL, provider string) (EmbedRef, error) {
	trimmed := strings.TrimSpace(rawURL)

	switch provider {
	case ProviderUpload:
		// Any non-empty asset reference is accepted; the upload transport
		// already vetted the file itself.
		if trimmed == "" {
			return EmbedRef{}, &ResolutionError{Provider: provider, RawURL: rawURL, Reason: ReasonNoIDFound}
		}
		return EmbedRef{Provider: provider, VideoID: trimmed, EmbedURL: trimmed}, nil

	case ProviderYouTube:
		for _, re := range youtubePatterns {
			if m := re.FindStringSubmatch(trimmed); m != nil {
				return EmbedRef{
					Provider: provider,
					VideoID:  m[1],
					EmbedURL: "https://www.youtube.com/embed/" + m[1],
				}, nil
			}
		}
		return EmbedRef{}, &ResolutionError{Provider: provider, RawURL: rawURL, Reason: ReasonNoIDFound}

	case ProviderVimeo:
		if m := vimeoPattern.FindStringSubmatch(trimmed); m != nil {
			return EmbedRef{
				Provider: provider,
				VideoID:  m[1],
				EmbedURL: "https://player.vimeo.com/video/" + m[1],
			}, nil
		}
		return EmbedRef{}, &ResolutionError{Provider: provider, RawURL: rawURL, Reason: ReasonNoIDFound}

	case ProviderLoom:
		if m := loomPattern.FindStringSubmatch(trimmed); m != nil {
			return EmbedRef{
				Provider: provider,
				VideoID:  m[1],
				EmbedURL: "https://www.loom.com/embed/" + m[1],
			}, nil
		}
		return EmbedRef{}, &ResolutionError{Provider: provider, RawURL: rawURL, Reason: ReasonNoIDFound}

	default:
		return EmbedRef{}, &ResolutionError{Provider: provider, RawURL: rawURL, Reason: ReasonUnknownProvider}
	}
}

// ValidProvider reports whether p is one of the known video providers.
func ValidProvider(p string) bool {
	switch p {
	case ProviderUpload, ProviderYouTube, ProviderVimeo, ProviderLoom:
		return true
	}
	return false
}
