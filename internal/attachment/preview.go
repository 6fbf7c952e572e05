package attachment

import (
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var activePreviews = promauto.NewGauge(prometheus.GaugeOpts{
	Name: "qlcc_attachment_previews_active",
	Help: "Preview URLs currently resolvable.",
})

// Preview is the content behind a preview URL.
type Preview struct {
	Name     string
	MimeType string
	Data     []byte
}

// PreviewRegistry hands out temporary URLs for staged files. A token stops
// resolving once it is revoked, expires or is pushed out by newer previews.
type PreviewRegistry struct {
	baseURL string
	entries *expirable.LRU[string, Preview]
}

// NewPreviewRegistry keeps at most size previews for ttl each. URLs are built
// as baseURL + "/previews/" + token.
func NewPreviewRegistry(baseURL string, size int, ttl time.Duration, logger *slog.Logger) *PreviewRegistry {
	if size <= 0 {
		size = 1024
	}
	if ttl <= 0 {
		ttl = 30 * time.Minute
	}
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With(slog.String("component", "previews"))
	onEvict := func(token string, p Preview) {
		activePreviews.Dec()
		logger.Debug("preview revoked", slog.String("token", token), slog.String("name", p.Name))
	}
	return &PreviewRegistry{
		baseURL: strings.TrimRight(baseURL, "/"),
		entries: expirable.NewLRU[string, Preview](size, onEvict, ttl),
	}
}

// Materialize stores p and returns its token and URL.
func (r *PreviewRegistry) Materialize(p Preview) (token, url string) {
	token = uuid.NewString()
	r.entries.Add(token, p)
	activePreviews.Inc()
	return token, r.URL(token)
}

func (r *PreviewRegistry) URL(token string) string {
	return r.baseURL + "/previews/" + token
}

// Open returns the preview behind token.
func (r *PreviewRegistry) Open(token string) (Preview, bool) {
	return r.entries.Get(token)
}

// Revoke drops token. It reports whether the token was still live.
func (r *PreviewRegistry) Revoke(token string) bool {
	return r.entries.Remove(token)
}

func (r *PreviewRegistry) Len() int { return r.entries.Len() }
