package links

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/rs/zerolog/log"

	"secondbrain/internal/models"
	"secondbrain/internal/utils"
)

const defaultResolverTimeout = 8 * time.Second

// Metadata is the best-effort result of fetching a URL. Empty fields mean
// the page did not provide them or the fetch failed; callers apply fallbacks.
type Metadata struct {
	Title       string
	Description string
	Thumbnail   string
}

// Resolver fetches display metadata for saved URLs. Resolve never returns an
// error: every failure mode degrades to an empty Metadata so that saving an
// item can never fail because of an unreachable page.
type Resolver struct {
	client *http.Client
}

func NewResolver() *Resolver {
	timeout := defaultResolverTimeout
	if v := os.Getenv("RESOLVER_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			timeout = d
		} else {
			log.Warn().Str("RESOLVER_TIMEOUT", v).Msg("Invalid resolver timeout, using default")
		}
	}
	return &Resolver{client: &http.Client{Timeout: timeout}}
}

// Resolve performs a single GET of the target URL and extracts a title,
// description and thumbnail from its open-graph and standard meta tags.
// For known providers the thumbnail comes from the provider's predictable
// image URL instead of the fetched page.
func (r *Resolver) Resolve(ctx context.Context, rawURL string, c Classification) Metadata {
	var meta Metadata

	if c.Type == models.ContentTypeYouTube && c.EmbedID != "" {
		meta.Thumbnail = fmt.Sprintf("https://img.youtube.com/vi/%s/hqdefault.jpg", c.EmbedID)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		log.Debug().Err(err).Str("url", rawURL).Msg("Metadata fetch skipped: bad request URL")
		return meta
	}
	req.Header.Set("User-Agent", "SecondBrainBot/1.0 (+metadata)")

	resp, err := r.client.Do(req)
	if err != nil {
		utils.MetadataFetchesTotal.WithLabelValues("error").Inc()
		log.Debug().Err(err).Str("url", rawURL).Msg("Metadata fetch failed")
		return meta
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		utils.MetadataFetchesTotal.WithLabelValues("error").Inc()
		log.Debug().Int("status", resp.StatusCode).Str("url", rawURL).Msg("Metadata fetch returned non-2xx")
		return meta
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		utils.MetadataFetchesTotal.WithLabelValues("error").Inc()
		log.Debug().Err(err).Str("url", rawURL).Msg("Metadata parse failed")
		return meta
	}

	meta.Title = firstNonEmpty(
		metaContent(doc, `meta[property="og:title"]`),
		strings.TrimSpace(doc.Find("title").First().Text()),
	)
	meta.Description = firstNonEmpty(
		metaContent(doc, `meta[property="og:description"]`),
		metaContent(doc, `meta[name="description"]`),
	)
	if meta.Thumbnail == "" {
		meta.Thumbnail = metaContent(doc, `meta[property="og:image"]`)
	}

	utils.MetadataFetchesTotal.WithLabelValues("success").Inc()
	return meta
}

func metaContent(doc *goquery.Document, selector string) string {
	content, _ := doc.Find(selector).First().Attr("content")
	return strings.TrimSpace(content)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
