package services

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"pilinks/logger"
	"pilinks/models"
)

const enrichmentTimeout = 8 * time.Second

// Stock preview images shown when a link exposes no usable og:image.
var placeholderImages = map[models.Category]string{
	models.CategoryThreads: "https://images.unsplash.com/photo-1695219762635-42049d59045a?auto=format&fit=crop&w=800&q=80",
	models.CategoryReddit:  "https://images.unsplash.com/photo-1662947193630-945763955688?auto=format&fit=crop&w=800&q=80",
	models.CategoryNotion:  "https://images.unsplash.com/photo-1634017839464-5c339ebe3cb4?auto=format&fit=crop&w=800&q=80",
}

const defaultPlaceholderImage = "https://images.unsplash.com/photo-1614850523296-d8c1af93d400?auto=format&fit=crop&w=800&q=80"

// EnrichmentService backfills preview metadata for a submitted link. Fetch
// never fails: any error degrades to placeholder metadata derived from the
// detected category and domain.
type EnrichmentService interface {
	Fetch(ctx context.Context, rawURL string) models.OGMetadata
}

type enrichmentService struct {
	client  *http.Client
	enabled bool
}

func NewEnrichmentService(enabled bool) EnrichmentService {
	return &enrichmentService{
		client:  &http.Client{Timeout: enrichmentTimeout},
		enabled: enabled,
	}
}

func (s *enrichmentService) Fetch(ctx context.Context, rawURL string) models.OGMetadata {
	target := normalizeURL(rawURL)
	domain := domainOf(target)

	if !s.enabled {
		return placeholderMetadata(rawURL, domain)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return placeholderMetadata(rawURL, domain)
	}
	// Some platforms serve bots an empty shell; a browser-ish UA gets the
	// same OG tags a link preview bot would.
	req.Header.Set("User-Agent", "Mozilla/5.0 (compatible; pilinks-preview/1.0)")

	resp, err := s.client.Do(req)
	if err != nil {
		logger.Log.WithError(err).WithField("url", target).Debug("enrichment fetch failed")
		return placeholderMetadata(rawURL, domain)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return placeholderMetadata(rawURL, domain)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return placeholderMetadata(rawURL, domain)
	}

	meta := models.OGMetadata{
		Title:       ogContent(doc, "og:title"),
		Description: ogContent(doc, "og:description"),
		Image:       ogContent(doc, "og:image"),
		Domain:      domain,
	}
	if meta.Title == "" {
		meta.Title = strings.TrimSpace(doc.Find("title").First().Text())
	}
	if meta.Description == "" {
		meta.Description = metaContent(doc, "description")
	}

	fallback := placeholderMetadata(rawURL, domain)
	if meta.Title == "" {
		meta.Title = fallback.Title
	}
	if meta.Description == "" {
		meta.Description = fallback.Description
	}
	if !strings.HasPrefix(meta.Image, "http") {
		meta.Image = fallback.Image
	}

	return meta
}

func ogContent(doc *goquery.Document, property string) string {
	content, _ := doc.Find(fmt.Sprintf(`meta[property=%q]`, property)).First().Attr("content")
	return strings.TrimSpace(content)
}

func metaContent(doc *goquery.Document, name string) string {
	content, _ := doc.Find(fmt.Sprintf(`meta[name=%q]`, name)).First().Attr("content")
	return strings.TrimSpace(content)
}

func placeholderMetadata(rawURL, domain string) models.OGMetadata {
	category := models.DetectCategory(rawURL)
	title := fmt.Sprintf("%s Shared Resource", category)
	if domain != "" {
		title = fmt.Sprintf("%s Shared Resource (%s)", category, domain)
	}

	image, ok := placeholderImages[category]
	if !ok {
		image = defaultPlaceholderImage
	}

	return models.OGMetadata{
		Title:       title,
		Description: "Direct content preview is restricted. Click to view the full post in the official app.",
		Image:       image,
		Domain:      domain,
	}
}

// normalizeURL prepends a https scheme when the submitter left it off.
func normalizeURL(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return raw
	}
	if !strings.HasPrefix(raw, "http://") && !strings.HasPrefix(raw, "https://") {
		return "https://" + raw
	}
	return raw
}

func domainOf(rawURL string) string {
	u, err := url.Parse(normalizeURL(rawURL))
	if err != nil || u.Host == "" {
		return ""
	}
	return strings.TrimPrefix(u.Host, "www.")
}
