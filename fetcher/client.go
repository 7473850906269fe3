package fetcher

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/publicsuffix"

	"thumbnailer/logger"
	"thumbnailer/parser"
)

const (
	// DefaultEndpoint is the random image endpoint used when none is configured.
	DefaultEndpoint = "https://source.unsplash.com/random/?all"

	// DefaultUserAgent is sent with every request.
	DefaultUserAgent = "Mozilla/5.0 (X11; Linux x86_64) thumbnailer"

	// DefaultTimeout bounds a whole request including redirects.
	DefaultTimeout = 30 * time.Second

	maxBodyBytes = 32 << 20
)

// ErrNoImageInPage is returned when an HTML response has no og:image / twitter:image meta tag.
var ErrNoImageInPage = errors.New("no image reference found in HTML response")

// StatusError is returned for non-2xx responses.
type StatusError struct {
	URL        string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status code %d from %s", e.StatusCode, e.URL)
}

// Options configures a Client.
type Options struct {
	Endpoint   string        // Random image endpoint, DefaultEndpoint when empty
	Timeout    time.Duration // Per request timeout, 30s when zero
	UserAgent  string        // DefaultUserAgent when empty
	HTTPClient *http.Client  // Optional, mainly for tests
	Logger     *logger.Logger

	// MinInterval spaces consecutive random image requests, zero disables it
	MinInterval time.Duration
}

// Result is a resolved remote image.
type Result struct {
	URL       string      // Final resource location after redirects
	Image     image.Image // Decoded pixels
	MediaType string      // e.g. "image/jpeg"
}

// Client resolves random images over HTTP.
// It issues one GET to the endpoint and follows redirects; the final request URL is
// the resolved image location. No retries are attempted.
type Client struct {
	endpoint   string
	userAgent  string
	httpClient *http.Client
	limiter    *RateLimiter
	log        *logger.Logger
}

// NewClient creates a new random image client.
func NewClient(opts Options) (*Client, error) {
	endpoint := opts.Endpoint
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	if _, err := url.ParseRequestURI(endpoint); err != nil {
		return nil, fmt.Errorf("invalid random image endpoint %q: %w", endpoint, err)
	}

	userAgent := opts.UserAgent
	if userAgent == "" {
		userAgent = DefaultUserAgent
	}

	// Create cookie jar so image CDNs that set session cookies on redirect keep working
	jar, err := cookiejar.New(&cookiejar.Options{
		PublicSuffixList: publicsuffix.List,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create cookie jar: %w", err)
	}

	var httpClient *http.Client
	if opts.HTTPClient != nil {
		clientCopy := *opts.HTTPClient
		httpClient = &clientCopy
	} else {
		timeout := opts.Timeout
		if timeout <= 0 {
			timeout = DefaultTimeout
		}
		httpClient = &http.Client{Timeout: timeout}
	}
	if httpClient.Jar == nil {
		httpClient.Jar = jar
	}

	return &Client{
		endpoint:   endpoint,
		userAgent:  userAgent,
		httpClient: httpClient,
		limiter:    NewRateLimiter(opts.MinInterval),
		log:        opts.Logger.Component("fetcher"),
	}, nil
}

// Endpoint returns the configured random image endpoint.
func (c *Client) Endpoint() string {
	return c.endpoint
}

// ResolveRandomImage requests the random image endpoint and returns the resolved image.
// When the endpoint answers with an HTML page instead of an image, the page's
// og:image (or twitter:image) is fetched instead.
func (c *Client) ResolveRandomImage(ctx context.Context) (Result, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return Result{}, err
	}

	body, finalURL, contentType, err := c.get(ctx, c.endpoint)
	if err != nil {
		return Result{}, err
	}

	if isHTML(contentType, body) {
		imageURL, err := extractImageURL(body, finalURL)
		if err != nil {
			return Result{}, err
		}
		c.log.Debugf("endpoint returned HTML, following %s", imageURL)
		return c.FetchImage(ctx, imageURL)
	}

	return c.decodeResult(body, finalURL)
}

// FetchImage downloads and decodes a single image URL.
func (c *Client) FetchImage(ctx context.Context, imageURL string) (Result, error) {
	body, finalURL, _, err := c.get(ctx, imageURL)
	if err != nil {
		return Result{}, err
	}
	return c.decodeResult(body, finalURL)
}

func (c *Client) decodeResult(body []byte, finalURL *url.URL) (Result, error) {
	img, mediaType, err := parser.DecodeImage(body)
	if err != nil {
		return Result{}, fmt.Errorf("failed to decode image from %s: %w", finalURL, err)
	}

	c.log.Infof("resolved random image %s (%s, %dx%d)", finalURL, mediaType, img.Bounds().Dx(), img.Bounds().Dy())
	return Result{URL: finalURL.String(), Image: img, MediaType: mediaType}, nil
}

// get performs a single GET request and returns the decompressed body,
// the final URL after redirects and the response Content-Type.
func (c *Client) get(ctx context.Context, targetURL string) ([]byte, *url.URL, string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, targetURL, nil)
	if err != nil {
		return nil, nil, "", fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "image/avif,image/webp,image/png,image/jpeg,image/*;q=0.8,text/html;q=0.5,*/*;q=0.1")
	req.Header.Set("Accept-Encoding", "gzip, br")

	c.log.Debugf("GET %s", targetURL)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, nil, "", err
	}
	defer resp.Body.Close()

	finalURL := resp.Request.URL

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, finalURL, "", &StatusError{URL: finalURL.String(), StatusCode: resp.StatusCode}
	}

	bodyBytes, err := readLimited(resp.Body, maxBodyBytes)
	if err != nil {
		return nil, finalURL, "", fmt.Errorf("failed to read response body: %w", err)
	}

	decompressed, wasCompressed, err := DecompressBody(bodyBytes, resp.Header.Get("Content-Encoding"))
	if err != nil {
		return nil, finalURL, "", fmt.Errorf("failed to decompress response: %w", err)
	}
	if wasCompressed {
		c.log.Debugf("decompressed response: %d → %d bytes", len(bodyBytes), len(decompressed))
	}

	if len(decompressed) == 0 {
		return nil, finalURL, "", fmt.Errorf("empty response body from %s", finalURL)
	}

	return decompressed, finalURL, resp.Header.Get("Content-Type"), nil
}

func isHTML(contentType string, body []byte) bool {
	if strings.HasPrefix(strings.ToLower(contentType), "text/html") {
		return true
	}
	return strings.HasPrefix(http.DetectContentType(body), "text/html")
}

// extractImageURL finds the preview image advertised by an HTML page.
// Relative references are resolved against the page URL.
func extractImageURL(body []byte, pageURL *url.URL) (string, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to parse HTML response: %w", err)
	}

	selectors := []string{
		`meta[property="og:image"]`,
		`meta[property="og:image:url"]`,
		`meta[name="twitter:image"]`,
	}

	for _, sel := range selectors {
		content, ok := doc.Find(sel).First().Attr("content")
		content = strings.TrimSpace(content)
		if !ok || content == "" {
			continue
		}

		ref, err := url.Parse(content)
		if err != nil {
			continue
		}
		return pageURL.ResolveReference(ref).String(), nil
	}

	return "", ErrNoImageInPage
}
