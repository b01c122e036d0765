// internal/adapter/imagefetch/client.go
package imagefetch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime"
	"net"
	"net/http"
	"net/netip"
	"strings"
	"syscall"
	"time"
)

// MaxImageSize — картинки больше этого размера не архивируются
const MaxImageSize = 10 << 20

// maxRedirects — сколько редиректов проходим до картинки
const maxRedirects = 3

// ErrForbiddenAddress — URL ведёт на внутренний адрес (loopback, частная сеть, метаданные облака)
var ErrForbiddenAddress = errors.New("image host resolves to a non-public address")

// sharedAddressSpace — 100.64.0.0/10 (carrier-grade NAT), IsPrivate его не покрывает
var sharedAddressSpace = netip.MustParsePrefix("100.64.0.0/10")

// Client скачивает картинки кафе по внешнему URL.
type Client struct {
	httpClient *http.Client // HTTP-клиент для выполнения запросов
	maxSize    int64
}

// NewClient создает новый экземпляр Client, который ходит только на публичные адреса.
// Адрес проверяется при каждом соединении, поэтому редиректы и DNS-ответы
// на внутренние хосты тоже отсекаются.
func NewClient(timeout time.Duration) *Client {
	return newClient(timeout, publicOnly)
}

func newClient(timeout time.Duration, control func(network, address string, c syscall.RawConn) error) *Client {
	dialer := &net.Dialer{Timeout: timeout, Control: control}

	transport := http.DefaultTransport.(*http.Transport).Clone()
	transport.Proxy = nil
	transport.DialContext = dialer.DialContext

	return &Client{
		httpClient: &http.Client{
			Timeout:   timeout,
			Transport: transport,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) >= maxRedirects {
					return fmt.Errorf("stopped after %d redirects", maxRedirects)
				}
				if req.URL.Scheme != "http" && req.URL.Scheme != "https" {
					return fmt.Errorf("redirect to unsupported scheme %q", req.URL.Scheme)
				}
				return nil
			},
		},
		maxSize: MaxImageSize,
	}
}

// publicOnly — net.Dialer.Control, пропускающий только публичные unicast-адреса.
func publicOnly(network, address string, _ syscall.RawConn) error {
	host, _, err := net.SplitHostPort(address)
	if err != nil {
		return fmt.Errorf("%w: %s", ErrForbiddenAddress, address)
	}
	ip, err := netip.ParseAddr(host)
	if err != nil {
		return fmt.Errorf("%w: %s", ErrForbiddenAddress, address)
	}
	ip = ip.Unmap()

	if !ip.IsGlobalUnicast() || ip.IsPrivate() || sharedAddressSpace.Contains(ip) {
		return fmt.Errorf("%w: %s", ErrForbiddenAddress, ip)
	}
	return nil
}

// Fetch выполняет GET и возвращает тело картинки и её Content-Type.
// Тело обрезается до maxSize; ответ не с image/* считается ошибкой.
func (c *Client) Fetch(ctx context.Context, imageURL string) (io.ReadCloser, string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, imageURL, nil)
	if err != nil {
		return nil, "", fmt.Errorf("create image request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, "", fmt.Errorf("fetch image %s: %w", imageURL, err)
	}

	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, "", fmt.Errorf("fetch image %s: unexpected status %d", imageURL, resp.StatusCode)
	}
	if resp.ContentLength > c.maxSize {
		resp.Body.Close()
		return nil, "", fmt.Errorf("fetch image %s: %d bytes exceeds limit", imageURL, resp.ContentLength)
	}

	contentType := resp.Header.Get("Content-Type")
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil || !strings.HasPrefix(mediaType, "image/") {
		resp.Body.Close()
		return nil, "", fmt.Errorf("fetch image %s: unexpected content type %q", imageURL, contentType)
	}

	body := struct {
		io.Reader
		io.Closer
	}{io.LimitReader(resp.Body, c.maxSize), resp.Body}
	return body, contentType, nil
}
