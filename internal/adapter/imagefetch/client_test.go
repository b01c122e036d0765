package imagefetch

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"syscall"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_Fetch(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/ok.jpg", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "image/jpeg")
		_, _ = w.Write([]byte("jpeg-bytes"))
	})
	mux.HandleFunc("/page.html", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write([]byte("<html></html>"))
	})
	mux.HandleFunc("/big.png", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "image/png")
		_, _ = w.Write(make([]byte, 64))
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	// httptest слушает 127.0.0.1, поэтому проверку адресов здесь выключаем
	c := newClient(5*time.Second, nil)
	ctx := context.Background()

	t.Run("Image", func(t *testing.T) {
		body, contentType, err := c.Fetch(ctx, srv.URL+"/ok.jpg")
		require.NoError(t, err)
		defer body.Close()

		data, err := io.ReadAll(body)
		require.NoError(t, err)
		assert.Equal(t, "jpeg-bytes", string(data))
		assert.Equal(t, "image/jpeg", contentType)
	})

	t.Run("NotFound", func(t *testing.T) {
		_, _, err := c.Fetch(ctx, srv.URL+"/missing.jpg")
		assert.Error(t, err)
	})

	t.Run("NotAnImage", func(t *testing.T) {
		_, _, err := c.Fetch(ctx, srv.URL+"/page.html")
		assert.Error(t, err)
	})

	t.Run("TooLarge", func(t *testing.T) {
		small := newClient(5*time.Second, nil)
		small.maxSize = 16
		_, _, err := small.Fetch(ctx, srv.URL+"/big.png")
		assert.Error(t, err)
	})
}

func TestClient_FetchRejectsInternalHosts(t *testing.T) {
	var hits int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		w.Header().Set("Content-Type", "image/jpeg")
		_, _ = w.Write([]byte("secret"))
	}))
	defer srv.Close()

	_, _, err := NewClient(5*time.Second).Fetch(context.Background(), srv.URL+"/ok.jpg")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrForbiddenAddress)
	assert.Zero(t, hits)
}

func TestClient_FetchRejectsRedirectToInternalHost(t *testing.T) {
	internal := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "image/jpeg")
		_, _ = w.Write([]byte("metadata"))
	}))
	defer internal.Close()

	public := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, internal.URL+"/latest/meta-data", http.StatusFound)
	}))
	defer public.Close()

	// первый хост считаем публичным, всё остальное на loopback запрещено
	publicAddr := public.Listener.Addr().String()
	c := newClient(5*time.Second, func(network, address string, raw syscall.RawConn) error {
		if address == publicAddr {
			return nil
		}
		return publicOnly(network, address, raw)
	})

	_, _, err := c.Fetch(context.Background(), public.URL+"/cafe.jpg")
	assert.ErrorIs(t, err, ErrForbiddenAddress)
}

func TestPublicOnly(t *testing.T) {
	tests := []struct {
		address string
		allowed bool
	}{
		{"127.0.0.1:80", false},
		{"[::1]:443", false},
		{"10.1.2.3:80", false},
		{"172.16.0.10:80", false},
		{"192.168.1.1:80", false},
		{"169.254.169.254:80", false},
		{"100.64.0.1:80", false},
		{"0.0.0.0:80", false},
		{"[fe80::1]:80", false},
		{"[fd00::1]:80", false},
		{"[::ffff:127.0.0.1]:80", false},
		{"224.0.0.1:80", false},
		{"93.184.216.34:443", true},
		{"[2606:2800:220:1:248:1893:25c8:1946]:443", true},
	}

	for _, tt := range tests {
		t.Run(tt.address, func(t *testing.T) {
			err := publicOnly("tcp", tt.address, nil)
			if tt.allowed {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, ErrForbiddenAddress)
			}
		})
	}
}
