package client

import (
	"context"
	"net"
	"net/http"
	"time"

	"github.com/bountyhub/bh/internal/telemetry"
)

// Profile — набор таймаутов для одного HTTP-агента.
//
// ConnectTimeout ограничивает TCP connect и TLS handshake.
// SendTimeout ограничивает каждую запись в соединение: upload,
// который не продвигается дольше SendTimeout, обрывается.
// ReceiveTimeout ограничивает ожидание заголовков ответа и каждое
// чтение тела: скачивание, застрявшее посреди ответа, обрывается.
type Profile struct {
	Name           string
	ConnectTimeout time.Duration
	SendTimeout    time.Duration
	ReceiveTimeout time.Duration
}

var (
	// ControlProfile — метаданные API: короткие таймауты, быстрый отказ.
	ControlProfile = Profile{
		Name:           "control",
		ConnectTimeout: 10 * time.Second,
		SendTimeout:    10 * time.Second,
		ReceiveTimeout: 10 * time.Second,
	}

	// BulkProfile — передача содержимого файлов по pre-signed URL.
	BulkProfile = Profile{
		Name:           "bulk",
		ConnectTimeout: 10 * time.Second,
		SendTimeout:    240 * time.Second,
		ReceiveTimeout: 240 * time.Second,
	}
)

// Total — верхняя граница всего обмена для профиля control.
func (p Profile) Total() time.Duration {
	return p.ConnectTimeout + p.SendTimeout + p.ReceiveTimeout
}

// TransportOptions — обёртки транспорта, общие для обоих профилей.
type TransportOptions struct {
	UserAgent string
	Metrics   *telemetry.TransportMetrics
	Tracing   bool
}

// NewTransport создаёт RoundTripper для профиля.
//
// Порядок обёрток (изнутри наружу): http.Transport → otelhttp →
// prometheus → User-Agent.
func NewTransport(p Profile, opts TransportOptions) http.RoundTripper {
	dialer := &net.Dialer{
		Timeout:   p.ConnectTimeout,
		KeepAlive: 30 * time.Second,
	}

	var rt http.RoundTripper = &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: func(ctx context.Context, network, addr string) (net.Conn, error) {
			conn, err := dialer.DialContext(ctx, network, addr)
			if err != nil {
				return nil, err
			}
			return &deadlineConn{Conn: conn, readTimeout: p.ReceiveTimeout, writeTimeout: p.SendTimeout}, nil
		},
		ForceAttemptHTTP2:     true,
		MaxIdleConns:          10,
		IdleConnTimeout:       idleTimeout(p),
		TLSHandshakeTimeout:   p.ConnectTimeout,
		ResponseHeaderTimeout: p.ReceiveTimeout,
		ExpectContinueTimeout: 1 * time.Second,
	}

	if opts.Tracing {
		rt = telemetry.TraceRoundTripper(p.Name, rt)
	}
	rt = opts.Metrics.InstrumentRoundTripper(p.Name, rt)

	if opts.UserAgent != "" {
		rt = &userAgentTransport{userAgent: opts.UserAgent, next: rt}
	}
	return rt
}

// newControlHTTPClient — агент для вызовов API.
func newControlHTTPClient(opts TransportOptions) *http.Client {
	return &http.Client{
		Transport: NewTransport(ControlProfile, opts),
		Timeout:   ControlProfile.Total(),
	}
}

// newBulkHTTPClient — агент для pre-signed URL. Общего таймаута нет:
// тело скачивается столько, сколько нужно.
func newBulkHTTPClient(opts TransportOptions) *http.Client {
	return &http.Client{
		Transport: NewTransport(BulkProfile, opts),
	}
}

// userAgentTransport выставляет User-Agent на каждый запрос.
type userAgentTransport struct {
	userAgent string
	next      http.RoundTripper
}

func (t *userAgentTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	// RoundTripper не должен менять исходный запрос
	r := req.Clone(req.Context())
	r.Header.Set("User-Agent", t.userAgent)
	return t.next.RoundTrip(r)
}

// idleTimeout держит простаивающее соединение в пуле меньше read deadline,
// иначе ожидающее чтение пула истечёт раньше, чем соединение будет закрыто.
func idleTimeout(p Profile) time.Duration {
	const maxIdle = 90 * time.Second
	if p.ReceiveTimeout <= 0 || p.ReceiveTimeout/2 >= maxIdle {
		return maxIdle
	}
	return p.ReceiveTimeout / 2
}

// deadlineConn продлевает deadline перед каждой операцией: запись
// ограничена SendTimeout, каждое чтение — ReceiveTimeout. Запись сдвигает
// и read deadline: отправленный запрос означает, что ждём ответ.
type deadlineConn struct {
	net.Conn
	readTimeout  time.Duration
	writeTimeout time.Duration
}

func (c *deadlineConn) Read(p []byte) (int, error) {
	if c.readTimeout > 0 {
		if err := c.Conn.SetReadDeadline(time.Now().Add(c.readTimeout)); err != nil {
			return 0, err
		}
	}
	return c.Conn.Read(p)
}

func (c *deadlineConn) Write(p []byte) (int, error) {
	now := time.Now()
	if c.writeTimeout > 0 {
		if err := c.Conn.SetWriteDeadline(now.Add(c.writeTimeout)); err != nil {
			return 0, err
		}
	}
	if c.readTimeout > 0 {
		if err := c.Conn.SetReadDeadline(now.Add(c.writeTimeout + c.readTimeout)); err != nil {
			return 0, err
		}
	}
	return c.Conn.Write(p)
}
