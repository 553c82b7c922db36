package http

import "net/http"

type headerTransport struct {
	headers   map[string]string
	transport http.RoundTripper
}

func (t *headerTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	reqCopy := req.Clone(req.Context())

	for key, value := range t.headers {
		if value != "" {
			reqCopy.Header.Set(key, value)
		}
	}

	return t.transport.RoundTrip(reqCopy)
}

// WithAuthToken sends the token as a bearer Authorization header.
func WithAuthToken(token string) HttpOpts {
	if token == "" {
		return WithStaticHeaders(nil)
	}
	return WithStaticHeaders(map[string]string{"Authorization": "Bearer " + token})
}

// WithStaticHeaders sets the given headers on every outbound request.
// Empty values are skipped.
func WithStaticHeaders(headers map[string]string) HttpOpts {
	return WithTransport(func(rt http.RoundTripper) http.RoundTripper {
		return &headerTransport{
			headers:   headers,
			transport: rt,
		}
	})
}
