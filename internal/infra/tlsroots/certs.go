package tlsroots

import (
	"crypto/tls"
	"fmt"
	"path/filepath"
	"sync/atomic"

	"github.com/yndnr/sealslot-go/internal/telemetry/logger"
)

// CertReloader holds the server key pair and reloads it on demand. A failed
// reload keeps serving the previous pair.
type CertReloader struct {
	certFile string
	keyFile  string
	cert     atomic.Pointer[tls.Certificate]
	logger   logger.Logger
}

// NewCertReloader loads the key pair once and returns a reloader for it.
func NewCertReloader(certFile, keyFile string, l logger.Logger) (*CertReloader, error) {
	if l == nil {
		l = logger.Default()
	}
	r := &CertReloader{certFile: certFile, keyFile: keyFile, logger: l}
	if err := r.Reload(); err != nil {
		return nil, fmt.Errorf("tlsroots: initial load: %w", err)
	}
	return r, nil
}

// Files returns the certificate and key paths.
func (r *CertReloader) Files() (string, string) {
	return r.certFile, r.keyFile
}

// Owns reports whether path is this reloader's certificate or key file.
func (r *CertReloader) Owns(path string) bool {
	p := filepath.Clean(path)
	return sameFile(p, r.certFile) || sameFile(p, r.keyFile)
}

func sameFile(a, b string) bool {
	absB, err := filepath.Abs(b)
	if err != nil {
		return a == filepath.Clean(b)
	}
	return a == absB || a == filepath.Clean(b)
}

// Reload reads the key pair from disk and swaps it in.
func (r *CertReloader) Reload() error {
	cert, err := tls.LoadX509KeyPair(r.certFile, r.keyFile)
	if err != nil {
		r.logger.Error("certificate reload failed", "cert_file", r.certFile, "error", err)
		return fmt.Errorf("load key pair: %w", err)
	}
	r.cert.Store(&cert)
	r.logger.Info("certificate loaded", "cert_file", r.certFile)
	return nil
}

// GetCertificate implements tls.Config.GetCertificate.
func (r *CertReloader) GetCertificate(*tls.ClientHelloInfo) (*tls.Certificate, error) {
	return r.cert.Load(), nil
}

// ServerConfig returns a server TLS config backed by this reloader.
func (r *CertReloader) ServerConfig() *tls.Config {
	return &tls.Config{
		GetCertificate: r.GetCertificate,
		MinVersion:     tls.VersionTLS12,
	}
}
