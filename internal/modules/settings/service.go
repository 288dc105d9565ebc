package settings

import (
	"context"
	"fmt"
	"net"
	"net/smtp"
	"strconv"
	"time"
)

// Dialer probes an SMTP endpoint. Split out so tests do not open sockets.
type Dialer interface {
	TestConnection(ctx context.Context, host string, port int) error
}

// smtpDialer dials and greets the server, then quits. No mail is sent;
// delivery is the bot service's job.
type smtpDialer struct{}

func NewSMTPDialer() Dialer { return smtpDialer{} }

func (smtpDialer) TestConnection(ctx context.Context, host string, port int) error {
	addr := net.JoinHostPort(host, strconv.Itoa(port))
	d := net.Dialer{Timeout: 5 * time.Second}
	conn, err := d.DialContext(ctx, "tcp", addr)
	if err != nil {
		return fmt.Errorf("dial %s: %w", addr, err)
	}
	defer conn.Close()

	client, err := smtp.NewClient(conn, host)
	if err != nil {
		return fmt.Errorf("smtp handshake: %w", err)
	}
	return client.Quit()
}

// Service defines settings business logic.
type Service interface {
	UpsertSMTP(ctx context.Context, storeID int64, req UpsertRequest) (*SMTPSettings, error)
	GetSMTP(ctx context.Context, storeID int64) (*SMTPSettings, error)
	TestSMTP(ctx context.Context, storeID int64) error
	EmailHistory(ctx context.Context, storeID int64, page, limit int) ([]*EmailHistory, error)
	// ResendEmail re-queues a failed entry for the bot service to pick up.
	ResendEmail(ctx context.Context, storeID, id int64) error
	AppSettings(ctx context.Context) (*AppSettings, error)
	UpdateAppSettings(ctx context.Context, s AppSettings) error
	// SeedAppSettings fills in the widget client key from the environment on
	// first boot. A key already managed through the admin endpoint wins.
	SeedAppSettings(ctx context.Context, clientKey string) error
}

type service struct {
	repo   Repository
	dialer Dialer
}

func NewService(repo Repository, dialer Dialer) Service {
	return &service{repo: repo, dialer: dialer}
}

func (s *service) UpsertSMTP(ctx context.Context, storeID int64, req UpsertRequest) (*SMTPSettings, error) {
	if req.Host == "" {
		return nil, fmt.Errorf("host is required")
	}
	if req.Port <= 0 || req.Port > 65535 {
		return nil, fmt.Errorf("port must be between 1 and 65535")
	}

	cfg := &SMTPSettings{
		StoreID:  storeID,
		Host:     req.Host,
		Port:     req.Port,
		Username: req.Username,
		Password: req.Password,
		Sender:   req.Sender,
	}
	if cfg.Password == "" {
		// Keep the stored password when the form is submitted without one.
		existing, err := s.repo.GetSMTP(ctx, storeID)
		if err == nil {
			cfg.Password = existing.Password
		}
	}
	if err := s.repo.UpsertSMTP(ctx, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (s *service) GetSMTP(ctx context.Context, storeID int64) (*SMTPSettings, error) {
	return s.repo.GetSMTP(ctx, storeID)
}

func (s *service) TestSMTP(ctx context.Context, storeID int64) error {
	cfg, err := s.repo.GetSMTP(ctx, storeID)
	if err != nil {
		return fmt.Errorf("no smtp settings configured: %w", err)
	}
	return s.dialer.TestConnection(ctx, cfg.Host, cfg.Port)
}

func (s *service) EmailHistory(ctx context.Context, storeID int64, page, limit int) ([]*EmailHistory, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}
	entries, _, err := s.repo.ListEmailHistory(ctx, storeID, page, limit)
	if err != nil {
		return nil, err
	}
	if entries == nil {
		entries = []*EmailHistory{}
	}
	return entries, nil
}

func (s *service) ResendEmail(ctx context.Context, storeID, id int64) error {
	entry, err := s.repo.GetEmailHistory(ctx, storeID, id)
	if err != nil {
		return fmt.Errorf("email history entry not found: %w", err)
	}
	if entry.Status != EmailFailed {
		return fmt.Errorf("only failed emails can be resent (status: %s)", entry.Status)
	}
	return s.repo.RequeueEmail(ctx, id)
}

func (s *service) AppSettings(ctx context.Context) (*AppSettings, error) {
	return s.repo.GetAppSettings(ctx)
}

func (s *service) UpdateAppSettings(ctx context.Context, settings AppSettings) error {
	if settings.MidtransClientKey == "" {
		return fmt.Errorf("midtrans_client_key is required")
	}
	return s.repo.UpsertAppSettings(ctx, &settings)
}

func (s *service) SeedAppSettings(ctx context.Context, clientKey string) error {
	if clientKey == "" {
		return nil
	}
	current, err := s.repo.GetAppSettings(ctx)
	if err != nil {
		return err
	}
	if current.MidtransClientKey != "" {
		return nil
	}
	return s.repo.UpsertAppSettings(ctx, &AppSettings{MidtransClientKey: clientKey})
}
