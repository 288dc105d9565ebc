package settings

import "context"

// Repository defines data access for settings and email history.
type Repository interface {
	UpsertSMTP(ctx context.Context, s *SMTPSettings) error
	GetSMTP(ctx context.Context, storeID int64) (*SMTPSettings, error)

	ListEmailHistory(ctx context.Context, storeID int64, page, limit int) ([]*EmailHistory, int, error)
	ListAllEmailHistory(ctx context.Context, page, limit int) ([]*EmailHistory, int, error)
	GetEmailHistory(ctx context.Context, storeID, id int64) (*EmailHistory, error)
	RequeueEmail(ctx context.Context, id int64) error

	GetAppSettings(ctx context.Context) (*AppSettings, error)
	UpsertAppSettings(ctx context.Context, s *AppSettings) error
}
