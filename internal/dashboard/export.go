// AngelaMos | 2026
// export.go

package dashboard

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"mime"

	"github.com/carterperez-dev/storefront/internal/core"
)

// Export is a downloadable copy of the stored profile.
type Export struct {
	Filename string
	Body     []byte
}

// ContentDisposition quotes or RFC 2231 encodes the filename as needed.
func (e *Export) ContentDisposition() string {
	return mime.FormatMediaType("attachment", map[string]string{
		"filename": e.Filename,
	})
}

// ExportFilename is store-profile-<storeName>.json, or
// store-profile-export.json when the store is unnamed.
func ExportFilename(storeName string) string {
	if storeName == "" {
		storeName = "export"
	}
	return fmt.Sprintf("store-profile-%s.json", storeName)
}

// Export reads the profile fresh from the store and pretty-prints it.
func (d *Dashboard) Export(ctx context.Context) (*Export, error) {
	ctx, span := core.Tracer("dashboard").Start(ctx, "dashboard.Export")
	defer span.End()

	if !d.Permissions().CanExport {
		d.notify(errorNotice(MsgExportDenied, d.svc.now()))
		return nil, ErrExportForbidden
	}

	p, err := d.svc.profiles.Get(ctx, d.user.ID)
	if errors.Is(err, core.ErrNotFound) {
		d.notify(errorNotice(MsgNoProfileToExport, d.svc.now()))
		return nil, ErrNothingToExport
	}
	if err != nil {
		core.SetSpanError(ctx, err)
		d.notify(errorNotice(MsgExportFailed, d.svc.now()))
		return nil, fmt.Errorf("export profile: %w", err)
	}

	body, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		d.notify(errorNotice(MsgExportFailed, d.svc.now()))
		return nil, fmt.Errorf("encode export: %w", err)
	}

	return &Export{
		Filename: ExportFilename(p.StoreName),
		Body:     body,
	}, nil
}
