package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"paper2plan/internal/errors"
	"paper2plan/internal/gcal"
	"paper2plan/internal/imposition"
	"paper2plan/internal/services"

	"golang.org/x/oauth2"
)

// ExportICSCommand handles "export ics"
type ExportICSCommand struct {
	app          *App
	errorHandler *ErrorHandler

	// Output is the target file; empty or "-" writes to standard output
	Output string
}

// NewExportICSCommand creates a new iCalendar export handler
func NewExportICSCommand(app *App) *ExportICSCommand {
	return &ExportICSCommand{app: app, errorHandler: NewErrorHandler()}
}

// Execute writes every event as an iCalendar file
func (c *ExportICSCommand) Execute(ctx context.Context, args []string) error {
	svc, err := c.app.services()
	if err != nil {
		return err
	}

	if c.Output == "" || c.Output == "-" {
		if _, err := svc.ExportService.WriteICS(c.app.out); err != nil {
			return c.errorHandler.Handle("export calendar", err)
		}
		return nil
	}

	count, err := writeFile(c.Output, func(w io.Writer) (int, error) {
		return svc.ExportService.WriteICS(w)
	})
	if err != nil {
		return c.errorHandler.Handle("export calendar", err)
	}
	c.app.printf("Exported %s to %s\n", plural(count, "event"), c.Output)
	return nil
}

// ExportGoogleCommand handles "export google"
type ExportGoogleCommand struct {
	app          *App
	errorHandler *ErrorHandler

	// Auth prints the consent URL instead of pushing
	Auth bool
	// Code is the authorization code copied from the consent page
	Code string

	connect func(ctx context.Context) (services.EventPusher, error)
}

// NewExportGoogleCommand creates a new Google Calendar push handler
func NewExportGoogleCommand(app *App) *ExportGoogleCommand {
	c := &ExportGoogleCommand{app: app, errorHandler: NewErrorHandler()}
	c.connect = func(ctx context.Context) (services.EventPusher, error) {
		return gcal.Connect(ctx, c.app.planner.Config)
	}
	return c
}

// Execute authorizes with Google or pushes every event to Google Calendar
func (c *ExportGoogleCommand) Execute(ctx context.Context, args []string) error {
	svc, err := c.app.services()
	if err != nil {
		return err
	}

	if c.Auth || c.Code != "" {
		return c.authorize(ctx)
	}

	pusher, err := c.connect(ctx)
	if err != nil {
		return c.errorHandler.Handle("connect to Google Calendar", err)
	}
	result, err := svc.ExportService.PushGoogle(ctx, pusher)
	if err != nil {
		return c.errorHandler.Handle("push to Google Calendar", err)
	}
	c.app.printf("Google Calendar: %d created, %d updated, %d skipped\n", result.Created, result.Updated, result.Skipped)
	return nil
}

func (c *ExportGoogleCommand) authorize(ctx context.Context) error {
	cfg := c.app.planner.Config
	oauthCfg, err := gcal.LoadOAuthConfig(cfg.Google.CredentialsFile)
	if err != nil {
		return c.errorHandler.Handle("load Google credentials", err)
	}

	if c.Code == "" {
		c.app.printf("Open this link, approve access, then run 'p2p export google --code <code>':\n%s\n", gcal.AuthURL(oauthCfg))
		return nil
	}

	if err := exchange(ctx, oauthCfg, c.Code, cfg.Google.TokenFile); err != nil {
		return c.errorHandler.Handle("authorize with Google", err)
	}
	c.app.printf("Authorized. Token saved to %s\n", cfg.Google.TokenFile)
	return nil
}

// exchange is swapped in tests
var exchange = func(ctx context.Context, cfg *oauth2.Config, code, tokenFile string) error {
	return gcal.Exchange(ctx, cfg, code, tokenFile)
}

// PrintCommand handles "print"
type PrintCommand struct {
	app          *App
	errorHandler *ErrorHandler

	// Output is the target HTML file; empty or "-" writes to standard output
	Output string
}

// NewPrintCommand creates a new print handler
func NewPrintCommand(app *App) *PrintCommand {
	return &PrintCommand{app: app, errorHandler: NewErrorHandler()}
}

// Execute renders one side of the foldable booklet sheet
func (c *PrintCommand) Execute(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errors.NewInvalidInputError("command", "print", "usage: p2p print <A|B>")
	}
	side, ok := imposition.ParseSide(args[0])
	if !ok {
		return errors.NewInvalidInputError("side", args[0], "must be A or B")
	}
	svc, err := c.app.services()
	if err != nil {
		return err
	}

	if c.Output == "" || c.Output == "-" {
		if err := svc.PrintService.Render(c.app.out, side); err != nil {
			return c.errorHandler.Handle("render sheet", err)
		}
		return nil
	}

	if _, err := writeFile(c.Output, func(w io.Writer) (int, error) {
		return 0, svc.PrintService.Render(w, side)
	}); err != nil {
		return c.errorHandler.Handle("render sheet", err)
	}
	c.app.printf("Wrote side %s to %s\n%s\n", side, c.Output, side.Instructions())
	return nil
}

// writeFile creates path, runs write and reports the first failure,
// including the one from closing the file
func writeFile(path string, write func(io.Writer) (int, error)) (n int, err error) {
	f, err := os.Create(path)
	if err != nil {
		return 0, fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); err == nil && cerr != nil {
			err = fmt.Errorf("failed to close %s: %w", path, cerr)
		}
	}()
	return write(f)
}
