package printing

import (
	"context"
	"fmt"
	"os/exec"
	"runtime"
	"sync"
	"time"

	"github.com/ridoystarlord/invctl/prefs"
	"github.com/ridoystarlord/invctl/records"
	"github.com/ridoystarlord/invctl/schema"
	"go.uber.org/zap"
)

// Opener shows a label URL to the operator.
type Opener interface {
	Open(url string) error
}

// BrowserOpener hands the URL to the platform's URL handler without waiting
// for it to exit.
type BrowserOpener struct{}

func (BrowserOpener) Open(url string) error {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", url)
	case "darwin":
		cmd = exec.Command("open", url)
	default:
		cmd = exec.Command("xdg-open", url)
	}
	return cmd.Start()
}

// OverrideSource supplies the device-local print overrides.
type OverrideSource interface {
	PrintOverrides(ctx context.Context, locationID string) (prefs.PrintOverrides, error)
}

type Dispatcher struct {
	BaseURL   string
	Opener    Opener
	Overrides OverrideSource
	Now       func() time.Time
	Logger    *zap.Logger
}

// Print builds the label URL for record and opens it. Opening is
// fire-and-forget: failures are logged, not returned.
func (d *Dispatcher) Print(ctx context.Context, locationID string, record schema.Record, columns schema.ColumnSet, form *schema.PrintForm, percent float64) (string, error) {
	in := Input{Record: record, Columns: columns, Form: form, Percent: percent}
	if d.Overrides != nil {
		o, err := d.Overrides.PrintOverrides(ctx, locationID)
		if err != nil {
			return "", fmt.Errorf("load print overrides: %w", err)
		}
		in.Overrides = o
	}

	now := time.Now
	if d.Now != nil {
		now = d.Now
	}
	base := d.BaseURL
	if base == "" {
		base = DefaultBaseURL
	}
	u, err := BuildURL(base, in, now())
	if err != nil {
		return "", err
	}

	if d.Opener != nil {
		if err := d.Opener.Open(u); err != nil && d.Logger != nil {
			d.Logger.Warn("failed to open label window", zap.String("url", u), zap.Error(err))
		}
	}
	return u, nil
}

// AutoPrintSource reports whether a location prints single hits on its own.
type AutoPrintSource interface {
	AutoPrint(ctx context.Context, locationID string) (bool, error)
}

// AutoPrinter prints the only record of a result set without user action,
// at most once per result set.
type AutoPrinter struct {
	Dispatcher *Dispatcher
	Prefs      AutoPrintSource
	Columns    func() schema.ColumnSet
	Form       *schema.PrintForm
	Logger     *zap.Logger

	mu      sync.Mutex
	lastSeq uint64
	printed bool
}

// Handle is meant as records.View.OnResult. It returns the printed URL, or ""
// when nothing was printed.
func (a *AutoPrinter) Handle(ctx context.Context, res records.Result) string {
	if len(res.Records) != 1 {
		return ""
	}

	a.mu.Lock()
	if a.printed && a.lastSeq == res.Seq {
		a.mu.Unlock()
		return ""
	}
	a.mu.Unlock()

	on, err := a.Prefs.AutoPrint(ctx, res.Params.LocationID)
	if err != nil {
		a.logWarn("failed to read auto-print preference", err)
		return ""
	}
	if !on {
		return ""
	}

	a.mu.Lock()
	if a.printed && a.lastSeq == res.Seq {
		a.mu.Unlock()
		return ""
	}
	a.printed = true
	a.lastSeq = res.Seq
	a.mu.Unlock()

	var columns schema.ColumnSet
	if a.Columns != nil {
		columns = a.Columns()
	}
	u, err := a.Dispatcher.Print(ctx, res.Params.LocationID, res.Records[0], columns, a.Form, 0)
	if err != nil {
		a.logWarn("auto-print failed", err)
		return ""
	}
	return u
}

func (a *AutoPrinter) logWarn(msg string, err error) {
	if a.Logger != nil {
		a.Logger.Warn(msg, zap.Error(err))
	}
}
