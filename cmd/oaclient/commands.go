package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/oaworkspace/oaclient/internal/api"
	"github.com/oaworkspace/oaclient/internal/core/domain"
	"github.com/oaworkspace/oaclient/internal/core/ports"
	"github.com/oaworkspace/oaclient/internal/i18n"
)

const shutdownTimeout = 10 * time.Second

type command struct {
	summary      string
	needsSession bool
	run          func(ctx context.Context, a *app, args []string) error
}

var commands map[string]command

func init() {
	commands = map[string]command{
		"serve":       {summary: "run the local console", run: serveCmd},
		"login":       {summary: "log in: -u <username> -p <password>", run: loginCmd},
		"logout":      {summary: "clear the stored session", run: logoutCmd},
		"whoami":      {summary: "show the stored session", run: whoamiCmd},
		"status":      {summary: "check the backend and print the connection status", run: statusCmd},
		"diagnose":    {summary: "probe the backend with and without credentials", run: diagnoseCmd},
		"workers":     {summary: "list workers: [-name <username>] [-page n] [-size n]", needsSession: true, run: workersCmd},
		"sign-in":     {summary: "record the start of the working day", needsSession: true, run: attendanceCmd(domain.AttendanceIn)},
		"sign-out":    {summary: "record the end of the working day", needsSession: true, run: attendanceCmd(domain.AttendanceOut)},
		"rooms":       {summary: "list meeting rooms", needsSession: true, run: roomsCmd},
		"leave-types": {summary: "list leave types", needsSession: true, run: leaveTypesCmd},
		"apply-leave": {summary: "apply for leave: -type <id> -start YYYY-MM-DD -end YYYY-MM-DD -reason <text>", needsSession: true, run: applyLeaveCmd},
		"profile":     {summary: "show the profile of the logged-in user", needsSession: true, run: profileCmd},
		"lang":        {summary: "show or set the UI language: [en|zh]", run: langCmd},
		"reset":       {summary: "clear all persisted session state", run: resetCmd},
	}
}

func serveCmd(ctx context.Context, a *app, args []string) error {
	fs := flag.NewFlagSet("serve", flag.ContinueOnError)
	addr := fs.String("addr", a.cfg.Console.Addr, "listen address")
	if err := fs.Parse(args); err != nil {
		return err
	}

	e := api.NewRouter(api.Dependencies{
		Auth:     a.auth,
		Office:   a.office,
		Status:   a.status,
		Diag:     a.exec,
		Language: a.language,
		Storage:  a.storage.Store,
		Log:      component(a.log, "console"),
	})

	errCh := make(chan error, 1)
	go func() {
		a.log.Info().Str("addr", *addr).Str("backend", a.cfg.API.BaseURL).Msg("console listening")
		errCh <- e.Start(*addr)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("console: %w", err)
	case <-ctx.Done():
	}

	a.log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return e.Shutdown(shutdownCtx)
}

func loginCmd(ctx context.Context, a *app, args []string) error {
	fs := flag.NewFlagSet("login", flag.ContinueOnError)
	username := fs.String("u", "", "username")
	password := fs.String("p", "", "password")
	if err := fs.Parse(args); err != nil {
		return err
	}

	outcome, err := a.auth.Login(ctx, *username, *password)
	if err != nil {
		return err
	}
	return printJSON(a.out, outcome)
}

func logoutCmd(ctx context.Context, a *app, _ []string) error {
	if err := a.auth.Logout(ctx); err != nil {
		return err
	}
	return printJSON(a.out, map[string]bool{"loggedOut": true})
}

func whoamiCmd(ctx context.Context, a *app, _ []string) error {
	resp := struct {
		Authenticated bool                `json:"authenticated"`
		User          *domain.UserProfile `json:"user,omitempty"`
		StatusLabel   string              `json:"statusLabel,omitempty"`
	}{Authenticated: a.auth.IsAuthenticated(ctx)}
	if user, ok := a.auth.CurrentUser(ctx); ok {
		resp.User = user
		resp.StatusLabel = i18n.StatusLabel(a.language.Get(ctx), user.Status)
	}
	return printJSON(a.out, resp)
}

func statusCmd(ctx context.Context, a *app, _ []string) error {
	if err := a.exec.Probe(ctx); err != nil {
		a.log.Debug().Err(err).Msg("backend probe failed")
	}
	s := a.status.Current()
	resp := struct {
		domain.ConnectionStatus
		Notice string `json:"notice,omitempty"`
	}{ConnectionStatus: s}
	if s.State == domain.ConnectionOffline {
		resp.Notice = i18n.OfflineNotice(a.language.Get(ctx))
	}
	return printJSON(a.out, resp)
}

func diagnoseCmd(ctx context.Context, a *app, _ []string) error {
	return printJSON(a.out, struct {
		Basic        ports.Diagnosis `json:"basic"`
		Credentialed ports.Diagnosis `json:"credentialed"`
	}{
		Basic:        a.exec.Diagnose(ctx, false),
		Credentialed: a.exec.Diagnose(ctx, true),
	})
}

func workersCmd(ctx context.Context, a *app, args []string) error {
	fs := flag.NewFlagSet("workers", flag.ContinueOnError)
	name := fs.String("name", "", "username filter")
	page := fs.Int("page", 1, "page number")
	size := fs.Int("size", 10, "page size")
	if err := fs.Parse(args); err != nil {
		return err
	}

	res, err := a.office.Workers(ctx, ports.WorkerQuery{PageNum: *page, PageSize: *size, Username: *name})
	if err != nil {
		return err
	}
	return printJSON(a.out, envelopeOf(res))
}

func attendanceCmd(kind domain.AttendanceKind) func(context.Context, *app, []string) error {
	return func(ctx context.Context, a *app, _ []string) error {
		rec, err := a.office.Attendance(ctx, kind)
		if err != nil {
			return err
		}
		return printJSON(a.out, rec)
	}
}

func roomsCmd(ctx context.Context, a *app, _ []string) error {
	return printJSON(a.out, envelopeOf(a.office.MeetingRooms(ctx)))
}

func leaveTypesCmd(ctx context.Context, a *app, _ []string) error {
	return printJSON(a.out, envelopeOf(a.office.LeaveTypes(ctx)))
}

func applyLeaveCmd(ctx context.Context, a *app, args []string) error {
	fs := flag.NewFlagSet("apply-leave", flag.ContinueOnError)
	typeID := fs.Int64("type", 0, "leave type id")
	start := fs.String("start", "", "first day (YYYY-MM-DD)")
	end := fs.String("end", "", "last day (YYYY-MM-DD)")
	reason := fs.String("reason", "", "reason")
	if err := fs.Parse(args); err != nil {
		return err
	}

	out, err := a.office.ApplyLeave(ctx, domain.LeaveApplication{
		LeaveTypeID: *typeID,
		StartTime:   *start,
		EndTime:     *end,
		Reason:      *reason,
	})
	if err != nil {
		return err
	}
	return printJSON(a.out, out)
}

func profileCmd(ctx context.Context, a *app, _ []string) error {
	res, err := a.office.Profile(ctx)
	if err != nil {
		return err
	}
	return printJSON(a.out, envelopeOf(res))
}

func langCmd(ctx context.Context, a *app, args []string) error {
	if len(args) > 0 {
		lang, ok := i18n.Match(args[0])
		if !ok {
			lang = domain.Language(args[0])
		}
		if err := a.language.Set(ctx, lang); err != nil {
			return err
		}
	}
	return printJSON(a.out, map[string]domain.Language{"language": a.language.Get(ctx)})
}

func resetCmd(ctx context.Context, a *app, _ []string) error {
	if err := a.auth.Logout(ctx); err != nil {
		return err
	}
	return printJSON(a.out, map[string]bool{"reset": true})
}

type envelope[T any] struct {
	Code      int    `json:"code"`
	Msg       string `json:"msg"`
	Data      T      `json:"data"`
	Synthetic bool   `json:"synthetic"`
}

func envelopeOf[T any](r domain.Result[T]) envelope[T] {
	return envelope[T]{Code: r.Code, Msg: r.Msg, Data: r.Data, Synthetic: r.Synthetic()}
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
