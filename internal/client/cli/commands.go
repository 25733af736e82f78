package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/gaetanosm/lifetrack/internal/common"
	"github.com/gaetanosm/lifetrack/internal/models"
)

func (a *App) printf(format string, args ...any) {
	fmt.Fprintf(os.Stdout, format, args...)
}

// loop reads commands until exit or EOF.
func (a *App) loop(ctx context.Context) error {
	a.printf("Commands: login, register, whoami, sync, install, logout, exit\n")
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		cmd, err := GetSimpleText(a.reader, "", os.Stdout)
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}

		switch strings.ToLower(cmd) {
		case "login":
			a.cmdLogin(ctx)
		case "register":
			a.cmdRegister(ctx)
		case "whoami":
			a.cmdWhoami(ctx)
		case "sync":
			a.cmdSync(ctx)
		case "install":
			a.cmdInstall()
		case "logout":
			a.cmdLogout(ctx)
		case "exit", "quit":
			return nil
		case "":
		default:
			a.printf("Unknown command: %s\n", cmd)
		}
	}
}

func (a *App) cmdLogin(ctx context.Context) {
	name, err := GetSimpleText(a.reader, "Username", os.Stdout)
	if err != nil {
		a.printf("input error: %v\n", err)
		return
	}
	password, err := GetPassword(os.Stdout)
	if err != nil {
		a.printf("input error: %v\n", err)
		return
	}

	sess, err := a.authService.Login(ctx, name, password)
	if err != nil {
		a.printf("Invalid username or password.\n")
		return
	}
	a.current = sess
	a.printf("Logged in as %s\n", sess.DisplayName)
}

func (a *App) cmdRegister(ctx context.Context) {
	name, err := GetSimpleText(a.reader, "Username", os.Stdout)
	if err != nil {
		a.printf("input error: %v\n", err)
		return
	}
	password, err := GetPassword(os.Stdout)
	if err != nil {
		a.printf("input error: %v\n", err)
		return
	}
	roleInput, err := GetSimpleText(a.reader, "Role (standard/coach, default standard)", os.Stdout)
	if err != nil {
		a.printf("input error: %v\n", err)
		return
	}
	role := models.RoleStandard
	if strings.EqualFold(roleInput, string(models.RoleCoach)) {
		role = models.RoleCoach
	}

	sess, err := a.authService.Register(ctx, name, password, role)
	if err != nil {
		if errors.Is(err, common.ErrAlreadyExists) {
			a.printf("Username already in use. Pick another one.\n")
		} else {
			a.printf("Registration failed.\n")
		}
		return
	}
	a.current = sess
	a.printf("Registered as %s\n", sess.DisplayName)
	if sess.Pending {
		a.printf("Saved locally; will sync when the server is reachable.\n")
	}
}

func (a *App) cmdWhoami(ctx context.Context) {
	sess, err := a.authService.CheckSession(ctx)
	if err != nil {
		a.current = nil
		a.printf("Not logged in.\n")
		return
	}
	a.current = sess
	a.printf("%s (%s)", sess.DisplayName, sess.Role)
	if sess.OwnerID != "" {
		a.printf(", coached by %s", sess.OwnerID)
	}
	if sess.Pending {
		a.printf(", sync pending")
	}
	a.printf("\n")
}

func (a *App) cmdSync(ctx context.Context) {
	result, err := a.syncService.ReconcileAll(ctx)
	if err != nil {
		a.printf("Sync failed: %v\n", err)
		return
	}
	a.printf("Synced %d record(s), %d still pending.\n", result.Synced, result.Failed)
}

func (a *App) cmdInstall() {
	event, ok := a.prompts.Consume()
	if !ok {
		a.printf("No install offer is pending.\n")
		return
	}
	a.printf("Install offer accepted for %s.\n", strings.Join(event.Platforms, ", "))
}

func (a *App) cmdLogout(ctx context.Context) {
	if err := a.authService.Logout(ctx); err != nil {
		a.printf("Logout failed: %v\n", err)
		return
	}
	a.current = nil
	a.printf("Logged out.\n")
}
