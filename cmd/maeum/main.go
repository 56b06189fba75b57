// Command maeum is the local client: it keeps the signed-in user in a
// SQLite key/value file and drives the wedding and funeral forms from the
// terminal.
package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/sefazor/maeum-backend/internal/config"
	"github.com/sefazor/maeum-backend/internal/repository"
	"github.com/sefazor/maeum-backend/internal/service"
	"github.com/sefazor/maeum-backend/internal/session"
	jwtPkg "github.com/sefazor/maeum-backend/pkg/jwt"
	"github.com/sefazor/maeum-backend/pkg/kvstore"
	"github.com/sefazor/maeum-backend/pkg/logger"
	"github.com/sefazor/maeum-backend/pkg/qrcode"
	"github.com/sefazor/maeum-backend/pkg/utils"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// localSecret signs tokens when JWT_SECRET is unset. Local tokens never
// leave the machine.
const localSecret = "maeum-local-client"

type app struct {
	backend kvstore.Backend
	session session.Store
	auth    *service.AuthService
	users   *service.UserService
	events  *service.EventService
	share   *service.ShareService
	logger  *zap.Logger

	in  *bufio.Reader
	out io.Writer
}

func openApp(dbPath string, in io.Reader, out io.Writer) (*app, error) {
	cfg, err := config.Parse()
	if err != nil {
		return nil, err
	}
	if dbPath == "" {
		dbPath = cfg.SQLitePath
	}

	log, err := logger.New(cfg.AppEnv)
	if err != nil {
		return nil, err
	}
	if !cfg.IsProduction() {
		log = log.WithOptions(zap.IncreaseLevel(zap.WarnLevel))
	}

	backend, err := kvstore.OpenSQLite(dbPath)
	if err != nil {
		return nil, err
	}

	secret := cfg.JWTSecret
	if secret == "" {
		secret = localSecret
	}
	tokens, err := jwtPkg.NewManager(secret, cfg.JWTIssuer, cfg.TokenTTL)
	if err != nil {
		backend.Close()
		return nil, err
	}

	validator := utils.NewValidator()
	userRepo := repository.NewKVUserRepository(backend)
	eventRepo := repository.NewKVEventRepository(backend)

	return &app{
		backend: backend,
		session: session.NewLocalStore(backend),
		auth:    service.NewAuthService(userRepo, tokens, validator, nil, nil, log),
		users:   service.NewUserService(userRepo, validator),
		events:  service.NewEventService(eventRepo, userRepo, validator, nil, nil, log, cfg.PublicBaseURL),
		share:   service.NewShareService(qrcode.NewQRService(), cfg.PublicBaseURL),
		logger:  log,
		in:      bufio.NewReader(in),
		out:     out,
	}, nil
}

func (a *app) Close() error {
	_ = a.logger.Sync()
	return a.backend.Close()
}

// currentUserID fails with a hint when nobody is signed in.
func (a *app) currentUserID(ctx context.Context) (string, error) {
	user, err := a.auth.CurrentUser(ctx, a.session)
	if err != nil {
		return "", err
	}
	if user == nil {
		return "", fmt.Errorf("not signed in; run `maeum login` first")
	}
	return user.ID, nil
}

// prompt prints label and reads one trimmed line. EOF ends input.
func (a *app) prompt(label string) (string, error) {
	fmt.Fprint(a.out, label)
	line, err := a.in.ReadString('\n')
	if err != nil && (err != io.EOF || line == "") {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// newRootCmd builds the command tree. The returned func closes the store
// opened by whichever command ran; cobra skips post-run hooks on error.
func newRootCmd(in io.Reader, out io.Writer) (*cobra.Command, func() error) {
	var (
		dbPath string
		a      *app
	)
	root := &cobra.Command{
		Use:           "maeum",
		Short:         "Create and share wedding invitations and funeral notices",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var err error
			a, err = openApp(dbPath, in, out)
			return err
		},
	}
	root.SetIn(in)
	root.SetOut(out)
	root.PersistentFlags().StringVar(&dbPath, "db", "", "key/value file (default $SQLITE_PATH or maeum.db)")

	get := func() *app { return a }
	root.AddCommand(
		newRegisterCmd(get),
		newLoginCmd(get),
		newLogoutCmd(get),
		newWhoamiCmd(get),
		newEventsCmd(get),
		newNewCmd(get),
		newEditCmd(get),
		newShareCmd(get),
	)
	closeApp := func() error {
		if a == nil {
			return nil
		}
		err := a.Close()
		a = nil
		return err
	}
	return root, closeApp
}

func main() {
	root, closeApp := newRootCmd(os.Stdin, os.Stdout)
	err := root.Execute()
	if cerr := closeApp(); err == nil {
		err = cerr
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
