package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"syscall"
	"time"

	"golang.org/x/term"

	"github.com/alassafsami695-wq/graduation-project-main-sub001/apps/actions"
	"github.com/alassafsami695-wq/graduation-project-main-sub001/core"
	"github.com/alassafsami695-wq/graduation-project-main-sub001/core/user"
)

var (
	readPasswordFunc = term.ReadPassword // mockable

	errHelp = errors.New("help provided")
)

type commandLine struct {
	acts       *actions.Actions
	sessions   core.SessionStore
	notifier   actions.Invalidator
	sessionTTL time.Duration
	migrate    func(ctx context.Context) error // nil unless sessions are kept in Postgres
	out        io.Writer
}

func (cli *commandLine) printUsage() {
	fmt.Fprintln(cli.out, "Usage:")
	fmt.Fprintln(cli.out, "  login -email EMAIL          - log in against the API and store a session; the password is prompted")
	fmt.Fprintln(cli.out, "  logout -session SESSION_ID  - destroy a stored session")
	fmt.Fprintln(cli.out, "  invalidate KEY [KEY...]     - drop cached views on every instance")
	fmt.Fprintln(cli.out, "  migrate                     - create the sessions database and tables")
}

func (cli *commandLine) run(ctx context.Context, args []string) error {
	if len(args) < 2 {
		cli.printUsage()
		return errHelp
	}

	loginCmd := flag.NewFlagSet("login", flag.ContinueOnError)
	loginCmd.SetOutput(cli.out)
	loginEmail := loginCmd.String("email", "", "The user's email. The password will be prompted next.")

	logoutCmd := flag.NewFlagSet("logout", flag.ContinueOnError)
	logoutCmd.SetOutput(cli.out)
	logoutSession := logoutCmd.String("session", "", "The session ID, as found in the session cookie.")

	switch args[1] {
	case "login":
		if err := loginCmd.Parse(args[2:]); err != nil {
			return err
		}
		if *loginEmail == "" {
			loginCmd.Usage()
			return errHelp
		}
		fmt.Fprint(cli.out, "Enter password:")
		pwd, err := readPasswordFunc(int(syscall.Stdin))
		fmt.Fprintln(cli.out)
		if err != nil {
			return err
		}
		if len(pwd) == 0 {
			loginCmd.Usage()
			return errHelp
		}
		return cli.login(ctx, *loginEmail, string(pwd))

	case "logout":
		if err := logoutCmd.Parse(args[2:]); err != nil {
			return err
		}
		if *logoutSession == "" {
			logoutCmd.Usage()
			return errHelp
		}
		return cli.logout(ctx, *logoutSession)

	case "invalidate":
		if len(args) < 3 {
			cli.printUsage()
			return errHelp
		}
		return cli.invalidate(ctx, args[2:])

	case "migrate":
		if cli.migrate == nil {
			return errNoDatabase
		}
		if err := cli.migrate(ctx); err != nil {
			return err
		}
		fmt.Fprintln(cli.out, "sessions database is up to date")
		return nil

	default:
		cli.printUsage()
		return errHelp
	}
}

var errNoDatabase = errors.New("sessions are not kept in a database")

func (cli *commandLine) login(ctx context.Context, email, password string) error {
	res := cli.acts.Login(ctx, user.LoginInput{Email: email, Password: password})
	if !res.Success {
		return errors.New(res.Error())
	}

	sess := res.Data.NewSession()
	if err := cli.sessions.Save(ctx, sess, cli.sessionTTL); err != nil {
		return err
	}
	fmt.Fprintf(cli.out, "logged in as %s (%s)\n", sess.Name, sess.Role)
	fmt.Fprintf(cli.out, "%s=%s\n", core.SessionStorageName, sess.ID)
	return nil
}

func (cli *commandLine) logout(ctx context.Context, id string) error {
	if _, err := cli.sessions.Load(ctx, id); err != nil {
		return err
	}
	if err := cli.sessions.Delete(ctx, id); err != nil {
		return err
	}
	fmt.Fprintln(cli.out, "session destroyed")
	return nil
}

func (cli *commandLine) invalidate(ctx context.Context, args []string) error {
	keys := make([]core.ViewKey, 0, len(args))
	for _, arg := range args {
		if key := core.CleanString(arg, false); key != "" {
			keys = append(keys, core.ViewKey(key))
		}
	}
	if len(keys) == 0 {
		cli.printUsage()
		return errHelp
	}
	cli.notifier.Invalidate(ctx, keys...)
	fmt.Fprintf(cli.out, "invalidated %d view(s)\n", len(keys))
	return nil
}
