// Command itms is a terminal front-end for the ITMS client core: it drives
// the same facade and session machine the browser UI would, against either
// the built-in mock backend or a real server.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	itmsclient "github.com/itmsdev/itms-client"
	"github.com/itmsdev/itms-client/api"
	"github.com/itmsdev/itms-client/api/httpapi"
	"github.com/itmsdev/itms-client/api/mockapi"
	"github.com/itmsdev/itms-client/core"
	"github.com/itmsdev/itms-client/core/session"
	logsvc "github.com/itmsdev/itms-client/services/logger"
	"github.com/itmsdev/itms-client/storage/kv"
)

// keySessionToken persists the bearer token between invocations when
// talking to a real backend; the mock facade keeps its own token key.
const keySessionToken = "itms_cli_token"

type commandLine struct {
	conf  *core.Config
	log   core.Logger
	store kv.Store
	api   *api.API
	http  *httpapi.Client // nil in mock mode
	sess  *session.Session
}

func (cli *commandLine) setup(*cobra.Command, []string) error {
	cli.conf = core.NewConfig()
	if cli.conf.StatePath == "" {
		cli.conf.StatePath = defaultStatePath()
	}
	cli.log = logsvc.NewZerologLogger(cli.conf)

	store, err := itmsclient.OpenStore(cli.conf)
	if err != nil {
		return err
	}
	cli.store = store

	if cli.conf.UseMockAPI {
		cli.api = mockapi.New(cli.conf, store)
	} else {
		token, err := kv.GetString(store, keySessionToken)
		if err != nil {
			return err
		}
		cli.http = httpapi.NewClient(cli.conf.APIBaseURL, httpapi.WithToken(token))
		cli.api = httpapi.NewWithClient(cli.http)
	}
	cli.sess = session.New(cli.api.Auth, cli.log)
	return nil
}

// saveToken persists (or drops) the network token; no-op in mock mode.
func (cli *commandLine) saveToken() error {
	if cli.http == nil {
		return nil
	}
	if token := cli.http.Token(); token != "" {
		return cli.store.Set(keySessionToken, token)
	}
	return cli.store.Remove(keySessionToken)
}

func defaultStatePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "itms-state.json"
	}
	return filepath.Join(home, ".itms", "state.json")
}

func main() {
	cli := &commandLine{}

	rootCmd := &cobra.Command{
		Use:               "itms",
		Short:             "Internal Training Management System client",
		PersistentPreRunE: cli.setup,
		SilenceUsage:      true,
	}
	rootCmd.AddCommand(
		cli.loginCmd(),
		cli.verifyOTPCmd(),
		cli.whoamiCmd(),
		cli.logoutCmd(),
		cli.forgotPasswordCmd(),
		cli.resetPasswordCmd(),
		cli.coursesCmd(),
		cli.schedulesCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
