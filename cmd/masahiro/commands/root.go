package commands

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"masahiro/internal/app"
	"masahiro/internal/domain"
)

var (
	home       string
	passphrase string
	logLevel   string
	logFormat  string
	appCtx     *app.Wire
)

// Execute runs the CLI with os.Args.
func Execute() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "masahiro",
		Short:        "Per-contact encrypted messages over any channel",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if home == "" {
				dir, err := app.DefaultHome()
				if err != nil {
					return err
				}
				home = dir
			}
			cfg, err := app.LoadConfig(home)
			if err != nil {
				return err
			}
			flags := cmd.Flags()
			if flags.Changed("passphrase") {
				cfg.Passphrase = passphrase
			}
			if flags.Changed("log-level") {
				cfg.LogLevel = logLevel
			}
			if flags.Changed("log-format") {
				cfg.LogFormat = logFormat
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			log, err := app.NewLogger(cmd.ErrOrStderr(), cfg.LogLevel, cfg.LogFormat)
			if err != nil {
				return err
			}
			passphrase = cfg.Passphrase
			appCtx, err = app.NewWire(cfg, log)
			return err
		},
	}

	home, passphrase, logLevel, logFormat = "", "", "", ""
	root.PersistentFlags().StringVar(&home, "home", "", "state dir (default $MASAHIRO_HOME or ~/.masahiro)")
	root.PersistentFlags().StringVarP(&passphrase, "passphrase", "p", "",
		"passphrase protecting the keychain (or "+app.EnvPassphrase+")")
	root.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level (debug, info, warn, error)")
	root.PersistentFlags().StringVar(&logFormat, "log-format", "", "log format (console, json)")

	root.AddCommand(keyCmd(), contactCmd(), encryptCmd(), decryptCmd())
	return root
}

func requirePassphrase() error {
	if passphrase == "" {
		return fmt.Errorf("passphrase required (-p or %s)", app.EnvPassphrase)
	}
	return nil
}

var errAmbiguousContact = errors.New("more than one contact matches")

// resolveContact finds a contact by exact id, unique id prefix, or unique
// case-insensitive name.
func resolveContact(ref string) (domain.Contact, error) {
	ref = strings.TrimSpace(ref)
	if c, ok := appCtx.Contacts.Contact(domain.ContactID(ref)); ok {
		return c, nil
	}

	var matches []domain.Contact
	for _, c := range appCtx.Contacts.Contacts() {
		if strings.HasPrefix(c.ID.String(), ref) || strings.EqualFold(c.Name, ref) {
			matches = append(matches, c)
		}
	}
	switch len(matches) {
	case 0:
		return domain.Contact{}, fmt.Errorf("no contact matches %q", ref)
	case 1:
		return matches[0], nil
	default:
		return domain.Contact{}, fmt.Errorf("%w %q", errAmbiguousContact, ref)
	}
}
