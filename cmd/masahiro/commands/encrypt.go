package commands

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"masahiro/internal/domain"
	"masahiro/internal/services/message"
)

var (
	toContact   string
	fromContact string
	pqMode      bool
)

// modeFlag returns the mode selected by --pq. PQ only changes the key
// derivation labels; it adds no post-quantum protection.
func modeFlag() domain.Mode {
	if pqMode {
		return domain.ModePQ
	}
	return domain.ModeClassic
}

// messageArg reads the message argument, or stdin when it is "-".
func messageArg(cmd *cobra.Command, arg string) (string, error) {
	if arg != "-" {
		return arg, nil
	}
	b, err := io.ReadAll(cmd.InOrStdin())
	if err != nil {
		return "", err
	}
	return strings.TrimRight(string(b), "\r\n"), nil
}

// encrypt --to <contact> <message>: print an MH1 string for the contact.
func encryptCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "encrypt <message|->",
		Short: "Encrypt a message for a contact",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requirePassphrase(); err != nil {
				return err
			}
			to, err := resolveContact(toContact)
			if err != nil {
				return err
			}
			text, err := messageArg(cmd, args[0])
			if err != nil {
				return err
			}
			out, err := appCtx.Messages.Encrypt(text, to, modeFlag())
			if err != nil {
				appCtx.Log.Debug().Err(err).Msg("encrypt failed")
				return errors.New(message.FailureMessage(err))
			}
			fmt.Fprintln(cmd.OutOrStdout(), out)
			return nil
		},
	}
	toContact, pqMode = "", false
	cmd.Flags().StringVar(&toContact, "to", "", "recipient contact (id, id prefix or name)")
	cmd.Flags().BoolVar(&pqMode, "pq", false, "use the alternate key-derivation labels (not post-quantum)")
	_ = cmd.MarkFlagRequired("to")
	return cmd
}
