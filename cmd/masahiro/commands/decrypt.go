package commands

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"masahiro/internal/domain"
	"masahiro/internal/services/message"
)

// decrypt [--from <contact>] <message>: without --from every contact is tried
// in list order.
func decryptCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "decrypt <message|->",
		Short: "Decrypt a message",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requirePassphrase(); err != nil {
				return err
			}
			encoded, err := messageArg(cmd, args[0])
			if err != nil {
				return err
			}

			var (
				from domain.Contact
				text string
			)
			if fromContact != "" {
				from, err = resolveContact(fromContact)
				if err != nil {
					return err
				}
				text, err = appCtx.Messages.Decrypt(encoded, from, modeFlag())
			} else {
				from, text, err = appCtx.Messages.DecryptSearchingAll(encoded, appCtx.Contacts.Contacts(), modeFlag())
			}
			if err != nil {
				ev := appCtx.Log.Debug()
				if !message.IsUserError(err) {
					ev = appCtx.Log.Error()
				}
				ev.Err(err).Msg("decrypt failed")
				return errors.New(message.FailureMessage(err))
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", from.Name, text)
			return nil
		},
	}
	fromContact = ""
	cmd.Flags().StringVar(&fromContact, "from", "", "sender contact (id, id prefix or name); default tries all")
	cmd.Flags().BoolVar(&pqMode, "pq", false, "expect the alternate key-derivation labels (not post-quantum)")
	return cmd
}
