package commands

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"masahiro/internal/crypto"
)

func keyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "key",
		Short: "Show or rotate the key offered to the next contact",
	}
	cmd.AddCommand(keyShowCmd(), keyRotateCmd())
	return cmd
}

func keyShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the public key to share with a new contact",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requirePassphrase(); err != nil {
				return err
			}
			pk, err := appCtx.Identity.PendingPublicKey()
			if err != nil {
				return err
			}
			return printKey(cmd.OutOrStdout(), pk)
		},
	}
}

func keyRotateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rotate",
		Short: "Discard the shared-but-unused key and generate a new one",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requirePassphrase(); err != nil {
				return err
			}
			if err := appCtx.Identity.RotatePendingIdentity(); err != nil {
				return err
			}
			pk, err := appCtx.Identity.PendingPublicKey()
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Key rotated.")
			return printKey(cmd.OutOrStdout(), pk)
		},
	}
}

func printKey(w io.Writer, pk string) error {
	raw, err := crypto.FromBase64URL(pk)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, "Public key:  %s\nFingerprint: %s\n", pk, crypto.Fingerprint(raw))
	return err
}
