package commands

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"masahiro/internal/domain"
)

func contactCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "contact",
		Aliases: []string{"contacts"},
		Short:   "Manage contacts",
	}
	cmd.AddCommand(contactAddCmd(), contactListCmd(), contactRemoveCmd(), contactKeyCmd())
	return cmd
}

// contact add <name> <public-key>: the key shown by `key show` becomes the
// one this contact knows you by.
func contactAddCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "add <name> <public-key>",
		Short: "Add a contact and bind your currently shown key to it",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requirePassphrase(); err != nil {
				return err
			}
			c, err := appCtx.Contacts.AddContact(args[0], args[1])
			if err != nil {
				return err
			}
			mine, err := appCtx.Identity.PublicKey(c.ID)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Contact added.\nID: %s\nYour key for %s: %s\n", c.ID, c.Name, mine)
			return nil
		},
	}
}

func contactListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List contacts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			contacts := appCtx.Contacts.Contacts()
			if len(contacts) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No contacts.")
				return nil
			}
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tNAME\tADDED\tPUBLIC KEY")
			for _, c := range contacts {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", c.ID, c.Name, c.CreatedAt.Local().Format(time.DateOnly), c.PublicKey)
			}
			return tw.Flush()
		},
	}
}

func contactRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "remove <contact>...",
		Aliases: []string{"rm"},
		Short:   "Delete contacts and the keys bound to them",
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requirePassphrase(); err != nil {
				return err
			}
			ids := make([]domain.ContactID, 0, len(args))
			for _, ref := range args {
				c, err := resolveContact(ref)
				if err != nil {
					return err
				}
				ids = append(ids, c.ID)
			}
			if err := appCtx.Contacts.DeleteContacts(ids...); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed %d contact(s).\n", len(ids))
			return nil
		},
	}
}

func contactKeyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "key <contact>",
		Short: "Print the public key a contact knows you by",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requirePassphrase(); err != nil {
				return err
			}
			c, err := resolveContact(args[0])
			if err != nil {
				return err
			}
			pk, err := appCtx.Identity.PublicKey(c.ID)
			if err != nil {
				return err
			}
			return printKey(cmd.OutOrStdout(), pk)
		},
	}
}
