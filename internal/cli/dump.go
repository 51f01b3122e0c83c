package cli

import (
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/CosmWasm/cellvm/internal/runtime/db"
)

// DumpOptions holds flags for the dump command.
type DumpOptions struct {
	*RootOptions
	Prefix string
}

// NewDumpCommand creates the dump command.
func NewDumpCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &DumpOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "dump",
		Short: "List stored cells",
		Long: `List every stored cell as "<address> <value>", both hex encoded, in
address order.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			prefix, err := hex.DecodeString(strings.TrimPrefix(opts.Prefix, "0x"))
			if err != nil {
				return fmt.Errorf("invalid --prefix: %w", err)
			}
			return withSession(opts.RootOptions, cmd, func(s *session) error {
				return dump(cmd, db.New(s.store), prefix)
			})
		},
	}

	cmd.Flags().StringVar(&opts.Prefix, "prefix", "", "only list addresses starting with these hex bytes")

	return cmd
}

func dump(cmd *cobra.Command, store *db.Store, prefix []byte) error {
	it := store.PrefixIterator(prefix)
	defer it.Close()
	for ; it.Valid(); it.Next() {
		fmt.Fprintf(cmd.OutOrStdout(), "%x %x\n", it.Key(), it.Value())
	}
	return it.Error()
}
