package cli

import (
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/CosmWasm/cellvm"
	"github.com/CosmWasm/cellvm/internal/contracts/incrementer"
	"github.com/CosmWasm/cellvm/internal/runtime/codec"
)

// NewIncCommand creates the inc command.
func NewIncCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "inc <by>",
		Short: "Add to the counter",
		Long: `Add a uint32 to the counter. The counter wraps around on overflow.

Example:
  cellvm inc 5`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			by, err := strconv.ParseUint(args[0], 10, 32)
			if err != nil {
				return fmt.Errorf("invalid amount %q: %w", args[0], err)
			}
			return invoke(opts, cmd, incrementer.Inc(uint32(by)).Encode(), printCounter)
		},
	}
}

// NewGetCommand creates the get command.
func NewGetCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "get",
		Short: "Print the counter",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return invoke(opts, cmd, incrementer.Get().Encode(), printCounter)
		},
	}
}

// NewInvokeCommand creates the invoke command.
func NewInvokeCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "invoke <hex>",
		Short: "Invoke with a raw input buffer",
		Long: `Invoke the contract with a hex encoded input buffer and print the
returned data, if any, as hex.

Example:
  cellvm invoke 0105000000`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input, err := hex.DecodeString(strings.TrimPrefix(args[0], "0x"))
			if err != nil {
				return fmt.Errorf("invalid input: %w", err)
			}
			return invoke(opts, cmd, input, func(cmd *cobra.Command, data []byte) error {
				fmt.Fprintln(cmd.OutOrStdout(), hex.EncodeToString(data))
				return nil
			})
		},
	}
}

func invoke(opts *RootOptions, cmd *cobra.Command, input []byte, print func(*cobra.Command, []byte) error) error {
	return withSession(opts, cmd, func(s *session) error {
		host := cellvm.NewBufferHost(input)
		report, err := s.vm.Call(host, s.store)
		if err != nil {
			return err
		}
		printReport(cmd, report)
		if !host.Returned {
			return nil
		}
		return print(cmd, host.Out)
	})
}

func printCounter(cmd *cobra.Command, data []byte) error {
	v, err := codec.U32{}.Decode(data)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), v)
	return nil
}
