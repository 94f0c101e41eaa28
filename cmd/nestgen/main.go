// nestgen generates framenest manifest registration code from a JSON wiring
// description. Manifests cover constructors whose Go signatures cannot carry
// the needed binding information, such as primitive parameters bound to
// symbol tokens.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	var specPath string
	var outPath string

	cmd := &cobra.Command{
		Use:   "nestgen",
		Short: "Generate framenest manifest registration code from a JSON wiring spec",
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := generateFromFile(specPath)
			if err != nil {
				return err
			}
			if outPath == "" {
				_, err = cmd.OutOrStdout().Write(src)
				return err
			}
			return os.WriteFile(outPath, src, 0644)
		},
	}
	cmd.Flags().StringVarP(&specPath, "spec", "s", "nestgen.json", "path to the wiring spec")
	cmd.Flags().StringVarP(&outPath, "out", "o", "", "output file (default stdout)")
	return cmd
}
