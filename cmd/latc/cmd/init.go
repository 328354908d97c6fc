package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/lat-compiler/latc/internal/config"
)

var initCmd = &cobra.Command{
	Use:   "init <file>.lat",
	Short: "Write a default latc.json manifest for a source file",
	Long: `init writes a latc.json manifest next to the given .lat source,
recording the source path and a text diagnostic format. The default
manifest has no output path, so latc build derives one from the source
name; an output path added to the manifest is used when -o is not given.`,
	Args: cobra.ExactArgs(1),
	RunE: runInit,
}

func init() {
	rootCmd.AddCommand(initCmd)
}

func runInit(_ *cobra.Command, args []string) error {
	source := args[0]
	dir := filepath.Dir(source)
	path := filepath.Join(dir, config.FileName)

	manifest := config.Default(source)
	if err := config.Write(path, manifest); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}

	fmt.Printf("wrote %s\n", path)
	return nil
}
