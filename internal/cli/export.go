package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"note-manager/internal/app"
	"note-manager/internal/config"
	"note-manager/internal/converter"
)

func exportCmd(e *env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Copy all notes into another store",
		Long: `Writes every note of the current store into another store, replacing its content.
Useful to move notes between YAML, JSON Lines, SQLite and protobuf files.`,
		Args: cobra.NoArgs,
	}
	cmd.RunE = e.logged(func(cmd *cobra.Command, args []string) (err error) {
		target := &config.ConfigStorage{}
		target.Driver, _ = cmd.Flags().GetString("to-driver")
		target.Path, _ = cmd.Flags().GetString("to-path")
		if target.Path == "" {
			target.Path = config.DefaultPath(target.Driver)
		}
		if target.Driver == config.DriverMemory {
			return errors.New("export to the memory driver is pointless")
		}
		if target.Driver == e.cfg.Storage.Driver && target.Path == e.cfg.Storage.Path {
			return errors.New("export target is the current store")
		}

		store, err := app.NewStore(target)
		if err != nil {
			return err
		}
		defer func() {
			if cerr := store.Close(); cerr != nil && err == nil {
				err = cerr
			}
		}()

		notes := e.app.Notes.List(cmd.Context())
		if err := store.SaveAll(cmd.Context(), converter.ModelsToRecords(notes)); err != nil {
			return fmt.Errorf("export notes: %w", err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "✓ Exported %d note(s) to %s (%s)\n", len(notes), target.Path, target.Driver)
		return nil
	})

	cmd.Flags().String("to-driver", config.DriverYAML, "target storage driver")
	cmd.Flags().String("to-path", "", "target storage location")
	return cmd
}
